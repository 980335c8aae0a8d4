package adaptor

import (
	"net/http"
	"strings"

	"library-catalog/internal/usecase"
	"library-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdminHandler serves the admin user-management endpoints.
type AdminHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.UserService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// GetUsers handles GET /api/users (admin)
func (h *AdminHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.GetUsers(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get users")
		return
	}

	utils.ResponseSuccess(w, "success", users)
}

// GetUser handles GET /api/users/{userID} (admin) - the user profile plus
// the role option list for the role form.
func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.ParseID(chi.URLParam(r, "userID"))
	if err != nil {
		utils.ResponseNotFound(w, "User not found")
		return
	}

	user, err := h.service.GetUserByID(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get user")
		return
	}

	utils.ResponseSuccess(w, "success", user)
}

// UpdateUserRoles handles POST /api/users/{userID}/roles (admin). The body
// is a form submission whose checkbox keys name the selected roles; an empty
// selection leaves the user's roles unchanged.
func (h *AdminHandler) UpdateUserRoles(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.ParseID(chi.URLParam(r, "userID"))
	if err != nil {
		utils.ResponseNotFound(w, "User not found")
		return
	}

	if err := r.ParseForm(); err != nil {
		utils.ResponseBadRequest(w, "Invalid form body", nil)
		return
	}

	user, err := h.service.UpdateUserRoles(r.Context(), userID, r.PostForm)
	if err != nil {
		h.handleServiceError(w, err, "update user roles")
		return
	}

	utils.ResponseSuccess(w, "success", user)
}

func (h *AdminHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
