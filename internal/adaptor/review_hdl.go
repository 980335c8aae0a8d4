package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"library-catalog/internal/dto/request"
	"library-catalog/internal/usecase"
	"library-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// GetBookReviews handles GET /api/books/{bookID}/reviews (public)
func (h *ReviewHandler) GetBookReviews(w http.ResponseWriter, r *http.Request) {
	bookID, err := utils.ParseID(chi.URLParam(r, "bookID"))
	if err != nil {
		utils.ResponseNotFound(w, "Book not found")
		return
	}

	reviews, err := h.service.GetBookReviews(r.Context(), bookID)
	if err != nil {
		h.handleServiceError(w, err, "get book reviews", nil)
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// GetUserReview handles GET /api/books/{bookID}/reviews/{reviewID}
// (protected, owner only) - the review edit-form payload.
func (h *ReviewHandler) GetUserReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookID, reviewID, ok := h.parsePathIDs(w, r)
	if !ok {
		return
	}

	review, err := h.service.GetUserReview(r.Context(), bookID, reviewID, userID)
	if err != nil {
		h.handleServiceError(w, err, "get user review", nil)
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// CreateReview handles POST /api/books/{bookID}/reviews (protected)
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookID, err := utils.ParseID(chi.URLParam(r, "bookID"))
	if err != nil {
		utils.ResponseNotFound(w, "Book not found")
		return
	}

	var req request.ReviewForm
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	review, err := h.service.CreateReview(r.Context(), bookID, userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "create review", &req)
		return
	}

	utils.ResponseCreated(w, "success", review)
}

// UpdateReview handles PUT /api/books/{bookID}/reviews/{reviewID}
// (protected, owner only)
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookID, reviewID, ok := h.parsePathIDs(w, r)
	if !ok {
		return
	}

	var req request.ReviewForm
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	review, err := h.service.UpdateReview(r.Context(), bookID, reviewID, userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update review", &req)
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// DeleteReview handles DELETE /api/books/{bookID}/reviews/{reviewID}
// (protected, owner only)
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookID, reviewID, ok := h.parsePathIDs(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteReview(r.Context(), bookID, reviewID, userID); err != nil {
		h.handleServiceError(w, err, "delete review", nil)
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

func (h *ReviewHandler) parsePathIDs(w http.ResponseWriter, r *http.Request) (bookID, reviewID int64, ok bool) {
	bookID, err := utils.ParseID(chi.URLParam(r, "bookID"))
	if err != nil {
		utils.ResponseNotFound(w, "Book not found")
		return 0, 0, false
	}

	reviewID, err = utils.ParseID(chi.URLParam(r, "reviewID"))
	if err != nil {
		utils.ResponseNotFound(w, "Review not found")
		return 0, 0, false
	}

	return bookID, reviewID, true
}

// handleServiceError maps service failures for review operations. The
// resource-mismatch guard (a review reached through the wrong book's URL)
// maps to 409 and stays distinct from the ownership failure, which maps
// to 403.
func (h *ReviewHandler) handleServiceError(w http.ResponseWriter, err error, operation string, form *request.ReviewForm) {
	var validationErr *usecase.ValidationError
	if errors.As(err, &validationErr) {
		h.log.Warn(operation+" rejected",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseRejectedForm(w, "Validation failed", form, validationErr.Fields)
		return
	}

	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "does not belong"):
		h.log.Warn(operation+" failed - request mismatch",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

	case strings.Contains(errMsg, "no rights"):
		h.log.Warn(operation+" failed - forbidden",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, errMsg)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
