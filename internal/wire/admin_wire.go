package wire

import (
	"library-catalog/internal/adaptor"
	"library-catalog/internal/data/repository"
	"library-catalog/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		// GET /api/users - user list
		r.Get("/api/users", adminHandler.GetUsers)

		// GET /api/users/{userID} - user profile with role options
		r.Get("/api/users/{userID:[0-9]+}", adminHandler.GetUser)

		// POST /api/users/{userID}/roles - replace the user's role set
		r.Post("/api/users/{userID:[0-9]+}/roles", adminHandler.UpdateUserRoles)
	})
}
