package wire

import (
	"library-catalog/internal/adaptor"
	"library-catalog/internal/data/repository"
	"library-catalog/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/books/{bookID}/reviews - view a book's reviews
	r.Get("/api/books/{bookID:[0-9]+}/reviews", reviewHandler.GetBookReviews)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/books/{bookID}/reviews - one review per user per book
		r.Post("/api/books/{bookID:[0-9]+}/reviews", reviewHandler.CreateReview)

		// GET /api/books/{bookID}/reviews/{reviewID} - edit-form data (owner only)
		r.Get("/api/books/{bookID:[0-9]+}/reviews/{reviewID:[0-9]+}", reviewHandler.GetUserReview)

		// PUT /api/books/{bookID}/reviews/{reviewID} - update review (owner only)
		r.Put("/api/books/{bookID:[0-9]+}/reviews/{reviewID:[0-9]+}", reviewHandler.UpdateReview)

		// DELETE /api/books/{bookID}/reviews/{reviewID} - delete review (owner only)
		r.Delete("/api/books/{bookID:[0-9]+}/reviews/{reviewID:[0-9]+}", reviewHandler.DeleteReview)
	})
}
