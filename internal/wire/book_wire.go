package wire

import (
	"library-catalog/internal/adaptor"
	"library-catalog/internal/data/repository"
	"library-catalog/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBook(
	r chi.Router,
	bookHandler *adaptor.BookHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/books", bookHandler.GetBooks)
	r.Get("/api/books/{bookID:[0-9]+}", bookHandler.GetBook)
	r.Get("/api/writers", bookHandler.GetWriters)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		// GET /api/books/options - option lists for the add/edit form
		r.Get("/api/books/options", bookHandler.GetFormOptions)

		// POST /api/books - add a new book (multipart with poster)
		r.Post("/api/books", bookHandler.CreateBook)

		// PUT /api/books/{bookID} - update a book (poster optional)
		r.Put("/api/books/{bookID:[0-9]+}", bookHandler.UpdateBook)

		// DELETE /api/books/{bookID} - remove a book and its reviews
		r.Delete("/api/books/{bookID:[0-9]+}", bookHandler.DeleteBook)
	})
}
