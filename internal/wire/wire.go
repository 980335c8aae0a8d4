package wire

import (
	"net/http"

	"library-catalog/internal/adaptor"
	"library-catalog/internal/data/repository"
	"library-catalog/internal/usecase"
	"library-catalog/pkg/middleware"
	"library-catalog/pkg/storage"
	"library-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired application
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies
func Wiring(repo *repository.Repository, posters storage.PosterStorage, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, posters, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, repo, logger)
	wireBook(r, handler.Book, repo, logger)
	wireReview(r, handler.Review, repo, logger)
	wireAdmin(r, handler.Admin, repo, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
