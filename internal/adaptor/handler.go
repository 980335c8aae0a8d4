package adaptor

import (
	"library-catalog/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth   *AuthHandler
	Book   *BookHandler
	Review *ReviewHandler
	Admin  *AdminHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(service.Auth, log),
		Book:   NewBookHandler(service.Book, log),
		Review: NewReviewHandler(service.Review, log),
		Admin:  NewAdminHandler(service.User, log),
	}
}
