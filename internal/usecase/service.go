package usecase

import (
	"library-catalog/internal/data/repository"
	"library-catalog/pkg/storage"
	"library-catalog/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth   AuthService
	Book   BookService
	Review ReviewService
	User   UserService
}

func NewService(repo *repository.Repository, posters storage.PosterStorage, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:   NewAuthService(repo, config, log),
		Book:   NewBookService(repo, posters, log),
		Review: NewReviewService(repo, log),
		User:   NewUserService(repo.User, log),
	}
}
