package repository

import (
	"library-catalog/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User      UserRepository
	Session   SessionRepository
	Writer    WriterRepository
	Book      BookRepository
	BookGenre BookGenreRepository
	Review    ReviewRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:      NewUserRepository(db, log),
		Session:   NewSessionRepository(db, log),
		Writer:    NewWriterRepository(db, log),
		Book:      NewBookRepository(db, log),
		BookGenre: NewBookGenreRepository(db, log),
		Review:    NewReviewRepository(db, log),
	}
}
