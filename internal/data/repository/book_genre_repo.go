package repository

import (
	"context"
	"fmt"

	"library-catalog/internal/data/entity"
	"library-catalog/pkg/database"

	"go.uber.org/zap"
)

// BookGenreRepository manages the book_genres bridge table. A book's genre
// set is always replaced wholesale, never patched.
type BookGenreRepository interface {
	FindByBookID(ctx context.Context, bookID int64) ([]entity.Genre, error)
	ReplaceForBook(ctx context.Context, bookID int64, genres []entity.Genre) error
	DeleteByBookID(ctx context.Context, bookID int64) error
}

type bookGenreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookGenreRepository(db database.PgxIface, log *zap.Logger) BookGenreRepository {
	return &bookGenreRepository{
		db:  db,
		log: log.With(zap.String("repository", "book_genre")),
	}
}

func (r *bookGenreRepository) FindByBookID(ctx context.Context, bookID int64) ([]entity.Genre, error) {
	query := `SELECT genre FROM book_genres WHERE book_id = $1 ORDER BY genre`

	rows, err := r.db.Query(ctx, query, bookID)
	if err != nil {
		r.log.Error("Failed to find genres by book ID",
			zap.Error(err),
			zap.Int64("book_id", bookID),
		)
		return nil, fmt.Errorf("find genres by book ID %d: %w", bookID, err)
	}
	defer rows.Close()

	var genres []entity.Genre
	for rows.Next() {
		var genre entity.Genre
		if err := rows.Scan(&genre); err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, genre)
	}

	return genres, nil
}

func (r *bookGenreRepository) ReplaceForBook(ctx context.Context, bookID int64, genres []entity.Genre) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace genres for book %d: %w", bookID, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM book_genres WHERE book_id = $1`, bookID); err != nil {
		r.log.Error("Failed to clear book genres",
			zap.Error(err),
			zap.Int64("book_id", bookID),
		)
		return fmt.Errorf("clear genres for book %d: %w", bookID, err)
	}

	for _, genre := range genres {
		_, err := tx.Exec(ctx,
			`INSERT INTO book_genres (book_id, genre) VALUES ($1, $2)`,
			bookID, genre,
		)
		if err != nil {
			r.log.Error("Failed to insert book genre",
				zap.Error(err),
				zap.Int64("book_id", bookID),
				zap.String("genre", string(genre)),
			)
			return fmt.Errorf("insert genre %s for book %d: %w", genre, bookID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace genres for book %d: %w", bookID, err)
	}

	return nil
}

func (r *bookGenreRepository) DeleteByBookID(ctx context.Context, bookID int64) error {
	query := `DELETE FROM book_genres WHERE book_id = $1`

	_, err := r.db.Exec(ctx, query, bookID)
	if err != nil {
		r.log.Error("Failed to delete book genres",
			zap.Error(err),
			zap.Int64("book_id", bookID),
		)
		return fmt.Errorf("delete genres for book %d: %w", bookID, err)
	}

	return nil
}
