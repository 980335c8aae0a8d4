package repository

import (
	"context"
	"fmt"
	"time"

	"library-catalog/internal/data/entity"
	"library-catalog/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookRepository interface {
	Create(ctx context.Context, book *entity.Book) error
	FindByID(ctx context.Context, id int64) (*entity.Book, error)
	FindAll(ctx context.Context) ([]*entity.Book, error)
	FindByTitleWriterDate(ctx context.Context, title string, writerID int64, publicationDate time.Time) (*entity.Book, error)
	Update(ctx context.Context, book *entity.Book) error
	Delete(ctx context.Context, id int64) error
}

type bookRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookRepository(db database.PgxIface, log *zap.Logger) BookRepository {
	return &bookRepository{
		db:  db,
		log: log.With(zap.String("repository", "book")),
	}
}

// Create inserts the book row. The unique index on
// (title, writer_id, publication_date) is the atomic half of the duplicate
// check; callers detect it through database.IsUniqueViolation.
func (r *bookRepository) Create(ctx context.Context, book *entity.Book) error {
	query := `
		INSERT INTO books (title, publication_date, writer_id, poster_filename, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		book.Title,
		book.PublicationDate,
		book.WriterID,
		book.PosterFilename,
		book.CreatedAt,
		book.UpdatedAt,
	).Scan(&book.ID)

	if err != nil {
		if !database.IsUniqueViolation(err) {
			r.log.Error("Failed to create book",
				zap.Error(err),
				zap.String("title", book.Title),
			)
		}
		return fmt.Errorf("create book %q: %w", book.Title, err)
	}

	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id int64) (*entity.Book, error) {
	query := `
		SELECT id, title, publication_date, writer_id, poster_filename, created_at, updated_at
		FROM books
		WHERE id = $1
	`

	var book entity.Book
	err := r.db.QueryRow(ctx, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.PublicationDate,
		&book.WriterID,
		&book.PosterFilename,
		&book.CreatedAt,
		&book.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find book by ID",
			zap.Error(err),
			zap.Int64("book_id", id),
		)
		return nil, fmt.Errorf("find book by ID %d: %w", id, err)
	}

	return &book, nil
}

func (r *bookRepository) FindAll(ctx context.Context) ([]*entity.Book, error) {
	query := `
		SELECT id, title, publication_date, writer_id, poster_filename, created_at, updated_at
		FROM books
		ORDER BY title
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find books", zap.Error(err))
		return nil, fmt.Errorf("find all books: %w", err)
	}
	defer rows.Close()

	var books []*entity.Book
	for rows.Next() {
		var book entity.Book
		err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.PublicationDate,
			&book.WriterID,
			&book.PosterFilename,
			&book.CreatedAt,
			&book.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan book row", zap.Error(err))
			return nil, fmt.Errorf("scan book row: %w", err)
		}
		books = append(books, &book)
	}

	return books, nil
}

func (r *bookRepository) FindByTitleWriterDate(ctx context.Context, title string, writerID int64, publicationDate time.Time) (*entity.Book, error) {
	query := `
		SELECT id, title, publication_date, writer_id, poster_filename, created_at, updated_at
		FROM books
		WHERE title = $1 AND writer_id = $2 AND publication_date = $3
		LIMIT 1
	`

	var book entity.Book
	err := r.db.QueryRow(ctx, query, title, writerID, publicationDate).Scan(
		&book.ID,
		&book.Title,
		&book.PublicationDate,
		&book.WriterID,
		&book.PosterFilename,
		&book.CreatedAt,
		&book.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find book by title, writer and date",
			zap.Error(err),
			zap.String("title", title),
			zap.Int64("writer_id", writerID),
		)
		return nil, fmt.Errorf("find book by title %q: %w", title, err)
	}

	return &book, nil
}

func (r *bookRepository) Update(ctx context.Context, book *entity.Book) error {
	query := `
		UPDATE books
		SET title = $2, publication_date = $3, writer_id = $4, poster_filename = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		book.ID,
		book.Title,
		book.PublicationDate,
		book.WriterID,
		book.PosterFilename,
		book.UpdatedAt,
	)

	if err != nil {
		if !database.IsUniqueViolation(err) {
			r.log.Error("Failed to update book",
				zap.Error(err),
				zap.Int64("book_id", book.ID),
			)
		}
		return fmt.Errorf("update book %d: %w", book.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("book %d not found", book.ID)
	}

	return nil
}

// Delete removes the book row; reviews and genre links go with it through
// ON DELETE CASCADE.
func (r *bookRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM books WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete book",
			zap.Error(err),
			zap.Int64("book_id", id),
		)
		return fmt.Errorf("delete book %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("book %d not found", id)
	}

	r.log.Info("Book deleted", zap.Int64("book_id", id))
	return nil
}
