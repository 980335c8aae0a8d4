package repository

import (
	"context"
	"fmt"

	"library-catalog/internal/data/entity"
	"library-catalog/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id int64) (*entity.Review, error)
	FindByBookID(ctx context.Context, bookID int64) ([]*entity.Review, error)
	FindByUserAndBook(ctx context.Context, userID, bookID int64) (*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id int64) error
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

// Create inserts the review row. The unique index on (book_id, user_id) is
// what makes one-review-per-user-per-book hold under concurrent submissions;
// callers detect it through database.IsUniqueViolation.
func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (book_id, user_id, assessment, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		review.BookID,
		review.UserID,
		review.Assessment,
		review.Content,
		review.CreatedAt,
	).Scan(&review.ID)

	if err != nil {
		if !database.IsUniqueViolation(err) {
			r.log.Error("Failed to create review",
				zap.Error(err),
				zap.Int64("user_id", review.UserID),
				zap.Int64("book_id", review.BookID),
			)
		}
		return fmt.Errorf("create review for book %d by user %d: %w",
			review.BookID, review.UserID, err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id int64) (*entity.Review, error) {
	query := `
		SELECT id, book_id, user_id, assessment, content, created_at
		FROM reviews
		WHERE id = $1
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, id).Scan(
		&review.ID,
		&review.BookID,
		&review.UserID,
		&review.Assessment,
		&review.Content,
		&review.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.Int64("review_id", id),
		)
		return nil, fmt.Errorf("find review by ID %d: %w", id, err)
	}

	return &review, nil
}

// FindByBookID lists a book's reviews in creation order.
func (r *reviewRepository) FindByBookID(ctx context.Context, bookID int64) ([]*entity.Review, error) {
	query := `
		SELECT id, book_id, user_id, assessment, content, created_at
		FROM reviews
		WHERE book_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(ctx, query, bookID)
	if err != nil {
		r.log.Error("Failed to find reviews by book ID",
			zap.Error(err),
			zap.Int64("book_id", bookID),
		)
		return nil, fmt.Errorf("find reviews by book ID %d: %w", bookID, err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.BookID,
			&review.UserID,
			&review.Assessment,
			&review.Content,
			&review.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	return reviews, nil
}

func (r *reviewRepository) FindByUserAndBook(ctx context.Context, userID, bookID int64) (*entity.Review, error) {
	query := `
		SELECT id, book_id, user_id, assessment, content, created_at
		FROM reviews
		WHERE user_id = $1 AND book_id = $2
		LIMIT 1
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, userID, bookID).Scan(
		&review.ID,
		&review.BookID,
		&review.UserID,
		&review.Assessment,
		&review.Content,
		&review.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by user and book",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("book_id", bookID),
		)
		return nil, fmt.Errorf("find review by user %d and book %d: %w",
			userID, bookID, err)
	}

	return &review, nil
}

// Update replaces assessment and content only; book and author references are
// immutable after creation.
func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `
		UPDATE reviews
		SET assessment = $2, content = $3
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		review.ID,
		review.Assessment,
		review.Content,
	)

	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.Int64("review_id", review.ID),
		)
		return fmt.Errorf("update review %d: %w", review.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %d not found", review.ID)
	}

	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM reviews WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.Int64("review_id", id),
		)
		return fmt.Errorf("delete review %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %d not found", id)
	}

	r.log.Info("Review deleted", zap.Int64("review_id", id))
	return nil
}
