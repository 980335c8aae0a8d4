package repository

import (
	"context"
	"fmt"

	"library-catalog/internal/data/entity"
	"library-catalog/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// WriterRepository is read-only lookup data: writers are referenced by books
// but never created through the catalog flows.
type WriterRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Writer, error)
	FindAll(ctx context.Context) ([]*entity.Writer, error)
}

type writerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWriterRepository(db database.PgxIface, log *zap.Logger) WriterRepository {
	return &writerRepository{
		db:  db,
		log: log.With(zap.String("repository", "writer")),
	}
}

func (r *writerRepository) FindByID(ctx context.Context, id int64) (*entity.Writer, error) {
	query := `SELECT id, name, created_at FROM writers WHERE id = $1`

	var writer entity.Writer
	err := r.db.QueryRow(ctx, query, id).Scan(
		&writer.ID,
		&writer.Name,
		&writer.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find writer by ID",
			zap.Error(err),
			zap.Int64("writer_id", id),
		)
		return nil, fmt.Errorf("find writer by ID %d: %w", id, err)
	}

	return &writer, nil
}

func (r *writerRepository) FindAll(ctx context.Context) ([]*entity.Writer, error) {
	query := `SELECT id, name, created_at FROM writers ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find writers", zap.Error(err))
		return nil, fmt.Errorf("find all writers: %w", err)
	}
	defer rows.Close()

	var writers []*entity.Writer
	for rows.Next() {
		var writer entity.Writer
		err := rows.Scan(
			&writer.ID,
			&writer.Name,
			&writer.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan writer row", zap.Error(err))
			return nil, fmt.Errorf("scan writer row: %w", err)
		}
		writers = append(writers, &writer)
	}

	return writers, nil
}
