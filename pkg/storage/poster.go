package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PosterStorage is the poster file collaborator of the book catalog. The
// catalog stores a poster before inserting the book row; the two steps are
// not transactional with each other.
type PosterStorage interface {
	GenerateUniqueFilename(originalFilename string) string
	Store(content io.Reader, filename string) error
	IsImageContent(content io.ReadSeeker) bool
}

type diskPosterStorage struct {
	dir string
	log *zap.Logger
}

func NewDiskPosterStorage(dir string, log *zap.Logger) (PosterStorage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}

	return &diskPosterStorage{
		dir: dir,
		log: log.With(zap.String("storage", "poster")),
	}, nil
}

// GenerateUniqueFilename keeps the original extension so the stored file is
// still recognizable, prefixed by a fresh UUID to avoid collisions.
func (s *diskPosterStorage) GenerateUniqueFilename(originalFilename string) string {
	return uuid.New().String() + filepath.Ext(originalFilename)
}

func (s *diskPosterStorage) Store(content io.Reader, filename string) error {
	path := filepath.Join(s.dir, filename)

	file, err := os.Create(path)
	if err != nil {
		s.log.Error("Failed to create poster file",
			zap.Error(err),
			zap.String("path", path),
		)
		return fmt.Errorf("create poster file %s: %w", filename, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		s.log.Error("Failed to write poster file",
			zap.Error(err),
			zap.String("path", path),
		)
		return fmt.Errorf("write poster file %s: %w", filename, err)
	}

	s.log.Debug("Poster stored", zap.String("filename", filename))
	return nil
}

// IsImageContent sniffs the actual bytes; the client-supplied filename and
// content type are not trusted.
func (s *diskPosterStorage) IsImageContent(content io.ReadSeeker) bool {
	mtype, err := mimetype.DetectReader(content)

	// Rewind so the caller can still store the full content.
	if _, seekErr := content.Seek(0, io.SeekStart); seekErr != nil {
		return false
	}

	if err != nil {
		return false
	}

	return mtype.Is("image/jpeg") || mtype.Is("image/png") || mtype.Is("image/gif") || mtype.Is("image/webp")
}
