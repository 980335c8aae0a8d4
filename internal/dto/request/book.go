package request

import (
	"library-catalog/internal/data/entity"
)

// BookForm carries one book add/edit submission. Title is structurally
// validated; genres, writer and publication date get their own accumulated
// business checks in the book service, so they carry no validator tags.
type BookForm struct {
	Title           string `validate:"required,max=255"`
	WriterID        int64  // 0 when no writer was selected
	PublicationDate string // raw form value, empty when not selected
	Genres          []entity.Genre
}
