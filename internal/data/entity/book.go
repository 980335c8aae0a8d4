package entity

import (
	"time"
)

type Book struct {
	Base
	Title           string    `db:"title"`
	PublicationDate time.Time `db:"publication_date"`
	WriterID        int64     `db:"writer_id"`
	PosterFilename  *string   `db:"poster_filename"`
}
