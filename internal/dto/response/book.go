package response

import (
	"time"

	"library-catalog/internal/data/entity"
)

type BookResponse struct {
	ID              int64          `json:"id"`
	Title           string         `json:"title"`
	PublicationDate string         `json:"publication_date"`
	Writer          WriterResponse `json:"writer"`
	Genres          []entity.Genre `json:"genres"`
	PosterFilename  *string        `json:"poster_filename,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// BookFormOptions is the option-list payload for the add/edit book form.
type BookFormOptions struct {
	Genres  []entity.Genre   `json:"genres"`
	Writers []WriterResponse `json:"writers"`
}

func BookToResponse(book *entity.Book, writer *entity.Writer, genres []entity.Genre) BookResponse {
	resp := BookResponse{
		ID:              book.ID,
		Title:           book.Title,
		PublicationDate: book.PublicationDate.Format("2006-01-02"),
		Genres:          genres,
		PosterFilename:  book.PosterFilename,
		CreatedAt:       book.CreatedAt,
	}

	if writer != nil {
		resp.Writer = WriterToResponse(writer)
	}

	return resp
}
