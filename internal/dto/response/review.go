package response

import (
	"time"

	"library-catalog/internal/data/entity"
)

type ReviewResponse struct {
	ID         int64             `json:"id"`
	BookID     int64             `json:"book_id"`
	UserID     int64             `json:"user_id"`
	Username   string            `json:"username,omitempty"`
	Assessment entity.Assessment `json:"assessment"`
	Content    string            `json:"content"`
	CreatedAt  time.Time         `json:"created_at"`
}

// BookReviewsResponse is the review-list page payload: the book, its reviews
// in creation order, and the assessment options for the inline review form.
type BookReviewsResponse struct {
	Book        BookResponse        `json:"book"`
	Reviews     []ReviewResponse    `json:"reviews"`
	Assessments []entity.Assessment `json:"assessments"`
}

// ReviewFormResponse is the review edit-form payload.
type ReviewFormResponse struct {
	Review      ReviewResponse      `json:"review"`
	Assessments []entity.Assessment `json:"assessments"`
}

func ReviewToResponse(review *entity.Review, username string) ReviewResponse {
	return ReviewResponse{
		ID:         review.ID,
		BookID:     review.BookID,
		UserID:     review.UserID,
		Username:   username,
		Assessment: review.Assessment,
		Content:    review.Content,
		CreatedAt:  review.CreatedAt,
	}
}
