package usecase

import (
	"context"
	"fmt"
	"time"

	"library-catalog/internal/data/entity"
	"library-catalog/internal/data/repository"
	"library-catalog/internal/dto/request"
	"library-catalog/internal/dto/response"
	"library-catalog/pkg/database"
	"library-catalog/pkg/utils"

	"go.uber.org/zap"
)

const (
	msgAssessmentRequired = "Please, select an assessment"
	msgInvalidAssessment  = "Invalid assessment value"
	msgAlreadyReviewed    = "You have already written a review of this book"
)

type ReviewService interface {
	GetBookReviews(ctx context.Context, bookID int64) (*response.BookReviewsResponse, error)
	GetUserReview(ctx context.Context, bookID, reviewID, userID int64) (*response.ReviewFormResponse, error)
	CreateReview(ctx context.Context, bookID, userID int64, form *request.ReviewForm) (*response.ReviewResponse, error)
	UpdateReview(ctx context.Context, bookID, reviewID, userID int64, form *request.ReviewForm) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, bookID, reviewID, userID int64) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) GetBookReviews(ctx context.Context, bookID int64) (*response.BookReviewsResponse, error) {
	book, err := s.resolveBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByBookID(ctx, bookID)
	if err != nil {
		s.log.Error("Failed to get book reviews",
			zap.Error(err),
			zap.Int64("book_id", bookID),
		)
		return nil, fmt.Errorf("get book reviews: %w", err)
	}

	reviewResponses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		reviewResponses[i] = response.ReviewToResponse(review, s.authorUsername(ctx, review.UserID))
	}

	writer, err := s.repo.Writer.FindByID(ctx, book.WriterID)
	if err != nil {
		return nil, fmt.Errorf("get book writer: %w", err)
	}

	genres, err := s.repo.BookGenre.FindByBookID(ctx, book.ID)
	if err != nil {
		return nil, fmt.Errorf("get book genres: %w", err)
	}

	return &response.BookReviewsResponse{
		Book:        response.BookToResponse(book, writer, genres),
		Reviews:     reviewResponses,
		Assessments: entity.Assessments(),
	}, nil
}

func (s *reviewService) GetUserReview(ctx context.Context, bookID, reviewID, userID int64) (*response.ReviewFormResponse, error) {
	review, err := s.resolveGuardedReview(ctx, bookID, reviewID, userID)
	if err != nil {
		return nil, err
	}

	return &response.ReviewFormResponse{
		Review:      response.ReviewToResponse(review, s.authorUsername(ctx, review.UserID)),
		Assessments: entity.Assessments(),
	}, nil
}

func (s *reviewService) CreateReview(ctx context.Context, bookID, userID int64, form *request.ReviewForm) (*response.ReviewResponse, error) {
	if _, err := s.resolveBook(ctx, bookID); err != nil {
		return nil, err
	}

	assessment, fieldErrs := s.validateReviewForm(form)
	if fieldErrs.HasErrors() {
		s.log.Warn("Create review validation failed",
			zap.Int64("book_id", bookID),
			zap.Any("errors", fieldErrs),
		)
		return nil, newValidationError(fieldErrs)
	}

	// One review per (book, user): the pre-check gives the friendly failure,
	// the unique index behind Create keeps the invariant atomic when two
	// submissions from the same user race past the pre-check.
	existing, err := s.repo.Review.FindByUserAndBook(ctx, userID, bookID)
	if err != nil {
		s.log.Error("Failed to check existing review",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("book_id", bookID),
		)
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, fieldError("review", msgAlreadyReviewed)
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			CreatedAt: time.Now(),
		},
		BookID:     bookID,
		UserID:     userID,
		Assessment: assessment,
		Content:    form.Content,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fieldError("review", msgAlreadyReviewed)
		}
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("book_id", bookID),
		)
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.Int64("review_id", review.ID),
		zap.Int64("user_id", userID),
		zap.Int64("book_id", bookID),
		zap.String("assessment", string(review.Assessment)),
	)

	resp := response.ReviewToResponse(review, s.authorUsername(ctx, userID))
	return &resp, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, bookID, reviewID, userID int64, form *request.ReviewForm) (*response.ReviewResponse, error) {
	// Guards run before any field validation.
	currentReview, err := s.resolveGuardedReview(ctx, bookID, reviewID, userID)
	if err != nil {
		return nil, err
	}

	assessment, fieldErrs := s.validateReviewForm(form)
	if fieldErrs.HasErrors() {
		s.log.Warn("Update review validation failed",
			zap.Int64("review_id", reviewID),
			zap.Any("errors", fieldErrs),
		)
		return nil, newValidationError(fieldErrs)
	}

	// Only the assessment and content are mutable.
	currentReview.Assessment = assessment
	currentReview.Content = form.Content

	if err := s.repo.Review.Update(ctx, currentReview); err != nil {
		s.log.Error("Failed to update review",
			zap.Error(err),
			zap.Int64("review_id", reviewID),
		)
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.log.Info("Review updated",
		zap.Int64("review_id", reviewID),
		zap.Int64("user_id", userID),
	)

	resp := response.ReviewToResponse(currentReview, s.authorUsername(ctx, userID))
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, bookID, reviewID, userID int64) error {
	review, err := s.resolveGuardedReview(ctx, bookID, reviewID, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Review.Delete(ctx, review.ID); err != nil {
		s.log.Error("Failed to delete review",
			zap.Error(err),
			zap.Int64("review_id", reviewID),
		)
		return fmt.Errorf("delete review: %w", err)
	}

	s.log.Info("Review deleted",
		zap.Int64("review_id", reviewID),
		zap.Int64("user_id", userID),
		zap.Int64("book_id", bookID),
	)

	return nil
}

// ==================== HELPER METHODS ====================

func (s *reviewService) resolveBook(ctx context.Context, bookID int64) (*entity.Book, error) {
	book, err := s.repo.Book.FindByID(ctx, bookID)
	if err != nil {
		s.log.Error("Failed to resolve book",
			zap.Error(err),
			zap.Int64("book_id", bookID),
		)
		return nil, fmt.Errorf("resolve book: %w", err)
	}
	if book == nil {
		return nil, fmt.Errorf("book %d not found", bookID)
	}
	return book, nil
}

// resolveGuardedReview runs the guard chain of every mutating review
// operation, in order: book exists, review exists, the review belongs to the
// book named in the request path, and the acting user is the author. Each
// failure is distinct; ownership has no admin override.
func (s *reviewService) resolveGuardedReview(ctx context.Context, bookID, reviewID, userID int64) (*entity.Review, error) {
	if _, err := s.resolveBook(ctx, bookID); err != nil {
		return nil, err
	}

	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		s.log.Error("Failed to resolve review",
			zap.Error(err),
			zap.Int64("review_id", reviewID),
		)
		return nil, fmt.Errorf("resolve review: %w", err)
	}
	if review == nil {
		return nil, fmt.Errorf("review %d not found", reviewID)
	}

	if review.BookID != bookID {
		return nil, fmt.Errorf("review %d does not belong to book %d", reviewID, bookID)
	}

	if review.UserID != userID {
		return nil, fmt.Errorf("no rights to another user's review")
	}

	return review, nil
}

// validateReviewForm accumulates the assessment-selection check with the
// structural content errors, so both surface together.
func (s *reviewService) validateReviewForm(form *request.ReviewForm) (entity.Assessment, utils.FieldErrors) {
	fieldErrs := utils.NewFieldErrors()

	var assessment entity.Assessment
	if form.Assessment == "" {
		fieldErrs.Add("assessment", msgAssessmentRequired)
	} else {
		parsed, ok := entity.ParseAssessment(form.Assessment)
		if !ok {
			fieldErrs.Add("assessment", msgInvalidAssessment)
		}
		assessment = parsed
	}

	fieldErrs.Merge(utils.ValidateStruct(form))

	return assessment, fieldErrs
}

func (s *reviewService) authorUsername(ctx context.Context, userID int64) string {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil || user == nil {
		return ""
	}
	return user.Username
}
