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
	"library-catalog/pkg/storage"
	"library-catalog/pkg/utils"

	"go.uber.org/zap"
)

const (
	msgGenresRequired  = "Please, select a book genres"
	msgWriterRequired  = "Please, select an author or create a new one"
	msgDateRequired    = "Please, select the publication date"
	msgDateFormat      = "Must be a date in format 2006-01-02"
	msgIncorrectPoster = "There are must be correct poster file"
	msgStorageFailure  = "Incorrect file"
	msgBookExists      = "Book already exists"
)

type BookService interface {
	GetBooks(ctx context.Context) ([]response.BookResponse, error)
	GetBookByID(ctx context.Context, bookID int64) (*response.BookResponse, error)
	GetFormOptions(ctx context.Context) (*response.BookFormOptions, error)
	CreateBook(ctx context.Context, form *request.BookForm, poster *storage.Upload) (*response.BookResponse, error)
	UpdateBook(ctx context.Context, bookID int64, form *request.BookForm, poster *storage.Upload) (*response.BookResponse, error)
	DeleteBook(ctx context.Context, bookID int64) error
}

type bookService struct {
	repo    *repository.Repository
	posters storage.PosterStorage
	log     *zap.Logger
}

func NewBookService(repo *repository.Repository, posters storage.PosterStorage, log *zap.Logger) BookService {
	return &bookService{
		repo:    repo,
		posters: posters,
		log:     log.With(zap.String("service", "book")),
	}
}

func (s *bookService) GetBooks(ctx context.Context) ([]response.BookResponse, error) {
	books, err := s.repo.Book.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get books", zap.Error(err))
		return nil, fmt.Errorf("get books: %w", err)
	}

	bookResponses := make([]response.BookResponse, len(books))
	for i, book := range books {
		resp, err := s.buildBookResponse(ctx, book)
		if err != nil {
			return nil, err
		}
		bookResponses[i] = *resp
	}

	return bookResponses, nil
}

func (s *bookService) GetBookByID(ctx context.Context, bookID int64) (*response.BookResponse, error) {
	book, err := s.repo.Book.FindByID(ctx, bookID)
	if err != nil {
		s.log.Error("Failed to get book by ID",
			zap.Error(err),
			zap.Int64("book_id", bookID),
		)
		return nil, fmt.Errorf("get book by id: %w", err)
	}

	if book == nil {
		return nil, fmt.Errorf("book %d not found", bookID)
	}

	return s.buildBookResponse(ctx, book)
}

func (s *bookService) GetFormOptions(ctx context.Context) (*response.BookFormOptions, error) {
	writers, err := s.repo.Writer.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get writers", zap.Error(err))
		return nil, fmt.Errorf("get writers: %w", err)
	}

	writerResponses := make([]response.WriterResponse, len(writers))
	for i, writer := range writers {
		writerResponses[i] = response.WriterToResponse(writer)
	}

	return &response.BookFormOptions{
		Genres:  entity.Genres(),
		Writers: writerResponses,
	}, nil
}

func (s *bookService) CreateBook(ctx context.Context, form *request.BookForm, poster *storage.Upload) (*response.BookResponse, error) {
	fieldErrs := utils.NewFieldErrors()

	publicationDate, writer := s.validateBookForm(ctx, form, fieldErrs)
	s.validatePoster(poster, fieldErrs)

	if fieldErrs.HasErrors() {
		s.log.Warn("Create book validation failed", zap.Any("errors", fieldErrs))
		return nil, newValidationError(fieldErrs)
	}

	// Poster storage and catalog insert are two explicit steps. If the insert
	// below reports a duplicate, the stored file is orphaned; that gap is
	// accepted rather than masked with a rollback.
	posterFilename := s.posters.GenerateUniqueFilename(poster.Filename)
	if err := s.posters.Store(poster.Content, posterFilename); err != nil {
		s.log.Error("Failed to store poster file",
			zap.Error(err),
			zap.String("filename", posterFilename),
		)
		return nil, fieldError("posterFile", msgStorageFailure)
	}

	now := time.Now()
	book := &entity.Book{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:           form.Title,
		PublicationDate: *publicationDate,
		WriterID:        form.WriterID,
		PosterFilename:  &posterFilename,
	}

	if err := s.addNewBook(ctx, book); err != nil {
		return nil, err
	}

	if err := s.repo.BookGenre.ReplaceForBook(ctx, book.ID, form.Genres); err != nil {
		s.log.Error("Failed to set book genres",
			zap.Error(err),
			zap.Int64("book_id", book.ID),
		)
		return nil, fmt.Errorf("set book genres: %w", err)
	}

	s.log.Info("Book created",
		zap.Int64("book_id", book.ID),
		zap.String("title", book.Title),
		zap.Int64("writer_id", book.WriterID),
	)

	return &response.BookResponse{
		ID:              book.ID,
		Title:           book.Title,
		PublicationDate: book.PublicationDate.Format("2006-01-02"),
		Writer:          response.WriterToResponse(writer),
		Genres:          form.Genres,
		PosterFilename:  book.PosterFilename,
		CreatedAt:       book.CreatedAt,
	}, nil
}

func (s *bookService) UpdateBook(ctx context.Context, bookID int64, form *request.BookForm, poster *storage.Upload) (*response.BookResponse, error) {
	// Existence always comes before any payload validation.
	currentBook, err := s.repo.Book.FindByID(ctx, bookID)
	if err != nil {
		s.log.Error("Failed to get book for update",
			zap.Error(err),
			zap.Int64("book_id", bookID),
		)
		return nil, fmt.Errorf("get book for update: %w", err)
	}
	if currentBook == nil {
		return nil, fmt.Errorf("book %d not found", bookID)
	}

	fieldErrs := utils.NewFieldErrors()

	publicationDate, writer := s.validateBookForm(ctx, form, fieldErrs)

	// The poster does not have to be resubmitted on edit, but a supplied one
	// must be a valid image.
	posterSupplied := poster != nil && poster.Filename != ""
	if posterSupplied {
		s.validatePoster(poster, fieldErrs)
	}

	if fieldErrs.HasErrors() {
		s.log.Warn("Update book validation failed",
			zap.Int64("book_id", bookID),
			zap.Any("errors", fieldErrs),
		)
		return nil, newValidationError(fieldErrs)
	}

	// Another book may already hold the edited (title, writer, date) triple.
	duplicate, err := s.repo.Book.FindByTitleWriterDate(ctx, form.Title, form.WriterID, *publicationDate)
	if err != nil {
		return nil, fmt.Errorf("check duplicate book: %w", err)
	}
	if duplicate != nil && duplicate.ID != currentBook.ID {
		return nil, fieldError("book", msgBookExists)
	}

	posterFilename := currentBook.PosterFilename
	if posterSupplied {
		newFilename := s.posters.GenerateUniqueFilename(poster.Filename)
		if err := s.posters.Store(poster.Content, newFilename); err != nil {
			s.log.Error("Failed to store poster file",
				zap.Error(err),
				zap.String("filename", newFilename),
			)
			return nil, fieldError("posterFile", msgStorageFailure)
		}
		posterFilename = &newFilename
	}

	currentBook.Title = form.Title
	currentBook.PublicationDate = *publicationDate
	currentBook.WriterID = form.WriterID
	currentBook.PosterFilename = posterFilename
	currentBook.UpdatedAt = time.Now()

	if err := s.repo.Book.Update(ctx, currentBook); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fieldError("book", msgBookExists)
		}
		s.log.Error("Failed to update book",
			zap.Error(err),
			zap.Int64("book_id", bookID),
		)
		return nil, fmt.Errorf("update book: %w", err)
	}

	if err := s.repo.BookGenre.ReplaceForBook(ctx, currentBook.ID, form.Genres); err != nil {
		s.log.Error("Failed to replace book genres",
			zap.Error(err),
			zap.Int64("book_id", currentBook.ID),
		)
		return nil, fmt.Errorf("replace book genres: %w", err)
	}

	s.log.Info("Book updated",
		zap.Int64("book_id", currentBook.ID),
		zap.String("title", currentBook.Title),
		zap.Bool("poster_replaced", posterSupplied),
	)

	return &response.BookResponse{
		ID:              currentBook.ID,
		Title:           currentBook.Title,
		PublicationDate: currentBook.PublicationDate.Format("2006-01-02"),
		Writer:          response.WriterToResponse(writer),
		Genres:          form.Genres,
		PosterFilename:  currentBook.PosterFilename,
		CreatedAt:       currentBook.CreatedAt,
	}, nil
}

func (s *bookService) DeleteBook(ctx context.Context, bookID int64) error {
	book, err := s.repo.Book.FindByID(ctx, bookID)
	if err != nil {
		s.log.Error("Failed to get book for delete",
			zap.Error(err),
			zap.Int64("book_id", bookID),
		)
		return fmt.Errorf("get book for delete: %w", err)
	}
	if book == nil {
		return fmt.Errorf("book %d not found", bookID)
	}

	if err := s.repo.Book.Delete(ctx, bookID); err != nil {
		s.log.Error("Failed to delete book",
			zap.Error(err),
			zap.Int64("book_id", bookID),
		)
		return fmt.Errorf("delete book: %w", err)
	}

	s.log.Info("Book deleted",
		zap.Int64("book_id", bookID),
		zap.String("title", book.Title),
	)
	return nil
}

// ==================== HELPER METHODS ====================

// validateBookForm runs every form check and records each failure in the
// error bag; no check short-circuits an earlier one, so the caller gets all
// messages of a bad submission at once. Returns the parsed publication date
// and the resolved writer when those checks pass.
func (s *bookService) validateBookForm(ctx context.Context, form *request.BookForm, fieldErrs utils.FieldErrors) (*time.Time, *entity.Writer) {
	fieldErrs.Check(len(form.Genres) > 0, "genres", msgGenresRequired)

	var writer *entity.Writer
	if form.WriterID == 0 {
		fieldErrs.Add("selectedWriter", msgWriterRequired)
	} else {
		found, err := s.repo.Writer.FindByID(ctx, form.WriterID)
		if err != nil {
			s.log.Error("Failed to resolve writer",
				zap.Error(err),
				zap.Int64("writer_id", form.WriterID),
			)
		}
		if found == nil {
			fieldErrs.Add("selectedWriter", msgWriterRequired)
		}
		writer = found
	}

	var publicationDate *time.Time
	if form.PublicationDate == "" {
		fieldErrs.Add("publicationDate", msgDateRequired)
	} else {
		parsed, err := time.Parse("2006-01-02", form.PublicationDate)
		if err != nil {
			fieldErrs.Add("publicationDate", msgDateFormat)
		} else {
			publicationDate = &parsed
		}
	}

	fieldErrs.Merge(utils.ValidateStruct(form))

	return publicationDate, writer
}

// validatePoster fails when no file was uploaded, the upload carries no
// original name, or its content is not a recognized image type.
func (s *bookService) validatePoster(poster *storage.Upload, fieldErrs utils.FieldErrors) bool {
	ok := poster != nil && poster.Filename != "" && s.posters.IsImageContent(poster.Content)
	return fieldErrs.Check(ok, "posterFile", msgIncorrectPoster)
}

// addNewBook is the explicit check-then-insert of the uniqueness invariant
// on (title, writer, publication date). The pre-check gives the friendly
// failure; the unique index behind Create keeps the invariant atomic when
// two submissions race past the pre-check.
func (s *bookService) addNewBook(ctx context.Context, book *entity.Book) error {
	existing, err := s.repo.Book.FindByTitleWriterDate(ctx, book.Title, book.WriterID, book.PublicationDate)
	if err != nil {
		return fmt.Errorf("check existing book: %w", err)
	}
	if existing != nil {
		return fieldError("book", msgBookExists)
	}

	if err := s.repo.Book.Create(ctx, book); err != nil {
		if database.IsUniqueViolation(err) {
			return fieldError("book", msgBookExists)
		}
		return fmt.Errorf("create book: %w", err)
	}

	return nil
}

func (s *bookService) buildBookResponse(ctx context.Context, book *entity.Book) (*response.BookResponse, error) {
	writer, err := s.repo.Writer.FindByID(ctx, book.WriterID)
	if err != nil {
		return nil, fmt.Errorf("get book writer: %w", err)
	}

	genres, err := s.repo.BookGenre.FindByBookID(ctx, book.ID)
	if err != nil {
		return nil, fmt.Errorf("get book genres: %w", err)
	}

	resp := response.BookToResponse(book, writer, genres)
	return &resp, nil
}
