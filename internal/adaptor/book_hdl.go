package adaptor

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"library-catalog/internal/data/entity"
	"library-catalog/internal/dto/request"
	"library-catalog/internal/usecase"
	"library-catalog/pkg/storage"
	"library-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxPosterFormSize bounds a book form submission including the poster file.
const maxPosterFormSize = 32 << 20

type BookHandler struct {
	service usecase.BookService
	log     *zap.Logger
}

func NewBookHandler(service usecase.BookService, log *zap.Logger) *BookHandler {
	return &BookHandler{
		service: service,
		log:     log.With(zap.String("handler", "book")),
	}
}

// GetBooks handles GET /api/books (public)
func (h *BookHandler) GetBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.GetBooks(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get books", nil)
		return
	}

	utils.ResponseSuccess(w, "success", books)
}

// GetBook handles GET /api/books/{bookID} (public)
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := utils.ParseID(chi.URLParam(r, "bookID"))
	if err != nil {
		utils.ResponseNotFound(w, "Book not found")
		return
	}

	book, err := h.service.GetBookByID(r.Context(), bookID)
	if err != nil {
		h.handleServiceError(w, err, "get book", nil)
		return
	}

	utils.ResponseSuccess(w, "success", book)
}

// GetFormOptions handles GET /api/books/options (admin) - the genre and
// writer option lists for the add/edit book form.
func (h *BookHandler) GetFormOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.GetFormOptions(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get form options", nil)
		return
	}

	utils.ResponseSuccess(w, "success", options)
}

// GetWriters handles GET /api/writers (public lookup list)
func (h *BookHandler) GetWriters(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.GetFormOptions(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get writers", nil)
		return
	}

	utils.ResponseSuccess(w, "success", options.Writers)
}

// CreateBook handles POST /api/books (admin, multipart form)
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	form, poster, cleanup, ok := h.bindBookForm(w, r)
	if !ok {
		return
	}
	defer cleanup()

	book, err := h.service.CreateBook(r.Context(), form, poster)
	if err != nil {
		h.handleServiceError(w, err, "create book", form)
		return
	}

	utils.ResponseCreated(w, "success", book)
}

// UpdateBook handles PUT /api/books/{bookID} (admin, multipart form,
// poster optional)
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := utils.ParseID(chi.URLParam(r, "bookID"))
	if err != nil {
		utils.ResponseNotFound(w, "Book not found")
		return
	}

	form, poster, cleanup, ok := h.bindBookForm(w, r)
	if !ok {
		return
	}
	defer cleanup()

	book, err := h.service.UpdateBook(r.Context(), bookID, form, poster)
	if err != nil {
		h.handleServiceError(w, err, "update book", form)
		return
	}

	utils.ResponseSuccess(w, "success", book)
}

// DeleteBook handles DELETE /api/books/{bookID} (admin)
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := utils.ParseID(chi.URLParam(r, "bookID"))
	if err != nil {
		utils.ResponseNotFound(w, "Book not found")
		return
	}

	if err := h.service.DeleteBook(r.Context(), bookID); err != nil {
		h.handleServiceError(w, err, "delete book", nil)
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// bindBookForm parses the multipart book submission: plain fields, genre
// checkbox keys and the optional posterFile part. The returned cleanup
// closes the uploaded file and must be deferred by the caller.
func (h *BookHandler) bindBookForm(w http.ResponseWriter, r *http.Request) (*request.BookForm, *storage.Upload, func(), bool) {
	if err := r.ParseMultipartForm(maxPosterFormSize); err != nil {
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return nil, nil, nil, false
	}

	form := &request.BookForm{
		Title:           strings.TrimSpace(r.PostFormValue("title")),
		PublicationDate: strings.TrimSpace(r.PostFormValue("publicationDate")),
		Genres:          entity.ParseGenresFromForm(url.Values(r.MultipartForm.Value)),
	}

	// An unparsable writer value counts as "no writer selected"; the service
	// reports it with the selection error message.
	if raw := r.PostFormValue("selectedWriter"); raw != "" {
		if writerID, err := utils.ParseID(raw); err == nil {
			form.WriterID = writerID
		}
	}

	cleanup := func() {}
	var poster *storage.Upload

	file, header, err := r.FormFile("posterFile")
	if err == nil {
		poster = &storage.Upload{
			Filename: header.Filename,
			Content:  file,
		}
		cleanup = func() { file.Close() }
	}

	return form, poster, cleanup, true
}

// handleServiceError maps service failures for book operations. A rejected
// form keeps the submitted values in the response so the client can
// redisplay them alongside the accumulated field errors.
func (h *BookHandler) handleServiceError(w http.ResponseWriter, err error, operation string, form *request.BookForm) {
	var validationErr *usecase.ValidationError
	if errors.As(err, &validationErr) {
		h.log.Warn(operation+" rejected",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseRejectedForm(w, "Validation failed", form, validationErr.Fields)
		return
	}

	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
