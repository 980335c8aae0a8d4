package adaptor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"library-catalog/internal/data/entity"
	"library-catalog/internal/dto/request"
	"library-catalog/internal/dto/response"
	"library-catalog/internal/usecase"
	"library-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubReviewService struct {
	getBookReviewsFn func(ctx context.Context, bookID int64) (*response.BookReviewsResponse, error)
	getUserReviewFn  func(ctx context.Context, bookID, reviewID, userID int64) (*response.ReviewFormResponse, error)
	createFn         func(ctx context.Context, bookID, userID int64, form *request.ReviewForm) (*response.ReviewResponse, error)
	updateFn         func(ctx context.Context, bookID, reviewID, userID int64, form *request.ReviewForm) (*response.ReviewResponse, error)
	deleteFn         func(ctx context.Context, bookID, reviewID, userID int64) error
}

func (s *stubReviewService) GetBookReviews(ctx context.Context, bookID int64) (*response.BookReviewsResponse, error) {
	return s.getBookReviewsFn(ctx, bookID)
}

func (s *stubReviewService) GetUserReview(ctx context.Context, bookID, reviewID, userID int64) (*response.ReviewFormResponse, error) {
	return s.getUserReviewFn(ctx, bookID, reviewID, userID)
}

func (s *stubReviewService) CreateReview(ctx context.Context, bookID, userID int64, form *request.ReviewForm) (*response.ReviewResponse, error) {
	return s.createFn(ctx, bookID, userID, form)
}

func (s *stubReviewService) UpdateReview(ctx context.Context, bookID, reviewID, userID int64, form *request.ReviewForm) (*response.ReviewResponse, error) {
	return s.updateFn(ctx, bookID, reviewID, userID, form)
}

func (s *stubReviewService) DeleteReview(ctx context.Context, bookID, reviewID, userID int64) error {
	return s.deleteFn(ctx, bookID, reviewID, userID)
}

// newReviewRouter mounts the review routes behind a middleware that injects
// an authenticated user, the way the session middleware does in production.
func newReviewRouter(service usecase.ReviewService, userID int64) *chi.Mux {
	h := NewReviewHandler(service, zap.NewNop())

	router := chi.NewRouter()
	router.Get("/api/books/{bookID:[0-9]+}/reviews", h.GetBookReviews)

	router.Group(func(r chi.Router) {
		if userID != 0 {
			r.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
					ctx := utils.SetUserContext(req.Context(), userID, "alice", []entity.Role{entity.RoleUser})
					next.ServeHTTP(w, req.WithContext(ctx))
				})
			})
		}
		r.Post("/api/books/{bookID:[0-9]+}/reviews", h.CreateReview)
		r.Put("/api/books/{bookID:[0-9]+}/reviews/{reviewID:[0-9]+}", h.UpdateReview)
		r.Delete("/api/books/{bookID:[0-9]+}/reviews/{reviewID:[0-9]+}", h.DeleteReview)
	})

	return router
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var resp utils.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestCreateReviewHandler(t *testing.T) {
	service := &stubReviewService{
		createFn: func(ctx context.Context, bookID, userID int64, form *request.ReviewForm) (*response.ReviewResponse, error) {
			return &response.ReviewResponse{
				ID:         7,
				BookID:     bookID,
				UserID:     userID,
				Assessment: entity.AssessmentGood,
				Content:    form.Content,
			}, nil
		},
	}
	router := newReviewRouter(service, 1)

	body := strings.NewReader(`{"assessment":"GOOD","content":"A fine book."}`)
	req := httptest.NewRequest(http.MethodPost, "/api/books/3/reviews", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Status)
}

func TestCreateReviewHandlerRequiresAuth(t *testing.T) {
	router := newReviewRouter(&stubReviewService{}, 0)

	req := httptest.NewRequest(http.MethodPost, "/api/books/3/reviews", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateReviewHandlerRejectedForm(t *testing.T) {
	service := &stubReviewService{
		createFn: func(ctx context.Context, bookID, userID int64, form *request.ReviewForm) (*response.ReviewResponse, error) {
			fieldErrs := utils.NewFieldErrors()
			fieldErrs.Add("assessment", "Please, select an assessment")
			fieldErrs.Add("Content", "This field is required")
			return nil, &usecase.ValidationError{Fields: fieldErrs}
		},
	}
	router := newReviewRouter(service, 1)

	req := httptest.NewRequest(http.MethodPost, "/api/books/3/reviews", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Status)

	// All accumulated field errors come back, alongside the submitted form
	// for redisplay.
	errs, ok := resp.Errors.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Please, select an assessment", errs["assessment"])
	assert.Equal(t, "This field is required", errs["Content"])
	assert.NotNil(t, resp.Data)
}

func TestUpdateReviewHandlerStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"book missing", fmt.Errorf("book 3 not found"), http.StatusNotFound},
		{"wrong book in path", fmt.Errorf("review 7 does not belong to book 3"), http.StatusConflict},
		{"not the author", fmt.Errorf("no rights to another user's review"), http.StatusForbidden},
		{"unexpected failure", fmt.Errorf("update review: connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &stubReviewService{
				updateFn: func(ctx context.Context, bookID, reviewID, userID int64, form *request.ReviewForm) (*response.ReviewResponse, error) {
					return nil, tt.err
				},
			}
			router := newReviewRouter(service, 1)

			body := strings.NewReader(`{"assessment":"GOOD","content":"updated"}`)
			req := httptest.NewRequest(http.MethodPut, "/api/books/3/reviews/7", body)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestDeleteReviewHandlerPassesPrincipal(t *testing.T) {
	var gotBookID, gotReviewID, gotUserID int64
	service := &stubReviewService{
		deleteFn: func(ctx context.Context, bookID, reviewID, userID int64) error {
			gotBookID, gotReviewID, gotUserID = bookID, reviewID, userID
			return nil
		},
	}
	router := newReviewRouter(service, 42)

	req := httptest.NewRequest(http.MethodDelete, "/api/books/3/reviews/7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), gotBookID)
	assert.Equal(t, int64(7), gotReviewID)
	assert.Equal(t, int64(42), gotUserID)
}

func TestGetBookReviewsHandlerIsPublic(t *testing.T) {
	service := &stubReviewService{
		getBookReviewsFn: func(ctx context.Context, bookID int64) (*response.BookReviewsResponse, error) {
			return &response.BookReviewsResponse{
				Assessments: entity.Assessments(),
			}, nil
		},
	}
	router := newReviewRouter(service, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/books/3/reviews", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
