package usecase

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"library-catalog/internal/data/entity"
	"library-catalog/internal/data/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// In-memory fakes for the repository interfaces. Value semantics on reads so
// tests can assert that a failed mutation left the stored data untouched.

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
}

type fakeBookRepo struct {
	books     map[int64]entity.Book
	nextID    int64
	createErr error
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: make(map[int64]entity.Book)}
}

func (f *fakeBookRepo) Create(ctx context.Context, book *entity.Book) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	book.ID = f.nextID
	f.books[book.ID] = *book
	return nil
}

func (f *fakeBookRepo) FindByID(ctx context.Context, id int64) (*entity.Book, error) {
	book, ok := f.books[id]
	if !ok {
		return nil, nil
	}
	return &book, nil
}

func (f *fakeBookRepo) FindAll(ctx context.Context) ([]*entity.Book, error) {
	ids := make([]int64, 0, len(f.books))
	for id := range f.books {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	books := make([]*entity.Book, 0, len(ids))
	for _, id := range ids {
		book := f.books[id]
		books = append(books, &book)
	}
	return books, nil
}

func (f *fakeBookRepo) FindByTitleWriterDate(ctx context.Context, title string, writerID int64, publicationDate time.Time) (*entity.Book, error) {
	for _, book := range f.books {
		if book.Title == title && book.WriterID == writerID && book.PublicationDate.Equal(publicationDate) {
			found := book
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeBookRepo) Update(ctx context.Context, book *entity.Book) error {
	if _, ok := f.books[book.ID]; !ok {
		return fmt.Errorf("book %d not found", book.ID)
	}
	f.books[book.ID] = *book
	return nil
}

func (f *fakeBookRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.books[id]; !ok {
		return fmt.Errorf("book %d not found", id)
	}
	delete(f.books, id)
	return nil
}

type fakeWriterRepo struct {
	writers map[int64]entity.Writer
}

func newFakeWriterRepo(writers ...entity.Writer) *fakeWriterRepo {
	f := &fakeWriterRepo{writers: make(map[int64]entity.Writer)}
	for _, w := range writers {
		f.writers[w.ID] = w
	}
	return f
}

func (f *fakeWriterRepo) FindByID(ctx context.Context, id int64) (*entity.Writer, error) {
	writer, ok := f.writers[id]
	if !ok {
		return nil, nil
	}
	return &writer, nil
}

func (f *fakeWriterRepo) FindAll(ctx context.Context) ([]*entity.Writer, error) {
	ids := make([]int64, 0, len(f.writers))
	for id := range f.writers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	writers := make([]*entity.Writer, 0, len(ids))
	for _, id := range ids {
		writer := f.writers[id]
		writers = append(writers, &writer)
	}
	return writers, nil
}

type fakeBookGenreRepo struct {
	genres map[int64][]entity.Genre
}

func newFakeBookGenreRepo() *fakeBookGenreRepo {
	return &fakeBookGenreRepo{genres: make(map[int64][]entity.Genre)}
}

func (f *fakeBookGenreRepo) FindByBookID(ctx context.Context, bookID int64) ([]entity.Genre, error) {
	return append([]entity.Genre(nil), f.genres[bookID]...), nil
}

func (f *fakeBookGenreRepo) ReplaceForBook(ctx context.Context, bookID int64, genres []entity.Genre) error {
	f.genres[bookID] = append([]entity.Genre(nil), genres...)
	return nil
}

func (f *fakeBookGenreRepo) DeleteByBookID(ctx context.Context, bookID int64) error {
	delete(f.genres, bookID)
	return nil
}

type fakeReviewRepo struct {
	reviews   map[int64]entity.Review
	nextID    int64
	createErr error
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[int64]entity.Review)}
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	review.ID = f.nextID
	f.reviews[review.ID] = *review
	return nil
}

func (f *fakeReviewRepo) FindByID(ctx context.Context, id int64) (*entity.Review, error) {
	review, ok := f.reviews[id]
	if !ok {
		return nil, nil
	}
	return &review, nil
}

func (f *fakeReviewRepo) FindByBookID(ctx context.Context, bookID int64) ([]*entity.Review, error) {
	ids := make([]int64, 0, len(f.reviews))
	for id, review := range f.reviews {
		if review.BookID == bookID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	reviews := make([]*entity.Review, 0, len(ids))
	for _, id := range ids {
		review := f.reviews[id]
		reviews = append(reviews, &review)
	}
	return reviews, nil
}

func (f *fakeReviewRepo) FindByUserAndBook(ctx context.Context, userID, bookID int64) (*entity.Review, error) {
	for _, review := range f.reviews {
		if review.UserID == userID && review.BookID == bookID {
			found := review
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) Update(ctx context.Context, review *entity.Review) error {
	if _, ok := f.reviews[review.ID]; !ok {
		return fmt.Errorf("review %d not found", review.ID)
	}
	f.reviews[review.ID] = *review
	return nil
}

func (f *fakeReviewRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.reviews[id]; !ok {
		return fmt.Errorf("review %d not found", id)
	}
	delete(f.reviews, id)
	return nil
}

type fakeUserRepo struct {
	users            map[int64]entity.User
	nextID           int64
	replaceRoleCalls int
}

func newFakeUserRepo(users ...entity.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[int64]entity.User)}
	for _, u := range users {
		f.users[u.ID] = u
		if u.ID > f.nextID {
			f.nextID = u.ID
		}
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return uniqueViolation()
		}
	}
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	user.Roles = append([]entity.Role(nil), user.Roles...)
	return &user, nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			found := user
			found.Roles = append([]entity.Role(nil), user.Roles...)
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context) ([]*entity.User, error) {
	ids := make([]int64, 0, len(f.users))
	for id := range f.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	users := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		user := f.users[id]
		users = append(users, &user)
	}
	return users, nil
}

func (f *fakeUserRepo) ReplaceRoles(ctx context.Context, userID int64, roles []entity.Role) error {
	f.replaceRoleCalls++
	user, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("user %d not found", userID)
	}
	user.Roles = append([]entity.Role(nil), roles...)
	f.users[userID] = user
	return nil
}

type fakeSessionRepo struct {
	sessions map[uuid.UUID]entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]entity.Session)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	f.sessions[session.Token] = *session
	return nil
}

func (f *fakeSessionRepo) FindValidSession(ctx context.Context, token uuid.UUID) (*entity.Session, error) {
	session, ok := f.sessions[token]
	if !ok || session.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	return &session, nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, token uuid.UUID) error {
	delete(f.sessions, token)
	return nil
}

type fakePosterStorage struct {
	imageOK  bool
	storeErr error
	stored   []string
	counter  int
}

func newFakePosterStorage() *fakePosterStorage {
	return &fakePosterStorage{imageOK: true}
}

func (f *fakePosterStorage) GenerateUniqueFilename(originalFilename string) string {
	f.counter++
	return fmt.Sprintf("poster-%d.jpg", f.counter)
}

func (f *fakePosterStorage) Store(content io.Reader, filename string) error {
	if f.storeErr != nil {
		return f.storeErr
	}
	f.stored = append(f.stored, filename)
	return nil
}

func (f *fakePosterStorage) IsImageContent(content io.ReadSeeker) bool {
	return f.imageOK
}

func newTestRepository(books *fakeBookRepo, writers *fakeWriterRepo, genres *fakeBookGenreRepo, reviews *fakeReviewRepo, users *fakeUserRepo) *repository.Repository {
	return &repository.Repository{
		User:      users,
		Session:   newFakeSessionRepo(),
		Writer:    writers,
		Book:      books,
		BookGenre: genres,
		Review:    reviews,
	}
}
