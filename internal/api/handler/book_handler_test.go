package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/anwar-ulhaq/Library-Backend/internal/api/middleware"
	"github.com/anwar-ulhaq/Library-Backend/internal/core/domain"
	"github.com/anwar-ulhaq/Library-Backend/internal/core/ports"
)

type stubBookService struct {
	books []*domain.Book
	book  *domain.Book
	err   error

	createInput ports.CreateBookInput
	updateInput ports.UpdateBookInput
	deletedID   string
	lentUserID  string
	lentBookID  string
	lentRole    domain.Role
}

func (s *stubBookService) Create(_ context.Context, in ports.CreateBookInput) (*domain.Book, error) {
	s.createInput = in
	return s.book, s.err
}

func (s *stubBookService) Update(_ context.Context, in ports.UpdateBookInput) (*domain.Book, error) {
	s.updateInput = in
	return s.book, s.err
}

func (s *stubBookService) Delete(_ context.Context, id string) error {
	s.deletedID = id
	return s.err
}

func (s *stubBookService) FindAll(context.Context) ([]*domain.Book, error) {
	return s.books, s.err
}

func (s *stubBookService) FindByISBN(_ context.Context, _ string) (*domain.Book, error) {
	return s.book, s.err
}

func (s *stubBookService) Checkout(_ context.Context, userID, bookID string) (*domain.Book, error) {
	s.lentUserID, s.lentBookID = userID, bookID
	return s.book, s.err
}

func (s *stubBookService) Return(_ context.Context, userID, bookID string, role domain.Role) (*domain.Book, error) {
	s.lentUserID, s.lentBookID, s.lentRole = userID, bookID, role
	return s.book, s.err
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func authedContext(method, target, body string, role domain.Role) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := newTestContext(method, target, body)
	c.Set(middleware.CtxUserID, "user-1")
	c.Set(middleware.CtxRole, role)
	return c, rec
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

func sampleBook() *domain.Book {
	return &domain.Book{
		ID:         "book-1",
		Title:      "The Dispossessed",
		ISBN:       "978-0-06-051275-3",
		Status:     domain.StatusAvailable,
		BorrowerID: domain.NoBorrower,
	}
}

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

func TestBookHandler_FindAll_EmptyCatalogIs404(t *testing.T) {
	h := NewBookHandler(&stubBookService{})
	c, _ := newTestContext(http.MethodGet, "/books", "")

	err := h.FindAll(c)
	if code := httpCode(t, err); code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", code)
	}
}

func TestBookHandler_FindAll_ReturnsBooks(t *testing.T) {
	h := NewBookHandler(&stubBookService{books: []*domain.Book{sampleBook()}})
	c, rec := newTestContext(http.MethodGet, "/books", "")

	if err := h.FindAll(c); err != nil {
		t.Fatalf("FindAll returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "The Dispossessed") {
		t.Fatalf("body missing book: %s", rec.Body.String())
	}
}

func TestBookHandler_FindByISBN_MissingParam(t *testing.T) {
	h := NewBookHandler(&stubBookService{})
	c, _ := newTestContext(http.MethodGet, "/book", "")

	err := h.FindByISBN(c)
	if code := httpCode(t, err); code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}
}

func TestBookHandler_FindByISBN_Found(t *testing.T) {
	h := NewBookHandler(&stubBookService{book: sampleBook()})
	c, rec := newTestContext(http.MethodGet, "/book?ISBN=978-0-06-051275-3", "")

	if err := h.FindByISBN(c); err != nil {
		t.Fatalf("FindByISBN returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestBookHandler_Create_MapsRequest(t *testing.T) {
	svc := &stubBookService{book: sampleBook()}
	h := NewBookHandler(svc)

	body := `{
		"title": "The Dispossessed",
		"description": "An ambiguous utopia",
		"publisher": "Harper and Row",
		"ISBN": "978-0-06-051275-3",
		"publishedDate": "1974-05-01T00:00:00Z",
		"category": "FICTION",
		"authors": [{"firstName": "Ursula", "lastName": "Le Guin"}]
	}`
	c, rec := newTestContext(http.MethodPost, "/book", body)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	in := svc.createInput
	if in.ISBN != "978-0-06-051275-3" || in.Category != domain.BookCategory("FICTION") {
		t.Fatalf("input not mapped: %+v", in)
	}
	if !in.PublishedDate.Equal(time.Date(1974, time.May, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("published date not mapped: %v", in.PublishedDate)
	}
	if len(in.Authors) != 1 || in.Authors[0].LastName != "Le Guin" {
		t.Fatalf("authors not mapped: %+v", in.Authors)
	}
}

func TestBookHandler_Create_MissingAuthors(t *testing.T) {
	h := NewBookHandler(&stubBookService{})

	body := `{
		"title": "Untitled",
		"description": "d",
		"publisher": "p",
		"ISBN": "1",
		"publishedDate": "2020-01-01T00:00:00Z",
		"authors": []
	}`
	c, _ := newTestContext(http.MethodPost, "/book", body)

	if err := h.Create(c); !domain.IsValidationError(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestBookHandler_Update_NilAuthorsStayNil(t *testing.T) {
	svc := &stubBookService{book: sampleBook()}
	h := NewBookHandler(svc)

	c, _ := newTestContext(http.MethodPut, "/book", `{"id": "book-1", "title": "Renamed"}`)
	if err := h.Update(c); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if svc.updateInput.Authors != nil {
		t.Fatalf("omitted authors must map to nil, got %+v", svc.updateInput.Authors)
	}
}

func TestBookHandler_Delete(t *testing.T) {
	svc := &stubBookService{}
	h := NewBookHandler(svc)

	c, rec := newTestContext(http.MethodDelete, "/book", `{"id": "book-1"}`)
	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if svc.deletedID != "book-1" {
		t.Fatalf("deleted id = %q", svc.deletedID)
	}
}

// ---------------------------------------------------------------------------
// Lending
// ---------------------------------------------------------------------------

func TestBookHandler_Checkout_UsesCallerIdentity(t *testing.T) {
	svc := &stubBookService{book: sampleBook()}
	h := NewBookHandler(svc)

	c, rec := authedContext(http.MethodPost, "/book/checkout", `{"bookId": "book-1"}`, domain.RoleUser)
	if err := h.Checkout(c); err != nil {
		t.Fatalf("Checkout returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if svc.lentUserID != "user-1" || svc.lentBookID != "book-1" {
		t.Fatalf("claims not forwarded: user=%q book=%q", svc.lentUserID, svc.lentBookID)
	}
}

func TestBookHandler_Checkout_NoClaims(t *testing.T) {
	h := NewBookHandler(&stubBookService{})

	c, _ := newTestContext(http.MethodPost, "/book/checkout", `{"bookId": "book-1"}`)
	err := h.Checkout(c)
	if code := httpCode(t, err); code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", code)
	}
}

func TestBookHandler_Return_ForwardsRole(t *testing.T) {
	svc := &stubBookService{book: sampleBook()}
	h := NewBookHandler(svc)

	c, _ := authedContext(http.MethodPost, "/book/return", `{"bookId": "book-1"}`, domain.RoleAdmin)
	if err := h.Return(c); err != nil {
		t.Fatalf("Return returned error: %v", err)
	}
	if svc.lentRole != domain.RoleAdmin {
		t.Fatalf("role not forwarded, got %v", svc.lentRole)
	}
}

func TestBookHandler_Return_ServiceErrorPropagates(t *testing.T) {
	h := NewBookHandler(&stubBookService{err: domain.ErrReturnNotAllowed})

	c, _ := authedContext(http.MethodPost, "/book/return", `{"bookId": "book-1"}`, domain.RoleUser)
	if err := h.Return(c); !errors.Is(err, domain.ErrReturnNotAllowed) {
		t.Fatalf("expected ErrReturnNotAllowed, got %v", err)
	}
}
