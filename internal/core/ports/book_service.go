package ports

import (
	"context"
	"time"

	"github.com/anwar-ulhaq/Library-Backend/internal/core/domain"
)

// CreateBookInput carries all data needed to create a book.
type CreateBookInput struct {
	Title         string
	Description   string
	Publisher     string
	ISBN          string
	PublishedDate time.Time
	Category      domain.BookCategory
	Authors       []AuthorInput
}

// UpdateBookInput is a partial patch for an existing book. Nil / empty fields
// are left untouched. A non-nil Authors list replaces the book's author list
// wholesale after reconciliation.
type UpdateBookInput struct {
	ID            string
	Title         string
	Description   string
	Publisher     string
	ISBN          string
	PublishedDate *time.Time
	Category      domain.BookCategory
	Authors       []AuthorInput
}

// BookService defines the catalog and lending use cases.
type BookService interface {
	Create(ctx context.Context, in CreateBookInput) (*domain.Book, error)
	Update(ctx context.Context, in UpdateBookInput) (*domain.Book, error)
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]*domain.Book, error)
	FindByISBN(ctx context.Context, isbn string) (*domain.Book, error)

	// Checkout assigns the book to userID when it is available.
	Checkout(ctx context.Context, userID, bookID string) (*domain.Book, error)
	// Return clears the borrower. Permitted to the current borrower or an
	// admin; anyone else gets domain.ErrReturnNotAllowed.
	Return(ctx context.Context, userID, bookID string, role domain.Role) (*domain.Book, error)
}
