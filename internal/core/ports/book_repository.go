package ports

import (
	"context"
	"time"

	"github.com/anwar-ulhaq/Library-Backend/internal/core/domain"
)

// BookRepository defines persistence operations for books. Checkout and
// Return are conditional writes: the lending-state filter is part of the
// update so the transition is atomic at the store.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) (*domain.Book, error)
	FindByID(ctx context.Context, id string) (*domain.Book, error)
	// FindByISBN returns domain.ErrBookNotFound when no book matches.
	FindByISBN(ctx context.Context, isbn string) (*domain.Book, error)
	// FindAll returns all books sorted by status (available first).
	FindAll(ctx context.Context) ([]*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) (*domain.Book, error)
	Delete(ctx context.Context, id string) error

	// Checkout transitions AVAILABLE -> BORROWED in a single conditional
	// update. Returns domain.ErrBookNotFound when the id is unknown and
	// domain.ErrBookAlreadyBorrowed when the book is not available.
	Checkout(ctx context.Context, bookID, userID string, at time.Time) (*domain.Book, error)
	// Return transitions BORROWED -> AVAILABLE in a single conditional
	// update, guarded on the expected current borrower. Returns
	// domain.ErrBookNotFound or domain.ErrBookNotBorrowed accordingly.
	Return(ctx context.Context, bookID, borrowerID string) (*domain.Book, error)

	// CountByAuthor reports how many books still embed the given author.
	CountByAuthor(ctx context.Context, authorID string) (int64, error)
}
