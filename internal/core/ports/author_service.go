package ports

import (
	"context"

	"github.com/anwar-ulhaq/Library-Backend/internal/core/domain"
)

// AuthorInput is a descriptor for an author, used both by the standalone
// author API and by book create/update. Either ID references an existing
// author (name fields then act as an update patch), or FirstName and LastName
// identify an author to find or create.
type AuthorInput struct {
	ID        string
	FirstName string
	LastName  string
}

// AuthorService defines the author use cases.
type AuthorService interface {
	Create(ctx context.Context, firstName, lastName string) (*domain.Author, error)
	Update(ctx context.Context, in AuthorInput) (*domain.Author, error)
	Delete(ctx context.Context, id string) error
	// Reconcile resolves each descriptor to a stored author, creating new
	// authors as needed. Output order follows input order.
	Reconcile(ctx context.Context, descriptors []AuthorInput) ([]domain.Author, error)
}
