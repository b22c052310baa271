package ports

import (
	"context"

	"github.com/anwar-ulhaq/Library-Backend/internal/core/domain"
)

// AuthorRepository defines persistence operations for authors.
type AuthorRepository interface {
	Create(ctx context.Context, author *domain.Author) (*domain.Author, error)
	FindByID(ctx context.Context, id string) (*domain.Author, error)
	// FindByName looks up an author by exact (firstName, lastName) match.
	// Returns domain.ErrAuthorNotFound when no author matches.
	FindByName(ctx context.Context, firstName, lastName string) (*domain.Author, error)
	Update(ctx context.Context, author *domain.Author) (*domain.Author, error)
	Delete(ctx context.Context, id string) error
}
