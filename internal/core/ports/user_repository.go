package ports

import (
	"context"

	"github.com/anwar-ulhaq/Library-Backend/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts the user. Returns domain.ErrUserExists when the unique
	// username or email index rejects the insert.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
