package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/anwar-ulhaq/Library-Backend/internal/core/domain"
	"github.com/anwar-ulhaq/Library-Backend/internal/core/ports"
)

// AuthorService implements author CRUD and the reconciliation used by book
// create/update.
type AuthorService struct {
	repo   ports.AuthorRepository
	books  ports.BookRepository
	logger zerolog.Logger
}

func NewAuthorService(repo ports.AuthorRepository, books ports.BookRepository, logger zerolog.Logger) *AuthorService {
	return &AuthorService{repo: repo, books: books, logger: logger}
}

func (s *AuthorService) Create(ctx context.Context, firstName, lastName string) (*domain.Author, error) {
	if err := validateName(firstName, lastName); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Author{FirstName: firstName, LastName: lastName})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("author_id", created.ID).Msg("author created")
	return created, nil
}

func (s *AuthorService) Update(ctx context.Context, in ports.AuthorInput) (*domain.Author, error) {
	if in.ID == "" {
		return nil, domain.NewValidationError("id")
	}

	author, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if in.FirstName != "" {
		author.FirstName = in.FirstName
	}
	if in.LastName != "" {
		author.LastName = in.LastName
	}
	return s.repo.Update(ctx, author)
}

// Delete removes an author. Deletion is restricted while any book still
// embeds the author, otherwise books would carry dangling references.
func (s *AuthorService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.NewValidationError("id")
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	n, err := s.books.CountByAuthor(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrAuthorInUse
	}
	return s.repo.Delete(ctx, id)
}

// Reconcile resolves each descriptor to a stored author, in input order.
// Name-only descriptors are find-or-create; descriptors carrying an id are
// delegated to Update so name patches behave exactly like the standalone
// author API. The resolved list is meant to replace a book's author list
// wholesale.
func (s *AuthorService) Reconcile(ctx context.Context, descriptors []ports.AuthorInput) ([]domain.Author, error) {
	resolved := make([]domain.Author, 0, len(descriptors))
	for _, d := range descriptors {
		if d.ID != "" {
			updated, err := s.Update(ctx, d)
			if err != nil {
				return nil, err
			}
			resolved = append(resolved, *updated)
			continue
		}

		if err := validateName(d.FirstName, d.LastName); err != nil {
			return nil, err
		}

		existing, err := s.repo.FindByName(ctx, d.FirstName, d.LastName)
		switch {
		case err == nil:
			resolved = append(resolved, *existing)
		case errors.Is(err, domain.ErrAuthorNotFound):
			created, createErr := s.repo.Create(ctx, &domain.Author{
				FirstName: d.FirstName,
				LastName:  d.LastName,
			})
			if createErr != nil {
				return nil, createErr
			}
			s.logger.Debug().Str("author_id", created.ID).Msg("author created during reconciliation")
			resolved = append(resolved, *created)
		default:
			return nil, err
		}
	}
	return resolved, nil
}

func validateName(firstName, lastName string) error {
	var missing []string
	if firstName == "" {
		missing = append(missing, "firstName")
	}
	if lastName == "" {
		missing = append(missing, "lastName")
	}
	if len(missing) > 0 {
		return domain.NewValidationError(missing...)
	}
	return nil
}
