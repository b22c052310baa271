package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/anwar-ulhaq/Library-Backend/internal/api/metrics"
	"github.com/anwar-ulhaq/Library-Backend/internal/core/domain"
	"github.com/anwar-ulhaq/Library-Backend/internal/core/ports"
)

// BookService implements catalog CRUD and the lending workflow.
type BookService struct {
	repo    ports.BookRepository
	authors ports.AuthorService
	logger  zerolog.Logger
	now     func() time.Time
}

func NewBookService(repo ports.BookRepository, authors ports.AuthorService, logger zerolog.Logger) *BookService {
	return &BookService{repo: repo, authors: authors, logger: logger, now: time.Now}
}

// Create validates the input, rejects a duplicate ISBN, reconciles the author
// descriptors, and inserts the book as AVAILABLE with no borrower.
func (s *BookService) Create(ctx context.Context, in ports.CreateBookInput) (*domain.Book, error) {
	if err := validateCreateBook(in); err != nil {
		return nil, err
	}

	_, err := s.repo.FindByISBN(ctx, in.ISBN)
	switch {
	case err == nil:
		return nil, domain.ErrISBNExists
	case !errors.Is(err, domain.ErrBookNotFound):
		return nil, err
	}

	authors, err := s.authors.Reconcile(ctx, in.Authors)
	if err != nil {
		return nil, err
	}

	category := in.Category
	if category == "" {
		category = domain.CategoryNotDefined
	}

	book := &domain.Book{
		Title:         in.Title,
		Description:   in.Description,
		Publisher:     in.Publisher,
		ISBN:          in.ISBN,
		PublishedDate: in.PublishedDate,
		Authors:       authors,
		Category:      category,
		Status:        domain.StatusAvailable,
		BorrowerID:    domain.NoBorrower,
	}

	created, err := s.repo.Create(ctx, book)
	if err != nil {
		s.logger.Error().Err(err).Str("isbn", in.ISBN).Msg("failed to create book")
		return nil, err
	}

	metrics.BooksCreatedTotal.WithLabelValues(string(created.Category)).Inc()
	s.logger.Info().Str("book_id", created.ID).Str("isbn", created.ISBN).Msg("book created")
	return created, nil
}

// Update applies a partial patch. A non-nil Authors list is reconciled and
// replaces the book's author list wholesale, even when some resolved authors
// match the previous ones.
func (s *BookService) Update(ctx context.Context, in ports.UpdateBookInput) (*domain.Book, error) {
	if in.ID == "" {
		return nil, domain.NewValidationError("id")
	}

	book, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		book.Title = in.Title
	}
	if in.Description != "" {
		book.Description = in.Description
	}
	if in.Publisher != "" {
		book.Publisher = in.Publisher
	}
	if in.ISBN != "" {
		book.ISBN = in.ISBN
	}
	if in.PublishedDate != nil {
		book.PublishedDate = *in.PublishedDate
	}
	if in.Category != "" {
		if !domain.ValidCategory(in.Category) {
			return nil, domain.NewValidationError("category")
		}
		book.Category = in.Category
	}

	if in.Authors != nil {
		authors, reconcileErr := s.authors.Reconcile(ctx, in.Authors)
		if reconcileErr != nil {
			return nil, reconcileErr
		}
		book.Authors = authors
	}

	return s.repo.Update(ctx, book)
}

func (s *BookService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.NewValidationError("id")
	}
	return s.repo.Delete(ctx, id)
}

func (s *BookService) FindAll(ctx context.Context) ([]*domain.Book, error) {
	return s.repo.FindAll(ctx)
}

func (s *BookService) FindByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	if isbn == "" {
		return nil, domain.NewValidationError("ISBN")
	}
	return s.repo.FindByISBN(ctx, isbn)
}

// Checkout transitions the book AVAILABLE -> BORROWED for userID. The
// repository performs the transition as a conditional write, so two
// concurrent checkouts cannot both succeed.
func (s *BookService) Checkout(ctx context.Context, userID, bookID string) (*domain.Book, error) {
	if userID == "" || bookID == "" {
		return nil, domain.NewValidationError("userId", "bookId")
	}

	book, err := s.repo.Checkout(ctx, bookID, userID, s.now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrBookAlreadyBorrowed) {
			metrics.CheckoutConflictsTotal.Inc()
		}
		return nil, err
	}

	metrics.BooksCheckedOutTotal.WithLabelValues(string(book.Category)).Inc()
	s.logger.Info().Str("book_id", bookID).Str("user_id", userID).Msg("book checked out")
	return book, nil
}

// Return transitions the book BORROWED -> AVAILABLE. Only the current
// borrower or an admin may return a book; returning a book that is not
// borrowed is rejected rather than treated as a no-op.
func (s *BookService) Return(ctx context.Context, userID, bookID string, role domain.Role) (*domain.Book, error) {
	if userID == "" || bookID == "" {
		return nil, domain.NewValidationError("userId", "bookId")
	}

	book, err := s.repo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book.Available() {
		return nil, domain.ErrBookNotBorrowed
	}
	if !book.BorrowedBy(userID) && role != domain.RoleAdmin {
		return nil, domain.ErrReturnNotAllowed
	}

	// Guard the write on the borrower observed above so a concurrent
	// return/checkout pair cannot interleave.
	returned, err := s.repo.Return(ctx, bookID, book.BorrowerID)
	if err != nil {
		return nil, err
	}

	metrics.BooksReturnedTotal.Inc()
	s.logger.Info().Str("book_id", bookID).Str("user_id", userID).Msg("book returned")
	return returned, nil
}

func validateCreateBook(in ports.CreateBookInput) error {
	var missing []string
	if in.Title == "" {
		missing = append(missing, "title")
	}
	if in.Description == "" {
		missing = append(missing, "description")
	}
	if in.Publisher == "" {
		missing = append(missing, "publisher")
	}
	if in.ISBN == "" {
		missing = append(missing, "ISBN")
	}
	if in.PublishedDate.IsZero() {
		missing = append(missing, "publishedDate")
	}
	if len(in.Authors) == 0 {
		missing = append(missing, "authors")
	}
	if len(missing) > 0 {
		return domain.NewValidationError(missing...)
	}
	if in.Category != "" && !domain.ValidCategory(in.Category) {
		return domain.NewValidationError("category")
	}
	return nil
}
