package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the error taxonomy. The API layer maps each of these to
// a deterministic HTTP status; everything else surfaces as a 500.
var (
	ErrAuthorNotFound = errors.New("author not found")
	ErrBookNotFound   = errors.New("book not found")
	ErrUserNotFound   = errors.New("user not found")

	ErrISBNExists          = errors.New("book with this ISBN already exists")
	ErrUserExists          = errors.New("username or email already taken")
	ErrAuthorInUse         = errors.New("author is still referenced by books")
	ErrBookAlreadyBorrowed = errors.New("book already borrowed")
	ErrBookNotBorrowed     = errors.New("book is not borrowed")

	ErrInvalidCredentials = errors.New("user verification failed")
	ErrReturnNotAllowed   = errors.New("no rights to return this book")
	ErrForbidden          = errors.New("access forbidden")
)

// ValidationError reports missing or malformed input fields.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, ", "))
}

// NewValidationError builds a ValidationError for the named fields.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
