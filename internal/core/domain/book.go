package domain

import "time"

// BookStatus represents the lending state of a book.
type BookStatus string

const (
	StatusAvailable BookStatus = "AVAILABLE"
	StatusBorrowed  BookStatus = "BORROWED"
)

// BookCategory classifies a book. Categories are a fixed enum for now.
type BookCategory string

const (
	CategoryNotDefined BookCategory = "NOT_DEFINED"
	CategoryFiction    BookCategory = "FICTION"
	CategoryNonFiction BookCategory = "NON_FICTION"
	CategoryScience    BookCategory = "SCIENCE"
	CategoryHistory    BookCategory = "HISTORY"
	CategoryCooking    BookCategory = "COOKING"
	CategoryChildren   BookCategory = "CHILDREN"
)

// NoBorrower is the sentinel borrower id meaning "no borrower assigned".
// It is the hex form of the all-zero ObjectID.
const NoBorrower = "000000000000000000000000"

// Book is the core catalog aggregate. Authors are embedded as a full list and
// replaced wholesale on update. BorrowerID references a User by opaque id
// only; there is no foreign-key enforcement.
type Book struct {
	ID            string       `json:"id" bson:"_id,omitempty"`
	Title         string       `json:"title" bson:"title"`
	Description   string       `json:"description" bson:"description"`
	Publisher     string       `json:"publisher" bson:"publisher"`
	ISBN          string       `json:"ISBN" bson:"isbn"`
	PublishedDate time.Time    `json:"publishedDate" bson:"published_date"`
	Authors       []Author     `json:"authors" bson:"authors"`
	Category      BookCategory `json:"category" bson:"category"`
	Status        BookStatus   `json:"status" bson:"status"`
	BorrowerID    string       `json:"borrowerId" bson:"borrower_id"`
	BorrowedDate  *time.Time   `json:"borrowedDate,omitempty" bson:"borrowed_date,omitempty"`
	ReturnDate    *time.Time   `json:"returnDate,omitempty" bson:"return_date,omitempty"`
}

// Available reports whether the book can currently be checked out.
func (b *Book) Available() bool {
	return b.Status != StatusBorrowed
}

// BorrowedBy reports whether userID is the current borrower.
func (b *Book) BorrowedBy(userID string) bool {
	return b.Status == StatusBorrowed && b.BorrowerID == userID && b.BorrowerID != NoBorrower
}

// ValidCategory reports whether c is a known category value.
func ValidCategory(c BookCategory) bool {
	switch c {
	case CategoryNotDefined, CategoryFiction, CategoryNonFiction,
		CategoryScience, CategoryHistory, CategoryCooking, CategoryChildren:
		return true
	}
	return false
}
