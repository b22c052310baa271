package handler

import "time"

// errorResponse documents the error envelope in swagger annotations. The
// actual rendering happens in the central error handler.
type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// --- Request / Response types ---

// authorDescriptorRequest is either a reference to an existing author (id,
// optionally with name patches) or a name pair meaning find-or-create.
type authorDescriptorRequest struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type createBookRequest struct {
	Title         string                    `json:"title"         validate:"required"`
	Description   string                    `json:"description"   validate:"required"`
	Publisher     string                    `json:"publisher"     validate:"required"`
	ISBN          string                    `json:"ISBN"          validate:"required"`
	PublishedDate time.Time                 `json:"publishedDate" validate:"required"`
	Category      string                    `json:"category"`
	Authors       []authorDescriptorRequest `json:"authors"       validate:"required,min=1"`
}

type updateBookRequest struct {
	ID            string                    `json:"id" validate:"required"`
	Title         string                    `json:"title"`
	Description   string                    `json:"description"`
	Publisher     string                    `json:"publisher"`
	ISBN          string                    `json:"ISBN"`
	PublishedDate *time.Time                `json:"publishedDate"`
	Category      string                    `json:"category"`
	Authors       []authorDescriptorRequest `json:"authors"`
}

type deleteBookRequest struct {
	ID string `json:"id" validate:"required"`
}

type lendingRequest struct {
	BookID string `json:"bookId" validate:"required"`
}
