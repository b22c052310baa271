package handler

import (
	"github.com/anwar-ulhaq/Library-Backend/internal/core/domain"
	"github.com/anwar-ulhaq/Library-Backend/internal/core/ports"
)

// --- Request → Service input ---

func toCreateBookInput(req createBookRequest) ports.CreateBookInput {
	return ports.CreateBookInput{
		Title:         req.Title,
		Description:   req.Description,
		Publisher:     req.Publisher,
		ISBN:          req.ISBN,
		PublishedDate: req.PublishedDate,
		Category:      domain.BookCategory(req.Category),
		Authors:       toAuthorInputs(req.Authors),
	}
}

func toUpdateBookInput(req updateBookRequest) ports.UpdateBookInput {
	return ports.UpdateBookInput{
		ID:            req.ID,
		Title:         req.Title,
		Description:   req.Description,
		Publisher:     req.Publisher,
		ISBN:          req.ISBN,
		PublishedDate: req.PublishedDate,
		Category:      domain.BookCategory(req.Category),
		Authors:       toAuthorInputs(req.Authors),
	}
}

func toAuthorInputs(descriptors []authorDescriptorRequest) []ports.AuthorInput {
	if descriptors == nil {
		return nil
	}
	out := make([]ports.AuthorInput, len(descriptors))
	for i, d := range descriptors {
		out[i] = ports.AuthorInput{ID: d.ID, FirstName: d.FirstName, LastName: d.LastName}
	}
	return out
}
