package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anwar-ulhaq/Library-Backend/internal/core/ports"
)

// BookHandler handles HTTP requests for catalog and lending operations.
type BookHandler struct {
	service ports.BookService
}

func NewBookHandler(service ports.BookService) *BookHandler {
	return &BookHandler{service: service}
}

// FindAll handles GET /books. An empty catalog surfaces as 404, a quirk the
// API has always had and clients depend on.
//
// @Summary      List all books
// @Tags         books
// @Produce      json
// @Success      200  {array}   domain.Book
// @Failure      404  {object}  errorResponse
// @Router       /books [get]
func (h *BookHandler) FindAll(c echo.Context) error {
	books, err := h.service.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	if len(books) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "No Book found")
	}
	return c.JSON(http.StatusOK, books)
}

// FindByISBN handles GET /book?ISBN=.
//
// @Summary      Find a book by ISBN
// @Tags         books
// @Produce      json
// @Param        ISBN  query     string  true  "ISBN"
// @Success      200   {object}  domain.Book
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /book [get]
func (h *BookHandler) FindByISBN(c echo.Context) error {
	isbn := c.QueryParam("ISBN")
	if isbn == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "ISBN missing")
	}

	book, err := h.service.FindByISBN(c.Request().Context(), isbn)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

// Create handles POST /book.
//
// @Summary      Add a book to the catalog
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      createBookRequest  true  "Book details"
// @Success      201   {object}  domain.Book
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /book [post]
func (h *BookHandler) Create(c echo.Context) error {
	var req createBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	book, err := h.service.Create(c.Request().Context(), toCreateBookInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, book)
}

// Update handles PUT /book. A provided authors list replaces the book's
// author list wholesale after reconciliation.
//
// @Summary      Update a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      updateBookRequest  true  "Book patch"
// @Success      200   {object}  domain.Book
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /book [put]
func (h *BookHandler) Update(c echo.Context) error {
	var req updateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	book, err := h.service.Update(c.Request().Context(), toUpdateBookInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

// Delete handles DELETE /book.
//
// @Summary      Remove a book from the catalog
// @Tags         books
// @Accept       json
// @Security     TokenAuth
// @Param        body  body      deleteBookRequest  true  "Book id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /book [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	var req deleteBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), req.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Checkout handles POST /book/checkout. The borrower is the authenticated
// caller.
//
// @Summary      Check out a book
// @Tags         lending
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      lendingRequest  true  "Book id"
// @Success      200   {object}  domain.Book
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /book/checkout [post]
func (h *BookHandler) Checkout(c echo.Context) error {
	var req lendingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	book, err := h.service.Checkout(c.Request().Context(), userID, req.BookID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

// Return handles POST /book/return. Allowed for the current borrower or an
// admin.
//
// @Summary      Return a book
// @Tags         lending
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      lendingRequest  true  "Book id"
// @Success      200   {object}  domain.Book
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /book/return [post]
func (h *BookHandler) Return(c echo.Context) error {
	var req lendingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	book, err := h.service.Return(c.Request().Context(), userID, req.BookID, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}
