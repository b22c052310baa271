package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anwar-ulhaq/Library-Backend/internal/core/ports"
)

// AuthorHandler handles the standalone author API (admin-only routes).
type AuthorHandler struct {
	service ports.AuthorService
}

func NewAuthorHandler(service ports.AuthorService) *AuthorHandler {
	return &AuthorHandler{service: service}
}

type createAuthorRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
}

type updateAuthorRequest struct {
	ID        string `json:"id" validate:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type deleteAuthorRequest struct {
	ID string `json:"id" validate:"required"`
}

// Create handles POST /author.
//
// @Summary      Create an author
// @Tags         authors
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      createAuthorRequest  true  "Author details"
// @Success      201   {object}  domain.Author
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /author [post]
func (h *AuthorHandler) Create(c echo.Context) error {
	var req createAuthorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	author, err := h.service.Create(c.Request().Context(), req.FirstName, req.LastName)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, author)
}

// Update handles PUT /author. The id travels in the body, matching the
// historical API shape.
//
// @Summary      Update an author
// @Tags         authors
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      updateAuthorRequest  true  "Author patch"
// @Success      200   {object}  domain.Author
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /author [put]
func (h *AuthorHandler) Update(c echo.Context) error {
	var req updateAuthorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	author, err := h.service.Update(c.Request().Context(), ports.AuthorInput{
		ID:        req.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, author)
}

// Delete handles DELETE /author. Deletion is refused with 409 while books
// still reference the author.
//
// @Summary      Delete an author
// @Tags         authors
// @Accept       json
// @Security     TokenAuth
// @Param        body  body      deleteAuthorRequest  true  "Author id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /author [delete]
func (h *AuthorHandler) Delete(c echo.Context) error {
	var req deleteAuthorRequest
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
