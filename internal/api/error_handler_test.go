package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/anwar-ulhaq/Library-Backend/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not the error envelope: %s", rec.Body.String())
	}
	return rec.Code, body
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"book not found", domain.ErrBookNotFound, http.StatusNotFound},
		{"author not found", domain.ErrAuthorNotFound, http.StatusNotFound},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"isbn exists", domain.ErrISBNExists, http.StatusConflict},
		{"user exists", domain.ErrUserExists, http.StatusConflict},
		{"author in use", domain.ErrAuthorInUse, http.StatusConflict},
		{"already borrowed", domain.ErrBookAlreadyBorrowed, http.StatusConflict},
		{"not borrowed", domain.ErrBookNotBorrowed, http.StatusConflict},
		{"return not allowed", domain.ErrReturnNotAllowed, http.StatusForbidden},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := renderError(t, tc.err)
			if code != tc.wantCode {
				t.Fatalf("status = %d, want %d", code, tc.wantCode)
			}
			if body.StatusCode != tc.wantCode {
				t.Fatalf("envelope statusCode = %d, want %d", body.StatusCode, tc.wantCode)
			}
			if body.Message != tc.err.Error() {
				t.Fatalf("message = %q, want %q", body.Message, tc.err.Error())
			}
		})
	}
}

func TestHTTPErrorHandler_ValidationError(t *testing.T) {
	code, body := renderError(t, domain.NewValidationError("title", "ISBN"))
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}
	if body.Message == "" {
		t.Fatalf("validation message missing")
	}
}

func TestHTTPErrorHandler_EchoErrorPassthrough(t *testing.T) {
	code, body := renderError(t, echo.NewHTTPError(http.StatusForbidden, "Token not provided."))
	if code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", code)
	}
	if body.Message != "Token not provided." {
		t.Fatalf("message = %q", body.Message)
	}
}

func TestHTTPErrorHandler_UnknownErrorIsOpaque500(t *testing.T) {
	code, body := renderError(t, errors.New("mongo: connection reset"))
	if code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", code)
	}
	if body.Message != "internal server error" {
		t.Fatalf("internal detail leaked: %q", body.Message)
	}
}
