package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anwar-ulhaq/Library-Backend/internal/api/middleware"
	"github.com/anwar-ulhaq/Library-Backend/internal/core/domain"
	"github.com/anwar-ulhaq/Library-Backend/internal/core/ports"
)

// CredentialsHeader carries the base64-encoded JSON {username, password}
// payload on POST /login.
const CredentialsHeader = "credentials"

// AuthHandler handles signup, login, Google OAuth, and logout.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type signupRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	Username  string `json:"username"  validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=8"`
}

type loginCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Signup registers a local account with role USER.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "User registration details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, user)
}

// Login authenticates a local account. The credentials travel in the
// "credentials" header as base64-encoded JSON, not in the body.
//
// @Summary      Login with username and password
// @Tags         auth
// @Produce      json
// @Param        credentials  header    string  true  "base64-encoded {username, password}"
// @Success      200          {object}  loginResponse
// @Failure      400          {object}  errorResponse
// @Failure      403          {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	encoded := c.Request().Header.Get(CredentialsHeader)
	if encoded == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "credentials header missing")
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "credentials header is not valid base64")
	}
	var creds loginCredentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "credentials header is not valid JSON")
	}

	token, user, err := h.authService.Login(c.Request().Context(), creds.Username, creds.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Token: token, User: user})
}

// GoogleAuth redirects the caller to the Google consent screen.
//
// @Summary      Start the Google OAuth flow
// @Tags         auth
// @Success      302
// @Router       /google [get]
func (h *AuthHandler) GoogleAuth(c echo.Context) error {
	return c.Redirect(http.StatusFound, h.authService.GoogleAuthURL(""))
}

// GoogleCallback completes the OAuth flow and returns a local token.
//
// @Summary      Google OAuth callback
// @Tags         auth
// @Produce      json
// @Param        code  query     string  true  "authorization code"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "code missing")
	}

	token, err := h.authService.GoogleLogin(c.Request().Context(), code)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// Logout revokes the presented token. Requires Auth middleware.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     TokenAuth
// @Success      204
// @Failure      403  {object}  errorResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := c.Get(middleware.CtxToken).(string)
	if token == "" {
		return echo.NewHTTPError(http.StatusForbidden, "Token not provided.")
	}
	if err := h.authService.Logout(c.Request().Context(), token); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
