package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anwar-ulhaq/Library-Backend/internal/api/middleware"
	"github.com/anwar-ulhaq/Library-Backend/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: a missing subject id or
// role means the middleware did not run on this route.
func ctxClaims(c echo.Context) (userID string, role domain.Role, err error) {
	userID, _ = c.Get(middleware.CtxUserID).(string)
	role, ok := c.Get(middleware.CtxRole).(domain.Role)
	if userID == "" || !ok {
		return "", 0, echo.NewHTTPError(http.StatusForbidden, "missing authentication claims")
	}
	return userID, role, nil
}
