package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anwar-ulhaq/Library-Backend/internal/core/domain"
)

// RBAC enforces role-based access control. Must run after Auth.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxRole).(domain.Role)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "missing authentication claims")
			}
			if _, permitted := allowed[role]; !permitted {
				return echo.NewHTTPError(http.StatusForbidden, domain.ErrForbidden.Error())
			}
			return next(c)
		}
	}
}

// AdminOnly gates a route to admins.
func AdminOnly() echo.MiddlewareFunc {
	return RBAC(domain.RoleAdmin)
}

// UserOrAdmin gates a route to regular users and admins.
func UserOrAdmin() echo.MiddlewareFunc {
	return RBAC(domain.RoleAdmin, domain.RoleUser)
}
