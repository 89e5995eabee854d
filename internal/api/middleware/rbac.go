package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openkitchen/recipe-catalog/internal/core/domain"
)

// RBAC enforces role-based access control. It expects Auth to have run
// first; the service layer re-checks ownership and finer-grained rules.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(CtxUser).(*domain.User)
			if user == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			}
			if _, ok := allowed[user.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "access forbidden"})
			}
			return next(c)
		}
	}
}
