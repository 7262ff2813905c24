package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRoles ensures the requester's role is one of the allowed roles.
// Usage: route(..., RequireRoles("service_provider"))
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if !ok || p.Role == "" {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "role missing"})
			}

			for _, r := range roles {
				if p.Role == r {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, echo.Map{"message": "access denied"})
		}
	}
}
