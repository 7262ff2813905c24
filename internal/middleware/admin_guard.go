package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminGuard ensures only admin users can access admin routes
func AdminGuard(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, ok := PrincipalFrom(c)
		if !ok || p.Role != "admin" {
			return c.JSON(http.StatusForbidden, echo.Map{
				"message": "admin access only",
			})
		}
		return next(c)
	}
}
