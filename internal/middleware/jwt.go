package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Principal is the authenticated identity resolved from the bearer token.
// Handlers receive it through PrincipalFrom instead of loose context fields.
type Principal struct {
	ID   string
	Role string
}

const principalKey = "principal"

// JWTMiddleware validates the Authorization bearer token and attaches the
// resolved Principal to the request context.
func JWTMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "No authentication token provided"})
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid Authorization format"})
		}
		tokenStr := authHeader[len(prefix):]

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Token expired"})
			}
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid token"})
		}

		userID, _ := claims["user_id"].(string)
		role, _ := claims["role"].(string)
		if userID == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid token claims"})
		}

		c.Set(principalKey, Principal{ID: userID, Role: role})
		return next(c)
	}
}

// PrincipalFrom returns the authenticated principal for the request.
func PrincipalFrom(c echo.Context) (Principal, bool) {
	p, ok := c.Get(principalKey).(Principal)
	return p, ok && p.ID != ""
}
