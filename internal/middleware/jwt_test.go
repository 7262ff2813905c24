package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func runJWT(t *testing.T, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := JWTMiddleware(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, called
}

func TestJWTMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("MissingHeader", func(t *testing.T) {
		rec, called := runJWT(t, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})

	t.Run("BadScheme", func(t *testing.T) {
		rec, called := runJWT(t, "Basic abc")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		token := signToken(t, "other-secret", jwt.MapClaims{
			"user_id": "u1",
			"role":    "homeowner",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		rec, called := runJWT(t, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})

	t.Run("Expired", func(t *testing.T) {
		token := signToken(t, "test-secret", jwt.MapClaims{
			"user_id": "u1",
			"role":    "homeowner",
			"exp":     time.Now().Add(-time.Hour).Unix(),
		})
		rec, called := runJWT(t, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Token expired")
		assert.False(t, called)
	})

	t.Run("MissingUserID", func(t *testing.T) {
		token := signToken(t, "test-secret", jwt.MapClaims{
			"role": "homeowner",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
		rec, called := runJWT(t, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})

	t.Run("Valid", func(t *testing.T) {
		token := signToken(t, "test-secret", jwt.MapClaims{
			"user_id": "u1",
			"role":    "service_provider",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		rec, called := runJWT(t, "Bearer "+token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, called)
	})
}

func TestPrincipalFrom(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	token := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": "u42",
		"role":    "homeowner",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	req.Header.Set("Authorization", "Bearer "+token)
	c := e.NewContext(req, httptest.NewRecorder())

	var got Principal
	handler := JWTMiddleware(func(c echo.Context) error {
		p, ok := PrincipalFrom(c)
		require.True(t, ok)
		got = p
		return nil
	})
	require.NoError(t, handler(c))

	assert.Equal(t, "u42", got.ID)
	assert.Equal(t, "homeowner", got.Role)
}
