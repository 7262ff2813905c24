package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithPrincipal(p *Principal) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/services", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if p != nil {
		c.Set(principalKey, *p)
	}
	return c, rec
}

func TestRequireRoles(t *testing.T) {
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("AllowsListedRole", func(t *testing.T) {
		c, rec := contextWithPrincipal(&Principal{ID: "u1", Role: "service_provider"})
		require.NoError(t, RequireRoles("service_provider")(ok)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("RejectsOtherRole", func(t *testing.T) {
		c, rec := contextWithPrincipal(&Principal{ID: "u1", Role: "homeowner"})
		require.NoError(t, RequireRoles("service_provider")(ok)(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("RejectsMissingPrincipal", func(t *testing.T) {
		c, rec := contextWithPrincipal(nil)
		require.NoError(t, RequireRoles("service_provider")(ok)(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestAdminGuard(t *testing.T) {
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("AllowsAdmin", func(t *testing.T) {
		c, rec := contextWithPrincipal(&Principal{ID: "a1", Role: "admin"})
		require.NoError(t, AdminGuard(ok)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("RejectsNonAdmin", func(t *testing.T) {
		c, rec := contextWithPrincipal(&Principal{ID: "u1", Role: "service_provider"})
		require.NoError(t, AdminGuard(ok)(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
