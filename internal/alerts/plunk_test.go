package alerts

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendViaPlunk(t *testing.T) {
	var gotAuth string
	var gotBody plunkSendBody

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	t.Setenv("PLUNK_API_KEY", "pk_test")
	t.Setenv("PLUNK_API_URL", srv.URL)
	t.Setenv("PLUNK_FROM", "no-reply@homefix.app")
	require.NoError(t, ConfigurePlunkFromEnv())

	err := sendViaPlunk("jane@example.com", "Welcome", "Hi Jane")
	require.NoError(t, err)

	assert.Equal(t, "Bearer pk_test", gotAuth)
	assert.Equal(t, "jane@example.com", gotBody.To)
	assert.Equal(t, "Welcome", gotBody.Subject)
	assert.Equal(t, "Hi Jane", gotBody.Body)
	assert.Equal(t, "no-reply@homefix.app", gotBody.From)
}

func TestSendViaPlunkFailureSurfacesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "invalid api key"}`))
	}))
	defer srv.Close()

	t.Setenv("PLUNK_API_KEY", "pk_bad")
	t.Setenv("PLUNK_API_URL", srv.URL)
	require.NoError(t, ConfigurePlunkFromEnv())

	err := sendViaPlunk("jane@example.com", "Welcome", "Hi Jane")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=401")
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestConfigurePlunkRequiresKey(t *testing.T) {
	t.Setenv("PLUNK_API_KEY", "")
	t.Setenv("PLUNK_API_URL", "")
	err := ConfigurePlunkFromEnv()
	require.Error(t, err)
}
