package stripe

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePaymentIntent(t *testing.T) {
	var gotPath, gotAuth, gotAmount, gotCurrency, gotBookingID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, r.ParseForm())
		gotAmount = r.PostForm.Get("amount")
		gotCurrency = r.PostForm.Get("currency")
		gotBookingID = r.PostForm.Get("metadata[bookingId]")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_123","client_secret":"pi_123_secret","amount":2000,"currency":"usd","status":"requires_payment_method"}`))
	}))
	defer srv.Close()

	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_API_URL", srv.URL)
	require.NoError(t, ConfigureFromEnv())

	intent, err := CreatePaymentIntent(2000, "usd", map[string]string{"bookingId": "b1"})
	require.NoError(t, err)

	assert.Equal(t, "/payment_intents", gotPath)
	assert.Equal(t, "Bearer sk_test_123", gotAuth)
	assert.Equal(t, "2000", gotAmount)
	assert.Equal(t, "usd", gotCurrency)
	assert.Equal(t, "b1", gotBookingID)
	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_secret", intent.ClientSecret)
	assert.Equal(t, int64(2000), intent.Amount)
}

func TestRetrievePaymentIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment_intents/pi_456", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_456","amount":5000,"currency":"usd","status":"succeeded"}`))
	}))
	defer srv.Close()

	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_API_URL", srv.URL)
	require.NoError(t, ConfigureFromEnv())

	intent, err := RetrievePaymentIntent("pi_456")
	require.NoError(t, err)
	assert.Equal(t, "succeeded", intent.Status)
	assert.Equal(t, int64(5000), intent.Amount)
}

func TestGatewayErrorSurfacesReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"type":"card_error","code":"card_declined","message":"Your card was declined."}}`))
	}))
	defer srv.Close()

	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_API_URL", srv.URL)
	require.NoError(t, ConfigureFromEnv())

	_, err := CreatePaymentIntent(100, "usd", nil)
	require.Error(t, err)

	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "card_declined", gwErr.Code)
	assert.Equal(t, "card_error", gwErr.Type)
	assert.Equal(t, http.StatusPaymentRequired, gwErr.StatusCode)
	assert.Contains(t, gwErr.Error(), "card_declined")
}

func TestGatewayErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_API_URL", srv.URL)
	require.NoError(t, ConfigureFromEnv())

	_, err := RetrievePaymentIntent("pi_789")
	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusInternalServerError, gwErr.StatusCode)
}

func TestConfigureFromEnvRequiresKey(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "")
	t.Setenv("STRIPE_API_URL", "")
	assert.Error(t, ConfigureFromEnv())
}
