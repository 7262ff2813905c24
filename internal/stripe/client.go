package stripe

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
)

type config struct {
	SecretKey string
	APIURL    string
}

var cfg config

// ConfigureFromEnv loads the gateway config from environment
// Required: STRIPE_SECRET_KEY; Optional: STRIPE_API_URL
func ConfigureFromEnv() error {
	cfg = config{
		SecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		APIURL:    os.Getenv("STRIPE_API_URL"),
	}
	if cfg.APIURL == "" {
		cfg.APIURL = "https://api.stripe.com/v1"
	}
	if cfg.SecretKey == "" {
		return fmt.Errorf("stripe not configured: set STRIPE_SECRET_KEY")
	}
	return nil
}

// PaymentIntent is the subset of the gateway's intent object we consume.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// Error carries the gateway's specific failure reason so handlers can
// surface it instead of a generic message.
type Error struct {
	StatusCode int
	Type       string `json:"type"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("stripe: %s (%s)", e.Message, e.Code)
	}
	return fmt.Sprintf("stripe: %s", e.Message)
}

type errorResponse struct {
	Error Error `json:"error"`
}

func do(method, path string, form url.Values) (*PaymentIntent, error) {
	if cfg.SecretKey == "" {
		if err := ConfigureFromEnv(); err != nil {
			return nil, err
		}
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, cfg.APIURL+path, body)
	if err != nil {
		return nil, err
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Authorization", "Bearer "+cfg.SecretKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var er errorResponse
		if err := json.Unmarshal(raw, &er); err == nil && er.Error.Message != "" {
			er.Error.StatusCode = resp.StatusCode
			return nil, &er.Error
		}
		return nil, &Error{StatusCode: resp.StatusCode, Message: fmt.Sprintf("gateway request failed: status=%d", resp.StatusCode)}
	}

	var intent PaymentIntent
	if err := json.Unmarshal(raw, &intent); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}
	return &intent, nil
}

// CreatePaymentIntent creates a charge intent for an amount in minor units.
func CreatePaymentIntent(amount int64, currency string, metadata map[string]string) (*PaymentIntent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	form.Set("automatic_payment_methods[enabled]", "true")
	for k, v := range metadata {
		form.Set("metadata["+k+"]", v)
	}
	return do(http.MethodPost, "/payment_intents", form)
}

// RetrievePaymentIntent fetches an intent by id.
func RetrievePaymentIntent(id string) (*PaymentIntent, error) {
	return do(http.MethodGet, "/payment_intents/"+url.PathEscape(id), nil)
}
