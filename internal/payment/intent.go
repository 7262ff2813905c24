package payment

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/homefix-app/homefix/internal/db"
	appmw "github.com/homefix-app/homefix/internal/middleware"
	"github.com/homefix-app/homefix/internal/stripe"
)

func currency() string {
	if c := os.Getenv("CURRENCY"); c != "" {
		return c
	}
	return "usd"
}

// gatewayError maps a gateway failure to a response that keeps the
// gateway's reason code instead of a generic message
func gatewayError(c echo.Context, err error) error {
	var gwErr *stripe.Error
	if errors.As(err, &gwErr) {
		return c.JSON(http.StatusBadGateway, echo.Map{
			"message": gwErr.Message,
			"code":    gwErr.Code,
			"type":    gwErr.Type,
		})
	}
	return c.JSON(http.StatusBadGateway, echo.Map{"message": "payment gateway unavailable"})
}

type BookingIntentRequest struct {
	BookingID string `json:"bookingId"`
}

// BookingPaymentIntent creates a gateway charge intent for a booking's
// price. Only the booking's customer may pay. The booking is not marked
// paid here; confirmation does that.
// POST /bookings/payment-intent
func BookingPaymentIntent(c echo.Context) error {
	p, ok := appmw.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var req BookingIntentRequest
	if err := c.Bind(&req); err != nil || req.BookingID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid bookingId"})
	}

	var customerID string
	var price float64
	err := db.Conn.QueryRow(context.Background(),
		`SELECT customer_id, price FROM bookings WHERE id = $1`,
		req.BookingID,
	).Scan(&customerID, &price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to fetch booking"})
	}

	if customerID != p.ID {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Not authorized"})
	}

	intent, err := stripe.CreatePaymentIntent(Cents(price), currency(), map[string]string{
		"bookingId": req.BookingID,
	})
	if err != nil {
		return gatewayError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"clientSecret": intent.ClientSecret})
}

type CreateIntentRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// CreatePaymentIntent creates a raw gateway intent for an amount already
// expressed in minor units
// POST /payments/create-payment-intent
func CreatePaymentIntent(c echo.Context) error {
	if _, ok := appmw.PrincipalFrom(c); !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var req CreateIntentRequest
	if err := c.Bind(&req); err != nil || req.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid amount"})
	}
	if req.Currency == "" {
		req.Currency = currency()
	}

	intent, err := stripe.CreatePaymentIntent(req.Amount, req.Currency, nil)
	if err != nil {
		return gatewayError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"clientSecret": intent.ClientSecret})
}

type ConfirmRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
	BookingID       string `json:"bookingId"`
}

// ConfirmPayment records a succeeded gateway intent. The payment insert
// and the booking's payment status update commit together, and the unique
// intent id makes repeat confirmations idempotent.
// POST /payments/confirm
func ConfirmPayment(c echo.Context) error {
	p, ok := appmw.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var req ConfirmRequest
	if err := c.Bind(&req); err != nil || req.PaymentIntentID == "" || req.BookingID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "paymentIntentId and bookingId are required"})
	}

	intent, err := stripe.RetrievePaymentIntent(req.PaymentIntentID)
	if err != nil {
		return gatewayError(c, err)
	}
	if intent.Status != "succeeded" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Payment not successful"})
	}

	ctx := context.Background()

	var bookingExists bool
	_ = db.Conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`, req.BookingID).Scan(&bookingExists)
	if !bookingExists {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Booking not found"})
	}

	tx, err := db.Conn.Begin(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "transaction start failed"})
	}
	defer tx.Rollback(ctx)

	pay := Payment{
		ID:              uuid.New().String(),
		UserID:          p.ID,
		BookingID:       req.BookingID,
		Amount:          intent.Amount,
		Currency:        intent.Currency,
		Status:          "completed",
		PaymentIntentID: intent.ID,
	}
	ct, err := tx.Exec(ctx, `
        INSERT INTO payments (id, user_id, booking_id, amount, currency, status, payment_intent_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (payment_intent_id) DO NOTHING
    `, pay.ID, pay.UserID, pay.BookingID, pay.Amount, pay.Currency, pay.Status, pay.PaymentIntentID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to record payment"})
	}
	if ct.RowsAffected() == 0 {
		return c.JSON(http.StatusConflict, echo.Map{"message": "payment already confirmed"})
	}

	_, err = tx.Exec(ctx,
		`UPDATE bookings SET payment_status = 'paid', updated_at = NOW() WHERE id = $1`,
		req.BookingID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to update booking payment status"})
	}

	if err := tx.Commit(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "commit failed"})
	}

	return c.JSON(http.StatusOK, pay)
}
