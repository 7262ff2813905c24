package payment

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homefix-app/homefix/internal/db"
	appmw "github.com/homefix-app/homefix/internal/middleware"
)

// GetPaymentHistory returns the caller's payments, newest first
// GET /payments/history
func GetPaymentHistory(c echo.Context) error {
	p, ok := appmw.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	rows, err := db.Conn.Query(context.Background(), `
        SELECT id, user_id, booking_id, amount, currency, status, payment_intent_id, created_at
        FROM payments WHERE user_id = $1 ORDER BY created_at DESC`, p.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error fetching payment history"})
	}
	defer rows.Close()

	payments := []Payment{}
	for rows.Next() {
		var pay Payment
		if err := rows.Scan(&pay.ID, &pay.UserID, &pay.BookingID, &pay.Amount,
			&pay.Currency, &pay.Status, &pay.PaymentIntentID, &pay.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to parse payment record"})
		}
		payments = append(payments, pay)
	}

	return c.JSON(http.StatusOK, payments)
}
