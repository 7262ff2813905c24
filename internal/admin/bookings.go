package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/homefix-app/homefix/internal/db"
	"github.com/homefix-app/homefix/internal/marketplace"
)

type AdminBooking struct {
	ID            string    `json:"id"`
	ServiceID     string    `json:"serviceId"`
	CustomerID    string    `json:"customerId"`
	ProviderID    string    `json:"providerId"`
	Date          time.Time `json:"date"`
	Status        string    `json:"status"`
	Price         float64   `json:"price"`
	PaymentStatus string    `json:"paymentStatus"`
	CreatedAt     time.Time `json:"createdAt"`
}

// GET /admin/bookings
func ListBookings(c echo.Context) error {
	query := `SELECT id, service_id, customer_id, provider_id, date, status, price, payment_status, created_at
              FROM bookings`
	var args []any
	if status := c.QueryParam("status"); status != "" {
		if !marketplace.ValidStatus(status) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid status filter"})
		}
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.Conn.Query(context.Background(), query, args...)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not fetch bookings"})
	}
	defer rows.Close()

	bookings := []AdminBooking{}
	for rows.Next() {
		var b AdminBooking
		if err := rows.Scan(&b.ID, &b.ServiceID, &b.CustomerID, &b.ProviderID, &b.Date,
			&b.Status, &b.Price, &b.PaymentStatus, &b.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to read booking record"})
		}
		bookings = append(bookings, b)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}
