package marketplace

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/homefix-app/homefix/internal/alerts"
	"github.com/homefix-app/homefix/internal/db"
	"github.com/homefix-app/homefix/internal/metrics"
	appmw "github.com/homefix-app/homefix/internal/middleware"
	"github.com/homefix-app/homefix/internal/notify"
)

const bookingColumns = `id, service_id, customer_id, provider_id, date, status, address,
       description, price, payment_status, emergency, rating, review, created_at`

func scanBooking(row pgx.Row) (Booking, error) {
	var b Booking
	err := row.Scan(&b.ID, &b.ServiceID, &b.CustomerID, &b.ProviderID, &b.Date,
		&b.Status, &b.Address, &b.Description, &b.Price, &b.PaymentStatus,
		&b.Emergency, &b.Rating, &b.Review, &b.CreatedAt)
	return b, err
}

func fetchBooking(ctx context.Context, id string) (Booking, error) {
	return scanBooking(db.Conn.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
}

type CreateBookingRequest struct {
	ServiceID   string    `json:"serviceId"`
	Date        time.Time `json:"date"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	Emergency   bool      `json:"emergency"`
}

// CreateBooking lets a customer book a listing. Price and provider are
// copied from the listing at creation time and never re-derived.
func CreateBooking(c echo.Context) error {
	p, ok := appmw.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var req CreateBookingRequest
	if err := c.Bind(&req); err != nil || req.ServiceID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid serviceId"})
	}
	if req.Date.IsZero() || req.Address == "" || req.Description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "date, address and description are required"})
	}
	if _, err := uuid.Parse(req.ServiceID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid serviceId"})
	}

	ctx := context.Background()

	var providerID, serviceName string
	var basePrice float64
	err := db.Conn.QueryRow(ctx,
		`SELECT provider_id, name, base_price FROM services WHERE id = $1`,
		req.ServiceID,
	).Scan(&providerID, &serviceName, &basePrice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Service not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to fetch service"})
	}

	bookingID := uuid.New().String()
	_, err = db.Conn.Exec(ctx, `
        INSERT INTO bookings (id, service_id, customer_id, provider_id, date, status, address,
                              description, price, payment_status, emergency, created_at)
        VALUES ($1, $2, $3, $4, $5, 'pending', $6, $7, $8, 'pending', $9, $10)
    `, bookingID, req.ServiceID, p.ID, providerID, req.Date, req.Address,
		req.Description, basePrice, req.Emergency, time.Now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to create booking"})
	}

	// Notify provider of the new request (best-effort)
	_ = notify.Create(ctx, providerID, "booking_requested",
		fmt.Sprintf("New booking request for %s", serviceName))
	var providerEmail string
	_ = db.Conn.QueryRow(ctx, `SELECT email FROM users WHERE id = $1`, providerID).Scan(&providerEmail)
	if providerEmail != "" {
		_ = alerts.EnqueueBookingRequested(bookingID, p.ID, providerID, providerEmail, serviceName)
	}

	b, err := fetchBooking(ctx, bookingID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to fetch booking"})
	}
	return c.JSON(http.StatusCreated, b)
}

// GetBookings returns the caller's bookings, as customer or provider,
// optionally filtered by status and date range
func GetBookings(c echo.Context) error {
	p, ok := appmw.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE (customer_id = $1 OR provider_id = $1)`
	args := []any{p.ID}

	if status := c.QueryParam("status"); status != "" {
		if !ValidStatus(status) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "unknown status"})
		}
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	startDate := c.QueryParam("startDate")
	endDate := c.QueryParam("endDate")
	if startDate != "" && endDate != "" {
		start, err1 := time.Parse(time.RFC3339, startDate)
		end, err2 := time.Parse(time.RFC3339, endDate)
		if err1 != nil || err2 != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "startDate and endDate must be RFC3339 timestamps"})
		}
		args = append(args, start, end)
		query += fmt.Sprintf(" AND date BETWEEN $%d AND $%d", len(args)-1, len(args))
	}
	query += " ORDER BY date DESC"

	rows, err := db.Conn.Query(context.Background(), query, args...)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to fetch bookings"})
	}
	defer rows.Close()

	bookings := []Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to parse booking record"})
		}
		bookings = append(bookings, b)
	}

	return c.JSON(http.StatusOK, bookings)
}

// GetBookingByID returns one booking to its customer or provider
func GetBookingByID(c echo.Context) error {
	p, ok := appmw.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	bookingID := c.Param("id")
	b, err := fetchBooking(context.Background(), bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to fetch booking"})
	}

	if p.ID != b.CustomerID && p.ID != b.ProviderID {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Not authorized"})
	}

	return c.JSON(http.StatusOK, b)
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateBookingStatus moves a booking along its lifecycle. Only the
// booking's customer or provider may transition it, and only along the
// allowed edges.
func UpdateBookingStatus(c echo.Context) error {
	p, ok := appmw.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	bookingID := c.Param("id")
	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}
	if !ValidStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "unknown status"})
	}

	ctx := context.Background()
	b, err := fetchBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to fetch booking"})
	}

	if err := ValidateTransition(p.ID, b, req.Status); err != nil {
		if errors.Is(err, ErrNotParticipant) {
			return c.JSON(http.StatusForbidden, echo.Map{"message": "Not authorized"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": fmt.Sprintf("invalid status transition from %s to %s", b.Status, req.Status),
		})
	}

	_, err = db.Conn.Exec(ctx,
		`UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2`,
		req.Status, bookingID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to update booking status"})
	}
	metrics.IncTransition(req.Status)

	// Tell the other participant (best-effort)
	counterparty := b.ProviderID
	if p.ID == b.ProviderID {
		counterparty = b.CustomerID
	}
	_ = notify.Create(ctx, counterparty, "booking_"+req.Status,
		fmt.Sprintf("Booking %s is now %s", bookingID, req.Status))
	var email string
	_ = db.Conn.QueryRow(ctx, `SELECT email FROM users WHERE id = $1`, counterparty).Scan(&email)
	if email != "" {
		_ = alerts.EnqueueBookingStatusChanged(bookingID, b.CustomerID, b.ProviderID, email, req.Status)
	}

	b.Status = req.Status
	return c.JSON(http.StatusOK, b)
}
