package admin

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homefix-app/homefix/internal/db"
)

// GET /admin/stats
func Stats(c echo.Context) error {
	ctx := context.Background()

	var users, providers, services, bookings, completed, payments int

	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&users)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = 'service_provider'`).Scan(&providers)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM services`).Scan(&services)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&bookings)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE status = 'completed'`).Scan(&completed)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM payments`).Scan(&payments)

	return c.JSON(http.StatusOK, echo.Map{
		"users":             users,
		"providers":         providers,
		"services":          services,
		"bookings":          bookings,
		"completedBookings": completed,
		"payments":          payments,
	})
}
