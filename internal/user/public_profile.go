package user

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/homefix-app/homefix/internal/db"
	"github.com/homefix-app/homefix/internal/marketplace"
)

// GET /users/:id/profile — public view of a provider (or any user)
func GetPublicProfile(c echo.Context) error {
	userID := c.Param("id")
	if _, err := uuid.Parse(userID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid user id"})
	}

	ctx := c.Request().Context()

	var (
		id        string
		name      string
		role      string
		createdAt time.Time
	)
	err := db.Conn.QueryRow(ctx,
		`SELECT id, first_name || ' ' || last_name, role, created_at
		   FROM users WHERE id = $1 AND is_active = true`,
		userID,
	).Scan(&id, &name, &role, &createdAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch user"})
	}

	profile := echo.Map{
		"id":       id,
		"name":     name,
		"role":     role,
		"joinedAt": createdAt.Format(time.RFC3339),
	}

	if role != "service_provider" {
		return c.JSON(http.StatusOK, profile)
	}

	services, err := marketplace.ServicesByProvider(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch services"})
	}

	var avgRating float64
	var completed int
	_ = db.Conn.QueryRow(ctx,
		`SELECT COALESCE(AVG(rating), 0), COUNT(*) FILTER (WHERE status = 'completed')
		   FROM bookings WHERE provider_id = $1`, id,
	).Scan(&avgRating, &completed)

	profile["services"] = services
	profile["averageRating"] = avgRating
	profile["completedBookings"] = completed

	return c.JSON(http.StatusOK, profile)
}
