package marketplace

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/homefix-app/homefix/internal/db"
	appmw "github.com/homefix-app/homefix/internal/middleware"
)

type AddReviewRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

// AddReview lets the customer rate a completed booking and recomputes the
// listing's aggregate rating. The booking write and the rating recompute
// happen in one transaction so the aggregate never goes stale on a crash.
func AddReview(c echo.Context) error {
	p, ok := appmw.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	bookingID := c.Param("id")
	if _, err := uuid.Parse(bookingID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid booking id"})
	}

	var req AddReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}
	if len(req.Review) > 1000 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "review too long (max 1000 characters)"})
	}

	ctx := context.Background()
	b, err := fetchBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to fetch booking"})
	}

	if err := ValidateReview(p.ID, b, req.Rating); err != nil {
		switch {
		case errors.Is(err, ErrNotCustomer):
			return c.JSON(http.StatusForbidden, echo.Map{"message": "Not authorized"})
		case errors.Is(err, ErrAlreadyReviewed):
			return c.JSON(http.StatusConflict, echo.Map{"message": "review already exists for this booking"})
		case errors.Is(err, ErrBadRating):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "rating must be between 1 and 5"})
		default:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Can only review completed bookings"})
		}
	}

	tx, err := db.Conn.Begin(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "transaction start failed"})
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE bookings SET rating = $1, review = $2, updated_at = NOW() WHERE id = $3`,
		req.Rating, req.Review, bookingID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to save review"})
	}

	// Full re-scan of every rated booking for this listing, including the
	// one just written
	rows, err := tx.Query(ctx,
		`SELECT rating FROM bookings WHERE service_id = $1 AND rating IS NOT NULL`,
		b.ServiceID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to fetch ratings"})
	}
	var ratings []int
	for rows.Next() {
		var r int
		if err := rows.Scan(&r); err != nil {
			rows.Close()
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to parse rating"})
		}
		ratings = append(ratings, r)
	}
	rows.Close()

	_, err = tx.Exec(ctx,
		`UPDATE services SET rating = $1, updated_at = NOW() WHERE id = $2`,
		AggregateRating(ratings), b.ServiceID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to update service rating"})
	}

	if err := tx.Commit(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "commit failed"})
	}

	rating := req.Rating
	review := req.Review
	b.Rating = &rating
	b.Review = &review
	return c.JSON(http.StatusOK, b)
}
