package marketplace

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/homefix-app/homefix/internal/db"
	appmw "github.com/homefix-app/homefix/internal/middleware"
)

type CreateServiceRequest struct {
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Category     string       `json:"category"`
	BasePrice    float64      `json:"basePrice"`
	IsEmergency  bool         `json:"isEmergency"`
	Availability Availability `json:"availability"`
	Images       []string     `json:"images"`
}

// CreateService allows a provider to publish a new listing
func CreateService(c echo.Context) error {
	p, ok := appmw.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var req CreateServiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}

	if req.Name == "" || req.Description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name and description are required"})
	}
	if !ValidCategory(req.Category) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "unknown category"})
	}
	if req.BasePrice < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "basePrice must not be negative"})
	}
	if !ValidWeekdays(req.Availability.Days) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "availability.days contains an unknown weekday"})
	}

	if req.Availability.Hours.Start == "" {
		req.Availability.Hours.Start = "09:00"
	}
	if req.Availability.Hours.End == "" {
		req.Availability.Hours.End = "17:00"
	}
	if req.Availability.Days == nil {
		req.Availability.Days = []string{}
	}
	if req.Images == nil {
		req.Images = []string{}
	}

	serviceID := uuid.New().String()
	_, err := db.Conn.Exec(context.Background(), `
        INSERT INTO services (id, provider_id, name, description, category, base_price,
                              emergency, availability_days, available_from, available_to, images, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    `, serviceID, p.ID, req.Name, req.Description, req.Category, req.BasePrice,
		req.IsEmergency, req.Availability.Days, req.Availability.Hours.Start,
		req.Availability.Hours.End, req.Images, time.Now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not create service"})
	}

	return c.JSON(http.StatusCreated, Service{
		ID:           serviceID,
		ProviderID:   p.ID,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		BasePrice:    req.BasePrice,
		IsEmergency:  req.IsEmergency,
		Availability: req.Availability,
		Images:       req.Images,
	})
}

const serviceColumns = `s.id, s.provider_id, u.first_name || ' ' || u.last_name,
       s.name, s.description, s.category, s.base_price, s.emergency,
       s.availability_days, s.available_from, s.available_to, s.rating, s.images, s.created_at`

func scanService(row pgx.Row) (Service, error) {
	var s Service
	err := row.Scan(&s.ID, &s.ProviderID, &s.ProviderName, &s.Name, &s.Description,
		&s.Category, &s.BasePrice, &s.IsEmergency, &s.Availability.Days,
		&s.Availability.Hours.Start, &s.Availability.Hours.End, &s.Rating, &s.Images, &s.CreatedAt)
	return s, err
}

// GetServices returns the public listing catalogue, filterable by category,
// emergency flag and price range
func GetServices(c echo.Context) error {
	query := `SELECT ` + serviceColumns + `
              FROM services s JOIN users u ON u.id = s.provider_id`
	var where []string
	var args []any

	if cat := c.QueryParam("category"); cat != "" {
		args = append(args, cat)
		where = append(where, fmt.Sprintf("s.category = $%d", len(args)))
	}
	if em := c.QueryParam("emergency"); em != "" {
		args = append(args, em == "true")
		where = append(where, fmt.Sprintf("s.emergency = $%d", len(args)))
	}
	if minPrice := c.QueryParam("minPrice"); minPrice != "" {
		if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
			args = append(args, v)
			where = append(where, fmt.Sprintf("s.base_price >= $%d", len(args)))
		}
	}
	if maxPrice := c.QueryParam("maxPrice"); maxPrice != "" {
		if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			args = append(args, v)
			where = append(where, fmt.Sprintf("s.base_price <= $%d", len(args)))
		}
	}

	for i, w := range where {
		if i == 0 {
			query += " WHERE " + w
		} else {
			query += " AND " + w
		}
	}

	limit := 20
	offset := 0
	if l := c.QueryParam("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}
	if o := c.QueryParam("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			offset = v
		}
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY s.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := db.Conn.Query(context.Background(), query, args...)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not fetch services"})
	}
	defer rows.Close()

	services := []Service{}
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to parse service record"})
		}
		services = append(services, s)
	}

	return c.JSON(http.StatusOK, services)
}

// GetServiceByID returns one listing with its reviews
func GetServiceByID(c echo.Context) error {
	serviceID := c.Param("id")
	if _, err := uuid.Parse(serviceID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid service id"})
	}

	ctx := context.Background()
	s, err := scanService(db.Conn.QueryRow(ctx, `
        SELECT `+serviceColumns+`
        FROM services s JOIN users u ON u.id = s.provider_id
        WHERE s.id = $1`, serviceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Service not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not fetch service"})
	}

	// Reviews live on rated bookings for this listing
	rows, err := db.Conn.Query(ctx, `
        SELECT b.id, u.first_name || ' ' || u.last_name, b.rating, COALESCE(b.review, ''), b.created_at
        FROM bookings b JOIN users u ON u.id = b.customer_id
        WHERE b.service_id = $1 AND b.rating IS NOT NULL
        ORDER BY b.created_at DESC`, serviceID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not fetch reviews"})
	}
	defer rows.Close()

	reviews := []BookingReview{}
	for rows.Next() {
		var r BookingReview
		if err := rows.Scan(&r.BookingID, &r.CustomerName, &r.Rating, &r.Review, &r.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to parse review record"})
		}
		reviews = append(reviews, r)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"service": s,
		"reviews": reviews,
	})
}

// ServicesByProvider returns all listings owned by a provider, newest first.
func ServicesByProvider(ctx context.Context, providerID string) ([]Service, error) {
	rows, err := db.Conn.Query(ctx, `
        SELECT `+serviceColumns+`
        FROM services s JOIN users u ON u.id = s.provider_id
        WHERE s.provider_id = $1 ORDER BY s.created_at DESC`, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := []Service{}
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

// GetProviderServices returns the authenticated provider's own listings
func GetProviderServices(c echo.Context) error {
	p, ok := appmw.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	services, err := ServicesByProvider(context.Background(), p.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not fetch services"})
	}
	return c.JSON(http.StatusOK, services)
}

type UpdateServiceRequest struct {
	Name         *string       `json:"name"`
	Description  *string       `json:"description"`
	Category     *string       `json:"category"`
	BasePrice    *float64      `json:"basePrice"`
	IsEmergency  *bool         `json:"isEmergency"`
	Availability *Availability `json:"availability"`
	Images       *[]string     `json:"images"`
}

// UpdateService performs a shallow merge of the request onto the listing.
// Only the owning provider may update.
func UpdateService(c echo.Context) error {
	p, ok := appmw.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	serviceID := c.Param("id")
	ctx := context.Background()

	var ownerID string
	err := db.Conn.QueryRow(ctx, `SELECT provider_id FROM services WHERE id = $1`, serviceID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Service not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not fetch service"})
	}
	if ownerID != p.ID {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Not authorized"})
	}

	var req UpdateServiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}

	var set []string
	var args []any
	add := func(col string, val any) {
		args = append(args, val)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if req.Name != nil {
		add("name", *req.Name)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.Category != nil {
		if !ValidCategory(*req.Category) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "unknown category"})
		}
		add("category", *req.Category)
	}
	if req.BasePrice != nil {
		if *req.BasePrice < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "basePrice must not be negative"})
		}
		add("base_price", *req.BasePrice)
	}
	if req.IsEmergency != nil {
		add("emergency", *req.IsEmergency)
	}
	if req.Availability != nil {
		if !ValidWeekdays(req.Availability.Days) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "availability.days contains an unknown weekday"})
		}
		days := req.Availability.Days
		if days == nil {
			days = []string{}
		}
		add("availability_days", days)
		if req.Availability.Hours.Start != "" {
			add("available_from", req.Availability.Hours.Start)
		}
		if req.Availability.Hours.End != "" {
			add("available_to", req.Availability.Hours.End)
		}
	}
	if req.Images != nil {
		add("images", *req.Images)
	}

	if len(set) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "no fields to update"})
	}

	add("updated_at", time.Now())
	args = append(args, serviceID)

	query := "UPDATE services SET " + set[0]
	for _, s := range set[1:] {
		query += ", " + s
	}
	query += fmt.Sprintf(" WHERE id = $%d", len(args))

	if _, err := db.Conn.Exec(ctx, query, args...); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not update service"})
	}

	s, err := scanService(db.Conn.QueryRow(ctx, `
        SELECT `+serviceColumns+`
        FROM services s JOIN users u ON u.id = s.provider_id
        WHERE s.id = $1`, serviceID))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not fetch service"})
	}

	return c.JSON(http.StatusOK, s)
}

// DeleteService removes a listing. Only the owning provider may delete.
func DeleteService(c echo.Context) error {
	p, ok := appmw.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	serviceID := c.Param("id")
	ctx := context.Background()

	var ownerID string
	err := db.Conn.QueryRow(ctx, `SELECT provider_id FROM services WHERE id = $1`, serviceID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Service not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not fetch service"})
	}
	if ownerID != p.ID {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Not authorized"})
	}

	if _, err := db.Conn.Exec(ctx, `DELETE FROM services WHERE id = $1`, serviceID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not delete service"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Service deleted"})
}
