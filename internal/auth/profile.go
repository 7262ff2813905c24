package auth

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homefix-app/homefix/internal/db"
	appmw "github.com/homefix-app/homefix/internal/middleware"
)

// GetProfile returns the currently authenticated user's profile.
// GET /auth/profile
func GetProfile(c echo.Context) error {
	p, ok := appmw.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
	}

	var u UserResponse
	err := db.Conn.QueryRow(context.Background(), `
        SELECT id, email, first_name, last_name, role, COALESCE(phone, ''), COALESCE(address, '')
        FROM users WHERE id = $1
    `, p.ID).Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.PhoneNumber, &u.Address)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
	}

	return c.JSON(http.StatusOK, u)
}

type UpdateProfileRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}

// UpdateProfile applies a whitelist merge onto the caller's account.
// PUT /auth/profile
func UpdateProfile(c echo.Context) error {
	p, ok := appmw.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}

	if req.FirstName == "" && req.LastName == "" && req.Email == "" && req.PhoneNumber == "" && req.Address == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "No valid fields to update"})
	}

	ctx := context.Background()

	// Re-check uniqueness when contact fields change
	if req.Email != "" {
		var taken bool
		_ = db.Conn.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)`,
			req.Email, p.ID,
		).Scan(&taken)
		if taken {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email is already in use"})
		}
	}
	if req.PhoneNumber != "" {
		var taken bool
		_ = db.Conn.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM users WHERE phone = $1 AND id <> $2)`,
			req.PhoneNumber, p.ID,
		).Scan(&taken)
		if taken {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Phone number is already in use"})
		}
	}

	var u UserResponse
	err := db.Conn.QueryRow(ctx, `
        UPDATE users
        SET first_name = COALESCE(NULLIF($1, ''), first_name),
            last_name  = COALESCE(NULLIF($2, ''), last_name),
            email      = COALESCE(NULLIF($3, ''), email),
            phone      = COALESCE(NULLIF($4, ''), phone),
            address    = COALESCE(NULLIF($5, ''), address),
            updated_at = NOW()
        WHERE id = $6
        RETURNING id, email, first_name, last_name, role, COALESCE(phone, ''), COALESCE(address, '')
    `, req.FirstName, req.LastName, req.Email, req.PhoneNumber, req.Address, p.ID).
		Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.PhoneNumber, &u.Address)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error while updating profile"})
	}

	return c.JSON(http.StatusOK, u)
}
