package auth

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/homefix-app/homefix/internal/alerts"
	"github.com/homefix-app/homefix/internal/db"
)

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}

// UserResponse is the public shape of an account, shared by the auth handlers.
type UserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
}

// POST /auth/register
func Register(c echo.Context) error {
	req := new(RegisterRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}

	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "email, password, firstName and lastName are required"})
	}
	if len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "password must be at least 6 characters"})
	}

	// Admin accounts are only created through the adminutil tools
	role := req.Role
	if role == "" {
		role = "homeowner"
	}
	if role != "homeowner" && role != "service_provider" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "role must be homeowner or service_provider"})
	}

	ctx := context.Background()

	// Check for an existing account by email or phone
	var existingEmail string
	err := db.Conn.QueryRow(ctx,
		`SELECT email FROM users WHERE email = $1 OR (phone = $2 AND phone <> '') LIMIT 1`,
		req.Email, req.PhoneNumber,
	).Scan(&existingEmail)
	if err == nil {
		field := "phone number"
		if existingEmail == req.Email {
			field = "email"
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "User with this " + field + " already exists"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error during registration"})
	}

	userID := uuid.New().String()
	_, err = db.Conn.Exec(ctx, `
        INSERT INTO users (id, email, password, first_name, last_name, role, phone, address)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `, userID, req.Email, string(hashed), req.FirstName, req.LastName, role, req.PhoneNumber, req.Address)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "User with this email already exists"})
	}

	token, err := issueToken(userID, role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "token generation failed"})
	}

	// Welcome email is best-effort
	_ = alerts.EnqueueWelcomeEmail(userID, req.Email, req.FirstName)

	return c.JSON(http.StatusCreated, echo.Map{
		"user": UserResponse{
			ID:          userID,
			Email:       req.Email,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Role:        role,
			PhoneNumber: req.PhoneNumber,
			Address:     req.Address,
		},
		"token": token,
	})
}
