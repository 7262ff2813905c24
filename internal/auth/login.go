package auth

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/homefix-app/homefix/internal/db"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// POST /auth/login
func Login(c echo.Context) error {
	req := new(LoginRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}

	ctx := context.Background()

	var (
		u        UserResponse
		password string
		isActive bool
	)
	err := db.Conn.QueryRow(ctx, `
        SELECT id, email, password, first_name, last_name, role,
               COALESCE(phone, ''), COALESCE(address, ''), COALESCE(is_active, TRUE)
        FROM users WHERE email = $1
    `, req.Email).Scan(&u.ID, &u.Email, &password, &u.FirstName, &u.LastName, &u.Role, &u.PhoneNumber, &u.Address, &isActive)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid credentials"})
	}

	if !isActive {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "account suspended"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid credentials"})
	}

	token, err := issueToken(u.ID, u.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "token generation failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":  u,
		"token": token,
	})
}
