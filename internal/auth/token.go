package auth

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// issueToken signs a bearer token carrying the user id and role.
// Tokens expire after 7 days.
func issueToken(userID, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(7 * 24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
