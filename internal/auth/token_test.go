package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenStr, err := issueToken("user-123", "homeowner")
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, "homeowner", claims["role"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	expiry := time.Unix(int64(exp), 0)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiry, time.Minute)
}

func TestIssueTokenWrongSecretRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenStr, err := issueToken("user-123", "homeowner")
	require.NoError(t, err)

	_, err = jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	require.Error(t, err)
}
