package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"

	"recetario-backend/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService()

	token := svc.GenerateTokenUser("user-123", "user@test.com", domain.RoleUser)
	require.NotEmpty(t, token)

	userID, email, role, err := svc.GetUserByToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", userID)
	require.Equal(t, "user@test.com", email)
	require.Equal(t, domain.RoleUser, role)
}

func TestTamperedTokenRejected(t *testing.T) {
	svc := NewJWTService()

	token := svc.GenerateTokenUser("user-123", "user@test.com", domain.RoleUser)

	_, _, _, err := svc.GetUserByToken(token + "x")
	require.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, _, _, err = svc.GetUserByToken("not.a.token")
	require.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewJWTService()

	claims := jwtUserClaim{
		UserID: "user-123",
		Email:  "user@test.com",
		Role:   domain.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			Issuer:    "RECETARIO",
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(getSecretKey()))
	require.NoError(t, err)

	_, _, _, err = svc.GetUserByToken(signed)
	require.ErrorIs(t, err, domain.ErrTokenExpired)
}
