package jwt

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"recetario-backend/domain"
	"recetario-backend/internal/utils"
)

type (
	JWTService interface {
		GenerateTokenUser(userID string, email string, role string) string
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetUserByToken(token string) (string, string, string, error)
	}

	jwtUserClaim struct {
		UserID string `json:"user_id"`
		Email  string `json:"email"`
		Role   string `json:"role"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
	}
)

func getSecretKey() string {
	secretKey := utils.GetConfig("JWT_SECRET")
	return secretKey
}

func NewJWTService() JWTService {
	return &jwtService{
		secretKey: getSecretKey(),
		issuer:    "RECETARIO",
	}
}

func (j *jwtService) GenerateTokenUser(userID string, email string, role string) string {
	claims := jwtUserClaim{
		userID,
		email,
		role,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute * 120)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tx, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		log.Println(err)
	}
	return tx
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

// GetUserByToken returns the user id, email, and role claims carried by a
// valid token. The role claim is informational only; authorization checks
// go back to the database.
func (j *jwtService) GetUserByToken(token string) (string, string, string, error) {
	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", "", domain.ErrTokenExpired
		}
		return "", "", "", domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return "", "", "", domain.ErrTokenInvalid
	}

	claims := t_Token.Claims.(*jwtUserClaim)
	return claims.UserID, claims.Email, claims.Role, nil
}
