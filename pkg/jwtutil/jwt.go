package jwtutil

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"inventory-service/pkg/config"
)

var (
	secret     []byte
	expiration time.Duration
)

// Initialize sets the signing key and token lifetime from configuration.
// Must be called once at startup before tokens are issued or validated.
func Initialize(cfg *config.JWTConfig) {
	secret = []byte(cfg.SigningKey)
	expiration = cfg.ExpirationTime
}

// UserClaims represents the JWT claims for an authenticated caller. Email is
// the identity key every tenant-scoped operation resolves against.
type UserClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"` // display name, used at onboarding
	jwt.RegisteredClaims
}

// GenerateToken creates a JWT token for the given identity
func GenerateToken(email, name string) (string, error) {
	claims := UserClaims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken validates and parses the JWT token
func ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
