package utils

import (
	"errors"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/config"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the session identity issued by the identity provider.
// This platform never issues tokens, it only validates them.
type Claims struct {
	UserID         string `json:"user_id"`
	Email          string `json:"email"`
	OrganizationID string `json:"organization_id"`
	IsAdmin        bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

var jwtSecret = []byte(getJWTSecret())

func getJWTSecret() string {
	cfg := config.GetConfig()
	if cfg.JWTSecret == "" {
		return "fallback-secret-key-for-development"
	}
	return cfg.JWTSecret
}

// Validate JWT token
func ValidateJWT(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
