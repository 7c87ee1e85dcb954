package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken crée un access-token JWT HS256 portant l'identifiant utilisateur.
func GenerateToken(secret string, userID int, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(duration).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
