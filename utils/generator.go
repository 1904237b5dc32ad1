package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	config "github.com/kibet721/chat_sphere/configs"
	"github.com/kibet721/chat_sphere/models"
)

const tokenLifetime = 30 * 24 * time.Hour

// GenerateToken signs a bearer token carrying the user's id as subject.
func GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"iat":     now.Unix(),
		"exp":     now.Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Config("JWT_SECRET")))
}
