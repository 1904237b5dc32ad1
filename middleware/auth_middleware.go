package middleware

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	config "github.com/kibet721/chat_sphere/configs"
	"github.com/kibet721/chat_sphere/database"
	"github.com/kibet721/chat_sphere/models"
)

const currentUserKey = "currentUser"

func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(config.Config("JWT_SECRET")),
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	// Missing, malformed, expired and mis-signed tokens all fail the same
	// way: the caller is not authenticated.
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Not authorized, token failed", "data": nil})
}

// LoadCurrentUser resolves the verified token's subject to a user record and
// binds it for the rest of the request. A token whose subject no longer
// exists is rejected.
func LoadCurrentUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Locals("user").(*jwt.Token)
		claims := token.Claims.(jwt.MapClaims)

		rawID, ok := claims["user_id"].(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authorized, token failed"})
		}
		userID, err := uuid.Parse(rawID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authorized, token failed"})
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authorized, user not found"})
		}

		c.Locals(currentUserKey, &user)
		return c.Next()
	}
}

// CurrentUser returns the identity bound by LoadCurrentUser.
func CurrentUser(c *fiber.Ctx) *models.User {
	return c.Locals(currentUserKey).(*models.User)
}
