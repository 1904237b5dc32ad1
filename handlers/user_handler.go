package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/kibet721/chat_sphere/database"
	"github.com/kibet721/chat_sphere/middleware"
	"github.com/kibet721/chat_sphere/models"
)

const searchResultLimit = 20

// SearchUsers finds users by name or email substring, excluding the caller.
func SearchUsers(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	query := database.DB.Where("id <> ?", caller.ID)
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	var users []models.User
	if err := query.Limit(searchResultLimit).Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to search users"})
	}

	return c.JSON(users)
}
