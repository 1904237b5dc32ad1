package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kibet721/chat_sphere/database"
	"github.com/kibet721/chat_sphere/middleware"
)

type UpdateProfileRequest struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

func GetProfile(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}

func UpdateProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}

	if err := database.DB.Save(user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(user)
}
