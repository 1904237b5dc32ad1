package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kibet721/chat_sphere/handlers"
	"github.com/kibet721/chat_sphere/middleware"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	profile := api.Group("/profile/me", middleware.Protected(), middleware.LoadCurrentUser())
	profile.Get("", handlers.GetProfile)
	profile.Put("", handlers.UpdateProfile)
}
