package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kibet721/chat_sphere/handlers"
	"github.com/kibet721/chat_sphere/middleware"
)

func UserRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	users := api.Group("/users", middleware.Protected(), middleware.LoadCurrentUser())
	users.Get("", handlers.SearchUsers)
}
