package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kibet721/chat_sphere/handlers"
	"github.com/kibet721/chat_sphere/middleware"
)

func UploadRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	uploads := api.Group("/uploads", middleware.Protected(), middleware.LoadCurrentUser())
	uploads.Post("/signature", handlers.GenerateUploadSignature)
}
