package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kibet721/chat_sphere/handlers"
	"github.com/kibet721/chat_sphere/middleware"
)

func ChatRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	chats := api.Group("/chats", middleware.Protected(), middleware.LoadCurrentUser())
	chats.Post("", handlers.AccessChat)
	chats.Get("", handlers.GetUserConversations)
	chats.Post("/group", handlers.CreateGroupChat)
	chats.Put("/group/rename", handlers.RenameGroup)
	chats.Put("/group/add", handlers.AddToGroup)
	chats.Put("/group/remove", handlers.RemoveFromGroup)
}
