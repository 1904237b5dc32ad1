package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kibet721/chat_sphere/database"
	"github.com/kibet721/chat_sphere/middleware"
	"github.com/kibet721/chat_sphere/services"
)

// AccessChat resolves the direct conversation between the caller and the
// target user, creating it on first contact.
func AccessChat(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	type Request struct {
		TargetUserID string `json:"target_user_id" validate:"required,uuid"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	targetID, err := uuid.Parse(req.TargetUserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid target user id"})
	}

	conv, err := services.ResolveDirect(database.DB, caller.ID, targetID)
	if err != nil {
		return chatErrorResponse(c, err)
	}
	return c.JSON(conv)
}

// GetUserConversations lists the caller's conversations, most recently
// active first.
func GetUserConversations(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	convs, err := services.ListConversations(database.DB, caller.ID)
	if err != nil {
		return chatErrorResponse(c, err)
	}
	return c.JSON(convs)
}

// CreateGroupChat creates a group conversation with the caller as admin.
func CreateGroupChat(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	type Request struct {
		Name      string   `json:"name" validate:"required"`
		MemberIDs []string `json:"member_ids" validate:"required,min=2,dive,uuid"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	memberIDs := make([]uuid.UUID, 0, len(req.MemberIDs))
	for _, raw := range req.MemberIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid member id"})
		}
		memberIDs = append(memberIDs, id)
	}

	conv, err := services.CreateGroup(database.DB, caller, req.Name, memberIDs)
	if err != nil {
		return chatErrorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(conv)
}

// RenameGroup renames a conversation. Admin ownership is not enforced: any
// authenticated caller may rename any group, matching the observed contract.
func RenameGroup(c *fiber.Ctx) error {
	type Request struct {
		ConversationID string `json:"conversation_id" validate:"required,uuid"`
		Name           string `json:"name" validate:"required"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	conversationID, err := uuid.Parse(req.ConversationID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid conversation id"})
	}

	conv, err := services.RenameGroup(database.DB, conversationID, req.Name)
	if err != nil {
		return chatErrorResponse(c, err)
	}
	return c.JSON(conv)
}

// AddToGroup adds a user to a conversation. Idempotent; admin ownership is
// not enforced.
func AddToGroup(c *fiber.Ctx) error {
	conversationID, userID, ok := parseMembershipRequest(c)
	if !ok {
		return nil
	}

	conv, err := services.AddMember(database.DB, conversationID, userID)
	if err != nil {
		return chatErrorResponse(c, err)
	}
	return c.JSON(conv)
}

// RemoveFromGroup removes a user from a conversation. Idempotent; admin
// ownership is not enforced.
func RemoveFromGroup(c *fiber.Ctx) error {
	conversationID, userID, ok := parseMembershipRequest(c)
	if !ok {
		return nil
	}

	conv, err := services.RemoveMember(database.DB, conversationID, userID)
	if err != nil {
		return chatErrorResponse(c, err)
	}
	return c.JSON(conv)
}

// parseMembershipRequest reads a conversation/user id pair, writing the 400
// response itself when the body is unusable.
func parseMembershipRequest(c *fiber.Ctx) (conversationID, userID uuid.UUID, ok bool) {
	type Request struct {
		ConversationID string `json:"conversation_id" validate:"required,uuid"`
		UserID         string `json:"user_id" validate:"required,uuid"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
		return uuid.Nil, uuid.Nil, false
	}
	if err := validate.Struct(req); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		return uuid.Nil, uuid.Nil, false
	}

	conversationID, err := uuid.Parse(req.ConversationID)
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid conversation id"})
		return uuid.Nil, uuid.Nil, false
	}
	userID, err = uuid.Parse(req.UserID)
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
		return uuid.Nil, uuid.Nil, false
	}
	return conversationID, userID, true
}

func chatErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrConversationNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Chat not found"})
	default:
		log.Printf("🔥 Chat operation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}
}
