package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kibet721/chat_sphere/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// directChatName mirrors the placeholder stored on one-on-one chats; clients
// render the other member's name instead.
const directChatName = "sender"

var (
	ErrValidation           = errors.New("validation failed")
	ErrConversationNotFound = errors.New("conversation not found")
)

// ResolveDirect returns the one direct conversation between the caller and
// the target user, creating it when none exists. The unique index on
// direct_key turns a concurrent double-create into a duplicate-key error on
// the loser's insert, which is retried as a lookup. Resolving a conversation
// with yourself is allowed.
func ResolveDirect(db *gorm.DB, callerID, targetID uuid.UUID) (*models.Conversation, error) {
	if targetID == uuid.Nil {
		return nil, fmt.Errorf("%w: target user id is required", ErrValidation)
	}

	key := models.DirectConversationKey(callerID, targetID)

	var existing models.Conversation
	err := db.Where("is_group = ? AND direct_key = ?", false, key).First(&existing).Error
	if err == nil {
		return GetConversation(db, existing.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conv := models.Conversation{
		Name:      directChatName,
		IsGroup:   false,
		DirectKey: &key,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&conv).Error; err != nil {
			return err
		}
		return insertMembers(tx, conv.ID, callerID, targetID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the creation race; the winner's conversation is ours too.
			if err := db.Where("direct_key = ?", key).First(&existing).Error; err != nil {
				return nil, err
			}
			return GetConversation(db, existing.ID)
		}
		return nil, err
	}

	return GetConversation(db, conv.ID)
}

// CreateGroup persists a group conversation owned by the caller. The caller
// always joins the membership set alongside the invited users.
func CreateGroup(db *gorm.DB, caller *models.User, name string, memberIDs []uuid.UUID) (*models.Conversation, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", ErrValidation)
	}
	if len(memberIDs) < 2 {
		return nil, fmt.Errorf("%w: more than 2 users are required to form a group chat", ErrValidation)
	}

	adminID := caller.ID
	conv := models.Conversation{
		Name:    name,
		IsGroup: true,
		AdminID: &adminID,
	}

	members := append([]uuid.UUID{caller.ID}, memberIDs...)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&conv).Error; err != nil {
			return err
		}
		return insertMembers(tx, conv.ID, members...)
	})
	if err != nil {
		return nil, err
	}

	return GetConversation(db, conv.ID)
}

// RenameGroup updates a conversation's name in place.
func RenameGroup(db *gorm.DB, conversationID uuid.UUID, name string) (*models.Conversation, error) {
	if conversationID == uuid.Nil || name == "" {
		return nil, fmt.Errorf("%w: conversation id and name are required", ErrValidation)
	}

	res := db.Model(&models.Conversation{}).Where("id = ?", conversationID).Update("name", name)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrConversationNotFound
	}

	return GetConversation(db, conversationID)
}

// AddMember adds a user to a conversation's membership set. Adding a user
// who is already a member changes nothing.
func AddMember(db *gorm.DB, conversationID, userID uuid.UUID) (*models.Conversation, error) {
	if conversationID == uuid.Nil || userID == uuid.Nil {
		return nil, fmt.Errorf("%w: conversation id and user id are required", ErrValidation)
	}
	if err := ensureConversationExists(db, conversationID); err != nil {
		return nil, err
	}

	if err := insertMembers(db, conversationID, userID); err != nil {
		return nil, err
	}
	if err := touchConversation(db, conversationID); err != nil {
		return nil, err
	}

	return GetConversation(db, conversationID)
}

// RemoveMember removes a user from a conversation's membership set. Removing
// a user who is not a member changes nothing.
func RemoveMember(db *gorm.DB, conversationID, userID uuid.UUID) (*models.Conversation, error) {
	if conversationID == uuid.Nil || userID == uuid.Nil {
		return nil, fmt.Errorf("%w: conversation id and user id are required", ErrValidation)
	}
	if err := ensureConversationExists(db, conversationID); err != nil {
		return nil, err
	}

	err := db.Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Delete(&models.ConversationMember{}).Error
	if err != nil {
		return nil, err
	}
	if err := touchConversation(db, conversationID); err != nil {
		return nil, err
	}

	return GetConversation(db, conversationID)
}

// GetConversation loads a conversation with its members, admin and latest
// message sender attached, replacing the store-level joins clients used to
// depend on.
func GetConversation(db *gorm.DB, conversationID uuid.UUID) (*models.Conversation, error) {
	var conv models.Conversation
	err := db.
		Preload("Members").
		Preload("Admin").
		Preload("LatestMessage.Sender").
		First(&conv, "id = ?", conversationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return &conv, nil
}

// ListConversations returns every conversation the user belongs to, most
// recently active first.
func ListConversations(db *gorm.DB, userID uuid.UUID) ([]models.Conversation, error) {
	var convs []models.Conversation
	err := db.
		Joins("JOIN conversation_members cm ON cm.conversation_id = conversations.id AND cm.user_id = ?", userID).
		Preload("Members").
		Preload("Admin").
		Preload("LatestMessage.Sender").
		Order("conversations.updated_at desc").
		Find(&convs).Error
	if err != nil {
		return nil, err
	}
	return convs, nil
}

// insertMembers is a set union: already-present rows are skipped via the
// join table's composite primary key.
func insertMembers(tx *gorm.DB, conversationID uuid.UUID, userIDs ...uuid.UUID) error {
	for _, id := range userIDs {
		row := models.ConversationMember{ConversationID: conversationID, UserID: id}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureConversationExists(db *gorm.DB, conversationID uuid.UUID) error {
	var count int64
	if err := db.Model(&models.Conversation{}).Where("id = ?", conversationID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrConversationNotFound
	}
	return nil
}

func touchConversation(db *gorm.DB, conversationID uuid.UUID) error {
	return db.Model(&models.Conversation{}).
		Where("id = ?", conversationID).
		Update("updated_at", time.Now()).Error
}
