package models

import "github.com/google/uuid"

// ConversationMember is the membership join row. The composite primary key
// keeps membership a set: inserting an existing member is a conflict to
// ignore, deleting an absent one touches no rows.
type ConversationMember struct {
	ConversationID uuid.UUID `gorm:"type:uuid;primaryKey" json:"conversation_id"`
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
}
