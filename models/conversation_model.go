package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation is a direct or group chat. A direct conversation stores the
// canonical sorted pair of its two member ids in DirectKey; the unique index
// on that column is what makes a concurrent second create fail instead of
// producing a duplicate conversation.
type Conversation struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	IsGroup   bool       `gorm:"not null;default:false" json:"is_group"`
	AdminID   *uuid.UUID `gorm:"type:uuid" json:"admin_id,omitempty"`
	DirectKey *string    `gorm:"size:100;unique" json:"-"`

	LatestMessageID *uuid.UUID `gorm:"type:uuid" json:"-"`

	Members       []*User  `gorm:"many2many:conversation_members;" json:"members,omitempty"`
	Admin         *User    `gorm:"foreignkey:AdminID" json:"admin,omitempty"`
	LatestMessage *Message `gorm:"foreignkey:LatestMessageID" json:"latest_message,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// DirectConversationKey builds the order-independent key that identifies the
// one direct conversation between two users.
func DirectConversationKey(a, b uuid.UUID) string {
	first, second := a.String(), b.String()
	if strings.Compare(first, second) > 0 {
		first, second = second, first
	}
	return first + "|" + second
}
