package message

import (
	"time"

	"github.com/hms/hms/internal/domain/identity"
)

type Message struct {
	ID         int       `db:"id" json:"id"`
	SenderID   string    `db:"sender_id" json:"senderId"`
	ReceiverID string    `db:"receiver_id" json:"receiverId"`
	Content    string    `db:"content" json:"content"`
	IsRead     bool      `db:"is_read" json:"isRead"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

type CreateInput struct {
	SenderID   string `json:"senderId" validate:"required"`
	ReceiverID string `json:"receiverId" validate:"required"`
	Content    string `json:"content" validate:"required"`
}

// Conversation summarises the latest exchange with one counterparty. The
// counterparty's user fields are flattened in when a users row exists.
type Conversation struct {
	*identity.User
	UserID          string    `json:"userId"`
	LastMessage     string    `json:"lastMessage"`
	LastMessageTime time.Time `json:"lastMessageTime"`

	lastMessageID int
}
