package models

import (
	"time"
)

// Message defines a direct message between two users, optionally tied
// to a property as conversation context.
type Message struct {
	ID         int64     `json:"id" db:"id"`
	SenderID   int64     `json:"sender_id" db:"sender_id"`
	ReceiverID int64     `json:"receiver_id" db:"receiver_id"`
	PropertyID *int64    `json:"property_id,omitempty" db:"property_id"`
	Content    string    `json:"content" db:"content"`
	IsRead     bool      `json:"is_read" db:"is_read"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`

	Sender   *User `json:"sender,omitempty"`   // Relation, no db tag
	Receiver *User `json:"receiver,omitempty"` // Relation, no db tag
}

// Conversation is a derived view of the messages exchanged with a
// single other participant.
type Conversation struct {
	OtherUser   *User     `json:"other_user"`
	Property    *Property `json:"property,omitempty"`
	LastMessage *Message  `json:"last_message"`
	UnreadCount int       `json:"unread_count"`
}
