package dto

import (
	"time"

	"github.com/akwareg/akwareg-backend/internal/app/models"
)

// SendMessageRequest represents a direct message submission
type SendMessageRequest struct {
	ReceiverID int64  `json:"receiver_id" binding:"required,min=1"`
	PropertyID *int64 `json:"property_id,omitempty" binding:"omitempty,min=1"`
	Content    string `json:"content" binding:"required,max=2000"`
}

// MessageResponse represents a single message
type MessageResponse struct {
	ID         int64     `json:"id"`
	SenderID   int64     `json:"sender_id"`
	SenderName string    `json:"sender_name,omitempty"`
	ReceiverID int64     `json:"receiver_id"`
	PropertyID *int64    `json:"property_id,omitempty"`
	Content    string    `json:"content"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

// ConversationResponse represents a conversation summary with one
// other participant.
type ConversationResponse struct {
	OtherUser     UserResponse     `json:"other_user"`
	PropertyID    *int64           `json:"property_id,omitempty"`
	PropertyTitle string           `json:"property_title,omitempty"`
	LastMessage   *MessageResponse `json:"last_message"`
	UnreadCount   int              `json:"unread_count"`
}

// ConversationListResponse represents the caller's conversation list
type ConversationListResponse struct {
	Conversations []ConversationResponse `json:"conversations"`
}

// MessageListResponse represents a paginated conversation thread
type MessageListResponse struct {
	Messages   []MessageResponse `json:"messages"`
	Pagination PaginationInfo    `json:"pagination"`
}

// UnreadCountResponse represents the caller's total unread messages
type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

// FromMessage converts a models.Message to a MessageResponse
func FromMessage(m *models.Message) MessageResponse {
	if m == nil {
		return MessageResponse{}
	}
	resp := MessageResponse{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		PropertyID: m.PropertyID,
		Content:    m.Content,
		IsRead:     m.IsRead,
		CreatedAt:  m.CreatedAt,
	}
	if m.Sender != nil {
		resp.SenderName = m.Sender.FullName
	}
	return resp
}

// FromConversation converts a models.Conversation to a ConversationResponse
func FromConversation(c *models.Conversation) ConversationResponse {
	resp := ConversationResponse{
		OtherUser:   FromUser(c.OtherUser),
		UnreadCount: c.UnreadCount,
	}
	if c.LastMessage != nil {
		msg := FromMessage(c.LastMessage)
		resp.LastMessage = &msg
		resp.PropertyID = c.LastMessage.PropertyID
	}
	if c.Property != nil {
		resp.PropertyTitle = c.Property.Title
	}
	return resp
}
