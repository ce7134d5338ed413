package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/akwareg/akwareg-backend/internal/app/models"
	"github.com/akwareg/akwareg-backend/internal/app/models/dto"
	"github.com/akwareg/akwareg-backend/internal/pkg/apperrors"
	"github.com/akwareg/akwareg-backend/internal/pkg/helpers"
)

// MessageStore is the message persistence used by MessageService.
type MessageStore interface {
	CreateMessage(ctx context.Context, m *models.Message) (*models.Message, error)
	GetConversations(ctx context.Context, userID int64) ([]models.Conversation, error)
	GetThread(ctx context.Context, userID, otherID int64, offset uint64, limit int) ([]models.Message, int64, error)
	MarkThreadRead(ctx context.Context, userID, otherID int64) (int64, error)
	CountUnread(ctx context.Context, userID int64) (int, error)
}

// MessagePusher delivers events to connected users in real time.
type MessagePusher interface {
	SendToUser(userID int64, eventType string, payload interface{})
}

// MessageService handles direct messaging between parties.
type MessageService struct {
	messageRepo MessageStore
	userRepo    UserStore
	pusher      MessagePusher
	logger      zerolog.Logger
}

// NewMessageService creates a new MessageService
func NewMessageService(messageRepo MessageStore, userRepo UserStore, pusher MessagePusher, logger zerolog.Logger) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		pusher:      pusher,
		logger:      logger,
	}
}

// Send stores a message and pushes it to the receiver when connected.
func (s *MessageService) Send(ctx context.Context, senderID int64, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if senderID == req.ReceiverID {
		return nil, apperrors.ErrSelfConversation
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperrors.NewBadRequestError("message content cannot be empty")
	}

	if _, err := s.userRepo.GetUserByID(ctx, req.ReceiverID); err != nil {
		return nil, err
	}

	sender, err := s.userRepo.GetUserByID(ctx, senderID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		PropertyID: req.PropertyID,
		Content:    strings.TrimSpace(req.Content),
	}

	message, err = s.messageRepo.CreateMessage(ctx, message)
	if err != nil {
		return nil, err
	}
	message.Sender = sender

	resp := dto.FromMessage(message)

	if s.pusher != nil {
		s.pusher.SendToUser(req.ReceiverID, "message", resp)
	}

	s.logger.Debug().Int64("messageID", message.ID).Int64("senderID", senderID).Int64("receiverID", req.ReceiverID).Msg("Message sent")

	return &resp, nil
}

// Conversations lists the caller's conversations, most recent first.
func (s *MessageService) Conversations(ctx context.Context, userID int64) (*dto.ConversationListResponse, error) {
	conversations, err := s.messageRepo.GetConversations(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ConversationResponse, 0, len(conversations))
	for i := range conversations {
		responses = append(responses, dto.FromConversation(&conversations[i]))
	}

	return &dto.ConversationListResponse{Conversations: responses}, nil
}

// Thread retrieves the conversation with another user in insertion order.
func (s *MessageService) Thread(ctx context.Context, userID, otherID int64, page, pageSize int) (*dto.MessageListResponse, error) {
	if _, err := s.userRepo.GetUserByID(ctx, otherID); err != nil {
		return nil, err
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	messages, totalItems, err := s.messageRepo.GetThread(ctx, userID, otherID, offset, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, dto.FromMessage(&messages[i]))
	}

	return &dto.MessageListResponse{
		Messages:   responses,
		Pagination: helpers.NewPaginationInfo(totalItems, page, pageSize),
	}, nil
}

// MarkThreadRead marks the incoming messages from another user as read.
func (s *MessageService) MarkThreadRead(ctx context.Context, userID, otherID int64) error {
	updated, err := s.messageRepo.MarkThreadRead(ctx, userID, otherID)
	if err != nil {
		return err
	}

	s.logger.Debug().Int64("userID", userID).Int64("otherID", otherID).Int64("updated", updated).Msg("Thread marked read")
	return nil
}

// UnreadCount returns the caller's total number of unread messages.
func (s *MessageService) UnreadCount(ctx context.Context, userID int64) (*dto.UnreadCountResponse, error) {
	count, err := s.messageRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.UnreadCountResponse{UnreadCount: count}, nil
}
