package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akwareg/akwareg-backend/internal/app/models"
	"github.com/akwareg/akwareg-backend/internal/app/models/dto"
	"github.com/akwareg/akwareg-backend/internal/pkg/apperrors"
)

func newTestMessageService(t *testing.T) (*MessageService, *fakeMessageStore, *fakePusher, int64, int64) {
	t.Helper()
	users := newFakeUserStore()
	messages := newFakeMessageStore()
	pusher := &fakePusher{}
	svc := NewMessageService(messages, users, pusher, zerolog.Nop())

	ctx := context.Background()
	owner, err := users.CreateUser(ctx, &models.User{Email: "owner@example.com", FullName: "Ime Bassey", Role: models.RolePropertyOwner})
	require.NoError(t, err)
	buyer, err := users.CreateUser(ctx, &models.User{Email: "buyer@example.com", FullName: "Chioma Okon", Role: models.RolePropertyOwner})
	require.NoError(t, err)

	return svc, messages, pusher, owner.ID, buyer.ID
}

func TestMessageSendAndPush(t *testing.T) {
	svc, _, pusher, ownerID, buyerID := newTestMessageService(t)

	sent, err := svc.Send(context.Background(), buyerID, &dto.SendMessageRequest{
		ReceiverID: ownerID,
		Content:    "Is the bungalow still available?",
	})
	require.NoError(t, err)
	assert.Equal(t, buyerID, sent.SenderID)
	assert.Equal(t, ownerID, sent.ReceiverID)
	assert.False(t, sent.IsRead)

	// The receiver gets a realtime event
	require.Len(t, pusher.events, 1)
	assert.Equal(t, ownerID, pusher.events[0].userID)
	assert.Equal(t, "message", pusher.events[0].eventType)
}

func TestMessageSendValidation(t *testing.T) {
	svc, _, _, ownerID, buyerID := newTestMessageService(t)
	ctx := context.Background()

	_, err := svc.Send(ctx, buyerID, &dto.SendMessageRequest{ReceiverID: buyerID, Content: "note to self"})
	assert.ErrorIs(t, err, apperrors.ErrSelfConversation)

	_, err = svc.Send(ctx, buyerID, &dto.SendMessageRequest{ReceiverID: ownerID, Content: "   "})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.Send(ctx, buyerID, &dto.SendMessageRequest{ReceiverID: 999, Content: "hello"})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestMessageConversationsAndUnread(t *testing.T) {
	svc, _, _, ownerID, buyerID := newTestMessageService(t)
	ctx := context.Background()

	_, err := svc.Send(ctx, buyerID, &dto.SendMessageRequest{ReceiverID: ownerID, Content: "Is it available?"})
	require.NoError(t, err)
	_, err = svc.Send(ctx, buyerID, &dto.SendMessageRequest{ReceiverID: ownerID, Content: "Hello?"})
	require.NoError(t, err)

	conversations, err := svc.Conversations(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, conversations.Conversations, 1)
	assert.Equal(t, 2, conversations.Conversations[0].UnreadCount)

	unread, err := svc.UnreadCount(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, 2, unread.UnreadCount)

	require.NoError(t, svc.MarkThreadRead(ctx, ownerID, buyerID))

	unread, err = svc.UnreadCount(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, 0, unread.UnreadCount)
}

func TestMessageThread(t *testing.T) {
	svc, _, _, ownerID, buyerID := newTestMessageService(t)
	ctx := context.Background()

	_, err := svc.Send(ctx, buyerID, &dto.SendMessageRequest{ReceiverID: ownerID, Content: "Is it available?"})
	require.NoError(t, err)
	_, err = svc.Send(ctx, ownerID, &dto.SendMessageRequest{ReceiverID: buyerID, Content: "Yes, still available."})
	require.NoError(t, err)

	thread, err := svc.Thread(ctx, ownerID, buyerID, 1, 20)
	require.NoError(t, err)
	require.Len(t, thread.Messages, 2)
	assert.Equal(t, "Is it available?", thread.Messages[0].Content)
	assert.Equal(t, "Yes, still available.", thread.Messages[1].Content)

	_, err = svc.Thread(ctx, ownerID, 999, 1, 20)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
