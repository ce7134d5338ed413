package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akwareg/akwareg-backend/internal/app/models"
	"github.com/akwareg/akwareg-backend/internal/pkg/logger"
)

// MessageRepository handles message database operations
type MessageRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateMessage stores a new message and returns it with generated fields.
func (r *MessageRepository) CreateMessage(ctx context.Context, m *models.Message) (*models.Message, error) {
	sql, args, err := r.sb.Insert("messages").
		Columns("sender_id", "receiver_id", "property_id", "content", "is_read", "created_at").
		Values(m.SenderID, m.ReceiverID, m.PropertyID, m.Content, false, time.Now()).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create message SQL")
		return nil, fmt.Errorf("failed to build create message query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("senderID", m.SenderID).Int64("receiverID", m.ReceiverID).Msg("Error executing create message query")
		return nil, fmt.Errorf("error creating message: %w", err)
	}

	return m, nil
}

// GetConversations groups the user's messages by the other participant
// and returns one entry per conversation, most recent first. Each entry
// carries the other user, the last message, its optional property
// context and the unread count.
func (r *MessageRepository) GetConversations(ctx context.Context, userID int64) ([]models.Conversation, error) {
	rows, err := r.db.Query(ctx, `
		WITH latest AS (
			SELECT DISTINCT ON (CASE WHEN sender_id = $1 THEN receiver_id ELSE sender_id END)
				CASE WHEN sender_id = $1 THEN receiver_id ELSE sender_id END AS other_id,
				id, sender_id, receiver_id, property_id, content, is_read, created_at
			FROM messages
			WHERE sender_id = $1 OR receiver_id = $1
			ORDER BY CASE WHEN sender_id = $1 THEN receiver_id ELSE sender_id END, created_at DESC
		)
		SELECT
			u.id, u.email, u.full_name, u.phone, u.role, u.is_verified, u.created_at, u.updated_at,
			l.id, l.sender_id, l.receiver_id, l.property_id, l.content, l.is_read, l.created_at,
			p.id, p.title,
			(SELECT COUNT(*) FROM messages um
				WHERE um.receiver_id = $1 AND um.sender_id = l.other_id AND NOT um.is_read)
		FROM latest l
		JOIN users u ON u.id = l.other_id
		LEFT JOIN properties p ON p.id = l.property_id
		ORDER BY l.created_at DESC`, userID)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error querying conversations")
		return nil, fmt.Errorf("failed to query conversations: %w", err)
	}
	defer rows.Close()

	var conversations []models.Conversation
	for rows.Next() {
		var other models.User
		var last models.Message
		var propertyID *int64
		var propertyTitle *string
		var unread int

		err := rows.Scan(
			&other.ID, &other.Email, &other.FullName, &other.Phone, &other.Role,
			&other.IsVerified, &other.CreatedAt, &other.UpdatedAt,
			&last.ID, &last.SenderID, &last.ReceiverID, &last.PropertyID,
			&last.Content, &last.IsRead, &last.CreatedAt,
			&propertyID, &propertyTitle,
			&unread,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conversation row: %w", err)
		}

		conversation := models.Conversation{
			OtherUser:   &other,
			LastMessage: &last,
			UnreadCount: unread,
		}
		if propertyID != nil && propertyTitle != nil {
			conversation.Property = &models.Property{ID: *propertyID, Title: *propertyTitle}
		}
		conversations = append(conversations, conversation)
	}

	return conversations, rows.Err()
}

// GetThread retrieves the messages between two users in insertion
// order, with the total count.
func (r *MessageRepository) GetThread(ctx context.Context, userID, otherID int64, offset uint64, limit int) ([]models.Message, int64, error) {
	between := squirrel.Or{
		squirrel.Eq{"m.sender_id": userID, "m.receiver_id": otherID},
		squirrel.Eq{"m.sender_id": otherID, "m.receiver_id": userID},
	}

	countSql, countArgs, err := r.sb.Select("COUNT(*)").
		From("messages m").
		Where(between).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count thread query: %w", err)
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		return nil, 0, fmt.Errorf("failed to count thread messages: %w", err)
	}
	if totalItems == 0 {
		return []models.Message{}, 0, nil
	}

	sql, args, err := r.sb.Select(
		"m.id", "m.sender_id", "m.receiver_id", "m.property_id", "m.content", "m.is_read", "m.created_at",
		"s.full_name").
		From("messages m").
		Join("users s ON m.sender_id = s.id").
		Where(between).
		OrderBy("m.created_at ASC", "m.id ASC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build thread query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Int64("otherID", otherID).Msg("Error querying message thread")
		return nil, 0, fmt.Errorf("failed to query message thread: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		var senderName string
		err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.PropertyID, &m.Content, &m.IsRead, &m.CreatedAt, &senderName)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan message row: %w", err)
		}
		m.Sender = &models.User{ID: m.SenderID, FullName: senderName}
		messages = append(messages, m)
	}

	return messages, totalItems, rows.Err()
}

// MarkThreadRead marks every unread message from otherID to userID as
// read and returns how many were updated.
func (r *MessageRepository) MarkThreadRead(ctx context.Context, userID, otherID int64) (int64, error) {
	sql, args, err := r.sb.Update("messages").
		Set("is_read", true).
		Where(squirrel.Eq{"receiver_id": userID, "sender_id": otherID, "is_read": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build mark read query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Int64("otherID", otherID).Msg("Error marking thread read")
		return 0, fmt.Errorf("error marking thread read: %w", err)
	}

	return tag.RowsAffected(), nil
}

// CountUnread returns the user's total number of unread messages
func (r *MessageRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("messages").
		Where(squirrel.Eq{"receiver_id": userID, "is_read": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count unread query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}

	return count, nil
}
