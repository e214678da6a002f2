package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"conversation-service/internal/models"
)

const messageColumns = `m.id, m.chat_room_id, m.sender_id, m.body, m.secondary_text, m.created_at, m.updated_at,
        COALESCE(u.id, m.sender_id) AS "sender.id",
        COALESCE(u.username, '') AS "sender.username",
        u.profile_picture AS "sender.profile_picture"`

// MessageRepository defines interactions for chat room messages.
type MessageRepository interface {
	ListMessages(ctx context.Context, roomID int) ([]models.Message, error)
	LatestMessagesForRooms(ctx context.Context, roomIDs []int) ([]models.Message, error)
	CreateMessage(ctx context.Context, roomID int, senderID string, body string, secondaryText *string) (models.Message, error)
	DeleteMessages(ctx context.Context, roomID int) error
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// ListMessages returns a room's messages oldest first, with sender projection.
func (r *MessageRepo) ListMessages(ctx context.Context, roomID int) ([]models.Message, error) {
	query := `SELECT ` + messageColumns + `
        FROM messages m
        LEFT JOIN "user" u ON u.id = m.sender_id
        WHERE m.chat_room_id=$1
        ORDER BY m.created_at ASC, m.id ASC`
	msgs := []models.Message{}
	err := r.db.SelectContext(ctx, &msgs, query, roomID)
	return msgs, err
}

// LatestMessagesForRooms returns at most one message per room: the newest.
// Rooms without messages are absent from the result.
func (r *MessageRepo) LatestMessagesForRooms(ctx context.Context, roomIDs []int) ([]models.Message, error) {
	if len(roomIDs) == 0 {
		return []models.Message{}, nil
	}
	query := `SELECT DISTINCT ON (m.chat_room_id) ` + messageColumns + `
        FROM messages m
        LEFT JOIN "user" u ON u.id = m.sender_id
        WHERE m.chat_room_id = ANY($1)
        ORDER BY m.chat_room_id, m.created_at DESC, m.id DESC`
	msgs := []models.Message{}
	err := r.db.SelectContext(ctx, &msgs, query, pq.Array(int64s(roomIDs)))
	return msgs, err
}

// CreateMessage stores a message; id and timestamps are assigned by the database.
func (r *MessageRepo) CreateMessage(ctx context.Context, roomID int, senderID string, body string, secondaryText *string) (models.Message, error) {
	var msg models.Message
	err := r.db.QueryRowxContext(ctx, `INSERT INTO messages (chat_room_id, sender_id, body, secondary_text) VALUES ($1, $2, $3, $4) RETURNING id, chat_room_id, sender_id, body, secondary_text, created_at, updated_at`, roomID, senderID, body, secondaryText).
		Scan(&msg.ID, &msg.ChatRoomID, &msg.SenderID, &msg.Body, &msg.SecondaryText, &msg.CreatedAt, &msg.UpdatedAt)
	return msg, err
}

// DeleteMessages removes every message of a room.
func (r *MessageRepo) DeleteMessages(ctx context.Context, roomID int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE chat_room_id=$1`, roomID)
	return err
}
