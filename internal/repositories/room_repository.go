package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"conversation-service/internal/models"
)

var ErrRoomNotFound = errors.New("chat room not found")

// RoomRepository abstracts chat room persistence.
type RoomRepository interface {
	GetRoom(ctx context.Context, roomID int) (models.ChatRoom, error)
	ListRoomsByIDs(ctx context.Context, roomIDs []int) ([]models.ChatRoom, error)
	DeleteRoom(ctx context.Context, roomID int) error
}

// RoomRepo is a sqlx implementation of RoomRepository.
type RoomRepo struct {
	db *sqlx.DB
}

// NewRoomRepo constructs a RoomRepo.
func NewRoomRepo(db *sqlx.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// GetRoom fetches a room by id.
func (r *RoomRepo) GetRoom(ctx context.Context, roomID int) (models.ChatRoom, error) {
	var room models.ChatRoom
	err := r.db.GetContext(ctx, &room, `SELECT id, name, description, created_at, updated_at FROM chat_rooms WHERE id=$1`, roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ChatRoom{}, ErrRoomNotFound
	}
	return room, err
}

// ListRoomsByIDs returns the rooms among roomIDs that exist, in no particular order.
func (r *RoomRepo) ListRoomsByIDs(ctx context.Context, roomIDs []int) ([]models.ChatRoom, error) {
	if len(roomIDs) == 0 {
		return []models.ChatRoom{}, nil
	}
	var rooms []models.ChatRoom
	err := r.db.SelectContext(ctx, &rooms, `SELECT id, name, description, created_at, updated_at FROM chat_rooms WHERE id = ANY($1)`, pq.Array(int64s(roomIDs)))
	return rooms, err
}

// DeleteRoom removes the room row only; dependents must be removed first.
func (r *RoomRepo) DeleteRoom(ctx context.Context, roomID int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM chat_rooms WHERE id=$1`, roomID)
	return err
}

func int64s(ids []int) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		out = append(out, int64(id))
	}
	return out
}
