package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"conversation-service/internal/models"
)

const participantColumns = `p.chat_room_id, p.user_id,
        COALESCE(u.id, p.user_id) AS "user.id",
        COALESCE(u.username, '') AS "user.username",
        u.profile_picture AS "user.profile_picture"`

// ParticipantRepository abstracts chat_room_individual membership rows.
type ParticipantRepository interface {
	IsParticipant(ctx context.Context, roomID int, userID string) (bool, error)
	ListRoomIDsForUser(ctx context.Context, userID string) ([]int, error)
	ListParticipants(ctx context.Context, roomID int) ([]models.Participant, error)
	ListParticipantsForRooms(ctx context.Context, roomIDs []int) ([]models.Participant, error)
	DeleteParticipants(ctx context.Context, roomID int) error
}

// ParticipantRepo is a sqlx implementation of ParticipantRepository.
type ParticipantRepo struct {
	db *sqlx.DB
}

// NewParticipantRepo constructs a ParticipantRepo.
func NewParticipantRepo(db *sqlx.DB) *ParticipantRepo {
	return &ParticipantRepo{db: db}
}

// IsParticipant checks whether a membership row exists.
func (r *ParticipantRepo) IsParticipant(ctx context.Context, roomID int, userID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM chat_room_individual WHERE chat_room_id=$1 AND user_id=$2)`, roomID, userID)
	return exists, err
}

// ListRoomIDsForUser returns the ids of every room the user belongs to.
func (r *ParticipantRepo) ListRoomIDsForUser(ctx context.Context, userID string) ([]int, error) {
	ids := []int{}
	err := r.db.SelectContext(ctx, &ids, `SELECT chat_room_id FROM chat_room_individual WHERE user_id=$1`, userID)
	return ids, err
}

// ListParticipants returns the members of a room with their user projection.
func (r *ParticipantRepo) ListParticipants(ctx context.Context, roomID int) ([]models.Participant, error) {
	query := `SELECT ` + participantColumns + `
        FROM chat_room_individual p
        LEFT JOIN "user" u ON u.id = p.user_id
        WHERE p.chat_room_id=$1
        ORDER BY p.user_id`
	participants := []models.Participant{}
	err := r.db.SelectContext(ctx, &participants, query, roomID)
	return participants, err
}

// ListParticipantsForRooms returns the members of all given rooms in one query.
func (r *ParticipantRepo) ListParticipantsForRooms(ctx context.Context, roomIDs []int) ([]models.Participant, error) {
	if len(roomIDs) == 0 {
		return []models.Participant{}, nil
	}
	query := `SELECT ` + participantColumns + `
        FROM chat_room_individual p
        LEFT JOIN "user" u ON u.id = p.user_id
        WHERE p.chat_room_id = ANY($1)
        ORDER BY p.chat_room_id, p.user_id`
	participants := []models.Participant{}
	err := r.db.SelectContext(ctx, &participants, query, pq.Array(int64s(roomIDs)))
	return participants, err
}

// DeleteParticipants removes every membership row of a room.
func (r *ParticipantRepo) DeleteParticipants(ctx context.Context, roomID int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM chat_room_individual WHERE chat_room_id=$1`, roomID)
	return err
}
