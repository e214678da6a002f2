package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"conversation-service/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// ProfileRepository reads the user, post, comment, saved_post and group_member collections.
type ProfileRepository interface {
	GetUser(ctx context.Context, userID string) (models.User, error)
	ListPostsByUser(ctx context.Context, userID string) ([]models.Post, error)
	CountSavedPosts(ctx context.Context, userID string) (int, error)
	CountGroups(ctx context.Context, userID string) (int, error)
}

// ProfileRepo is a sqlx implementation of ProfileRepository.
type ProfileRepo struct {
	db *sqlx.DB
}

// NewProfileRepo constructs a ProfileRepo.
func NewProfileRepo(db *sqlx.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) GetUser(ctx context.Context, userID string) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT id, username, profile_picture, bio, created_at FROM "user" WHERE id=$1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// ListPostsByUser returns the user's posts newest first.
func (r *ProfileRepo) ListPostsByUser(ctx context.Context, userID string) ([]models.Post, error) {
	query := `SELECT p.id, p.user_id, p.content, p.image_url, p.created_at,
        (SELECT COUNT(*) FROM comment c WHERE c.post_id = p.id) AS comment_count
        FROM post p
        WHERE p.user_id=$1
        ORDER BY p.created_at DESC, p.id DESC`
	posts := []models.Post{}
	err := r.db.SelectContext(ctx, &posts, query, userID)
	return posts, err
}

func (r *ProfileRepo) CountSavedPosts(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM saved_post WHERE user_id=$1`, userID)
	return count, err
}

func (r *ProfileRepo) CountGroups(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM group_member WHERE user_id=$1`, userID)
	return count, err
}
