package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"conversation-service/internal/logging"
)

// Connect opens the Postgres pool and, when migrate is set, applies the schema.
func Connect(ctx context.Context, dsn string, migrate bool) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if migrate {
		if err := RunMigrations(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	return db, nil
}

// Migrations creates the collections the services read and write. Rooms,
// memberships and messages have no cascading keys; the conversation
// service removes dependents itself.
var Migrations = []string{
	`CREATE TABLE IF NOT EXISTS "user" (
            id TEXT PRIMARY KEY,
            username TEXT NOT NULL,
            profile_picture TEXT,
            bio TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
	`CREATE TABLE IF NOT EXISTS post (
            id SERIAL PRIMARY KEY,
            user_id TEXT NOT NULL,
            content TEXT NOT NULL DEFAULT '',
            image_url TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
	`CREATE TABLE IF NOT EXISTS comment (
            id SERIAL PRIMARY KEY,
            post_id INT NOT NULL,
            user_id TEXT NOT NULL,
            content TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
	`CREATE TABLE IF NOT EXISTS saved_post (
            post_id INT NOT NULL,
            user_id TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            PRIMARY KEY(post_id, user_id)
        );`,
	`CREATE TABLE IF NOT EXISTS group_member (
            group_id INT NOT NULL,
            user_id TEXT NOT NULL,
            joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            PRIMARY KEY(group_id, user_id)
        );`,
	`CREATE TABLE IF NOT EXISTS chat_rooms (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL DEFAULT '',
            description TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
	`CREATE TABLE IF NOT EXISTS chat_room_individual (
            chat_room_id INT NOT NULL,
            user_id TEXT NOT NULL,
            PRIMARY KEY(chat_room_id, user_id)
        );`,
	`CREATE INDEX IF NOT EXISTS chat_room_individual_user_idx ON chat_room_individual (user_id);`,
	`CREATE TABLE IF NOT EXISTS messages (
            id SERIAL PRIMARY KEY,
            chat_room_id INT NOT NULL,
            sender_id TEXT NOT NULL,
            body TEXT NOT NULL,
            secondary_text TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
	`CREATE INDEX IF NOT EXISTS messages_room_created_idx ON messages (chat_room_id, created_at);`,
}

// RunMigrations applies Migrations in order.
func RunMigrations(ctx context.Context, db *sqlx.DB) error {
	for _, m := range Migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return err
		}
	}
	logger := logging.Ctx(ctx)
	logger.Info().Int("statements", len(Migrations)).Msg("database migrations applied")
	return nil
}
