package service

import (
	"context"

	"conversation-service/internal/models"
)

// SendMessageInput carries an unvalidated send request.
type SendMessageInput struct {
	RoomID        string
	SenderID      string
	Body          string
	SecondaryText *string
}

// ConversationService exposes conversation-level operations.
type ConversationService interface {
	ListConversations(ctx context.Context, userID string) ([]models.ConversationSummary, error)
	GetConversation(ctx context.Context, roomID string) (models.Conversation, error)
	SendMessage(ctx context.Context, in SendMessageInput) (models.Message, error)
	DeleteConversation(ctx context.Context, roomID string, userID string) error
}

// ProfileService exposes profile reads.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (models.Profile, error)
}
