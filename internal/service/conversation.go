package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"conversation-service/internal/logging"
	"conversation-service/internal/models"
	"conversation-service/internal/observability"
	"conversation-service/internal/repositories"
)

const (
	opListConversations  = "list_conversations"
	opGetConversation    = "get_conversation"
	opSendMessage        = "send_message"
	opDeleteConversation = "delete_conversation"
)

var tracer = otel.Tracer("conversation-service/service")

// ConversationManager composes room, membership and message queries into
// conversation operations. It holds no state between calls.
type ConversationManager struct {
	rooms        repositories.RoomRepository
	participants repositories.ParticipantRepository
	messages     repositories.MessageRepository
}

// NewConversationManager builds a ConversationManager.
func NewConversationManager(rooms repositories.RoomRepository, participants repositories.ParticipantRepository, messages repositories.MessageRepository) *ConversationManager {
	return &ConversationManager{
		rooms:        rooms,
		participants: participants,
		messages:     messages,
	}
}

var _ ConversationService = (*ConversationManager)(nil)

// ListConversations returns a summary of every room the user belongs to,
// most recently updated first. Participants and latest messages are loaded
// in one query each for all rooms.
func (m *ConversationManager) ListConversations(ctx context.Context, userID string) (result []models.ConversationSummary, err error) {
	ctx, span := tracer.Start(ctx, "conversation.list", trace.WithAttributes(attribute.String("user.id", userID)))
	defer func() { finish(ctx, span, opListConversations, err) }()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, invalidArgument("userId is required")
	}

	roomIDs, err := m.participants.ListRoomIDsForUser(ctx, userID)
	if err != nil {
		return nil, dependencyFailure("failed to load memberships", err)
	}
	if len(roomIDs) == 0 {
		return []models.ConversationSummary{}, nil
	}

	rooms, err := m.rooms.ListRoomsByIDs(ctx, roomIDs)
	if err != nil {
		return nil, dependencyFailure("failed to load chat rooms", err)
	}
	members, err := m.participants.ListParticipantsForRooms(ctx, roomIDs)
	if err != nil {
		return nil, dependencyFailure("failed to load participants", err)
	}
	latest, err := m.messages.LatestMessagesForRooms(ctx, roomIDs)
	if err != nil {
		return nil, dependencyFailure("failed to load last messages", err)
	}

	membersByRoom := make(map[int][]models.Participant, len(roomIDs))
	for _, p := range members {
		membersByRoom[p.ChatRoomID] = append(membersByRoom[p.ChatRoomID], p)
	}
	latestByRoom := make(map[int]models.Message, len(latest))
	for _, msg := range latest {
		latestByRoom[msg.ChatRoomID] = msg
	}

	result = make([]models.ConversationSummary, 0, len(rooms))
	for _, room := range rooms {
		summary := models.ConversationSummary{
			ID:           room.ID,
			Name:         room.Name,
			Description:  room.Description,
			Participants: membersByRoom[room.ID],
			UpdatedAt:    room.UpdatedAt,
		}
		if summary.Participants == nil {
			summary.Participants = []models.Participant{}
		}
		if msg, ok := latestByRoom[room.ID]; ok {
			summary.LastMessage = &msg
		}
		result = append(result, summary)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].UpdatedAt.Equal(result[j].UpdatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

// GetConversation returns a room with its participants and full message history.
func (m *ConversationManager) GetConversation(ctx context.Context, rawRoomID string) (conv models.Conversation, err error) {
	ctx, span := tracer.Start(ctx, "conversation.get", trace.WithAttributes(attribute.String("room.id", rawRoomID)))
	defer func() { finish(ctx, span, opGetConversation, err) }()

	roomID, err := parseRoomID(rawRoomID)
	if err != nil {
		return models.Conversation{}, err
	}

	room, err := m.loadRoom(ctx, roomID)
	if err != nil {
		return models.Conversation{}, err
	}

	participants, err := m.participants.ListParticipants(ctx, roomID)
	if err != nil {
		return models.Conversation{}, dependencyFailure("failed to load participants", err)
	}
	msgs, err := m.messages.ListMessages(ctx, roomID)
	if err != nil {
		return models.Conversation{}, dependencyFailure("failed to load messages", err)
	}

	return models.Conversation{
		ChatRoom:     room,
		Participants: participants,
		Messages:     msgs,
		MessageCount: len(msgs),
	}, nil
}

// SendMessage stores a message from a current participant.
func (m *ConversationManager) SendMessage(ctx context.Context, in SendMessageInput) (msg models.Message, err error) {
	ctx, span := tracer.Start(ctx, "conversation.send_message", trace.WithAttributes(
		attribute.String("room.id", in.RoomID),
		attribute.String("user.id", in.SenderID),
	))
	defer func() { finish(ctx, span, opSendMessage, err) }()

	roomID, err := parseRoomID(in.RoomID)
	if err != nil {
		return models.Message{}, err
	}
	senderID := strings.TrimSpace(in.SenderID)
	if senderID == "" {
		return models.Message{}, invalidArgument("senderId is required")
	}
	if strings.TrimSpace(in.Body) == "" {
		return models.Message{}, invalidArgument("message body is required")
	}

	if err := m.requireParticipant(ctx, roomID, senderID, "sender is not a participant of this conversation"); err != nil {
		return models.Message{}, err
	}

	msg, err = m.messages.CreateMessage(ctx, roomID, senderID, in.Body, in.SecondaryText)
	if err != nil {
		return models.Message{}, dependencyFailure("failed to store message", err)
	}
	return msg, nil
}

// DeleteConversation removes a room and its dependents, in this order:
// memberships, messages, room. A failed step stops the sequence and
// leaves earlier steps applied.
func (m *ConversationManager) DeleteConversation(ctx context.Context, rawRoomID string, userID string) (err error) {
	ctx, span := tracer.Start(ctx, "conversation.delete", trace.WithAttributes(
		attribute.String("room.id", rawRoomID),
		attribute.String("user.id", userID),
	))
	defer func() { finish(ctx, span, opDeleteConversation, err) }()

	roomID, err := parseRoomID(rawRoomID)
	if err != nil {
		return err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return invalidArgument("userId is required")
	}

	if _, err := m.loadRoom(ctx, roomID); err != nil {
		return err
	}
	if err := m.requireParticipant(ctx, roomID, userID, "user is not a participant of this conversation"); err != nil {
		return err
	}

	if err := m.participants.DeleteParticipants(ctx, roomID); err != nil {
		return dependencyFailure("failed to delete participants", err)
	}
	if err := m.messages.DeleteMessages(ctx, roomID); err != nil {
		return dependencyFailure("failed to delete messages", err)
	}
	if err := m.rooms.DeleteRoom(ctx, roomID); err != nil {
		return dependencyFailure("failed to delete chat room", err)
	}
	return nil
}

func (m *ConversationManager) loadRoom(ctx context.Context, roomID int) (models.ChatRoom, error) {
	room, err := m.rooms.GetRoom(ctx, roomID)
	if errors.Is(err, repositories.ErrRoomNotFound) {
		return models.ChatRoom{}, notFound("conversation not found")
	}
	if err != nil {
		return models.ChatRoom{}, dependencyFailure("failed to load chat room", err)
	}
	return room, nil
}

func (m *ConversationManager) requireParticipant(ctx context.Context, roomID int, userID string, deny string) error {
	member, err := m.participants.IsParticipant(ctx, roomID, userID)
	if err != nil {
		return dependencyFailure("failed to verify membership", err)
	}
	if !member {
		return forbidden(deny)
	}
	return nil
}

// parseRoomID accepts positive ids that fit the 32-bit chat_rooms.id column.
func parseRoomID(raw string) (int, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil || id <= 0 {
		return 0, invalidArgument("invalid conversation id")
	}
	return int(id), nil
}

func finish(ctx context.Context, span trace.Span, op string, err error) {
	observability.RecordOperation(op, outcomeOf(err))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if KindOf(err) == KindDependencyFailure {
			logger := logging.Ctx(ctx)
			logger.Error().Err(err).Str("operation", op).Msg("store call failed")
		}
	}
	span.End()
}
