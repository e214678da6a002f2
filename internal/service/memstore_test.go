package service_test

import (
	"context"
	"sort"
	"time"

	"conversation-service/internal/models"
	"conversation-service/internal/repositories"
)

// memStore is an in-memory stand-in for the three conversation repositories.
type memStore struct {
	rooms    map[int]models.ChatRoom
	members  map[int][]string
	messages []models.Message
	nextID   int
	clock    time.Time
}

func newMemStore() *memStore {
	return &memStore{
		rooms:   map[int]models.ChatRoom{},
		members: map[int][]string{},
		nextID:  1,
		clock:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *memStore) addRoom(id int, name string, members ...string) {
	now := s.tick()
	s.rooms[id] = models.ChatRoom{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}
	s.members[id] = append([]string(nil), members...)
}

func (s *memStore) GetRoom(_ context.Context, roomID int) (models.ChatRoom, error) {
	room, ok := s.rooms[roomID]
	if !ok {
		return models.ChatRoom{}, repositories.ErrRoomNotFound
	}
	return room, nil
}

func (s *memStore) ListRoomsByIDs(_ context.Context, roomIDs []int) ([]models.ChatRoom, error) {
	out := []models.ChatRoom{}
	for _, id := range roomIDs {
		if room, ok := s.rooms[id]; ok {
			out = append(out, room)
		}
	}
	return out, nil
}

func (s *memStore) DeleteRoom(_ context.Context, roomID int) error {
	delete(s.rooms, roomID)
	return nil
}

func (s *memStore) IsParticipant(_ context.Context, roomID int, userID string) (bool, error) {
	for _, m := range s.members[roomID] {
		if m == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) ListRoomIDsForUser(ctx context.Context, userID string) ([]int, error) {
	ids := []int{}
	for roomID := range s.members {
		if ok, _ := s.IsParticipant(ctx, roomID, userID); ok {
			ids = append(ids, roomID)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

func (s *memStore) ListParticipants(_ context.Context, roomID int) ([]models.Participant, error) {
	out := []models.Participant{}
	for _, userID := range s.members[roomID] {
		out = append(out, models.Participant{ChatRoomID: roomID, UserID: userID, User: models.UserSummary{ID: userID, Username: "name-" + userID}})
	}
	return out, nil
}

func (s *memStore) ListParticipantsForRooms(ctx context.Context, roomIDs []int) ([]models.Participant, error) {
	out := []models.Participant{}
	for _, id := range roomIDs {
		list, _ := s.ListParticipants(ctx, id)
		out = append(out, list...)
	}
	return out, nil
}

func (s *memStore) DeleteParticipants(_ context.Context, roomID int) error {
	delete(s.members, roomID)
	return nil
}

func (s *memStore) ListMessages(_ context.Context, roomID int) ([]models.Message, error) {
	out := []models.Message{}
	for _, m := range s.messages {
		if m.ChatRoomID == roomID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *memStore) LatestMessagesForRooms(ctx context.Context, roomIDs []int) ([]models.Message, error) {
	out := []models.Message{}
	for _, id := range roomIDs {
		msgs, _ := s.ListMessages(ctx, id)
		if len(msgs) > 0 {
			out = append(out, msgs[len(msgs)-1])
		}
	}
	return out, nil
}

func (s *memStore) CreateMessage(_ context.Context, roomID int, senderID string, body string, secondaryText *string) (models.Message, error) {
	now := s.tick()
	msg := models.Message{
		ID:            s.nextID,
		ChatRoomID:    roomID,
		SenderID:      senderID,
		Body:          body,
		SecondaryText: secondaryText,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.nextID++
	s.messages = append(s.messages, msg)
	return msg, nil
}

func (s *memStore) DeleteMessages(_ context.Context, roomID int) error {
	kept := s.messages[:0]
	for _, m := range s.messages {
		if m.ChatRoomID != roomID {
			kept = append(kept, m)
		}
	}
	s.messages = kept
	return nil
}

func (s *memStore) countMessages(roomID int) int {
	n := 0
	for _, m := range s.messages {
		if m.ChatRoomID == roomID {
			n++
		}
	}
	return n
}

var (
	_ repositories.RoomRepository        = (*memStore)(nil)
	_ repositories.ParticipantRepository = (*memStore)(nil)
	_ repositories.MessageRepository     = (*memStore)(nil)
)
