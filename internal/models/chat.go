package models

import "time"

// ChatRoom is a named conversation container.
type ChatRoom struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// UserSummary is the public projection of a user joined onto chat rows.
type UserSummary struct {
	ID             string  `db:"id" json:"id"`
	Username       string  `db:"username" json:"username"`
	ProfilePicture *string `db:"profile_picture" json:"profile_picture"`
}

// Participant is a membership row together with the member's projection.
type Participant struct {
	ChatRoomID int         `db:"chat_room_id" json:"chat_room_id"`
	UserID     string      `db:"user_id" json:"user_id"`
	User       UserSummary `db:"user" json:"user"`
}

// Conversation is the full view of one chat room.
type Conversation struct {
	ChatRoom     ChatRoom      `json:"chatRoom"`
	Participants []Participant `json:"participants"`
	Messages     []Message     `json:"messages"`
	MessageCount int           `json:"messageCount"`
}

// ConversationSummary is the list-view projection of a chat room.
//
// UnreadCount is never computed; UnreadCountComputed stays false until
// read tracking exists.
type ConversationSummary struct {
	ID                  int           `json:"id"`
	Name                string        `json:"name"`
	Description         *string       `json:"description"`
	Participants        []Participant `json:"participants"`
	LastMessage         *Message      `json:"lastMessage"`
	UnreadCount         int           `json:"unreadCount"`
	UnreadCountComputed bool          `json:"unreadCountComputed"`
	UpdatedAt           time.Time     `json:"updated_at"`
}
