package models

import "time"

// Message is a chat message. Sender is only populated on reads.
type Message struct {
	ID            int          `db:"id" json:"id"`
	ChatRoomID    int          `db:"chat_room_id" json:"chat_room_id"`
	SenderID      string       `db:"sender_id" json:"sender_id"`
	Body          string       `db:"body" json:"body"`
	SecondaryText *string      `db:"secondary_text" json:"secondary_text"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at" json:"updated_at"`
	Sender        *UserSummary `db:"sender" json:"sender,omitempty"`
}
