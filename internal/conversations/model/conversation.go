package models

import "time"

// ConversationSummary is one row of the user-level conversation list,
// produced by an aggregate over the messages table. It is a scan target,
// not a mapped table.
type ConversationSummary struct {
	OtherUserUUID    string    `bun:"other_user_uuid"`
	LastMessageID    int64     `bun:"last_message_id"`
	LastMessageAt    time.Time `bun:"last_message_at"`
	LastFromDeviceID string    `bun:"last_from_device_id"`
	UnreadCount      int       `bun:"unread_count"`
}

// DirectedMessage is a message row joined with a precomputed direction
// relative to the querying user.
type DirectedMessage struct {
	ID                int64     `bun:"id"`
	SenderDeviceID    string    `bun:"sender_device_id"`
	RecipientDeviceID string    `bun:"recipient_device_id"`
	Ciphertext        string    `bun:"ciphertext"`
	Direction         string    `bun:"direction"`
	CreatedAt         time.Time `bun:"created_at"`
}
