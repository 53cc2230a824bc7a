package models

import "time"

// Message is an opaque ciphertext envelope between two devices. Rows are
// immutable except for the two acknowledgement timestamps, which only move
// null -> non-null and are never cleared. read_at non-null implies
// delivered_at non-null.
type Message struct {
	ID int64 `bun:",pk,autoincrement"`

	SenderDeviceID    string `bun:",notnull"`
	RecipientDeviceID string `bun:",notnull"`

	// Ciphertext is never inspected, decrypted or validated structurally.
	Ciphertext string `bun:",notnull"`

	CreatedAt   time.Time  `bun:",nullzero,notnull,default:current_timestamp"`
	DeliveredAt *time.Time `bun:",nullzero"`
	ReadAt      *time.Time `bun:",nullzero"`
}
