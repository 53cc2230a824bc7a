package models

import "time"

// Session is read-only after creation; expiry is never extended. A new login
// issues a new token.
type Session struct {
	Token     string    `bun:",pk"`
	UserID    int64     `bun:",notnull"`
	DeviceID  string    `bun:",notnull"`
	ExpiresAt time.Time `bun:",notnull"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
