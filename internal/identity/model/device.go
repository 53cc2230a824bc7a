package models

import "time"

type Device struct {
	ID     int64 `bun:",pk,autoincrement"`
	UserID int64 `bun:",notnull"`
	User   *User `bun:"rel:belongs-to,join:user_id=id"`

	// DeviceID is client-chosen, at most 64 bytes, globally unique across
	// all users.
	DeviceID string `bun:",unique,notnull"`

	// IdentityKey is the canonical base64 of a 32-33 byte public key.
	IdentityKey string `bun:",notnull"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
