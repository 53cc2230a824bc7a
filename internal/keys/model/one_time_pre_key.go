package models

import "time"

type OneTimePreKey struct {
	ID       int64  `bun:",pk,autoincrement"`
	DeviceID string `bun:",notnull,unique:otpk_device_key"`

	KeyID int32 `bun:",notnull,unique:otpk_device_key"`

	PublicKey string `bun:",notnull"`

	// UsedAt transitions null -> timestamp exactly once, under a row lock in
	// the bundle claim transaction. It is never cleared.
	UsedAt *time.Time `bun:",nullzero"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
