package models

import "time"

type SignedPreKey struct {
	ID       int64  `bun:",pk,autoincrement"`
	DeviceID string `bun:",notnull,unique:spk_device_key"`

	KeyID int32 `bun:",notnull,unique:spk_device_key"` // client-chosen, > 0

	// Canonical base64: 32-33 byte public key, 48-80 byte signature. The
	// signature is opaque to the server; clients verify it.
	PublicKey string `bun:",notnull"`
	Signature string `bun:",notnull"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
