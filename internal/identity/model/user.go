package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID int64 `bun:",pk,autoincrement"`

	// UUID is the only user-facing identifier; ID never leaves the system.
	UUID uuid.UUID `bun:",notnull,unique,type:uuid"`

	// Email is stored lower-cased and trimmed; uniqueness is case-insensitive
	// by construction.
	Email string `bun:",unique,notnull"`

	PasswordHash string `bun:",notnull"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
