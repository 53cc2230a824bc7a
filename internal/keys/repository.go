package keys

import (
	"context"

	models "github.com/alexmenard/e2ee-api/internal/keys/model"
)

type Repository interface {
	// SaveKeys upserts the signed prekey by (device_id, key_id) and inserts
	// the one-time prekeys, skipping rows that already exist, all in one
	// transaction.
	SaveKeys(ctx context.Context, spk *models.SignedPreKey, otpks []models.OneTimePreKey) error

	// PruneSignedPreKeys deletes all but the `keep` most recent signed
	// prekeys for the device. Runs outside the upload transaction.
	PruneSignedPreKeys(ctx context.Context, deviceID string, keep int) error

	// ClaimBundle assembles identity key + latest signed prekey + the oldest
	// unused one-time prekey (marked used under a row lock, in the same
	// transaction). A drained pool yields a nil OneTimePreKey, not an error.
	ClaimBundle(ctx context.Context, deviceID string) (*models.PreKeyBundle, error)

	LatestSignedPreKey(ctx context.Context, deviceID string) (*models.SignedPreKey, error)
	CountUnusedOneTimePreKeys(ctx context.Context, deviceID string) (int, error)
}
