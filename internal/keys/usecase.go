package keys

import "context"

type Usecase interface {
	// UploadKeys validates and stores a signed prekey plus a non-empty batch
	// of one-time prekeys atomically, then prunes the device's signed
	// prekeys to the 2 most recent.
	UploadKeys(ctx context.Context, deviceID string, cmd UploadKeysCommand) (*UploadSummaryDTO, error)

	// FetchBundle returns everything needed for the sender to perform X3DH,
	// consuming at most one one-time prekey.
	FetchBundle(ctx context.Context, deviceID string) (*BundleDTO, error)

	// Status is a read-only diagnostic so clients know when to top up the
	// one-time prekey pool.
	Status(ctx context.Context, deviceID string) (*StatusDTO, error)
}
