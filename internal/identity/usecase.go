package identity

import "context"

type Usecase interface {
	// Register creates a user from email+password. The password is hashed
	// with argon2id and never retained.
	Register(ctx context.Context, cmd RegisterCommand) (*RegisteredUserDTO, error)

	// Login checks credentials and mints a session token bound to
	// (user, device_id ?? "unknown") with a fixed TTL. Unknown email and
	// wrong password are indistinguishable to the caller.
	Login(ctx context.Context, cmd LoginCommand) (*LoginDTO, error)

	// RegisterDevice binds a new device (globally unique id, canonicalized
	// identity key) to the user.
	RegisterDevice(ctx context.Context, userID int64, cmd RegisterDeviceCommand) (*DeviceDTO, error)

	// ListDevices returns the device ids registered for a user uuid, oldest
	// first.
	ListDevices(ctx context.Context, userUUID string) ([]string, error)

	// Authenticate resolves a bearer token to its principal; expired or
	// unknown tokens fail uniformly.
	Authenticate(ctx context.Context, token string) (*Principal, error)
}
