package identity

// NOTE: commands travel from handler to usecase, DTOs travel back.

// Input commands
type RegisterCommand struct {
	Email    string
	Password string
}

type LoginCommand struct {
	Email    string
	Password string
	DeviceID string // optional; "unknown" when absent
}

type RegisterDeviceCommand struct {
	DeviceID    string
	IdentityKey string // base64, canonicalized before storage
}

// Output DTOs
type RegisteredUserDTO struct {
	UserUUID string `json:"user_uuid"`
}

type LoginDTO struct {
	Token    string `json:"token"`
	UserUUID string `json:"user_uuid"`
	DeviceID string `json:"device_id"`
}

type DeviceDTO struct {
	DeviceID string `json:"device_id"`
	Status   string `json:"status"`
}

// Principal is the resolved (user, device) behind a session token.
type Principal struct {
	UserID   int64
	UserUUID string
	DeviceID string
}
