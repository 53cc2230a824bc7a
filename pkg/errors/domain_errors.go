package errors

var (
	// Identity & device registry
	ErrInvalidEmail       = InvalidArg("invalid email")
	ErrWeakPassword       = InvalidArg("password must be at least 8 characters")
	ErrEmailTaken         = AlreadyExists("email already in use")
	ErrInvalidCredentials = Unauthorized("invalid credentials")
	ErrInvalidDeviceID    = InvalidArg("device_id must be 1-64 bytes")
	ErrDeviceIDTaken      = AlreadyExists("device_id already used")
	ErrUnknownUser        = NotFound("unknown user")

	// Key bundle manager
	ErrUnknownDevice        = NotFound("unknown device")
	ErrNoSignedPreKey       = NotFound("no signed prekey available")
	ErrInvalidSignedPreKey  = InvalidArg("invalid signed prekey")
	ErrInvalidPreKeySig     = InvalidArg("signed_prekey.signature length invalid")
	ErrInvalidOneTimePreKey = InvalidArg("invalid one-time prekey")
	ErrEmptyOneTimePreKeys  = InvalidArg("one_time_prekeys must be a non-empty array")
	ErrInvalidKeyID         = InvalidArg("key_id must be > 0")

	// Message store & delivery
	ErrSenderDeviceNotAllowed = Forbidden("sender device not allowed")
	ErrUnknownRecipientDevice = NotFound("unknown recipient device")
	ErrUnknownRecipientUser   = NotFound("unknown recipient user")
	ErrMissingCiphertext      = InvalidArg("missing ciphertext")
	ErrEmptyPayloads          = InvalidArg("payloads must be a non-empty array")

	// Delivery acknowledgement
	ErrNoIDs       = InvalidArg("no valid ids provided")
	ErrInvalidType = InvalidArg("type must be delivered or read")

	// Conversations
	ErrUnknownOtherDevice = NotFound("unknown other device")
	ErrUnknownOtherUser   = NotFound("unknown user")
	ErrMissingOtherUser   = InvalidArg("user_uuid is required")

	// Session auth
	ErrInvalidSession = Unauthorized("invalid or expired token")
)

func ErrKeyUploadFailed(cause error) error {
	return Wrap(CodeInternal, "failed to upload keys", cause)
}

func ErrBundleFetchFailed(cause error) error {
	return Wrap(CodeInternal, "failed to fetch bundle", cause)
}
