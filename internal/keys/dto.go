package keys

import "time"

// Input commands
type SignedPreKeyUpload struct {
	KeyID     int32
	PublicKey string // base64
	Signature string // base64
}

type OneTimePreKeyUpload struct {
	KeyID     int32
	PublicKey string // base64
}

type UploadKeysCommand struct {
	SignedPreKey   *SignedPreKeyUpload
	OneTimePreKeys []OneTimePreKeyUpload
}

// Output DTOs
type UploadSummaryDTO struct {
	Status                 string `json:"status"`
	DeviceID               string `json:"device_id"`
	SignedPreKeyKeyID      int32  `json:"signed_prekey_key_id"`
	OneTimePreKeysReceived int    `json:"one_time_prekeys_received"`
}

type SignedPreKeyDTO struct {
	KeyID     int32  `json:"key_id"`
	PublicKey string `json:"public_key"`
	Signature string `json:"signature"`
}

type OneTimePreKeyDTO struct {
	KeyID     int32  `json:"key_id"`
	PublicKey string `json:"public_key"`
}

type BundleDTO struct {
	DeviceID      string            `json:"device_id"`
	IdentityKey   string            `json:"identity_key"`
	SignedPreKey  SignedPreKeyDTO   `json:"signed_prekey"`
	OneTimePreKey *OneTimePreKeyDTO `json:"one_time_prekey"`
}

type SignedPreKeySummaryDTO struct {
	KeyID     int32     `json:"key_id"`
	CreatedAt time.Time `json:"created_at"`
}

type PoolStatusDTO struct {
	Unused            int  `json:"unused"`
	MinRequired       int  `json:"min_required"`
	MaxAllowed        int  `json:"max_allowed"`
	NeedsMore         bool `json:"needs_more"`
	RecommendedUpload int  `json:"recommended_upload"`
}

type StatusDTO struct {
	DeviceID       string                  `json:"device_id"`
	SignedPreKey   *SignedPreKeySummaryDTO `json:"signed_prekey"`
	OneTimePreKeys PoolStatusDTO           `json:"one_time_prekeys"`
}
