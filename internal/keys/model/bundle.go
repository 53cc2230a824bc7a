package models

// PreKeyBundle is everything a sender needs to start an X3DH handshake with a
// device. OneTimePreKey is nil when the pool is drained; the sender falls
// back to a signed-prekey-only handshake.
type PreKeyBundle struct {
	DeviceID      string
	IdentityKey   string
	SignedPreKey  SignedPreKey
	OneTimePreKey *OneTimePreKey
}
