// Package keybytes validates base64-encoded key material structurally. The
// server never verifies signatures or inspects key contents beyond length.
package keybytes

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const (
	// Curve25519 public keys are 32 bytes; some clients prepend a key-type
	// byte, so 33 is accepted too.
	PublicKeyMin = 32
	PublicKeyMax = 33

	SignatureMin = 48
	SignatureMax = 80
)

// CanonicalPublicKey decodes a base64 public key, checks it is 32 or 33 raw
// bytes and re-encodes it so equivalent encodings collapse to one
// representation.
func CanonicalPublicKey(b64 string) (string, error) {
	raw, err := decode(b64)
	if err != nil {
		return "", err
	}
	if len(raw) < PublicKeyMin || len(raw) > PublicKeyMax {
		return "", fmt.Errorf("must decode to %d or %d bytes, got %d", PublicKeyMin, PublicKeyMax, len(raw))
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// CanonicalSignature does the same for signed-prekey signatures (48-80 raw
// bytes after decode).
func CanonicalSignature(b64 string) (string, error) {
	raw, err := decode(b64)
	if err != nil {
		return "", err
	}
	if len(raw) < SignatureMin || len(raw) > SignatureMax {
		return "", fmt.Errorf("length invalid: got %d bytes", len(raw))
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func decode(b64 string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(b64))
	if err != nil {
		return nil, fmt.Errorf("must be valid base64")
	}
	return raw, nil
}
