package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// SecretBytes is the entropy behind session and invite tokens (256 bits,
// 43 base64url characters).
const SecretBytes = 32

// NewSecret returns a fresh opaque bearer token together with the
// fingerprint that gets persisted in its place.
func NewSecret() (raw, fingerprint string, err error) {
	buf := make([]byte, SecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("read random secret: %w", err)
	}
	raw = base64.RawURLEncoding.EncodeToString(buf)
	return raw, Fingerprint(raw), nil
}

// Fingerprint is the SHA-256 of raw, base64url encoded. Lookups by token
// go through the fingerprint, so a leaked table does not leak sessions.
func Fingerprint(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
