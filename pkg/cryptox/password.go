package cryptox

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Configuration for PBKDF2 hashing.
const (
	// DefaultIterations follows the OWASP recommendation for PBKDF2-HMAC-SHA512.
	DefaultIterations = 310000
	keyLength         = 64 // Length of the derived key in bytes
	saltLength        = 16 // Length of the salt in bytes
)

// NewSalt returns a random hex encoded salt suitable for HashPassword.
func NewSalt() (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(salt), nil
}

// HashPassword derives a PBKDF2-HMAC-SHA512 key from the password and salt
// and returns it hex encoded. The same inputs always yield the same digest.
func HashPassword(password, salt string, iterations int) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, keyLength, sha512.New)
	return hex.EncodeToString(key)
}

// VerifyPassword recomputes the digest for password and compares it against
// storedHash in constant time. A malformed stored hash or a non-positive
// iteration count never verifies.
func VerifyPassword(password, salt string, iterations int, storedHash string) bool {
	if iterations <= 0 {
		return false
	}

	expected, err := hex.DecodeString(storedHash)
	if err != nil || len(expected) != keyLength {
		return false
	}

	computed := pbkdf2.Key([]byte(password), []byte(salt), iterations, keyLength, sha512.New)
	return subtle.ConstantTimeCompare(computed, expected) == 1
}
