package domain

import (
	"strings"
	"time"
)

type User struct {
	ID           string
	Name         string // optional display name
	Email        string // lower-cased, trimmed
	PasswordHash string // hex PBKDF2-HMAC-SHA512
	Salt         string // hex
	Iterations   int
	CreatedAt    time.Time
}

// NormalizeEmail returns the canonical stored form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SameEmail reports whether two addresses refer to the same mailbox.
func SameEmail(a, b string) bool {
	return NormalizeEmail(a) == NormalizeEmail(b)
}
