package domain

import "time"

// Session is a server-side login. Only the fingerprint of the bearer token
// is kept; the raw token is handed to the client exactly once.
type Session struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}
