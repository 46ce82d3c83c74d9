package model

import "time"

// Token represents a stored bearer token record.
// Only the SHA-256 digest of the opaque token is persisted; the plaintext
// value is returned to the client once at creation and never stored.
type Token struct {
	Digest     string
	UserID     string
	CreatedAt  time.Time
	LastUsedAt *time.Time
}
