package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
)

// Token format: rb_<secret>
// Example: rb_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b
const (
	// TokenSecretLen is the hex-encoded secret length (32 random bytes).
	TokenSecretLen = 64
)

var (
	// ErrInvalidTokenFormat indicates the token format is invalid.
	ErrInvalidTokenFormat = errors.New("invalid token format")
	// tokenFormatRegex validates the token format.
	tokenFormatRegex = regexp.MustCompile(`^rb_[a-f0-9]{64}$`)
)

// GeneratedToken contains the parts of a newly generated bearer token.
type GeneratedToken struct {
	Plaintext string // Full token (show once only)
	Digest    string // SHA-256 hex digest for storage and lookup
}

// GenerateToken creates a new opaque bearer token.
// Returns the plaintext token (to show once) and its digest (to store).
func GenerateToken() (*GeneratedToken, error) {
	secretBytes := make([]byte, 32)
	if _, err := rand.Read(secretBytes); err != nil {
		return nil, fmt.Errorf("generate secret: %w", err)
	}

	plaintext := "rb_" + hex.EncodeToString(secretBytes)

	return &GeneratedToken{
		Plaintext: plaintext,
		Digest:    TokenDigest(plaintext),
	}, nil
}

// TokenDigest returns the SHA-256 hex digest of a plaintext token.
// Tokens are validated by digest lookup, so the digest must be
// deterministic; the token itself already carries full entropy.
func TokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateTokenFormat checks if the token matches the expected format.
func ValidateTokenFormat(token string) bool {
	return tokenFormatRegex.MatchString(token)
}
