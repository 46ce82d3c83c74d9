package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/recipebox/recipebox/internal/model"
)

// ErrTokenNotFound indicates no token matches the given digest.
var ErrTokenNotFound = errors.New("token not found")

// CreateToken inserts a new bearer token record.
func (r *Repository) CreateToken(ctx context.Context, token *model.Token) error {
	query := `
		INSERT INTO tokens (digest, user_id, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.pool.Exec(ctx, query, token.Digest, token.UserID, token.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}

	return nil
}

// GetTokenByDigest retrieves a token record by its digest.
// This is the hot path for request authentication.
func (r *Repository) GetTokenByDigest(ctx context.Context, digest string) (*model.Token, error) {
	query := `
		SELECT digest, user_id, created_at, last_used_at
		FROM tokens
		WHERE digest = $1
	`

	var token model.Token
	err := r.pool.QueryRow(ctx, query, digest).Scan(
		&token.Digest,
		&token.UserID,
		&token.CreatedAt,
		&token.LastUsedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get token by digest: %w", err)
	}

	return &token, nil
}

// DeleteToken removes a token record, revoking the bearer token.
func (r *Repository) DeleteToken(ctx context.Context, digest string) error {
	query := `DELETE FROM tokens WHERE digest = $1`

	result, err := r.pool.Exec(ctx, query, digest)
	if err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTokenNotFound
	}

	return nil
}

// TouchToken updates the last_used_at timestamp of a token.
// Called asynchronously from the auth middleware.
func (r *Repository) TouchToken(ctx context.Context, digest string, usedAt time.Time) error {
	query := `UPDATE tokens SET last_used_at = $2 WHERE digest = $1`

	_, err := r.pool.Exec(ctx, query, digest, usedAt)
	if err != nil {
		return fmt.Errorf("failed to touch token: %w", err)
	}

	return nil
}
