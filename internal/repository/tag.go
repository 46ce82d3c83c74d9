package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/recipebox/recipebox/internal/model"
)

// ErrTagNotFound indicates the tag does not exist or is not owned by the caller.
var ErrTagNotFound = errors.New("tag not found")

// CreateTag inserts a new tag into the database.
func (r *Repository) CreateTag(ctx context.Context, tag *model.Tag) error {
	query := `
		INSERT INTO tags (id, user_id, name, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, tag.ID, tag.UserID, tag.Name, tag.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	return nil
}

// ListTags retrieves all tags owned by a user, ordered by name descending.
// Ties break on id so repeated calls return a stable order.
func (r *Repository) ListTags(ctx context.Context, userID string) ([]*model.Tag, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM tags
		WHERE user_id = $1
		ORDER BY name DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	var tags []*model.Tag
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ID, &tag.UserID, &tag.Name, &tag.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, &tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}

	return tags, nil
}

// GetTag retrieves a tag by id, scoped to its owner.
func (r *Repository) GetTag(ctx context.Context, userID, id string) (*model.Tag, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM tags
		WHERE id = $1 AND user_id = $2
	`

	var tag model.Tag
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(&tag.ID, &tag.UserID, &tag.Name, &tag.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	return &tag, nil
}

// CountTagsByIDs returns how many of the given tag ids exist and are owned
// by the user. Used to validate recipe relation payloads.
func (r *Repository) CountTagsByIDs(ctx context.Context, userID string, ids []string) (int, error) {
	query := `SELECT COUNT(*) FROM tags WHERE user_id = $1 AND id = ANY($2)`

	var count int
	if err := r.pool.QueryRow(ctx, query, userID, ids).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tags: %w", err)
	}

	return count, nil
}
