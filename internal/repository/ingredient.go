package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/recipebox/recipebox/internal/model"
)

// ErrIngredientNotFound indicates the ingredient does not exist or is not
// owned by the caller.
var ErrIngredientNotFound = errors.New("ingredient not found")

// CreateIngredient inserts a new ingredient into the database.
func (r *Repository) CreateIngredient(ctx context.Context, ingredient *model.Ingredient) error {
	query := `
		INSERT INTO ingredients (id, user_id, name, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, ingredient.ID, ingredient.UserID, ingredient.Name, ingredient.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create ingredient: %w", err)
	}

	return nil
}

// ListIngredients retrieves all ingredients owned by a user, ordered by name
// descending. Ties break on id so repeated calls return a stable order.
func (r *Repository) ListIngredients(ctx context.Context, userID string) ([]*model.Ingredient, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM ingredients
		WHERE user_id = $1
		ORDER BY name DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []*model.Ingredient
	for rows.Next() {
		var ing model.Ingredient
		if err := rows.Scan(&ing.ID, &ing.UserID, &ing.Name, &ing.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		ingredients = append(ingredients, &ing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ingredients: %w", err)
	}

	return ingredients, nil
}

// GetIngredient retrieves an ingredient by id, scoped to its owner.
func (r *Repository) GetIngredient(ctx context.Context, userID, id string) (*model.Ingredient, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM ingredients
		WHERE id = $1 AND user_id = $2
	`

	var ing model.Ingredient
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(&ing.ID, &ing.UserID, &ing.Name, &ing.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrIngredientNotFound
		}
		return nil, fmt.Errorf("failed to get ingredient: %w", err)
	}

	return &ing, nil
}

// CountIngredientsByIDs returns how many of the given ingredient ids exist
// and are owned by the user. Used to validate recipe relation payloads.
func (r *Repository) CountIngredientsByIDs(ctx context.Context, userID string, ids []string) (int, error) {
	query := `SELECT COUNT(*) FROM ingredients WHERE user_id = $1 AND id = ANY($2)`

	var count int
	if err := r.pool.QueryRow(ctx, query, userID, ids).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count ingredients: %w", err)
	}

	return count, nil
}
