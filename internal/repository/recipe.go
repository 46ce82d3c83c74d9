package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/recipebox/recipebox/internal/model"
)

// Common errors for recipe repository operations.
var (
	ErrRecipeNotFound    = errors.New("recipe not found")
	ErrTagUnknown        = errors.New("tag does not exist")
	ErrIngredientUnknown = errors.New("ingredient does not exist")
)

// RecipeFilter defines filters for listing recipes.
// TagIDs/IngredientIDs, when non-empty, restrict the result to recipes whose
// relation set intersects the given ids.
type RecipeFilter struct {
	UserID        string
	TagIDs        []string
	IngredientIDs []string
}

// CreateRecipe inserts a new recipe and its relation rows in one transaction.
func (r *Repository) CreateRecipe(ctx context.Context, recipe *model.Recipe, tagIDs, ingredientIDs []string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO recipes (id, user_id, title, time_minutes, price, link, image_path, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8, $9)
		`

		_, err := tx.Exec(ctx, query,
			recipe.ID,
			recipe.UserID,
			recipe.Title,
			recipe.TimeMinutes,
			recipe.Price,
			recipe.Link,
			recipe.ImagePath,
			recipe.CreatedAt,
			recipe.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}

		if err := insertRecipeTags(ctx, tx, recipe.ID, tagIDs); err != nil {
			return err
		}
		return insertRecipeIngredients(ctx, tx, recipe.ID, ingredientIDs)
	})
}

// GetRecipe retrieves a recipe by id, scoped to its owner, with full tag and
// ingredient objects loaded.
func (r *Repository) GetRecipe(ctx context.Context, userID, id string) (*model.Recipe, error) {
	query := `
		SELECT id, user_id, title, time_minutes, price::text, link, image_path, created_at, updated_at
		FROM recipes
		WHERE id = $1 AND user_id = $2
	`

	var recipe model.Recipe
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&recipe.ID,
		&recipe.UserID,
		&recipe.Title,
		&recipe.TimeMinutes,
		&recipe.Price,
		&recipe.Link,
		&recipe.ImagePath,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	tags, err := r.listRecipeTags(ctx, recipe.ID)
	if err != nil {
		return nil, err
	}
	recipe.Tags = tags
	for _, tag := range tags {
		recipe.TagIDs = append(recipe.TagIDs, tag.ID)
	}

	ingredients, err := r.listRecipeIngredients(ctx, recipe.ID)
	if err != nil {
		return nil, err
	}
	recipe.Ingredients = ingredients
	for _, ing := range ingredients {
		recipe.IngredientIDs = append(recipe.IngredientIDs, ing.ID)
	}

	return &recipe, nil
}

// ListRecipes retrieves recipes matching the filter, ordered by id
// descending (most recent first; ids are time-ordered ULIDs). Relation ids
// are aggregated in the same query.
func (r *Repository) ListRecipes(ctx context.Context, filter RecipeFilter) ([]*model.Recipe, error) {
	query := `
		SELECT r.id, r.user_id, r.title, r.time_minutes, r.price::text, r.link, r.image_path,
		       r.created_at, r.updated_at,
		       COALESCE(array_agg(DISTINCT rt.tag_id) FILTER (WHERE rt.tag_id IS NOT NULL), '{}'),
		       COALESCE(array_agg(DISTINCT ri.ingredient_id) FILTER (WHERE ri.ingredient_id IS NOT NULL), '{}')
		FROM recipes r
		LEFT JOIN recipe_tags rt ON rt.recipe_id = r.id
		LEFT JOIN recipe_ingredients ri ON ri.recipe_id = r.id
		WHERE r.user_id = $1
	`
	args := []any{filter.UserID}
	argIndex := 2

	if len(filter.TagIDs) > 0 {
		query += fmt.Sprintf(" AND r.id IN (SELECT recipe_id FROM recipe_tags WHERE tag_id = ANY($%d))", argIndex)
		args = append(args, filter.TagIDs)
		argIndex++
	}

	if len(filter.IngredientIDs) > 0 {
		query += fmt.Sprintf(" AND r.id IN (SELECT recipe_id FROM recipe_ingredients WHERE ingredient_id = ANY($%d))", argIndex)
		args = append(args, filter.IngredientIDs)
		argIndex++
	}

	query += " GROUP BY r.id ORDER BY r.id DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []*model.Recipe
	for rows.Next() {
		var recipe model.Recipe
		err := rows.Scan(
			&recipe.ID,
			&recipe.UserID,
			&recipe.Title,
			&recipe.TimeMinutes,
			&recipe.Price,
			&recipe.Link,
			&recipe.ImagePath,
			&recipe.CreatedAt,
			&recipe.UpdatedAt,
			&recipe.TagIDs,
			&recipe.IngredientIDs,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, &recipe)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recipes: %w", err)
	}

	return recipes, nil
}

// UpdateRecipe updates a recipe's mutable fields. When tagIDs or
// ingredientIDs is non-nil the corresponding relation is replaced with the
// given set; nil leaves the relation untouched. Everything runs in one
// transaction.
func (r *Repository) UpdateRecipe(ctx context.Context, recipe *model.Recipe, tagIDs, ingredientIDs []string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			UPDATE recipes
			SET title = $3, time_minutes = $4, price = $5::numeric, link = $6, updated_at = $7
			WHERE id = $1 AND user_id = $2
		`

		result, err := tx.Exec(ctx, query,
			recipe.ID,
			recipe.UserID,
			recipe.Title,
			recipe.TimeMinutes,
			recipe.Price,
			recipe.Link,
			recipe.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}
		if result.RowsAffected() == 0 {
			return ErrRecipeNotFound
		}

		if tagIDs != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM recipe_tags WHERE recipe_id = $1`, recipe.ID); err != nil {
				return fmt.Errorf("failed to clear recipe tags: %w", err)
			}
			if err := insertRecipeTags(ctx, tx, recipe.ID, tagIDs); err != nil {
				return err
			}
		}

		if ingredientIDs != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, recipe.ID); err != nil {
				return fmt.Errorf("failed to clear recipe ingredients: %w", err)
			}
			if err := insertRecipeIngredients(ctx, tx, recipe.ID, ingredientIDs); err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteRecipe removes a recipe owned by the user. Relation rows cascade.
func (r *Repository) DeleteRecipe(ctx context.Context, userID, id string) error {
	query := `DELETE FROM recipes WHERE id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}

	return nil
}

// SetRecipeImage records the stored image path for a recipe.
func (r *Repository) SetRecipeImage(ctx context.Context, userID, id, imagePath string) error {
	query := `
		UPDATE recipes
		SET image_path = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.pool.Exec(ctx, query, id, userID, imagePath)
	if err != nil {
		return fmt.Errorf("failed to set recipe image: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}

	return nil
}

// listRecipeTags loads the tags attached to a recipe, ordered by name descending.
func (r *Repository) listRecipeTags(ctx context.Context, recipeID string) ([]*model.Tag, error) {
	query := `
		SELECT t.id, t.user_id, t.name, t.created_at
		FROM tags t
		JOIN recipe_tags rt ON rt.tag_id = t.id
		WHERE rt.recipe_id = $1
		ORDER BY t.name DESC, t.id DESC
	`

	rows, err := r.pool.Query(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipe tags: %w", err)
	}
	defer rows.Close()

	var tags []*model.Tag
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ID, &tag.UserID, &tag.Name, &tag.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recipe tag: %w", err)
		}
		tags = append(tags, &tag)
	}

	return tags, rows.Err()
}

// listRecipeIngredients loads the ingredients attached to a recipe, ordered
// by name descending.
func (r *Repository) listRecipeIngredients(ctx context.Context, recipeID string) ([]*model.Ingredient, error) {
	query := `
		SELECT i.id, i.user_id, i.name, i.created_at
		FROM ingredients i
		JOIN recipe_ingredients ri ON ri.ingredient_id = i.id
		WHERE ri.recipe_id = $1
		ORDER BY i.name DESC, i.id DESC
	`

	rows, err := r.pool.Query(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipe ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []*model.Ingredient
	for rows.Next() {
		var ing model.Ingredient
		if err := rows.Scan(&ing.ID, &ing.UserID, &ing.Name, &ing.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recipe ingredient: %w", err)
		}
		ingredients = append(ingredients, &ing)
	}

	return ingredients, rows.Err()
}

func insertRecipeTags(ctx context.Context, tx pgx.Tx, recipeID string, tagIDs []string) error {
	for _, tagID := range tagIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO recipe_tags (recipe_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			recipeID, tagID,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return ErrTagUnknown
			}
			return fmt.Errorf("failed to attach tag: %w", err)
		}
	}
	return nil
}

func insertRecipeIngredients(ctx context.Context, tx pgx.Tx, recipeID string, ingredientIDs []string) error {
	for _, ingredientID := range ingredientIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO recipe_ingredients (recipe_id, ingredient_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			recipeID, ingredientID,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return ErrIngredientUnknown
			}
			return fmt.Errorf("failed to attach ingredient: %w", err)
		}
	}
	return nil
}
