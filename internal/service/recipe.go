package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/recipebox/recipebox/internal/model"
	"github.com/recipebox/recipebox/internal/repository"
	"github.com/recipebox/recipebox/internal/storage"
)

// Recipe service errors.
var (
	ErrEmptyTitle        = errors.New("title must not be empty")
	ErrInvalidTime       = errors.New("time_minutes must be zero or positive")
	ErrInvalidPrice      = errors.New("price must be a decimal with at most two places")
	ErrRecipeNotFound    = errors.New("recipe not found")
	ErrUnknownTag        = errors.New("unknown tag id")
	ErrUnknownIngredient = errors.New("unknown ingredient id")
)

// priceRegex accepts non-negative decimals with up to six integer digits and
// up to two fractional digits, matching the numeric(8,2) column.
var priceRegex = regexp.MustCompile(`^\d{1,6}(\.\d{1,2})?$`)

// RecipeService handles recipe business logic.
type RecipeService struct {
	repo  *repository.Repository
	media *storage.MediaStore
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(repo *repository.Repository, media *storage.MediaStore) *RecipeService {
	return &RecipeService{repo: repo, media: media}
}

// ListRecipesInput defines input for listing recipes.
type ListRecipesInput struct {
	UserID        string
	TagIDs        []string
	IngredientIDs []string
}

// ListRecipes returns the caller's recipes, newest first, optionally
// restricted to recipes whose tag/ingredient set intersects the given ids.
func (s *RecipeService) ListRecipes(ctx context.Context, input ListRecipesInput) ([]*model.Recipe, error) {
	filter := repository.RecipeFilter{
		UserID:        input.UserID,
		TagIDs:        input.TagIDs,
		IngredientIDs: input.IngredientIDs,
	}
	return s.repo.ListRecipes(ctx, filter)
}

// GetRecipe returns a recipe with nested tags and ingredients.
// Recipes owned by other users are indistinguishable from missing ones.
func (s *RecipeService) GetRecipe(ctx context.Context, userID, id string) (*model.Recipe, error) {
	recipe, err := s.repo.GetRecipe(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

// CreateRecipeInput defines input for creating a recipe.
type CreateRecipeInput struct {
	UserID        string
	Title         string
	TimeMinutes   int
	Price         string
	Link          string
	TagIDs        []string
	IngredientIDs []string
}

// CreateRecipe creates a recipe owned by the caller.
// Tag/ingredient ids must belong to the caller; ids owned by other users are
// rejected the same way as nonexistent ones.
func (s *RecipeService) CreateRecipe(ctx context.Context, input CreateRecipeInput) (*model.Recipe, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if input.TimeMinutes < 0 {
		return nil, ErrInvalidTime
	}

	price, err := normalizePrice(input.Price)
	if err != nil {
		return nil, err
	}

	tagIDs := dedupe(input.TagIDs)
	ingredientIDs := dedupe(input.IngredientIDs)
	if err := s.checkRelations(ctx, input.UserID, tagIDs, ingredientIDs); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	recipe := &model.Recipe{
		ID:          ulid.Make().String(),
		UserID:      input.UserID,
		Title:       title,
		TimeMinutes: input.TimeMinutes,
		Price:       price,
		Link:        input.Link,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateRecipe(ctx, recipe, tagIDs, ingredientIDs); err != nil {
		if mapped := mapRelationError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	return s.GetRecipe(ctx, input.UserID, recipe.ID)
}

// UpdateRecipeInput defines input for updating a recipe.
// Nil pointers mean "not supplied". TagIDs/IngredientIDs nil means the key
// was absent from the payload.
type UpdateRecipeInput struct {
	UserID        string
	ID            string
	Title         *string
	TimeMinutes   *int
	Price         *string
	Link          *string
	TagIDs        []string
	IngredientIDs []string

	// Partial distinguishes PATCH from PUT. A full update requires title,
	// time_minutes and price, clears the link when absent, and replaces the
	// relation sets with whatever was supplied (absent means empty).
	Partial bool
}

// UpdateRecipe applies a partial or full recipe update.
func (s *RecipeService) UpdateRecipe(ctx context.Context, input UpdateRecipeInput) (*model.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	if !input.Partial {
		if input.Title == nil || input.TimeMinutes == nil || input.Price == nil {
			return nil, ErrMissingFields
		}
		if input.Link == nil {
			empty := ""
			input.Link = &empty
		}
		if input.TagIDs == nil {
			input.TagIDs = []string{}
		}
		if input.IngredientIDs == nil {
			input.IngredientIDs = []string{}
		}
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrEmptyTitle
		}
		recipe.Title = title
	}

	if input.TimeMinutes != nil {
		if *input.TimeMinutes < 0 {
			return nil, ErrInvalidTime
		}
		recipe.TimeMinutes = *input.TimeMinutes
	}

	if input.Price != nil {
		price, err := normalizePrice(*input.Price)
		if err != nil {
			return nil, err
		}
		recipe.Price = price
	}

	if input.Link != nil {
		recipe.Link = *input.Link
	}

	tagIDs := input.TagIDs
	if tagIDs != nil {
		tagIDs = dedupe(tagIDs)
	}
	ingredientIDs := input.IngredientIDs
	if ingredientIDs != nil {
		ingredientIDs = dedupe(ingredientIDs)
	}
	if err := s.checkRelations(ctx, input.UserID, tagIDs, ingredientIDs); err != nil {
		return nil, err
	}

	recipe.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateRecipe(ctx, recipe, tagIDs, ingredientIDs); err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, ErrRecipeNotFound
		}
		if mapped := mapRelationError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("update recipe: %w", err)
	}

	return s.GetRecipe(ctx, input.UserID, input.ID)
}

// DeleteRecipe removes a recipe owned by the caller.
// The stored image file, if any, is removed best-effort after the row.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, id string) error {
	recipe, err := s.GetRecipe(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteRecipe(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return ErrRecipeNotFound
		}
		return fmt.Errorf("delete recipe: %w", err)
	}

	if recipe.HasImage() {
		_ = s.media.Remove(recipe.ImagePath)
	}

	return nil
}

// checkRelations verifies every tag/ingredient id exists and is owned by the
// caller. Owner-scoped counting means another user's ids look nonexistent.
func (s *RecipeService) checkRelations(ctx context.Context, userID string, tagIDs, ingredientIDs []string) error {
	if len(tagIDs) > 0 {
		count, err := s.repo.CountTagsByIDs(ctx, userID, tagIDs)
		if err != nil {
			return fmt.Errorf("check tags: %w", err)
		}
		if count != len(tagIDs) {
			return ErrUnknownTag
		}
	}

	if len(ingredientIDs) > 0 {
		count, err := s.repo.CountIngredientsByIDs(ctx, userID, ingredientIDs)
		if err != nil {
			return fmt.Errorf("check ingredients: %w", err)
		}
		if count != len(ingredientIDs) {
			return ErrUnknownIngredient
		}
	}

	return nil
}

// mapRelationError translates junction FK failures into the matching service
// error. These only fire when a tag or ingredient is deleted between the
// checkRelations pass and the insert.
func mapRelationError(err error) error {
	switch {
	case errors.Is(err, repository.ErrTagUnknown):
		return ErrUnknownTag
	case errors.Is(err, repository.ErrIngredientUnknown):
		return ErrUnknownIngredient
	default:
		return nil
	}
}

// normalizePrice validates a decimal string and pads it to two fractional
// digits, e.g. "5" -> "5.00", "5.5" -> "5.50".
func normalizePrice(price string) (string, error) {
	price = strings.TrimSpace(price)
	if !priceRegex.MatchString(price) {
		return "", ErrInvalidPrice
	}

	dot := strings.IndexByte(price, '.')
	switch {
	case dot < 0:
		return price + ".00", nil
	case len(price)-dot-1 == 1:
		return price + "0", nil
	default:
		return price, nil
	}
}

// dedupe returns the ids with duplicates removed, order preserved.
func dedupe(ids []string) []string {
	if len(ids) == 0 {
		return ids
	}

	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
