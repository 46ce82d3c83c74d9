package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/recipebox/recipebox/internal/model"
	"github.com/recipebox/recipebox/internal/repository"
)

// IngredientService handles ingredient business logic.
type IngredientService struct {
	repo *repository.Repository
}

// NewIngredientService creates a new IngredientService.
func NewIngredientService(repo *repository.Repository) *IngredientService {
	return &IngredientService{repo: repo}
}

// ListIngredients returns the caller's ingredients ordered by name descending.
func (s *IngredientService) ListIngredients(ctx context.Context, userID string) ([]*model.Ingredient, error) {
	return s.repo.ListIngredients(ctx, userID)
}

// CreateIngredient creates an ingredient owned by the caller.
// The owner is always the authenticated user, never payload-controlled.
func (s *IngredientService) CreateIngredient(ctx context.Context, userID, name string) (*model.Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	ingredient := &model.Ingredient{
		ID:        ulid.Make().String(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateIngredient(ctx, ingredient); err != nil {
		return nil, fmt.Errorf("create ingredient: %w", err)
	}

	return ingredient, nil
}
