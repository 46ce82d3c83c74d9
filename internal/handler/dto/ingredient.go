package dto

import "github.com/recipebox/recipebox/internal/model"

// CreateIngredientRequest represents the request body for creating an ingredient.
type CreateIngredientRequest struct {
	Name string `json:"name"`
}

// IngredientResponse represents an ingredient in API responses.
type IngredientResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ToIngredientResponse converts an Ingredient model to IngredientResponse.
func ToIngredientResponse(ingredient *model.Ingredient) IngredientResponse {
	return IngredientResponse{ID: ingredient.ID, Name: ingredient.Name}
}

// ToIngredientListResponse converts a slice of Ingredient models to response DTOs.
func ToIngredientListResponse(ingredients []*model.Ingredient) []IngredientResponse {
	responses := make([]IngredientResponse, len(ingredients))
	for i, ing := range ingredients {
		responses[i] = ToIngredientResponse(ing)
	}
	return responses
}
