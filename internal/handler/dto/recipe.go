package dto

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/recipebox/recipebox/internal/model"
)

// Decimal accepts a JSON number or string and preserves its textual form,
// so "5.50" survives decoding without float rounding.
type Decimal string

// UnmarshalJSON implements json.Unmarshaler.
func (d *Decimal) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}

	if len(s) >= 2 && s[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*d = Decimal(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.New("price must be a number or string")
	}
	*d = Decimal(n.String())
	return nil
}

// CreateRecipeRequest represents the request body for creating a recipe.
// Pointer fields distinguish absent values from zero values.
type CreateRecipeRequest struct {
	Title       string   `json:"title"`
	TimeMinutes *int     `json:"time_minutes"`
	Price       *Decimal `json:"price"`
	Link        string   `json:"link,omitempty"`
	Tags        []string `json:"tags"`
	Ingredients []string `json:"ingredients"`
}

// UpdateRecipeRequest represents the request body for updating a recipe.
// Nil fields were absent from the payload; a nil Tags/Ingredients slice
// means the key itself was missing, which a full update treats as "clear".
type UpdateRecipeRequest struct {
	Title       *string  `json:"title"`
	TimeMinutes *int     `json:"time_minutes"`
	Price       *Decimal `json:"price"`
	Link        *string  `json:"link"`
	Tags        []string `json:"tags"`
	Ingredients []string `json:"ingredients"`
}

// RecipeResponse represents a recipe in list responses, with relation ids.
type RecipeResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	TimeMinutes int      `json:"time_minutes"`
	Price       string   `json:"price"`
	Link        string   `json:"link"`
	Tags        []string `json:"tags"`
	Ingredients []string `json:"ingredients"`
	Image       *string  `json:"image"`
}

// RecipeDetailResponse represents a recipe in detail responses, with nested
// tag and ingredient objects.
type RecipeDetailResponse struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	TimeMinutes int                  `json:"time_minutes"`
	Price       string               `json:"price"`
	Link        string               `json:"link"`
	Tags        []TagResponse        `json:"tags"`
	Ingredients []IngredientResponse `json:"ingredients"`
	Image       *string              `json:"image"`
}

// ToRecipeResponse converts a Recipe model to RecipeResponse.
// baseURL is used to build the absolute image URL.
func ToRecipeResponse(recipe *model.Recipe, baseURL string) RecipeResponse {
	return RecipeResponse{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Link:        recipe.Link,
		Tags:        emptyIfNil(recipe.TagIDs),
		Ingredients: emptyIfNil(recipe.IngredientIDs),
		Image:       imageURL(recipe, baseURL),
	}
}

// ToRecipeListResponse converts a slice of Recipe models to response DTOs.
func ToRecipeListResponse(recipes []*model.Recipe, baseURL string) []RecipeResponse {
	responses := make([]RecipeResponse, len(recipes))
	for i, recipe := range recipes {
		responses[i] = ToRecipeResponse(recipe, baseURL)
	}
	return responses
}

// ToRecipeDetailResponse converts a Recipe model to RecipeDetailResponse.
func ToRecipeDetailResponse(recipe *model.Recipe, baseURL string) RecipeDetailResponse {
	return RecipeDetailResponse{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Link:        recipe.Link,
		Tags:        ToTagListResponse(recipe.Tags),
		Ingredients: ToIngredientListResponse(recipe.Ingredients),
		Image:       imageURL(recipe, baseURL),
	}
}

// imageURL builds the absolute media URL for a recipe image, or nil when no
// image has been uploaded.
func imageURL(recipe *model.Recipe, baseURL string) *string {
	if !recipe.HasImage() {
		return nil
	}
	url := strings.TrimSuffix(baseURL, "/") + "/media/" + recipe.ImagePath
	return &url
}

// emptyIfNil keeps JSON arrays as [] rather than null.
func emptyIfNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
