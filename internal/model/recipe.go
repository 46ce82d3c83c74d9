package model

import "time"

// Tag is a user-owned label attachable to recipes.
type Tag struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"-"`
}

// Ingredient is a user-owned ingredient attachable to recipes.
type Ingredient struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"-"`
}

// Recipe is a user-owned recipe with many-to-many tag and ingredient
// relations. Price is a decimal carried as a string normalized to two
// fractional digits ("5.00") and stored as numeric(8,2).
type Recipe struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	Title       string    `json:"title"`
	TimeMinutes int       `json:"time_minutes"`
	Price       string    `json:"price"`
	Link        string    `json:"link"`
	ImagePath   string    `json:"-"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`

	// Relation ids, populated on list; full objects populated on retrieve.
	TagIDs        []string `json:"-"`
	IngredientIDs []string `json:"-"`

	Tags        []*Tag        `json:"-"`
	Ingredients []*Ingredient `json:"-"`
}

// HasImage reports whether an image has been uploaded for the recipe.
func (r *Recipe) HasImage() bool {
	return r.ImagePath != ""
}
