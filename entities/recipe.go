package entities

import (
	"github.com/google/uuid"
)

type Recipe struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title           string    `gorm:"not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	Instructions    string    `gorm:"type:text" json:"instructions"`
	ImageURL        string    `json:"image_url,omitempty"`
	PrepTimeMinutes *int      `json:"prep_time_minutes"`
	CookTimeMinutes *int      `json:"cook_time_minutes"`
	Servings        *int      `json:"servings"`
	IsPublic        bool      `json:"is_public"`

	RecipeIngredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"recipe_ingredients,omitempty"`
	Timestamp
}

type Ingredient struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `gorm:"uniqueIndex;not null" json:"name"`
}

type RecipeIngredient struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID     uuid.UUID `gorm:"type:uuid;index" json:"recipe_id"`
	IngredientID uuid.UUID `gorm:"type:uuid" json:"ingredient_id"`
	Quantity     string    `json:"quantity"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}
