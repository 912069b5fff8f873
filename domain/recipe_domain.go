package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

// RecipePageSize is the fixed listing page size.
const RecipePageSize = 9

// RandomSampleSize bounds how many public recipes the featured sampler
// draws from. The sample is taken over the newest rows, not the full set.
const RandomSampleSize = 30

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessGetIngredients  = "success get ingredients"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedGetIngredients  = "failed to get ingredients"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"

	ErrRecipeNotFound = errors.New("recipe not found")
)

type (
	RecipeFilterRequest struct {
		Query       string
		Ingredients string
		Duration    string
		Page        int
	}

	IngredientRowRequest struct {
		Name     string `json:"name" form:"name"`
		Quantity string `json:"quantity" form:"quantity"`
	}

	SaveRecipeRequest struct {
		Title        string `json:"title" form:"title" validate:"required"`
		Description  string `json:"description" form:"description"`
		Instructions string `json:"instructions" form:"instructions"`
		PrepTime     string `json:"prep_time_minutes" form:"prep_time_minutes"`
		CookTime     string `json:"cook_time_minutes" form:"cook_time_minutes"`
		Servings     string `json:"servings" form:"servings"`
		IsPublic     string `json:"is_public" form:"is_public"`

		Ingredients []IngredientRowRequest `json:"ingredients"`
		Image       *multipart.FileHeader  `json:"-" form:"-"`
	}

	RecipeResponse struct {
		ID              string    `json:"id"`
		Title           string    `json:"title"`
		Description     string    `json:"description"`
		ImageURL        string    `json:"image_url,omitempty"`
		PrepTimeMinutes *int      `json:"prep_time_minutes"`
		CookTimeMinutes *int      `json:"cook_time_minutes"`
		Servings        *int      `json:"servings"`
		IsPublic        bool      `json:"is_public"`
		CreatedAt       time.Time `json:"created_at"`
	}

	RecipeIngredientResponse struct {
		Name     string `json:"name"`
		Quantity string `json:"quantity"`
	}

	RecipeDetailResponse struct {
		RecipeResponse
		Instructions string                     `json:"instructions"`
		Ingredients  []RecipeIngredientResponse `json:"ingredients"`
	}

	IngredientResponse struct {
		Name string `json:"name"`
	}
)
