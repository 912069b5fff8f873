package recipe

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recetario-backend/entities"
)

type (
	// RecipeListFilter is the query the listing builds up. A nil IDs slice
	// means no ingredient restriction; Limit <= 0 disables pagination so the
	// caller can filter the full result set in process.
	RecipeListFilter struct {
		Query      string
		IDs        []uuid.UUID
		OnlyPublic bool
		Page       int
		Limit      int
	}

	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error
		DeleteRecipe(ctx context.Context, id string) error
		GetRecipes(ctx context.Context, filter RecipeListFilter) ([]*entities.Recipe, int64, error)
		GetPublicSample(ctx context.Context, limit int) ([]*entities.Recipe, error)

		FindRecipeIDsWithAllIngredients(ctx context.Context, names []string) ([]uuid.UUID, error)
		GetIngredients(ctx context.Context) ([]*entities.Ingredient, error)
		GetIngredientsByNames(ctx context.Context, names []string) ([]*entities.Ingredient, error)
		CreateIngredients(ctx context.Context, ingredients []*entities.Ingredient) error
		CreateRecipeIngredients(ctx context.Context, rows []*entities.RecipeIngredient) error
		DeleteRecipeIngredients(ctx context.Context, recipeID string) error
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("RecipeIngredients.Ingredient").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Omit("RecipeIngredients").Save(recipe).Error
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Recipe{}).Error
}

func (r *recipeRepository) GetRecipes(ctx context.Context, filter RecipeListFilter) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64

	query := r.db.WithContext(ctx).Model(&entities.Recipe{})

	if filter.OnlyPublic {
		query = query.Where("is_public = ?", true)
	}
	if filter.Query != "" {
		query = query.Where("LOWER(title) LIKE LOWER(?)", "%"+filter.Query+"%")
	}
	if filter.IDs != nil {
		query = query.Where("id IN ?", filter.IDs)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at desc")
	if filter.Limit > 0 {
		offset := (filter.Page - 1) * filter.Limit
		query = query.Offset(offset).Limit(filter.Limit)
	}

	if err := query.Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) GetPublicSample(ctx context.Context, limit int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Where("is_public = ?", true).
		Order("created_at desc").
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// FindRecipeIDsWithAllIngredients returns the ids of recipes linked to every
// one of the given ingredient names. Matching is exact and case-sensitive.
func (r *recipeRepository) FindRecipeIDsWithAllIngredients(ctx context.Context, names []string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeIngredient{}).
		Select("recipe_ingredients.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("ingredients.name IN ?", names).
		Group("recipe_ingredients.recipe_id").
		Having("COUNT(DISTINCT ingredients.id) = ?", len(names)).
		Scan(&ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *recipeRepository) GetIngredients(ctx context.Context) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	if err := r.db.WithContext(ctx).Order("name asc").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *recipeRepository) GetIngredientsByNames(ctx context.Context, names []string) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	if err := r.db.WithContext(ctx).Where("name IN ?", names).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *recipeRepository) CreateIngredients(ctx context.Context, ingredients []*entities.Ingredient) error {
	if len(ingredients) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(ingredients).Error
}

func (r *recipeRepository) CreateRecipeIngredients(ctx context.Context, rows []*entities.RecipeIngredient) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(rows).Error
}

func (r *recipeRepository) DeleteRecipeIngredients(ctx context.Context, recipeID string) error {
	return r.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Delete(&entities.RecipeIngredient{}).Error
}
