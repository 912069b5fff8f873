package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"recetario-backend/domain"
	"recetario-backend/internal/api/presenters"
	"recetario-backend/pkg/recipe"
)

type (
	RecipeHandler interface {
		GetRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		GetIngredients(c *fiber.Ctx) error
		GetFeaturedRecipes(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func callerID(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok {
		return id
	}
	return ""
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	req := domain.RecipeFilterRequest{
		Query:       c.Query("q", ""),
		Ingredients: c.Query("ingredients", ""),
		Duration:    c.Query("duration", ""),
		Page:        page,
	}

	authenticated := callerID(c) != ""
	recipes, count, err := h.recipeService.GetRecipes(c.Context(), req, authenticated)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"recipes": recipes,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       domain.RecipePageSize,
			"total":       count,
			"total_pages": (count + domain.RecipePageSize - 1) / domain.RecipePageSize,
		},
	}, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	recipeID := c.Params("recipeId")
	if recipeID == "" {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetRecipeDetail, domain.ErrRecipeNotFound)
	}

	authenticated := callerID(c) != ""
	res, err := h.recipeService.GetRecipeDetail(c.Context(), recipeID, authenticated)
	if err != nil {
		if err == domain.ErrRecipeNotFound {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetRecipeDetail, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) GetIngredients(c *fiber.Ctx) error {
	res, err := h.recipeService.GetAllIngredients(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetIngredients, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}

func (h *recipeHandler) GetFeaturedRecipes(c *fiber.Ctx) error {
	count, err := strconv.Atoi(c.Query("count", "6"))
	if err != nil || count < 1 {
		count = 6
	}

	res, err := h.recipeService.GetRandomPublicRecipes(c.Context(), count)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

// parseSaveRecipeForm reads the multipart recipe form: scalar fields, the
// repeated ingredient_name/ingredient_quantity rows, and the optional image.
func parseSaveRecipeForm(c *fiber.Ctx) (domain.SaveRecipeRequest, error) {
	req := domain.SaveRecipeRequest{
		Title:        c.FormValue("title"),
		Description:  c.FormValue("description"),
		Instructions: c.FormValue("instructions"),
		PrepTime:     c.FormValue("prep_time_minutes"),
		CookTime:     c.FormValue("cook_time_minutes"),
		Servings:     c.FormValue("servings"),
		IsPublic:     c.FormValue("is_public"),
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		names := form.Value["ingredient_name"]
		quantities := form.Value["ingredient_quantity"]
		for i, name := range names {
			quantity := ""
			if i < len(quantities) {
				quantity = quantities[i]
			}
			req.Ingredients = append(req.Ingredients, domain.IngredientRowRequest{
				Name:     name,
				Quantity: quantity,
			})
		}
	}

	if image, err := c.FormFile("image"); err == nil {
		req.Image = image
	}

	return req, nil
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req, err := parseSaveRecipeForm(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
	}

	id, err := h.recipeService.CreateRecipe(c.Context(), req, userID)
	if err != nil {
		if err == domain.ErrUserNotAllowed {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageUserNotAllowed, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"id": id}, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("recipeId")

	req, err := parseSaveRecipeForm(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
	}

	if err := h.recipeService.UpdateRecipe(c.Context(), recipeID, req, userID); err != nil {
		switch err {
		case domain.ErrUserNotAllowed:
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageUserNotAllowed, err)
		case domain.ErrRecipeNotFound:
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdateRecipe, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"id": recipeID}, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("recipeId")

	// Deletion is best-effort and never reports a failure to the caller.
	if err := h.recipeService.DeleteRecipe(c.Context(), recipeID, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}
