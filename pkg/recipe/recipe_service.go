package recipe

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recetario-backend/domain"
	"recetario-backend/entities"
	"recetario-backend/internal/utils/storage"
	"recetario-backend/pkg/user"
)

// imageFolder is the storage path prefix recipe images live under. Only
// objects under this prefix are ever cleaned up.
const imageFolder = "recipes"

type (
	RecipeService interface {
		GetRecipes(ctx context.Context, req domain.RecipeFilterRequest, authenticated bool) ([]domain.RecipeResponse, int64, error)
		GetRecipeDetail(ctx context.Context, id string, authenticated bool) (domain.RecipeDetailResponse, error)
		GetAllIngredients(ctx context.Context) ([]domain.IngredientResponse, error)
		GetRandomPublicRecipes(ctx context.Context, n int) ([]domain.RecipeResponse, error)

		CreateRecipe(ctx context.Context, req domain.SaveRecipeRequest, userID string) (string, error)
		UpdateRecipe(ctx context.Context, id string, req domain.SaveRecipeRequest, userID string) error
		DeleteRecipe(ctx context.Context, id string, userID string) error
	}

	recipeService struct {
		recipeRepository RecipeRepository
		userRepository   user.UserRepository
		s3               storage.AwsS3
	}
)

func NewRecipeService(recipeRepository RecipeRepository, userRepository user.UserRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		userRepository:   userRepository,
		s3:               s3,
	}
}

func toIntOrNil(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}

func toBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "on", "1":
		return true
	}
	return false
}

// splitIngredientNames parses the comma-separated ingredients filter into a
// set of distinct names. The intersection query counts distinct matches, so
// a repeated name must not inflate the required count.
func splitIngredientNames(raw string) []string {
	if raw == "" {
		return nil
	}
	seen := make(map[string]bool)
	var names []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		names = append(names, part)
	}
	return names
}

// parseDuration understands "15-30" (inclusive range) and "60+" (open upper
// bound). Anything else disables the filter.
func parseDuration(raw string) (min int, max int, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, 0, false
	}

	if strings.HasSuffix(raw, "+") {
		n, err := strconv.Atoi(strings.TrimSuffix(raw, "+"))
		if err != nil {
			return 0, 0, false
		}
		return n, -1, true
	}

	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	lo, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	hi, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return lo, hi, true
}

// totalMinutes is the duration measure the filter runs on: prep plus cook
// time, with missing values counted as zero.
func totalMinutes(recipe *entities.Recipe) int {
	total := 0
	if recipe.PrepTimeMinutes != nil {
		total += *recipe.PrepTimeMinutes
	}
	if recipe.CookTimeMinutes != nil {
		total += *recipe.CookTimeMinutes
	}
	return total
}

func toRecipeResponse(recipe *entities.Recipe) domain.RecipeResponse {
	return domain.RecipeResponse{
		ID:              recipe.ID.String(),
		Title:           recipe.Title,
		Description:     recipe.Description,
		ImageURL:        recipe.ImageURL,
		PrepTimeMinutes: recipe.PrepTimeMinutes,
		CookTimeMinutes: recipe.CookTimeMinutes,
		Servings:        recipe.Servings,
		IsPublic:        recipe.IsPublic,
		CreatedAt:       recipe.CreatedAt,
	}
}

func (s *recipeService) GetRecipes(ctx context.Context, req domain.RecipeFilterRequest, authenticated bool) ([]domain.RecipeResponse, int64, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}

	filter := RecipeListFilter{
		Query:      req.Query,
		OnlyPublic: !authenticated,
		Page:       page,
		Limit:      domain.RecipePageSize,
	}

	if names := splitIngredientNames(req.Ingredients); len(names) > 0 {
		ids, err := s.recipeRepository.FindRecipeIDsWithAllIngredients(ctx, names)
		if err != nil {
			return nil, 0, err
		}
		if len(ids) == 0 {
			return []domain.RecipeResponse{}, 0, nil
		}
		filter.IDs = ids
	}

	minDur, maxDur, hasDuration := parseDuration(req.Duration)
	if hasDuration {
		// The duration measure is computed per row, so the range cannot be
		// pushed into the query. Fetch everything that matches the other
		// filters and paginate after filtering.
		filter.Limit = 0
		recipes, _, err := s.recipeRepository.GetRecipes(ctx, filter)
		if err != nil {
			return nil, 0, err
		}

		var matched []*entities.Recipe
		for _, recipe := range recipes {
			total := totalMinutes(recipe)
			if total < minDur {
				continue
			}
			if maxDur >= 0 && total > maxDur {
				continue
			}
			matched = append(matched, recipe)
		}

		count := int64(len(matched))
		start := (page - 1) * domain.RecipePageSize
		if start > len(matched) {
			start = len(matched)
		}
		end := start + domain.RecipePageSize
		if end > len(matched) {
			end = len(matched)
		}

		response := make([]domain.RecipeResponse, 0, end-start)
		for _, recipe := range matched[start:end] {
			response = append(response, toRecipeResponse(recipe))
		}
		return response, count, nil
	}

	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	response := make([]domain.RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		response = append(response, toRecipeResponse(recipe))
	}
	return response, count, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, id string, authenticated bool) (domain.RecipeDetailResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.RecipeDetailResponse{}, domain.ErrRecipeNotFound
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetailResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetailResponse{}, err
	}

	// A private recipe looks exactly like a missing one to an
	// unauthenticated caller.
	if !authenticated && !recipe.IsPublic {
		return domain.RecipeDetailResponse{}, domain.ErrRecipeNotFound
	}

	ingredients := make([]domain.RecipeIngredientResponse, 0, len(recipe.RecipeIngredients))
	for _, row := range recipe.RecipeIngredients {
		name := ""
		if row.Ingredient != nil {
			name = row.Ingredient.Name
		}
		ingredients = append(ingredients, domain.RecipeIngredientResponse{
			Name:     name,
			Quantity: row.Quantity,
		})
	}

	return domain.RecipeDetailResponse{
		RecipeResponse: toRecipeResponse(recipe),
		Instructions:   recipe.Instructions,
		Ingredients:    ingredients,
	}, nil
}

func (s *recipeService) GetAllIngredients(ctx context.Context) ([]domain.IngredientResponse, error) {
	ingredients, err := s.recipeRepository.GetIngredients(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		response = append(response, domain.IngredientResponse{Name: ingredient.Name})
	}
	return response, nil
}

// GetRandomPublicRecipes draws n recipes at random from a bounded sample of
// the newest public rows. It is a sample of a sample, not a uniform draw
// over the whole public set.
func (s *recipeService) GetRandomPublicRecipes(ctx context.Context, n int) ([]domain.RecipeResponse, error) {
	recipes, err := s.recipeRepository.GetPublicSample(ctx, domain.RandomSampleSize)
	if err != nil {
		return nil, err
	}

	rand.Shuffle(len(recipes), func(i, j int) {
		recipes[i], recipes[j] = recipes[j], recipes[i]
	})

	if n < 0 {
		n = 0
	}
	if n > len(recipes) {
		n = len(recipes)
	}

	response := make([]domain.RecipeResponse, 0, n)
	for _, recipe := range recipes[:n] {
		response = append(response, toRecipeResponse(recipe))
	}
	return response, nil
}

func (s *recipeService) ensureAdmin(ctx context.Context, userID string) (bool, error) {
	isAdmin, err := s.userRepository.HasAdminRole(ctx, userID)
	if err != nil {
		return false, err
	}
	return isAdmin, nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.SaveRecipeRequest, userID string) (string, error) {
	isAdmin, err := s.ensureAdmin(ctx, userID)
	if err != nil || !isAdmin {
		return "", domain.ErrUserNotAllowed
	}

	recipeID := uuid.New()
	imageURL := ""
	if req.Image != nil {
		objectKey, uploadErr := s.s3.UploadFile(uuid.New().String(), req.Image, imageFolder, storage.AllowImage...)
		if uploadErr != nil {
			// A failed upload does not fail the recipe.
			log.Printf("recipe image upload failed: %v", uploadErr)
		} else {
			imageURL = s.s3.GetPublicLinkKey(objectKey)
		}
	}

	recipe := &entities.Recipe{
		ID:              recipeID,
		Title:           strings.TrimSpace(req.Title),
		Description:     strings.TrimSpace(req.Description),
		Instructions:    strings.TrimSpace(req.Instructions),
		ImageURL:        imageURL,
		PrepTimeMinutes: toIntOrNil(req.PrepTime),
		CookTimeMinutes: toIntOrNil(req.CookTime),
		Servings:        toIntOrNil(req.Servings),
		IsPublic:        toBool(req.IsPublic),
	}
	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		return "", err
	}

	if err := s.linkIngredients(ctx, recipeID, req.Ingredients); err != nil {
		log.Printf("recipe %s: linking ingredients failed: %v", recipeID, err)
	}

	return recipeID.String(), nil
}

// linkIngredients resolves each non-empty ingredient name to an existing row
// by exact match, creates the ones that do not exist yet, and links one
// association per distinct name. Empty names are dropped; a repeated name
// keeps its first quantity.
func (s *recipeService) linkIngredients(ctx context.Context, recipeID uuid.UUID, rows []domain.IngredientRowRequest) error {
	quantities := make(map[string]string)
	var names []string
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}
		if _, seen := quantities[name]; seen {
			continue
		}
		quantities[name] = row.Quantity
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil
	}

	existing, err := s.recipeRepository.GetIngredientsByNames(ctx, names)
	if err != nil {
		return err
	}
	idByName := make(map[string]uuid.UUID, len(existing))
	for _, ingredient := range existing {
		idByName[ingredient.Name] = ingredient.ID
	}

	var missing []*entities.Ingredient
	for _, name := range names {
		if _, ok := idByName[name]; ok {
			continue
		}
		ingredient := &entities.Ingredient{ID: uuid.New(), Name: name}
		missing = append(missing, ingredient)
		idByName[name] = ingredient.ID
	}
	if err := s.recipeRepository.CreateIngredients(ctx, missing); err != nil {
		return err
	}

	links := make([]*entities.RecipeIngredient, 0, len(names))
	for _, name := range names {
		links = append(links, &entities.RecipeIngredient{
			ID:           uuid.New(),
			RecipeID:     recipeID,
			IngredientID: idByName[name],
			Quantity:     quantities[name],
		})
	}
	return s.recipeRepository.CreateRecipeIngredients(ctx, links)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, id string, req domain.SaveRecipeRequest, userID string) error {
	isAdmin, err := s.ensureAdmin(ctx, userID)
	if err != nil || !isAdmin {
		return domain.ErrUserNotAllowed
	}

	recipeID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrRecipeNotFound
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	if req.Image != nil {
		// Replace the stored image: drop the old object first when it lives
		// under our storage prefix, then upload under a fresh key.
		if oldKey := s.s3.GetObjectKeyFromLink(recipe.ImageURL); strings.HasPrefix(oldKey, imageFolder+"/") {
			if err := s.s3.DeleteFile(oldKey); err != nil {
				log.Printf("recipe %s: deleting previous image failed: %v", id, err)
			}
		}
		objectKey, uploadErr := s.s3.UploadFile(uuid.New().String(), req.Image, imageFolder, storage.AllowImage...)
		if uploadErr != nil {
			log.Printf("recipe %s: image upload failed: %v", id, uploadErr)
			recipe.ImageURL = ""
		} else {
			recipe.ImageURL = s.s3.GetPublicLinkKey(objectKey)
		}
	}

	recipe.Title = strings.TrimSpace(req.Title)
	recipe.Description = strings.TrimSpace(req.Description)
	recipe.Instructions = strings.TrimSpace(req.Instructions)
	recipe.PrepTimeMinutes = toIntOrNil(req.PrepTime)
	recipe.CookTimeMinutes = toIntOrNil(req.CookTime)
	recipe.Servings = toIntOrNil(req.Servings)
	recipe.IsPublic = toBool(req.IsPublic)
	recipe.RecipeIngredients = nil

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		return err
	}

	// Associations are replaced wholesale. A partial failure here is logged
	// and the update still reports success.
	if err := s.recipeRepository.DeleteRecipeIngredients(ctx, id); err != nil {
		log.Printf("recipe %s: clearing ingredients failed: %v", id, err)
		return nil
	}
	if err := s.linkIngredients(ctx, recipeID, req.Ingredients); err != nil {
		log.Printf("recipe %s: relinking ingredients failed: %v", id, err)
	}

	return nil
}

// DeleteRecipe is best-effort all the way down: a non-admin caller, a missing
// recipe, or a failing cleanup step all end in a quiet no-op.
func (s *recipeService) DeleteRecipe(ctx context.Context, id string, userID string) error {
	isAdmin, err := s.ensureAdmin(ctx, userID)
	if err != nil || !isAdmin {
		return nil
	}

	if _, err := uuid.Parse(id); err != nil {
		return nil
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		return nil
	}

	if oldKey := s.s3.GetObjectKeyFromLink(recipe.ImageURL); strings.HasPrefix(oldKey, imageFolder+"/") {
		if err := s.s3.DeleteFile(oldKey); err != nil {
			log.Printf("recipe %s: deleting stored image failed: %v", id, err)
		}
	}
	if err := s.recipeRepository.DeleteRecipeIngredients(ctx, id); err != nil {
		log.Printf("recipe %s: deleting ingredient rows failed: %v", id, err)
	}
	if err := s.recipeRepository.DeleteRecipe(ctx, id); err != nil {
		log.Printf("recipe %s: deleting recipe failed: %v", id, err)
	}

	return nil
}
