package routes

import (
	"github.com/gofiber/fiber/v2"

	"recetario-backend/internal/api/handlers"
	"recetario-backend/internal/middleware"
	"recetario-backend/pkg/jwt"
)

type Config struct {
	App            *fiber.App
	UserHandler    handlers.UserHandler
	RecipeHandler  handlers.RecipeHandler
	AdminHandler   handlers.AdminHandler
	ContactHandler handlers.ContactHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Auth()
	c.Recipes()
	c.Admin()
	c.GuestRoute()
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/v1/auth")
	{
		auth.Post("/register", c.UserHandler.Register)
		auth.Post("/login", c.UserHandler.Login)
		auth.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Recipes() {
	optional := c.Middleware.OptionalAuthMiddleware(c.JWTService)
	authed := c.Middleware.AuthMiddleware(c.JWTService)

	recipes := c.App.Group("/api/v1/recipes")
	{
		recipes.Get("/featured", c.RecipeHandler.GetFeaturedRecipes)
		recipes.Get("", optional, c.RecipeHandler.GetRecipes)
		recipes.Get("/:recipeId", optional, c.RecipeHandler.GetRecipeDetail)

		recipes.Post("", authed, c.RecipeHandler.CreateRecipe)
		recipes.Put("/:recipeId", authed, c.RecipeHandler.UpdateRecipe)
		recipes.Delete("/:recipeId", authed, c.RecipeHandler.DeleteRecipe)
	}

	c.App.Get("/api/v1/ingredients", c.RecipeHandler.GetIngredients)
}

func (c *Config) Admin() {
	admin := c.App.Group("/api/v1/admin", c.Middleware.AuthMiddleware(c.JWTService))
	{
		admin.Get("/users", c.AdminHandler.GetUsers)
		admin.Post("/users", c.AdminHandler.CreateUser)
		admin.Patch("/users/:userId/role", c.AdminHandler.ChangeUserRole)
		admin.Delete("/users/:userId", c.AdminHandler.DeleteUser)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Post("/api/v1/contact", c.ContactHandler.SendMessage)
}
