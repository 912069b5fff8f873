package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"recetario-backend/internal/api/handlers"
	"recetario-backend/internal/api/routes"
	"recetario-backend/internal/middleware"
	"recetario-backend/internal/utils"
	"recetario-backend/internal/utils/captcha"
	"recetario-backend/internal/utils/mailing"
	"recetario-backend/internal/utils/storage"
	"recetario-backend/pkg/contact"
	"recetario-backend/pkg/jwt"
	"recetario-backend/pkg/recipe"
	"recetario-backend/pkg/user"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Europe/Madrid",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	captchaVerifier := captcha.NewGoogleVerifier()

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService, captchaVerifier)
	recipeService := recipe.NewRecipeService(recipeRepository, userRepository, s3)
	contactService := contact.NewContactService(mailing.NewSMTPMailer())

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	adminHandler := handlers.NewAdminHandler(userService, validator)
	contactHandler := handlers.NewContactHandler(contactService, validator)

	// routes
	routesConfig := routes.Config{
		App:            app,
		UserHandler:    userHandler,
		RecipeHandler:  recipeHandler,
		AdminHandler:   adminHandler,
		ContactHandler: contactHandler,
		Middleware:     middlewares,
		JWTService:     jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
