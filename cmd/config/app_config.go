package config

import (
	"context"
	"os"
	"time"

	"fridgetrack/internal/api/handlers"
	"fridgetrack/internal/api/routes"
	"fridgetrack/internal/middleware"
	"fridgetrack/internal/utils"
	"fridgetrack/internal/utils/storage"
	"fridgetrack/pkg/fridge"
	"fridgetrack/pkg/jwt"
	"fridgetrack/pkg/notification"
	"fridgetrack/pkg/recipe"
	"fridgetrack/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, *notification.Scheduler, error) {
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
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	pushSender := notification.NewPushSender(context.Background())

	// Repository
	userRepository := user.NewUserRepository(db)
	fridgeRepository := fridge.NewFridgeRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, fridgeRepository, jwtService, s3)
	fridgeService := fridge.NewFridgeService(fridgeRepository)
	recipeService := recipe.NewRecipeService(recipeRepository, fridgeRepository, userRepository)
	notificationService := notification.NewNotificationService(userRepository, fridgeRepository, pushSender, notification.NewMailSender())

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	fridgeHandler := handlers.NewFridgeHandler(fridgeService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	notificationHandler := handlers.NewNotificationHandler(notificationService, validator)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         userHandler,
		FridgeHandler:       fridgeHandler,
		RecipeHandler:       recipeHandler,
		NotificationHandler: notificationHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()

	scheduler := notification.NewScheduler(notificationService)
	return app, scheduler, nil
}
