package routes

import (
	"fridgetrack/internal/api/handlers"
	"fridgetrack/internal/middleware"
	"fridgetrack/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	FridgeHandler       handlers.FridgeHandler
	RecipeHandler       handlers.RecipeHandler
	NotificationHandler handlers.NotificationHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Fridge()
	c.FoodTypes()
	c.Recipes()
	c.Notifications()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/google", c.UserHandler.SignInWithGoogle)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
		user.Post("/profile-picture", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UploadProfilePicture)
		user.Delete("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.DeleteAccount)
	}

	admin := c.App.Group("/api/v1/admin")
	{
		admin.Post("/login", c.UserHandler.AdminLogin)
	}
}

func (c *Config) Fridge() {
	fridge := c.App.Group("/api/v1/fridge", c.Middleware.AuthMiddleware(c.JWTService))

	fridge.Get("", c.FridgeHandler.GetFridge)
	fridge.Post("/items", c.FridgeHandler.AddFoodItem)
	fridge.Put("/items/:id", c.FridgeHandler.UpdateFoodItem)
	fridge.Delete("/items/:id", c.FridgeHandler.DeleteFoodItem)

	// Scanning entry points
	fridge.Post("/barcode", c.FridgeHandler.LogBarcode)
	fridge.Post("/vision", c.FridgeHandler.LogVision)
}

func (c *Config) FoodTypes() {
	foodTypes := c.App.Group("/api/v1/food-types", c.Middleware.AuthMiddleware(c.JWTService))

	foodTypes.Get("", c.FridgeHandler.GetFoodTypes)
	foodTypes.Post("", c.FridgeHandler.CreateFoodType)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))

	recipes.Post("/suggest", c.RecipeHandler.SuggestRecipes)
	recipes.Get("/history", c.RecipeHandler.GetRecipeHistory)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
}

func (c *Config) Notifications() {
	notifications := c.App.Group("/api/v1/notifications", c.Middleware.AuthMiddleware(c.JWTService))

	notifications.Post("/check", c.NotificationHandler.CheckNow)

	admin := notifications.Group("/admin", c.Middleware.OnlyAdmin)
	{
		admin.Post("/trigger", c.NotificationHandler.TriggerCheck)
		admin.Get("/debug", c.NotificationHandler.Debug)
		admin.Post("/test-simple", c.NotificationHandler.TestPush)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
