package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"dailydiet/internal/config"
	"dailydiet/internal/handlers"
	"dailydiet/internal/middleware"
	"dailydiet/internal/models"
	"dailydiet/internal/repositories"
	"dailydiet/internal/services"
	"dailydiet/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// --- Database ---
	db, err := openDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Meal{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	// Meal events are only published when a broker URL is configured.
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	mealRepo := repositories.NewGORMMealRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.TokenSecret, cfg.TokenExpiration)
	userService := services.NewUserService(userRepo)
	mealService := services.NewMealService(mealRepo, mqClient)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(authService, userService)
	authHandler := handlers.NewAuthHandler(authService)
	mealHandler := handlers.NewMealHandler(mealService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())

	// Public routes
	userHandler.RegisterRoutes(app)
	authHandler.RegisterRoutes(app)

	// Meal routes require a valid bearer token. The middleware is scoped to
	// the /meals prefix so every other path stays public.
	mealHandler.RegisterRoutes(app, middleware.AuthRequired(authService))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"env":    cfg.AppEnv,
		})
	})

	// --- Start HTTP server ---
	log.Printf("Starting server on %s", cfg.Addr())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.Addr()); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// openDatabase opens the GORM connection for the configured client.
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	// TranslateError maps driver-specific unique violations to
	// gorm.ErrDuplicatedKey, which the user repository relies on.
	gormConfig := &gorm.Config{TranslateError: true}
	switch cfg.DatabaseClient {
	case "postgres":
		return gorm.Open(postgres.Open(cfg.DatabaseURL), gormConfig)
	default:
		return gorm.Open(sqlite.Open(cfg.DatabaseURL), gormConfig)
	}
}
