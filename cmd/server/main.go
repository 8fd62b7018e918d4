package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/saeid-a/CoachIntake/internal/config"
	"github.com/saeid-a/CoachIntake/internal/database"
	"github.com/saeid-a/CoachIntake/internal/routes"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.DBUrl == "" {
		log.Fatal("DB_URL is required")
	}
	if err := database.ConnectDB(context.Background(), cfg.DBUrl); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB()

	app := fiber.New(fiber.Config{
		AppName:               "CoachIntake",
		DisableStartupMessage: !cfg.IsDevelopment(),
	})

	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSAllowOrigins}))
	app.Use(logger.New())
	app.Use(recover.New())

	if err := routes.RegisterRoutes(app, cfg, database.DB); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	log.Printf("Server starting on port %s (%s)", cfg.Port, cfg.AppEnv)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
