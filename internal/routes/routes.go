package routes

import (
	"errors"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/saeid-a/CoachIntake/internal/config"
	"github.com/saeid-a/CoachIntake/internal/handlers"
	"github.com/saeid-a/CoachIntake/internal/middleware"
	"github.com/saeid-a/CoachIntake/internal/repository"
	"github.com/saeid-a/CoachIntake/internal/services"
	intakews "github.com/saeid-a/CoachIntake/internal/websocket"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) error {
	if cfg == nil || cfg.JWTSecret == "" {
		return errors.New("routes: JWT secret is required")
	}
	if cfg.IntakeMaxPromptChars <= 0 {
		return errors.New("routes: intake prompt limit must be positive")
	}

	userRepo := repository.NewUserRepository(db)
	userProfileRepo := repository.NewUserProfileRepository(db)
	intakeRepo := repository.NewIntakeRepository(db)

	authHandler := handlers.NewAuthHandler(db, userRepo, userProfileRepo, cfg.JWTSecret)
	profileService := services.NewProfileService(userProfileRepo)
	profileHandler := handlers.NewProfileHandler(profileService)
	intakeHub := intakews.NewHub()
	go intakeHub.Run()
	intakeService := services.NewIntakeService(db, intakeRepo, userProfileRepo, cfg.IntakeMaxPromptChars)
	intakeHandler := handlers.NewIntakeHandler(intakeService, intakeHub, cfg.JWTSecret)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	api.Post("/intake/parse", intakeHandler.Parse)

	api.Use("/v1/ws", intakeHandler.WebSocketAuth)
	api.Get("/v1/ws", websocket.New(intakeHandler.HandleWebSocket))

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret), middleware.RequireRole("user"))

	intake := authProtected.Group("/intake")
	intake.Post("/messages", intakeHandler.SubmitMessage)
	intake.Get("/sessions/:id/messages", intakeHandler.ListSessionMessages)

	users := authProtected.Group("/users")
	users.Get("/profile", profileHandler.GetUserProfile)
	users.Put("/profile", profileHandler.UpdateUserProfile)

	return nil
}
