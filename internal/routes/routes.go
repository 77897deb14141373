package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/stepforge/onboarding-backend/internal/config"
	"github.com/stepforge/onboarding-backend/internal/handlers"
	"github.com/stepforge/onboarding-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	wizardHandler *handlers.WizardHandler,
	adminHandler *handlers.AdminHandler,
	subjectsHandler *handlers.SubjectsHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Data viewer (read-only projection)
	api.Get("/subjects", subjectsHandler.List)

	// Identity step — stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/identify", authHandler.Identify)

	// Wizard — session token required
	wiz := api.Group("/wizard", middleware.SessionProtected(cfg))
	wiz.Get("/state", wizardHandler.State)
	wiz.Get("/pages/:page", wizardHandler.Page)
	wiz.Post("/pages/:page", wizardHandler.Submit)
	wiz.Post("/pages/:page/back", wizardHandler.Back)
	wiz.Post("/complete", wizardHandler.Complete)

	// Admin step configuration
	admin := api.Group("/admin", middleware.SessionProtected(cfg), middleware.AdminRequired(cfg))
	admin.Get("/step-config", adminHandler.GetConfig)
	admin.Put("/step-config", adminHandler.SaveConfig)
	admin.Get("/step-config/defaults", adminHandler.GetDefaults)
}
