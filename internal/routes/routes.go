package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/mlemaire/user-management-api/internal/handlers"
	"github.com/mlemaire/user-management-api/internal/middleware"
	"github.com/mlemaire/user-management-api/internal/models"
	"github.com/mlemaire/user-management-api/internal/token"
)

func Setup(
	app *fiber.App,
	tokens *token.Manager,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Get("/", healthHandler.Root)

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	authenticated := middleware.Authenticate(tokens)

	// Auth — register/login are public with a stricter limit, the rest
	// requires a verified token.
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authenticated, authHandler.Logout)
	auth.Get("/me", authenticated, authHandler.Me)
	auth.Get("/token-info", authenticated, authHandler.TokenInfo)

	// Users — authentication always runs before any authorization gate.
	users := api.Group("/users", authenticated)
	users.Get("/", middleware.RequirePermission(models.PermissionRead), userHandler.List)
	users.Get("/:id", middleware.RequirePermission(models.PermissionRead), userHandler.Get)
	users.Put("/:id", middleware.RequireRoleOrPermission(models.RoleAdmin, models.PermissionDelete), userHandler.Update)
	users.Delete("/:id", middleware.RequirePermission(models.PermissionDelete), userHandler.Delete)
}
