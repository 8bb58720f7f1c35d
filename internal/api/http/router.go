package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bragboard/internal/api/http/handlers"
	"github.com/spec-kit/bragboard/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Shoutouts      *handlers.ShoutoutsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	protected.Get("/auth/me", cfg.Users.Me)
	protected.Get("/users", cfg.Users.ListUsers)

	protected.Post("/shoutouts", cfg.Shoutouts.Create)
	protected.Get("/shoutouts", cfg.Shoutouts.List)
	protected.Get("/shoutouts/:id", cfg.Shoutouts.Get)
	protected.Post("/shoutouts/:id/reactions", cfg.Shoutouts.ToggleReaction)
	protected.Post("/shoutouts/:id/comments", cfg.Shoutouts.AddComment)
	protected.Put("/shoutouts/:id/report", cfg.Shoutouts.Report)

	protected.Get("/leaderboard", cfg.Admin.Leaderboard)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/stats", cfg.Admin.Stats)
	admin.Get("/export", cfg.Admin.Export)
	admin.Put("/shoutouts/:id/dismiss", cfg.Admin.Dismiss)
	admin.Delete("/shoutouts/:id", cfg.Admin.DeleteShoutout)
	admin.Post("/users", cfg.Admin.CreateUser)
	admin.Delete("/users/:id", cfg.Admin.DeleteUser)
	admin.Get("/audit-log", cfg.Admin.AuditLog)
}
