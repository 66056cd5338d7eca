package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/user-notification-service/internal/api/http/handlers"
	"github.com/spec-kit/user-notification-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Notifications  *handlers.NotificationsHandler
	AuthMiddleware *auth.AuthMiddleware
	// ProtectRoutes puts everything except register, login and probes behind a bearer token.
	ProtectRoutes bool
	// AdminRoles gate user listing when routes are protected. Empty admits any role.
	AdminRoles     []string
	LoginLimiter   Limiter
	MetricsHandler fiber.Handler
	Logger         *zap.Logger
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.Health != nil {
		app.Get("/health/live", cfg.Health.Live)
		app.Get("/health/ready", cfg.Health.Ready)
	}
	if cfg.MetricsHandler != nil {
		app.Get("/metrics", cfg.MetricsHandler)
	}

	users := app.Group("/users")
	users.Post("/register", cfg.Users.Register)
	if cfg.LoginLimiter != nil {
		users.Post("/login", rateLimitMiddleware(cfg.LoginLimiter, logger), cfg.Users.Login)
	} else {
		users.Post("/login", cfg.Users.Login)
	}

	var guards, listGuards []fiber.Handler
	if cfg.ProtectRoutes && cfg.AuthMiddleware != nil {
		guards = []fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireAnyRole()}
		listGuards = []fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireRole(cfg.AdminRoles...)}
	}

	users.Get("/", with(listGuards, cfg.Users.List)...)
	users.Get("/:userId", with(guards, cfg.Users.Get)...)
	users.Put("/:userId", with(guards, cfg.Users.Update)...)
	users.Delete("/:userId", with(guards, cfg.Users.Delete)...)

	notifications := app.Group("/notifications", guards...)
	notifications.Post("/", cfg.Notifications.Create)
	notifications.Get("/", cfg.Notifications.List)
	notifications.Get("/:notificationId", cfg.Notifications.Get)
	notifications.Put("/:notificationId", cfg.Notifications.Update)
	notifications.Delete("/:notificationId", cfg.Notifications.Delete)
}

func with(guards []fiber.Handler, handler fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(guards)+1)
	out = append(out, guards...)
	return append(out, handler)
}
