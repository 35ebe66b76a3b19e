package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/users-service/internal/api/http/handlers"
	"github.com/spec-kit/users-service/internal/auth"
	"github.com/spec-kit/users-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Users       *handlers.UsersHandler
	Passengers  *handlers.PassengersHandler
	Internal    *handlers.InternalHandler
	ServiceAuth *auth.ServiceMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	users := app.Group("/users")
	users.Post("", cfg.Users.Create)
	users.Get("", cfg.Users.ListByRole)
	users.Get("/:id", cfg.Users.Get)
	users.Delete("/:id", cfg.Users.Delete)
	users.Put("/:id/status", cfg.Users.UpdateStatus)
	users.Put("/:id/password", cfg.Users.UpdatePassword)

	passengers := app.Group("/passengers")
	passengers.Post("", cfg.Passengers.Create)
	passengers.Get("/count", cfg.Passengers.Count)
	passengers.Put("/:id", cfg.Passengers.Update)
	passengers.Put("/:id/password", cfg.Passengers.UpdatePassword)

	read := auth.RequireScope(domain.ScopeAccountsRead)
	write := auth.RequireScope(domain.ScopeAccountsWrite)

	internal := app.Group("/internal", cfg.ServiceAuth.Handle)
	internal.Get("/users", read, cfg.Internal.UserByEmail)
	internal.Put("/users/:id/reset-password", write, cfg.Internal.ResetUserPassword)
	internal.Get("/passengers", read, cfg.Internal.PassengerByEmail)
	internal.Put("/passengers/:id/reset-password", write, cfg.Internal.ResetPassengerPassword)
	internal.Post("/passengers", write, cfg.Internal.CreatePassenger)
}
