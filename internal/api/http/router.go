package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/warehouse-rental/internal/api/http/handlers"
	"github.com/spec-kit/warehouse-rental/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Roles   *handlers.RolesHandler
	Sectors *handlers.SectorsHandler
	Users   *handlers.UsersHandler
	Rentals *handlers.RentalsHandler
	// AuthMiddleware guards the administrative routes when ProtectAdmin is set.
	AuthMiddleware *auth.AuthMiddleware
	ProtectAdmin   bool
}

// RegisterRoutes wires HTTP routes. Literal segments are registered before
// parameterized ones so /disponibles and /autenticar are not captured as ids.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	adminGuard := func(c *fiber.Ctx) error { return c.Next() }
	if cfg.ProtectAdmin && cfg.AuthMiddleware != nil {
		adminGuard = cfg.AuthMiddleware.Handle
	}

	roles := api.Group("/roles")
	roles.Post("/", cfg.Roles.Create)
	roles.Get("/", cfg.Roles.List)
	roles.Get("/:id", cfg.Roles.GetByID)
	roles.Put("/:id", cfg.Roles.Update)
	roles.Delete("/:id", cfg.Roles.Delete)

	sectors := api.Group("/sectores")
	sectors.Get("/", cfg.Sectors.List)
	sectors.Get("/disponibles", cfg.Sectors.ListAvailable)
	sectors.Get("/nombre/:nombre", cfg.Sectors.GetByName)
	sectors.Get("/:id", cfg.Sectors.GetByID)
	sectors.Put("/:id/estado", adminGuard, cfg.Sectors.UpdateState)

	users := api.Group("/usuarios")
	users.Post("/", cfg.Users.Create)
	users.Get("/", cfg.Users.List)
	users.Post("/autenticar", cfg.Users.Authenticate)
	users.Post("/confirmarCorreo/:email", cfg.Users.ConfirmEmail)
	users.Post("/actualizarContrasena", cfg.Users.UpdateCredential)
	users.Get("/correo/:correo", cfg.Users.GetByEmail)
	users.Get("/:id", cfg.Users.GetByID)
	users.Put("/:id", cfg.Users.Update)
	users.Delete("/:id", adminGuard, cfg.Users.Delete)

	rentals := api.Group("/alquileres")
	rentals.Post("/", cfg.Rentals.Create)
	rentals.Get("/usuario/:usuarioId", cfg.Rentals.ListByUser)
	rentals.Post("/:id/finalizar", cfg.Rentals.Finalize)
}
