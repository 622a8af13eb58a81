package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/colts18seth/jobly/internal/api/http/handlers"
	"github.com/colts18seth/jobly/internal/auth"
	apperrors "github.com/colts18seth/jobly/pkg/util/errorutil"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Companies     *handlers.CompaniesHandler
	Jobs          *handlers.JobsHandler
	Users         *handlers.UsersHandler
	Login         *handlers.LoginHandler
	Authenticator *auth.Authenticator
	LoginLimiter  *RateLimiter
}

// RegisterRoutes wires HTTP routes. The authenticator runs for every
// request; each route then lists its own gates ahead of the handler.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Use(cfg.Authenticator.Handle)

	loginChain := []fiber.Handler{cfg.Login.Login}
	if cfg.LoginLimiter != nil {
		loginChain = append([]fiber.Handler{cfg.LoginLimiter.Handle}, loginChain...)
	}
	app.Post("/login", loginChain...)

	companies := app.Group("/companies")
	companies.Get("/", cfg.Companies.List)
	companies.Get("/:handle", cfg.Companies.Get)
	companies.Post("/", auth.RequireAdmin(), cfg.Companies.Create)
	companies.Patch("/:handle", auth.RequireAdmin(), cfg.Companies.Update)
	companies.Delete("/:handle", auth.RequireAdmin(), cfg.Companies.Delete)

	jobs := app.Group("/jobs")
	jobs.Get("/", auth.RequireAuthenticated(), cfg.Jobs.List)
	jobs.Get("/:id", auth.RequireAuthenticated(), cfg.Jobs.Get)
	jobs.Post("/", auth.RequireAdmin(), cfg.Jobs.Create)
	jobs.Patch("/:id", auth.RequireAdmin(), cfg.Jobs.Update)
	jobs.Delete("/:id", auth.RequireAdmin(), cfg.Jobs.Delete)

	users := app.Group("/users")
	users.Post("/", cfg.Users.Register)
	users.Get("/", cfg.Users.List)
	users.Get("/:username", cfg.Users.Get)
	users.Patch("/:username", auth.RequireSelf("username"), cfg.Users.Update)
	users.Delete("/:username", auth.RequireSelf("username"), cfg.Users.Delete)

	app.Use(func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("route", map[string]any{"method": c.Method(), "path": c.Path()})
	})
}
