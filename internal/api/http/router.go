package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/spec-kit/support-desk/internal/api/http/handlers"
	"github.com/spec-kit/support-desk/internal/auth"
)

// APIPrefix versions every application route.
const APIPrefix = "/api/v1"

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Export         *handlers.ExportHandler
	System         *handlers.SystemHandler
	AuthMiddleware *auth.Middleware
	// LoginLimit caps login attempts per client IP per minute; zero disables it.
	LoginLimit int
	// LimiterStorage backs the login limiter; nil keeps counters in memory.
	LimiterStorage fiber.Storage
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group(APIPrefix)
	api.Get("/status", cfg.System.Status)
	api.Get("/migrations", cfg.System.PendingMigrations)
	api.Post("/migrations", cfg.System.ApplyMigrations)

	authGroup := api.Group("/auth")
	if cfg.LoginLimit > 0 {
		authGroup.Post("/login", limiter.New(limiter.Config{
			Max:        cfg.LoginLimit,
			Expiration: time.Minute,
			Storage:    cfg.LimiterStorage,
		}), cfg.Auth.Login)
	} else {
		authGroup.Post("/login", cfg.Auth.Login)
	}
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/verify", cfg.Auth.Verify)

	// Authentication is mounted per resource prefix; unknown API paths answer 404.
	authenticate := cfg.AuthMiddleware.Handle
	active := auth.RequireActive()
	privileged := auth.RequirePrivileged()

	users := api.Group("/users", authenticate, active, privileged)
	users.Get("/", cfg.Users.List)
	users.Get("/count", cfg.Users.Count)
	users.Get("/:id", cfg.Users.Get)
	users.Post("/", cfg.Users.Create)
	users.Put("/", cfg.Users.Update)
	users.Delete("/", cfg.Users.Delete)

	tickets := api.Group("/tickets", authenticate, active)
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Put("/", cfg.Tickets.UpdateTicket)
	tickets.Get("/", privileged, cfg.Tickets.ListTickets)
	tickets.Get("/count", privileged, cfg.Tickets.CountTickets)
	tickets.Get("/:id", privileged, cfg.Tickets.GetTicket)
	tickets.Delete("/", privileged, cfg.Tickets.DeleteTicket)

	export := api.Group("/export", authenticate, active, privileged)
	export.Get("/pdf/ticket/:id", cfg.Export.TicketPDF)
	export.Get("/csv/ticket/:id", cfg.Export.TicketCSV)
	export.Get("/csv/tickets", cfg.Export.TicketsCSV)
}
