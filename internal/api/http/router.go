package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/counterdesk/counter-dispatch/internal/api/http/handlers"
	"github.com/counterdesk/counter-dispatch/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Tickets *handlers.TicketsHandler
	Counter *handlers.CounterHandler
	Metrics *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	tickets := app.Group("/tickets")
	tickets.Post("/", cfg.Tickets.IssueTicket)
	tickets.Get("/", cfg.Tickets.ListTickets)
	tickets.Get("/:number", cfg.Tickets.GetTicket)
	tickets.Get("/:number/estimate", cfg.Tickets.GetEstimate)
	tickets.Get("/:number/events", cfg.Tickets.ListEvents)

	counter := app.Group("/counter")
	counter.Post("/call", cfg.Counter.CallNext)
	counter.Post("/finalize", cfg.Counter.Finalize)
	counter.Get("/panel", cfg.Counter.Panel)

	app.Get("/stats", cfg.Counter.Stats)
}
