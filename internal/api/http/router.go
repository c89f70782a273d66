package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orca-works/orca-crm/internal/api/http/handlers"
	"github.com/orca-works/orca-crm/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Customers      *handlers.CustomersHandler
	Tickets        *handlers.TicketsHandler
	Tasks          *handlers.TasksHandler
	Devices        *handlers.DevicesHandler
	Worklogs       *handlers.WorklogsHandler
	Types          *handlers.TypesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Everything past health and login sits
// behind the operator auth gate.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)
	app.Post("/auth/logout", cfg.Auth.Logout)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	protected.Get("/auth/me", cfg.Auth.Me)

	protected.Get("/customers", cfg.Customers.List)
	protected.Post("/customers", cfg.Customers.Create)
	protected.Get("/customers/:id", cfg.Customers.Get)
	protected.Put("/customers/:id", cfg.Customers.Update)
	protected.Delete("/customers/:id", cfg.Customers.Delete)

	protected.Get("/customers/:id/devices", cfg.Devices.ListByCustomer)
	protected.Post("/customers/:id/devices", cfg.Devices.Create)
	protected.Put("/devices/:id", cfg.Devices.Update)
	protected.Delete("/devices/:id", cfg.Devices.Delete)

	protected.Get("/tickets/count", cfg.Tickets.CountByDate)
	protected.Get("/tickets/next-number", cfg.Tickets.NextNumber)
	protected.Get("/tickets", cfg.Tickets.List)
	protected.Post("/tickets", cfg.Tickets.Create)
	protected.Get("/tickets/by-number/:ticketNumber", cfg.Tickets.GetByNumber)
	protected.Put("/tickets/by-number/:ticketNumber", cfg.Tickets.UpdateByNumber)
	protected.Delete("/tickets/:id", cfg.Tickets.Delete)

	protected.Get("/tickets/:id/tasks", cfg.Tasks.ListByTicket)
	protected.Post("/tickets/:id/tasks", cfg.Tasks.Create)
	protected.Put("/tasks/:id", cfg.Tasks.Update)
	protected.Delete("/tasks/:id", cfg.Tasks.Delete)

	protected.Get("/tickets/:id/worklogs", cfg.Worklogs.ListByTicket)
	protected.Post("/tickets/:id/worklogs", cfg.Worklogs.Create)

	protected.Get("/ticket-types", cfg.Types.ListTicketTypes)
	protected.Get("/task-types", cfg.Types.ListTaskTypes)
	protected.Get("/device-types", cfg.Types.ListDeviceTypes)
}
