package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gkh-dispatch/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Requests    *handlers.RequestsHandler
	Focus       *handlers.FocusHandler
	Departments *handlers.DepartmentsHandler
	Dashboard   *handlers.DashboardHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Dashboard.Metrics)

	api := app.Group("/api/v1")
	api.Get("/dashboard", cfg.Dashboard.Dashboard)
	api.Get("/operator", cfg.Dashboard.Operator)
	api.Get("/categories", cfg.Dashboard.Categories)

	requests := api.Group("/requests")
	requests.Get("/", cfg.Requests.ListRequests)
	requests.Get("/counters", cfg.Requests.Counters)
	requests.Get("/:id", cfg.Requests.GetRequest)
	requests.Post("/:id/accept", cfg.Requests.Accept)
	requests.Post("/:id/complete", cfg.Requests.Complete)
	requests.Post("/:id/assign", cfg.Requests.Assign)

	api.Get("/focus", cfg.Focus.Get)
	api.Put("/focus", cfg.Focus.Set)
	api.Delete("/focus", cfg.Focus.Clear)

	departments := api.Group("/departments")
	departments.Get("/", cfg.Departments.List)
	departments.Get("/:id", cfg.Departments.Get)
	departments.Get("/:id/requests", cfg.Departments.Requests)
}
