package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ops-assistant/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Tools     *handlers.ToolsHandler
	Resources *handlers.ResourcesHandler
	Prompts   *handlers.PromptsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	tools := app.Group("/tools")
	tools.Post("/lookup_inventory", cfg.Tools.LookupInventory)
	tools.Post("/search_policy", cfg.Tools.SearchPolicy)
	tools.Post("/create_ticket", cfg.Tools.CreateTicket)

	resources := app.Group("/resources")
	resources.Get("/policy", cfg.Resources.PolicyIndex)
	resources.Get("/policy/:doc_id", cfg.Resources.PolicyDetail)

	prompts := app.Group("/prompts")
	prompts.Get("/incident-report", cfg.Prompts.IncidentReport)
	prompts.Get("/policy-answer", cfg.Prompts.PolicyAnswer)
}
