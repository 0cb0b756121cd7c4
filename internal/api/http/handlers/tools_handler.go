package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ops-assistant/internal/api/dto"
	"github.com/spec-kit/ops-assistant/internal/observability"
	"github.com/spec-kit/ops-assistant/internal/service"
	"github.com/spec-kit/ops-assistant/pkg/util/errorutil"
)

// ToolsHandler exposes the three tool endpoints the assistant client calls.
type ToolsHandler struct {
	inventory *service.InventoryService
	policy    *service.PolicyService
	tickets   *service.TicketService
	metrics   *observability.Metrics
}

// NewToolsHandler constructs handler.
func NewToolsHandler(inventory *service.InventoryService, policy *service.PolicyService, tickets *service.TicketService, metrics *observability.Metrics) *ToolsHandler {
	return &ToolsHandler{inventory: inventory, policy: policy, tickets: tickets, metrics: metrics}
}

// LookupInventory POST /tools/lookup_inventory.
func (h *ToolsHandler) LookupInventory(c *fiber.Ctx) error {
	h.metrics.RecordToolInvocation("lookup_inventory")
	var req dto.QueryRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewInvalidArgument("invalid payload", nil)
	}
	result, err := h.inventory.Lookup(req.Query)
	if err != nil {
		return err
	}
	if result.Message != "" {
		return c.JSON(fiber.Map{"data": result.Message})
	}
	return c.JSON(fiber.Map{"data": result.Items})
}

// SearchPolicy POST /tools/search_policy.
func (h *ToolsHandler) SearchPolicy(c *fiber.Ctx) error {
	h.metrics.RecordToolInvocation("search_policy")
	var req dto.QueryRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewInvalidArgument("invalid payload", nil)
	}
	result, err := h.policy.Search(req.Query)
	if err != nil {
		return err
	}
	if result.Message != "" {
		return c.JSON(fiber.Map{"data": result.Message})
	}
	return c.JSON(fiber.Map{"data": result.Results})
}

// CreateTicket POST /tools/create_ticket.
func (h *ToolsHandler) CreateTicket(c *fiber.Ctx) error {
	h.metrics.RecordToolInvocation("create_ticket")
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewInvalidArgument("invalid payload", nil)
	}
	result, err := h.tickets.Create(c.UserContext(), service.TicketCreateInput{
		Title:          req.Title,
		Body:           req.Body,
		Priority:       req.Priority,
		Confirm:        req.Confirm,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		return err
	}
	if result.Outcome == service.OutcomePreview {
		return c.JSON(fiber.Map{"data": result.Preview})
	}
	status := fiber.StatusOK
	if result.Outcome == service.OutcomeCreated {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"data": dto.TicketFromDomain(result.Ticket)})
}
