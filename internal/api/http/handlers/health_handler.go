package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ops-assistant/internal/audit"
	"github.com/spec-kit/ops-assistant/internal/store"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	ledger      *store.TicketLedger
	audit       *audit.Logger
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, ledger *store.TicketLedger, auditLogger *audit.Logger) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, ledger: ledger, audit: auditLogger}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking the append destinations.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	depStatus := fiber.Map{}
	ready := true

	if err := h.ledger.Ping(); err != nil {
		depStatus["ticket_ledger"] = err.Error()
		ready = false
	} else {
		depStatus["ticket_ledger"] = "ok"
	}

	if err := h.audit.Ping(); err != nil {
		depStatus["audit_log"] = err.Error()
		ready = false
	} else {
		depStatus["audit_log"] = "ok"
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": depStatus,
		},
	})
}
