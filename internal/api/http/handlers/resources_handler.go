package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ops-assistant/internal/service"
)

// ResourcesHandler serves the read-only policy projections.
type ResourcesHandler struct {
	policy *service.PolicyService
}

// NewResourcesHandler constructs handler.
func NewResourcesHandler(policy *service.PolicyService) *ResourcesHandler {
	return &ResourcesHandler{policy: policy}
}

// PolicyIndex GET /resources/policy.
func (h *ResourcesHandler) PolicyIndex(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.policy.Index()})
}

// PolicyDetail GET /resources/policy/:doc_id.
func (h *ResourcesHandler) PolicyDetail(c *fiber.Ctx) error {
	content, err := h.policy.Detail(c.Params("doc_id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
	return c.SendString(content)
}
