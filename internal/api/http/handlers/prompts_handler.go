package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ops-assistant/internal/service"
)

// PromptsHandler serves the pre-built prompt templates.
type PromptsHandler struct {
	prompts *service.PromptService
}

// NewPromptsHandler constructs handler.
func NewPromptsHandler(prompts *service.PromptService) *PromptsHandler {
	return &PromptsHandler{prompts: prompts}
}

// IncidentReport GET /prompts/incident-report.
func (h *PromptsHandler) IncidentReport(c *fiber.Ctx) error {
	prompt, err := h.prompts.IncidentReport(c.Query("issue"), c.Query("affected_system"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": prompt})
}

// PolicyAnswer GET /prompts/policy-answer.
func (h *PromptsHandler) PolicyAnswer(c *fiber.Ctx) error {
	prompt, err := h.prompts.PolicyAnswer(c.Query("question"), c.Query("doc_id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": prompt})
}
