package dto

import (
	"time"

	"github.com/spec-kit/ops-assistant/internal/domain"
)

// QueryRequest payload shared by the lookup and search tools.
type QueryRequest struct {
	Query string `json:"query"`
}

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title          string `json:"title"`
	Body           string `json:"body"`
	Priority       string `json:"priority"`
	Confirm        bool   `json:"confirm"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// TicketResponse is the full ticket representation.
type TicketResponse struct {
	TicketID       string                `json:"ticket_id"`
	Title          string                `json:"title"`
	Body           string                `json:"body"`
	Priority       domain.TicketPriority `json:"priority"`
	Status         domain.TicketStatus   `json:"status"`
	CreatedAt      time.Time             `json:"created_at"`
	IdempotencyKey string                `json:"idempotency_key,omitempty"`
	AssignedTo     string                `json:"assigned_to,omitempty"`
}

// TicketFromDomain maps a ticket to its response shape.
func TicketFromDomain(t *domain.Ticket) TicketResponse {
	return TicketResponse{
		TicketID:       t.TicketID,
		Title:          t.Title,
		Body:           t.Body,
		Priority:       t.Priority,
		Status:         t.Status,
		CreatedAt:      t.CreatedAt,
		IdempotencyKey: t.IdempotencyKey,
		AssignedTo:     t.AssignedTo,
	}
}
