package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets. Creation always
// yields an open ticket; no further transitions are performed here.
type TicketStatus string

const (
	TicketStatusOpen TicketStatus = "open"
)

// TicketPriority enumerates SLA urgency.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "low"
	TicketPriorityMedium   TicketPriority = "medium"
	TicketPriorityHigh     TicketPriority = "high"
	TicketPriorityCritical TicketPriority = "critical"
)

// Ticket is the aggregate for support requests. Tickets live in an
// append-only JSONL ledger; a record is never edited in place.
type Ticket struct {
	TicketID       string         `json:"ticket_id"`
	Title          string         `json:"title"`
	Body           string         `json:"body"`
	Priority       TicketPriority `json:"priority"`
	Status         TicketStatus   `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	IdempotencyKey string         `json:"idempotency_key,omitempty"`
	AssignedTo     string         `json:"assigned_to,omitempty"`
}
