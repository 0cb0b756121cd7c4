package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/ops-assistant/internal/audit"
	"github.com/spec-kit/ops-assistant/internal/domain"
	"github.com/spec-kit/ops-assistant/internal/events"
	"github.com/spec-kit/ops-assistant/internal/store"
	"github.com/spec-kit/ops-assistant/internal/validation"
)

const (
	maxTitleLength = 200
	maxBodyLength  = 500
)

// CreateOutcome names the state the creation call ended in.
type CreateOutcome string

const (
	OutcomePreview    CreateOutcome = "preview"
	OutcomeIdempotent CreateOutcome = "idempotent"
	OutcomeCreated    CreateOutcome = "created"
)

// TicketService runs the preview/confirm creation flow against the ledger.
type TicketService struct {
	ledger     *store.TicketLedger
	audit      *audit.Logger
	dispatcher events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(ledger *store.TicketLedger, auditLogger *audit.Logger, dispatcher events.Dispatcher) *TicketService {
	return &TicketService{ledger: ledger, audit: auditLogger, dispatcher: dispatcher}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title          string
	Body           string
	Priority       string
	Confirm        bool
	IdempotencyKey string
}

// TicketCreateResult is the outcome of one creation call: preview text when
// the confirm gate was not passed, otherwise the created or replayed ticket.
type TicketCreateResult struct {
	Outcome CreateOutcome
	Preview string
	Ticket  *domain.Ticket
}

// Create validates input and walks the creation state machine. With
// confirm=false it returns a preview and persists nothing. With confirm=true
// and a known idempotency key it returns the stored ticket unchanged,
// consuming no ID. Otherwise it appends a new open ticket and publishes a
// ticket_created event. One audit record is written per call.
func (s *TicketService) Create(ctx context.Context, input TicketCreateInput) (*TicketCreateResult, error) {
	priority, title, body, err := validateCreateInput(input)
	if err != nil {
		action := audit.ActionPreview
		if input.Confirm {
			action = audit.ActionCreate
		}
		s.audit.Log(audit.Record{
			Action:        action,
			ToolName:      "create_ticket",
			InputSummary:  fmt.Sprintf("title=%s, priority=%s", input.Title, input.Priority),
			ResultSummary: err.Error(),
			Success:       false,
		})
		return nil, err
	}

	if !input.Confirm {
		preview := fmt.Sprintf("Preview: Ticket %q (priority: %s). Set confirm=true to create.", title, priority)
		s.audit.Log(audit.Record{
			Action:        audit.ActionPreview,
			ToolName:      "create_ticket",
			InputSummary:  fmt.Sprintf("title=%s, priority=%s", title, priority),
			ResultSummary: "Preview returned",
			Success:       true,
		})
		return &TicketCreateResult{Outcome: OutcomePreview, Preview: preview}, nil
	}

	draft := domain.Ticket{
		Title:          title,
		Body:           body,
		Priority:       priority,
		Status:         domain.TicketStatusOpen,
		IdempotencyKey: input.IdempotencyKey,
	}
	ticket, created, err := s.ledger.Create(draft)
	if err != nil {
		s.audit.Log(audit.Record{
			Action:        audit.ActionCreate,
			ToolName:      "create_ticket",
			InputSummary:  fmt.Sprintf("title=%s, priority=%s", title, priority),
			ResultSummary: err.Error(),
			Success:       false,
		})
		return nil, err
	}

	if !created {
		s.audit.Log(audit.Record{
			Action:        audit.ActionIdempotentReturn,
			ToolName:      "create_ticket",
			InputSummary:  fmt.Sprintf("idempotency_key=%s", input.IdempotencyKey),
			ResultSummary: fmt.Sprintf("Returned existing ticket %s", ticket.TicketID),
			Success:       true,
		})
		return &TicketCreateResult{Outcome: OutcomeIdempotent, Ticket: &ticket}, nil
	}

	s.audit.Log(audit.Record{
		Action:        audit.ActionCreate,
		ToolName:      "create_ticket",
		InputSummary:  fmt.Sprintf("title=%s, priority=%s", title, priority),
		ResultSummary: fmt.Sprintf("Created ticket %s", ticket.TicketID),
		Success:       true,
	})
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.TicketID,
		Payload: events.TicketCreatedPayload{
			Title:    ticket.Title,
			Priority: ticket.Priority,
		},
	})
	return &TicketCreateResult{Outcome: OutcomeCreated, Ticket: &ticket}, nil
}

func validateCreateInput(input TicketCreateInput) (domain.TicketPriority, string, string, error) {
	priority, err := validation.Priority(input.Priority)
	if err != nil {
		return "", "", "", err
	}
	title, err := validation.TextLength(input.Title, "title", maxTitleLength)
	if err != nil {
		return "", "", "", err
	}
	body, err := validation.TextLength(input.Body, "body", maxBodyLength)
	if err != nil {
		return "", "", "", err
	}
	return priority, title, body, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
