package service

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ops-assistant/internal/audit"
	"github.com/spec-kit/ops-assistant/internal/domain"
	"github.com/spec-kit/ops-assistant/internal/events"
	"github.com/spec-kit/ops-assistant/internal/store"
	"github.com/spec-kit/ops-assistant/pkg/util/errorutil"
)

func newTicketFixture(t *testing.T) (*TicketService, *store.TicketLedger, string, events.Dispatcher) {
	t.Helper()
	ledger, err := store.NewTicketLedger(filepath.Join(t.TempDir(), "tickets.jsonl"), 6, zap.NewNop())
	require.NoError(t, err)
	auditLogger, auditPath := newTestAudit(t)
	dispatcher := events.NewInMemoryDispatcher()
	return NewTicketService(ledger, auditLogger, dispatcher), ledger, auditPath, dispatcher
}

func validInput() TicketCreateInput {
	return TicketCreateInput{
		Title:    "Printer on fire",
		Body:     "The office printer is emitting smoke.",
		Priority: "high",
	}
}

func TestCreatePreview(t *testing.T) {
	svc, ledger, auditPath, _ := newTicketFixture(t)

	input := validInput()
	input.Confirm = false
	result, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, OutcomePreview, result.Outcome)
	assert.Contains(t, result.Preview, "Printer on fire")
	assert.Contains(t, result.Preview, "high")
	assert.Contains(t, result.Preview, "confirm=true")
	assert.Nil(t, result.Ticket)

	tickets, err := ledger.Load()
	require.NoError(t, err)
	assert.Empty(t, tickets, "preview must not persist anything")

	records := readAuditRecords(t, auditPath)
	require.Len(t, records, 1)
	assert.Equal(t, audit.ActionPreview, records[0].Action)
	assert.True(t, records[0].Success)
}

func TestCreateConfirmed(t *testing.T) {
	svc, ledger, auditPath, _ := newTicketFixture(t)

	input := validInput()
	input.Confirm = true
	result, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, OutcomeCreated, result.Outcome)
	require.NotNil(t, result.Ticket)
	assert.Equal(t, "TKT-006", result.Ticket.TicketID)
	assert.Equal(t, domain.TicketStatusOpen, result.Ticket.Status)
	assert.Equal(t, domain.TicketPriorityHigh, result.Ticket.Priority)
	assert.False(t, result.Ticket.CreatedAt.IsZero())
	assert.Empty(t, result.Ticket.AssignedTo)

	tickets, err := ledger.Load()
	require.NoError(t, err)
	require.Len(t, tickets, 1)

	records := readAuditRecords(t, auditPath)
	require.Len(t, records, 1)
	assert.Equal(t, audit.ActionCreate, records[0].Action)
	assert.True(t, records[0].Success)
}

func TestCreateNormalizesInput(t *testing.T) {
	svc, _, _, _ := newTicketFixture(t)

	input := TicketCreateInput{
		Title:    "  padded title  ",
		Body:     "  padded body  ",
		Priority: " HIGH ",
		Confirm:  true,
	}
	result, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "padded title", result.Ticket.Title)
	assert.Equal(t, "padded body", result.Ticket.Body)
	assert.Equal(t, domain.TicketPriorityHigh, result.Ticket.Priority)
}

func TestCreateValidationFailures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*TicketCreateInput)
	}{
		{name: "bad priority", mutate: func(in *TicketCreateInput) { in.Priority = "urgent" }},
		{name: "empty title", mutate: func(in *TicketCreateInput) { in.Title = "   " }},
		{name: "title too long", mutate: func(in *TicketCreateInput) { in.Title = strings.Repeat("x", 201) }},
		{name: "empty body", mutate: func(in *TicketCreateInput) { in.Body = "" }},
		{name: "body too long", mutate: func(in *TicketCreateInput) { in.Body = strings.Repeat("x", 501) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, ledger, auditPath, _ := newTicketFixture(t)

			input := validInput()
			input.Confirm = true
			tc.mutate(&input)

			_, err := svc.Create(context.Background(), input)
			require.Error(t, err)
			assert.True(t, errorutil.HasCode(err, errorutil.CodeInvalidArgument))

			tickets, lerr := ledger.Load()
			require.NoError(t, lerr)
			assert.Empty(t, tickets)

			records := readAuditRecords(t, auditPath)
			require.Len(t, records, 1)
			assert.False(t, records[0].Success)
		})
	}
}

func TestCreateIdempotentReplay(t *testing.T) {
	svc, ledger, auditPath, _ := newTicketFixture(t)

	input := validInput()
	input.Confirm = true
	input.IdempotencyKey = "retry-abc"

	first, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, OutcomeCreated, first.Outcome)

	second, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, OutcomeIdempotent, second.Outcome)
	assert.Equal(t, first.Ticket.TicketID, second.Ticket.TicketID)
	assert.True(t, first.Ticket.CreatedAt.Equal(second.Ticket.CreatedAt))

	tickets, err := ledger.Load()
	require.NoError(t, err)
	require.Len(t, tickets, 1, "replay must not append a second record")

	records := readAuditRecords(t, auditPath)
	require.Len(t, records, 2)
	assert.Equal(t, audit.ActionCreate, records[0].Action)
	assert.Equal(t, audit.ActionIdempotentReturn, records[1].Action)
}

func TestCreateDistinctKeysDistinctTickets(t *testing.T) {
	svc, _, _, _ := newTicketFixture(t)

	input := validInput()
	input.Confirm = true

	input.IdempotencyKey = "k1"
	a, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	input.IdempotencyKey = "k2"
	b, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	input.IdempotencyKey = ""
	c, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	assert.NotEqual(t, a.Ticket.TicketID, b.Ticket.TicketID)
	assert.NotEqual(t, b.Ticket.TicketID, c.Ticket.TicketID)
	assert.NotEqual(t, a.Ticket.TicketID, c.Ticket.TicketID)
}

func TestCreateSequentialIDs(t *testing.T) {
	svc, _, _, _ := newTicketFixture(t)

	want := []string{"TKT-006", "TKT-007", "TKT-008"}
	for _, expected := range want {
		input := validInput()
		input.Confirm = true
		result, err := svc.Create(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, expected, result.Ticket.TicketID)
	}
}

func TestCreatePublishesEvent(t *testing.T) {
	svc, _, _, dispatcher := newTicketFixture(t)

	var mu sync.Mutex
	received := []events.Event{}
	dispatcher.Subscribe(events.EventTicketCreated, func(ctx context.Context, event events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, event)
		return nil
	})

	input := validInput()
	input.Confirm = true
	result, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	assert.Equal(t, result.Ticket.TicketID, received[0].TicketID)
	assert.NotEmpty(t, received[0].ID)

	payload, ok := received[0].Payload.(events.TicketCreatedPayload)
	require.True(t, ok)
	assert.Equal(t, "Printer on fire", payload.Title)
}

func TestCreateNoEventOnPreviewOrReplay(t *testing.T) {
	svc, _, _, dispatcher := newTicketFixture(t)

	count := 0
	dispatcher.Subscribe(events.EventTicketCreated, func(ctx context.Context, event events.Event) error {
		count++
		return nil
	})

	input := validInput()
	input.IdempotencyKey = "once"

	_, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	input.Confirm = true
	_, err = svc.Create(context.Background(), input)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 1, count, "only the Created path publishes")
}
