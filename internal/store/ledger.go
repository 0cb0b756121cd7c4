package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ops-assistant/internal/domain"
)

// TicketLedger is the append-only JSONL ticket store. All writes go through
// a single mutex so the read-modify-append sequence (idempotency scan, ID
// allocation, append) is one critical section per ledger; without that,
// concurrent creators can race to the same ID.
type TicketLedger struct {
	mu     sync.Mutex
	path   string
	seed   int
	logger *zap.Logger
}

// NewTicketLedger creates a ledger backed by the JSONL file at path. seed is
// the numeric suffix of the first ticket ID issued on an empty ledger.
func NewTicketLedger(path string, seed int, logger *zap.Logger) (*TicketLedger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &TicketLedger{path: path, seed: seed, logger: logger}, nil
}

// Load parses the ledger, one ticket per line. Blank or malformed lines are
// skipped rather than fatal; the ledger tolerates trailing blank lines.
func (l *TicketLedger) Load() ([]domain.Ticket, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadLocked()
}

// Create allocates the next ticket ID, stamps the creation time, and appends
// the draft, all under the ledger lock. When the draft carries a non-empty
// idempotency key already present in the ledger, the existing ticket is
// returned instead and nothing is appended; the second return reports
// whether a new record was written.
func (l *TicketLedger) Create(draft domain.Ticket) (domain.Ticket, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	existing, err := l.loadLocked()
	if err != nil {
		return domain.Ticket{}, false, err
	}

	if draft.IdempotencyKey != "" {
		for _, t := range existing {
			if t.IdempotencyKey == draft.IdempotencyKey {
				return t, false, nil
			}
		}
	}

	draft.TicketID = nextID(existing, l.seed)
	draft.CreatedAt = time.Now().UTC()
	if err := l.appendLocked(draft); err != nil {
		return domain.Ticket{}, false, err
	}
	return draft, true, nil
}

// Ping verifies the ledger destination is writable.
func (l *TicketLedger) Ping() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}

func (l *TicketLedger) loadLocked() ([]domain.Ticket, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Ticket{}, nil
		}
		return nil, fmt.Errorf("open ticket ledger: %w", err)
	}
	defer f.Close()

	tickets := []domain.Ticket{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var t domain.Ticket
		if err := json.Unmarshal([]byte(line), &t); err != nil {
			if l.logger != nil {
				l.logger.Warn("skipping malformed ledger line", zap.Error(err))
			}
			continue
		}
		tickets = append(tickets, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan ticket ledger: %w", err)
	}
	return tickets, nil
}

// appendLocked writes one ticket line. The file is opened O_APPEND only;
// prior content is never truncated or rewritten.
func (l *TicketLedger) appendLocked(t domain.Ticket) error {
	line, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshal ticket: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open ticket ledger: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append ticket: %w", err)
	}
	return nil
}

// nextID returns max(existing numeric suffixes)+1 formatted as TKT-NNN with
// three-digit zero padding; the field widens naturally past 999. The seed is
// used only when no existing ticket carries a parseable TKT- ID, so a ledger
// holding TKT-003 alone yields TKT-004 regardless of the seed.
func nextID(existing []domain.Ticket, seed int) string {
	next := seed
	parsed := false
	for _, t := range existing {
		suffix, ok := strings.CutPrefix(t.TicketID, "TKT-")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if !parsed || n+1 > next {
			next = n + 1
		}
		parsed = true
	}
	return fmt.Sprintf("TKT-%03d", next)
}
