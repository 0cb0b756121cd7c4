// Package audit writes one JSONL record per tool or resource invocation.
// The log is append-only and never read back by the service itself.
package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Action identifies what a tool call did.
type Action string

const (
	ActionPreview          Action = "preview"
	ActionCreate           Action = "create"
	ActionIdempotentReturn Action = "idempotent_return"
	ActionLookup           Action = "lookup"
	ActionSearch           Action = "search"
)

// Summaries are bounded so a hostile query cannot bloat the log.
const summaryLimit = 256

// Record is one audit line.
type Record struct {
	Timestamp     time.Time `json:"timestamp"`
	Action        Action    `json:"action"`
	ToolName      string    `json:"tool_name"`
	InputSummary  string    `json:"input_summary"`
	ResultSummary string    `json:"result_summary"`
	Success       bool      `json:"success"`
}

// FailureObserver is notified when an audit append fails.
type FailureObserver interface {
	RecordAuditFailure()
}

// Logger serializes appends to a single audit log destination. A write
// failure is surfaced through the process logger and the failure observer,
// never through the triggering tool call's own result.
type Logger struct {
	mu       sync.Mutex
	path     string
	logger   *zap.Logger
	observer FailureObserver
}

// NewLogger creates a Logger appending to path. The parent directory is
// created if needed.
func NewLogger(path string, logger *zap.Logger, observer FailureObserver) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &Logger{path: path, logger: logger, observer: observer}, nil
}

// Log appends one record. The timestamp is stamped here (UTC) when unset,
// and summaries are flattened to a single bounded line.
func (l *Logger) Log(rec Record) {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	rec.InputSummary = flattenSummary(rec.InputSummary)
	rec.ResultSummary = flattenSummary(rec.ResultSummary)

	line, err := json.Marshal(rec)
	if err != nil {
		l.reportFailure(rec, err)
		return
	}
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		l.reportFailure(rec, err)
		return
	}
	defer f.Close()
	if _, err := f.Write(line); err != nil {
		l.reportFailure(rec, err)
	}
}

// Ping verifies the audit destination is writable.
func (l *Logger) Ping() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}

func (l *Logger) reportFailure(rec Record, err error) {
	if l.logger != nil {
		l.logger.Error("audit append failed",
			zap.String("path", l.path),
			zap.String("action", string(rec.Action)),
			zap.String("tool_name", rec.ToolName),
			zap.Error(err))
	}
	if l.observer != nil {
		l.observer.RecordAuditFailure()
	}
}

// flattenSummary collapses whitespace runs (including newlines, which would
// break the one-record-per-line format) and truncates to summaryLimit.
func flattenSummary(s string) string {
	flat := strings.Join(strings.Fields(s), " ")
	runes := []rune(flat)
	if len(runes) <= summaryLimit {
		return flat
	}
	return string(runes[:summaryLimit-3]) + "..."
}
