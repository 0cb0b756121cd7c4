package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLogger(t *testing.T) (*Logger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	logger, err := NewLogger(path, zap.NewNop(), nil)
	require.NoError(t, err)
	return logger, path
}

func readRecords(t *testing.T, path string) []Record {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	records := []Record{}
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var rec Record
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		records = append(records, rec)
	}
	return records
}

func TestLogAppendsOneLine(t *testing.T) {
	logger, path := newTestLogger(t)

	logger.Log(Record{
		Action:        ActionLookup,
		ToolName:      "lookup_inventory",
		InputSummary:  "query=laptop",
		ResultSummary: "Found 1 item(s)",
		Success:       true,
	})

	records := readRecords(t, path)
	require.Len(t, records, 1)
	assert.Equal(t, ActionLookup, records[0].Action)
	assert.Equal(t, "lookup_inventory", records[0].ToolName)
	assert.True(t, records[0].Success)
	assert.False(t, records[0].Timestamp.IsZero())
	assert.Equal(t, records[0].Timestamp.UTC(), records[0].Timestamp)
}

func TestLogFlattensNewlines(t *testing.T) {
	logger, path := newTestLogger(t)

	logger.Log(Record{
		Action:        ActionSearch,
		ToolName:      "search_policy",
		InputSummary:  "multi\nline\ninput",
		ResultSummary: "result\r\nwith breaks",
		Success:       false,
	})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 1, "embedded newlines must not split the record")

	records := readRecords(t, path)
	assert.Equal(t, "multi line input", records[0].InputSummary)
	assert.Equal(t, "result with breaks", records[0].ResultSummary)
	assert.False(t, records[0].Success)
}

func TestLogTruncatesLongSummaries(t *testing.T) {
	logger, path := newTestLogger(t)

	logger.Log(Record{
		Action:       ActionCreate,
		ToolName:     "create_ticket",
		InputSummary: strings.Repeat("a", 2*summaryLimit),
		Success:      true,
	})

	records := readRecords(t, path)
	require.Len(t, records, 1)
	assert.LessOrEqual(t, len(records[0].InputSummary), summaryLimit)
	assert.True(t, strings.HasSuffix(records[0].InputSummary, "..."))
}

func TestConcurrentLogging(t *testing.T) {
	logger, path := newTestLogger(t)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Log(Record{
				Action:        ActionLookup,
				ToolName:      "lookup_inventory",
				InputSummary:  "query=chair",
				ResultSummary: "Found 1 item(s)",
				Success:       true,
			})
		}()
	}
	wg.Wait()

	records := readRecords(t, path)
	assert.Len(t, records, n, "every concurrent call must produce exactly one well-formed line")
}

func TestWriteFailureDoesNotPanic(t *testing.T) {
	dir := t.TempDir()
	// a directory at the log path makes every append fail
	path := filepath.Join(dir, "audit.jsonl")
	require.NoError(t, os.Mkdir(path, 0o755))

	logger, err := NewLogger(path, zap.NewNop(), nil)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		logger.Log(Record{Action: ActionCreate, ToolName: "create_ticket", Success: true})
	})
	assert.Error(t, logger.Ping())
}
