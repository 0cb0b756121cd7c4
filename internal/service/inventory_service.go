package service

import (
	"fmt"
	"strings"

	"github.com/spec-kit/ops-assistant/internal/audit"
	"github.com/spec-kit/ops-assistant/internal/domain"
	"github.com/spec-kit/ops-assistant/internal/validation"
)

const maxLookupResults = 10

// InventoryService answers lookup queries against the in-memory inventory.
type InventoryService struct {
	items []domain.InventoryItem
	audit *audit.Logger
}

// NewInventoryService constructs the service over the loaded inventory.
func NewInventoryService(items []domain.InventoryItem, auditLogger *audit.Logger) *InventoryService {
	return &InventoryService{items: items, audit: auditLogger}
}

// LookupResult holds either matched items or a human-readable message when
// nothing matched. Zero matches is a successful outcome, not an error.
type LookupResult struct {
	Items   []domain.InventoryItem `json:"items,omitempty"`
	Message string                 `json:"message,omitempty"`
}

// Lookup matches items whose name or category contains the sanitized query
// as a case-insensitive substring. At most 10 items are returned, preserving
// load order. Exactly one audit record is written per call.
func (s *InventoryService) Lookup(query string) (*LookupResult, error) {
	sanitized, err := validation.SanitizeQuery(query)
	if err != nil {
		s.audit.Log(audit.Record{
			Action:        audit.ActionLookup,
			ToolName:      "lookup_inventory",
			InputSummary:  fmt.Sprintf("query=%s", query),
			ResultSummary: err.Error(),
			Success:       false,
		})
		return nil, err
	}

	matches := []domain.InventoryItem{}
	for _, item := range s.items {
		if strings.Contains(strings.ToLower(item.Name), sanitized) ||
			strings.Contains(strings.ToLower(item.Category), sanitized) {
			matches = append(matches, item)
			if len(matches) == maxLookupResults {
				break
			}
		}
	}

	if len(matches) == 0 {
		message := fmt.Sprintf("No items found matching %q", sanitized)
		s.audit.Log(audit.Record{
			Action:        audit.ActionLookup,
			ToolName:      "lookup_inventory",
			InputSummary:  fmt.Sprintf("query=%s", sanitized),
			ResultSummary: message,
			Success:       true,
		})
		return &LookupResult{Message: message}, nil
	}

	s.audit.Log(audit.Record{
		Action:        audit.ActionLookup,
		ToolName:      "lookup_inventory",
		InputSummary:  fmt.Sprintf("query=%s", sanitized),
		ResultSummary: fmt.Sprintf("Found %d item(s)", len(matches)),
		Success:       true,
	})
	return &LookupResult{Items: matches}, nil
}
