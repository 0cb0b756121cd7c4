// Package validation holds the pure input validators shared by the tool and
// resource handlers. Each function either returns a normalized value or a
// terminal INVALID_ARGUMENT error; there is no partial validation state.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spec-kit/ops-assistant/internal/domain"
	"github.com/spec-kit/ops-assistant/pkg/util/errorutil"
)

var validPriorities = map[domain.TicketPriority]struct{}{
	domain.TicketPriorityLow:      {},
	domain.TicketPriorityMedium:   {},
	domain.TicketPriorityHigh:     {},
	domain.TicketPriorityCritical: {},
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	docIDPattern  = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
)

// Priority normalizes a priority value (trim, lowercase) and ensures it is
// one of low, medium, high, critical.
func Priority(value string) (domain.TicketPriority, error) {
	normalized := domain.TicketPriority(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := validPriorities[normalized]; !ok {
		return "", errorutil.NewInvalidArgument(
			fmt.Sprintf("invalid priority %q; must be one of: low, medium, high, critical", value),
			map[string]any{"priority": value},
		)
	}
	return normalized, nil
}

// TextLength trims text and ensures it is non-empty and within maxLen.
func TextLength(text, fieldName string, maxLen int) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", errorutil.NewInvalidArgument(
			fmt.Sprintf("%q must not be empty", fieldName),
			map[string]any{"field": fieldName},
		)
	}
	if length := len([]rune(trimmed)); length > maxLen {
		return "", errorutil.NewInvalidArgument(
			fmt.Sprintf("%q exceeds maximum length of %d characters (got %d)", fieldName, maxLen, length),
			map[string]any{"field": fieldName, "max_len": maxLen, "len": length},
		)
	}
	return trimmed, nil
}

// SanitizeQuery trims a search query, collapses internal whitespace runs to
// single spaces, and lowercases it. Idempotent.
func SanitizeQuery(query string) (string, error) {
	sanitized := strings.ToLower(whitespaceRun.ReplaceAllString(strings.TrimSpace(query), " "))
	if sanitized == "" {
		return "", errorutil.NewInvalidArgument("search query must not be empty", nil)
	}
	return sanitized, nil
}

// DocID trims a document ID and rejects anything outside [A-Za-z0-9-].
// Dots and slashes fail outright, which is the path-traversal defense.
func DocID(docID string) (string, error) {
	trimmed := strings.TrimSpace(docID)
	if trimmed == "" {
		return "", errorutil.NewInvalidArgument("document ID must not be empty", nil)
	}
	if !docIDPattern.MatchString(trimmed) {
		return "", errorutil.NewInvalidArgument(
			fmt.Sprintf("invalid document ID %q; only alphanumeric characters and hyphens are allowed", docID),
			map[string]any{"doc_id": docID},
		)
	}
	return trimmed, nil
}
