package service

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spec-kit/ops-assistant/internal/audit"
	"github.com/spec-kit/ops-assistant/internal/domain"
	"github.com/spec-kit/ops-assistant/internal/validation"
	"github.com/spec-kit/ops-assistant/pkg/util/errorutil"
)

const (
	snippetLength  = 200
	snippetContext = 40
)

// PolicyService serves keyword search over policy documents and the two
// read-only policy resources. Document content is read from disk on every
// access; only the index metadata lives in memory.
type PolicyService struct {
	docs  []domain.PolicyDoc
	audit *audit.Logger
}

// NewPolicyService constructs the service over the loaded policy index.
func NewPolicyService(docs []domain.PolicyDoc, auditLogger *audit.Logger) *PolicyService {
	return &PolicyService{docs: docs, audit: auditLogger}
}

// SearchResult holds either matched documents or a message when nothing
// matched.
type SearchResult struct {
	Results []domain.PolicySearchResult `json:"results,omitempty"`
	Message string                      `json:"message,omitempty"`
}

// Search returns one first-match snippet per document whose content contains
// the sanitized query. Documents whose backing file is missing are skipped.
// Exactly one audit record is written per call.
func (s *PolicyService) Search(query string) (*SearchResult, error) {
	sanitized, err := validation.SanitizeQuery(query)
	if err != nil {
		s.audit.Log(audit.Record{
			Action:        audit.ActionSearch,
			ToolName:      "search_policy",
			InputSummary:  fmt.Sprintf("query=%s", query),
			ResultSummary: err.Error(),
			Success:       false,
		})
		return nil, err
	}

	results := []domain.PolicySearchResult{}
	for _, doc := range s.docs {
		content, err := os.ReadFile(doc.Path)
		if err != nil {
			continue
		}
		text := string(content)
		pos := strings.Index(strings.ToLower(text), sanitized)
		if pos < 0 {
			continue
		}
		results = append(results, domain.PolicySearchResult{
			DocID:   doc.DocID,
			Title:   doc.Title,
			Snippet: extractSnippet(text, pos),
		})
	}

	if len(results) == 0 {
		message := fmt.Sprintf("No policies found matching %q", sanitized)
		s.audit.Log(audit.Record{
			Action:        audit.ActionSearch,
			ToolName:      "search_policy",
			InputSummary:  fmt.Sprintf("query=%s", sanitized),
			ResultSummary: message,
			Success:       true,
		})
		return &SearchResult{Message: message}, nil
	}

	s.audit.Log(audit.Record{
		Action:        audit.ActionSearch,
		ToolName:      "search_policy",
		InputSummary:  fmt.Sprintf("query=%s", sanitized),
		ResultSummary: fmt.Sprintf("Found %d matching document(s)", len(results)),
		Success:       true,
	})
	return &SearchResult{Results: results}, nil
}

// Index lists {doc_id, title, tags} for every loaded document in load order.
func (s *PolicyService) Index() []domain.PolicyIndexEntry {
	entries := make([]domain.PolicyIndexEntry, 0, len(s.docs))
	for _, doc := range s.docs {
		entries = append(entries, domain.PolicyIndexEntry{
			DocID: doc.DocID,
			Title: doc.Title,
			Tags:  doc.Tags,
		})
	}
	return entries
}

// Detail returns the raw markdown content of the document with the given ID.
// The ID is validated first, so traversal attempts fail INVALID_ARGUMENT
// before any path is touched; an unknown ID or a missing backing file fails
// NOT_FOUND.
func (s *PolicyService) Detail(docID string) (string, error) {
	validated, err := validation.DocID(docID)
	if err != nil {
		return "", err
	}
	for _, doc := range s.docs {
		if doc.DocID != validated {
			continue
		}
		content, err := os.ReadFile(doc.Path)
		if err != nil {
			if os.IsNotExist(err) {
				return "", errorutil.NewNotFound(
					fmt.Sprintf("policy file for %q not found on disk", validated), nil)
			}
			return "", errorutil.NewInternalError(err)
		}
		return string(content), nil
	}
	return "", errorutil.NewNotFound(
		fmt.Sprintf("no policy document found with ID %q", validated),
		map[string]any{"doc_id": validated},
	)
}

// extractSnippet backs up snippetContext characters from the match (clamped
// to the start), takes snippetLength characters, and collapses whitespace
// runs. matchPos is a byte offset; the window is measured in runes so its
// edges never split a multi-byte character.
func extractSnippet(text string, matchPos int) string {
	runes := []rune(text)
	start := utf8.RuneCountInString(text[:matchPos]) - snippetContext
	if start < 0 {
		start = 0
	}
	end := start + snippetLength
	if end > len(runes) {
		end = len(runes)
	}
	return strings.Join(strings.Fields(string(runes[start:end])), " ")
}
