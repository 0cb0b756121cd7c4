package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spec-kit/ops-assistant/internal/domain"
)

// frontMatter is the optional metadata block at the top of a policy file.
// Tags accepts both a YAML flow list ([a, b]) and a bare comma list.
type frontMatter struct {
	Title string `yaml:"title"`
	Tags  any    `yaml:"tags"`
}

// LoadPolicyIndex scans dir for *.md files in lexicographic order and builds
// the policy index. The doc_id is the filename stem; the title defaults to
// the humanized stem unless front-matter overrides it. A missing directory
// yields an empty index.
func LoadPolicyIndex(dir string) ([]domain.PolicyDoc, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.PolicyDoc{}, nil
		}
		return nil, fmt.Errorf("read policy dir: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	docs := []domain.PolicyDoc{}
	for _, name := range names {
		path := filepath.Join(dir, name)
		stem := strings.TrimSuffix(name, ".md")

		doc := domain.PolicyDoc{
			DocID: stem,
			Title: humanizeStem(stem),
			Tags:  []string{},
			Path:  path,
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read policy %s: %w", name, err)
		}
		if fm, ok := parseFrontMatter(string(content)); ok {
			if fm.Title != "" {
				doc.Title = fm.Title
			}
			if tags := tagList(fm.Tags); tags != nil {
				doc.Tags = tags
			}
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// parseFrontMatter extracts the block delimited by leading and trailing ---
// lines. The opening line may carry trailing whitespace or a CR, so files
// saved with CRLF line endings parse the same way. Absent or unparseable
// front-matter is ignored.
func parseFrontMatter(content string) (frontMatter, bool) {
	var fm frontMatter
	first, rest, hasNewline := strings.Cut(content, "\n")
	if !hasNewline || strings.TrimRight(first, " \t\r") != "---" {
		return fm, false
	}
	block, _, found := strings.Cut(rest, "\n---")
	if !found {
		return fm, false
	}
	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return frontMatter{}, false
	}
	return fm, true
}

func tagList(raw any) []string {
	switch v := raw.(type) {
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				tags = append(tags, strings.TrimSpace(s))
			}
		}
		return tags
	case string:
		trimmed := strings.Trim(strings.TrimSpace(v), "[]")
		if trimmed == "" {
			return nil
		}
		parts := strings.Split(trimmed, ",")
		tags := make([]string, 0, len(parts))
		for _, part := range parts {
			tags = append(tags, strings.TrimSpace(part))
		}
		return tags
	default:
		return nil
	}
}

// humanizeStem turns "remote-work" into "Remote Work".
func humanizeStem(stem string) string {
	words := strings.Split(stem, "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
