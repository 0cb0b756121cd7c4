package service

import (
	"fmt"

	"github.com/spec-kit/ops-assistant/internal/validation"
)

// PromptService renders the pre-built prompt templates for common
// operational workflows. Prompts are not audited.
type PromptService struct{}

// NewPromptService constructs the service.
func NewPromptService() *PromptService {
	return &PromptService{}
}

// IncidentReport produces a prompt guiding structured incident report
// generation for the given issue and affected system.
func (s *PromptService) IncidentReport(issue, affectedSystem string) (string, error) {
	issue, err := validation.TextLength(issue, "issue", maxBodyLength)
	if err != nil {
		return "", err
	}
	affectedSystem, err = validation.TextLength(affectedSystem, "affected_system", maxTitleLength)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`Please generate a structured incident report based on the following details.

**Issue:** %s
**Affected System:** %s

Use the following format:

## Summary
Provide a concise summary of the incident (2-3 sentences).

## Affected System
Identify the affected system, its dependencies, and scope of impact.

## Impact Assessment
Describe the business impact: severity level, number of users affected, and any SLA implications.

## Steps to Reproduce
List the steps that lead to the issue, if applicable.

## Recommended Actions
Provide immediate mitigation steps and longer-term fixes.
`, issue, affectedSystem), nil
}

// PolicyAnswer produces a prompt instructing the model to answer a question
// using only the referenced policy document.
func (s *PromptService) PolicyAnswer(question, docID string) (string, error) {
	question, err := validation.TextLength(question, "question", maxBodyLength)
	if err != nil {
		return "", err
	}
	docID, err = validation.DocID(docID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`Answer the following question based **only** on the content of policy document `+"`%s`"+`. If the answer is not found in the policy, say so explicitly.

**Question:** %s

Instructions:
1. Read the policy document resource for `+"`%s`"+`.
2. Find the relevant section(s) that address the question.
3. Provide a clear, concise answer.
4. Cite the specific section title or heading where you found the information.
5. If the policy does not cover this topic, state: "This topic is not covered in the referenced policy."
`, docID, question, docID), nil
}
