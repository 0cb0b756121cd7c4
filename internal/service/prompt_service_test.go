package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ops-assistant/pkg/util/errorutil"
)

func TestIncidentReport(t *testing.T) {
	svc := NewPromptService()

	prompt, err := svc.IncidentReport("database timeouts", "billing-api")
	require.NoError(t, err)
	assert.Contains(t, prompt, "**Issue:** database timeouts")
	assert.Contains(t, prompt, "**Affected System:** billing-api")
	assert.Contains(t, prompt, "## Impact Assessment")

	_, err = svc.IncidentReport("", "billing-api")
	require.Error(t, err)
	assert.True(t, errorutil.HasCode(err, errorutil.CodeInvalidArgument))
}

func TestPolicyAnswer(t *testing.T) {
	svc := NewPromptService()

	prompt, err := svc.PolicyAnswer("Can I expense a monitor?", "remote-work")
	require.NoError(t, err)
	assert.Contains(t, prompt, "`remote-work`")
	assert.Contains(t, prompt, "**Question:** Can I expense a monitor?")

	_, err = svc.PolicyAnswer("question", "../etc/passwd")
	require.Error(t, err)
	assert.True(t, errorutil.HasCode(err, errorutil.CodeInvalidArgument))
}
