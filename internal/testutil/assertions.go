package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// finishedLine reports whether logs contain the executor's completion line
// for the named step.
func finishedLine(logs, stepName string) bool {
	needle := fmt.Sprintf("step=%s", stepName)
	for _, line := range strings.Split(logs, "\n") {
		if strings.Contains(line, "✅ Finished step") && strings.Contains(line, needle+" ") {
			return true
		}
	}
	return false
}

// AssertStepRan checks the log output within a HarnessResult to confirm that a
// specific step has completed.
func AssertStepRan(t *testing.T, result *HarnessResult, stepName string) {
	t.Helper()
	require.True(t, finishedLine(result.LogOutput, stepName),
		"expected log output for step '%s' was not found in logs", stepName)
}

// AssertStepNotRan is the inverse of AssertStepRan.
func AssertStepNotRan(t *testing.T, result *HarnessResult, stepName string) {
	t.Helper()
	assert.False(t, finishedLine(result.LogOutput, stepName),
		"step '%s' finished but was expected not to run", stepName)
}
