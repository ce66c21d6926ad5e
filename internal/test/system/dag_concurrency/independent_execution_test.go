package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/genomeprep/internal/registry"
	"github.com/vk/genomeprep/internal/testutil"
)

// Test for: branches the requested outputs do not need are never run.
func TestDagConcurrency_IndependentBranchesSkipped(t *testing.T) {
	// --- Arrange ---
	rec := testutil.NewRecorder()
	mod := &testutil.SimpleModule{Steps: []registry.StepDefinition{
		rec.JoinStep("needed", []string{"seed"}, "wanted"),
		rec.JoinStep("unrelated", []string{"seed"}, "other"),
		rec.JoinStep("downstream_of_unrelated", []string{"other"}, "more"),
	}}
	files := map[string]string{"seed.yaml": "seed: s\n"}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, []string{"wanted"}, mod)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Equal(t, []string{"needed"}, rec.Order())
	testutil.AssertStepRan(t, result, "needed")
	testutil.AssertStepNotRan(t, result, "unrelated")
	testutil.AssertStepNotRan(t, result, "downstream_of_unrelated")
}
