package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/genomeprep/internal/registry"
	"github.com/vk/genomeprep/internal/testutil"
)

// Test for: steps are wired purely by the names of HCL attributes and outputs.
func TestHCLFeatures_ImplicitDependencyByName(t *testing.T) {
	// --- Arrange ---
	t.Setenv("GENOMEPREP_TEST_ROOT", "/data")
	rec := testutil.NewRecorder()
	mod := &testutil.SimpleModule{Steps: []registry.StepDefinition{
		rec.JoinStep("index", []string{"reference", "threads"}, "index_path"),
		rec.JoinStep("locate", []string{"data_root", "genome_name"}, "reference"),
	}}
	files := map[string]string{
		"pipeline.hcl": `
			data_root   = "${env.GENOMEPREP_TEST_ROOT}/genomes"
			genome_name = lower("HG38")
			threads     = 4
		`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, []string{"index_path"}, mod)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Equal(t, []string{"locate", "index"}, rec.Order())
	assert.Contains(t, result.LogOutput, "index_path = /data/genomes+hg38+4")
}
