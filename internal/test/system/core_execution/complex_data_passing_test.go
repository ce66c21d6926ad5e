package system

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/genomeprep/internal/registry"
	"github.com/vk/genomeprep/internal/testutil"
	"github.com/zclconf/go-cty/cty"
)

// Test for: a step can emit a structured value that a later step consumes.
func TestCoreExecution_ComplexDataPassing(t *testing.T) {
	// --- Arrange ---
	var captured cty.Value
	rec := testutil.NewRecorder()

	producer := registry.NewStep("producer", rec.Wrap("producer", func(_ context.Context, in registry.Inputs) (registry.Outputs, error) {
		prefix, err := in.String("prefix")
		if err != nil {
			return nil, err
		}
		return registry.Outputs{"chromosomes": cty.ObjectVal(map[string]cty.Value{
			"names": cty.ListVal([]cty.Value{cty.StringVal(prefix + "1"), cty.StringVal(prefix + "2")}),
			"count": cty.NumberIntVal(2),
			"ok":    cty.True,
		})}, nil
	})).Requires("prefix").Provides("chromosomes", cty.DynamicPseudoType)

	consumer := registry.NewStep("consumer", rec.Wrap("consumer", func(_ context.Context, in registry.Inputs) (registry.Outputs, error) {
		captured = in["chromosomes"]
		names := captured.GetAttr("names")
		return registry.Outputs{"first": names.Index(cty.NumberIntVal(0))}, nil
	})).Requires("chromosomes").Provides("first", cty.String)

	files := map[string]string{"config.hcl": `prefix = "chr"`}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, []string{"first"}, &testutil.SimpleModule{
		Steps: []registry.StepDefinition{consumer, producer},
	})

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Equal(t, []string{"producer", "consumer"}, rec.Order())
	require.True(t, captured.Type().IsObjectType())
	assert.True(t, captured.GetAttr("count").Equals(cty.NumberIntVal(2)).True())
	assert.Contains(t, result.LogOutput, "first = chr1")
	assert.Contains(t, result.LogOutput, "Step outputs:")
}
