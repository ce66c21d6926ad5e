package dag

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDOT(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t, genomeSteps()...)
	g, err := Build(ctx, reg, genomeConfig)
	require.NoError(t, err)
	plan, err := Resolve(ctx, reg, genomeConfig, []string{"genome_path"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteDOT(&buf, g, plan))
	out := buf.String()

	assert.Contains(t, out, "digraph pipeline {")
	assert.Contains(t, out, `"legend.config" [label="config"`)
	assert.Contains(t, out, `"value.genome_url" [label="genome_url", shape=note`)
	assert.Contains(t, out, `"step.download_genome" [label="1. download_genome"`)
	assert.Contains(t, out, `"step.unzip_reference" [label="2. unzip_reference"`)
	assert.Contains(t, out, `"step.extract_chromosome_names" [label="extract_chromosome_names", shape=box, style="rounded,filled", fillcolor="#f5f5f5"];`)
	assert.Contains(t, out, `"value.genome_url" -> "step.download_genome";`)
	assert.Contains(t, out, `"step.download_genome" -> "value.genome_path_gz";`)
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("}\n")))
}

func TestWriteDOT_NilPlan(t *testing.T) {
	reg := newRegistry(t, genomeSteps()...)
	g, err := Build(context.Background(), reg, genomeConfig)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteDOT(&buf, g, nil))
	assert.NotContains(t, buf.String(), "penwidth")
}
