package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// lineLoader is a tiny test format: one `name=value` string pair per line.
type lineLoader struct{ ext string }

func (l lineLoader) Extensions() []string { return []string{l.ext} }

func (l lineLoader) Load(_ context.Context, path string) (Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	vals := make(Values)
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("bad line %q", line)
		}
		if v == "null" {
			vals[k] = cty.NullVal(cty.String)
			continue
		}
		vals[k] = cty.StringVal(v)
	}
	return vals, nil
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_SingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.kv")
	writeFile(t, path, "genome_name=g\ndata_root=/tmp/d")

	vals, err := Load(context.Background(), path, lineLoader{".kv"})
	require.NoError(t, err)
	assert.Equal(t, []string{"data_root", "genome_name"}, vals.Names())
	assert.Equal(t, cty.StringVal("g"), vals["genome_name"])
}

func TestLoad_DirectoryMerges(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.kv"), "genome_name=g")
	writeFile(t, filepath.Join(dir, "nested", "b.kv"), "data_root=/tmp/d")
	writeFile(t, filepath.Join(dir, "README.md"), "ignored")

	vals, err := Load(context.Background(), dir, lineLoader{".kv"})
	require.NoError(t, err)
	assert.Equal(t, []string{"data_root", "genome_name"}, vals.Names())
}

func TestLoad_Errors(t *testing.T) {
	t.Run("duplicate name across files", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "a.kv"), "genome_name=g")
		writeFile(t, filepath.Join(dir, "b.kv"), "genome_name=h")

		_, err := Load(context.Background(), dir, lineLoader{".kv"})
		assert.ErrorContains(t, err, `config value "genome_name" defined in both`)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pipeline.toml")
		writeFile(t, path, "x=1")

		_, err := Load(context.Background(), path, lineLoader{".kv"})
		assert.ErrorContains(t, err, "unsupported config file extension")
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := Load(context.Background(), filepath.Join(t.TempDir(), "dne.kv"), lineLoader{".kv"})
		assert.ErrorContains(t, err, "error accessing config path")
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := Load(context.Background(), t.TempDir(), lineLoader{".kv"})
		assert.ErrorContains(t, err, "no configuration files")
	})

	t.Run("null value", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pipeline.kv")
		writeFile(t, path, "genome_name=null")

		_, err := Load(context.Background(), path, lineLoader{".kv"})
		assert.ErrorContains(t, err, `config value "genome_name" is null`)
	})

	t.Run("extension claimed twice", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pipeline.kv")
		writeFile(t, path, "x=1")

		_, err := Load(context.Background(), path, lineLoader{".kv"}, lineLoader{".kv"})
		assert.ErrorContains(t, err, "claimed by more than one loader")
	})
}

func TestValidateScalar(t *testing.T) {
	assert.NoError(t, ValidateScalar("s", cty.StringVal("x")))
	assert.NoError(t, ValidateScalar("n", cty.NumberIntVal(3)))
	assert.NoError(t, ValidateScalar("b", cty.True))
	assert.ErrorContains(t, ValidateScalar("l", cty.ListVal([]cty.Value{cty.StringVal("x")})), "must be a string, number or bool")
	assert.ErrorContains(t, ValidateScalar("u", cty.UnknownVal(cty.String)), "not known")
}

func TestToGo(t *testing.T) {
	obj := cty.ObjectVal(map[string]cty.Value{
		"path":  cty.StringVal("/tmp/g.fa"),
		"count": cty.NumberIntVal(2),
		"ok":    cty.True,
		"names": cty.TupleVal([]cty.Value{cty.StringVal("chr1")}),
	})

	got, err := ToGo(obj)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"path":  "/tmp/g.fa",
		"count": float64(2),
		"ok":    true,
		"names": []any{"chr1"},
	}, got)

	null, err := ToGo(cty.NullVal(cty.String))
	require.NoError(t, err)
	assert.Nil(t, null)
}
