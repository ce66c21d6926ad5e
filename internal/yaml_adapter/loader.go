// Package yaml_adapter loads pipeline configuration from flat YAML mappings,
// the format used by default-config.yaml.
package yaml_adapter

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/genomeprep/internal/config"
	"github.com/vk/genomeprep/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
	"gopkg.in/yaml.v3"
)

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// Load implements config.Loader.
func (l *Loader) Load(ctx context.Context, path string) (config.Values, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading YAML file %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML file %s: %w", path, err)
	}

	vals := make(config.Values, len(raw))
	for name, v := range raw {
		val, err := toCtyScalar(v)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %q in %s: %w", name, path, err)
		}
		vals[name] = val
	}

	logger.Debug("YAML loading complete.", "path", path, "values", len(vals))
	return vals, nil
}

// toCtyScalar converts a decoded YAML scalar into its cty.Value.
func toCtyScalar(v any) (cty.Value, error) {
	switch v.(type) {
	case nil:
		return cty.NilVal, fmt.Errorf("value is null")
	case string, bool, int, int64, uint64, float64:
	default:
		return cty.NilVal, fmt.Errorf("must be a string, number or bool, got %T", v)
	}

	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unable to infer cty.Type: %w", err)
	}
	return gocty.ToCtyValue(v, ty)
}
