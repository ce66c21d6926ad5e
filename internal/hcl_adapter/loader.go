package hcl_adapter

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/genomeprep/internal/config"
	"github.com/vk/genomeprep/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Loader is the HCL implementation of config.Loader. A pipeline config file
// is a flat list of attributes:
//
//	genome_url  = "https://example.org/hg38.fa.gz"
//	genome_name = "hg38"
//	data_root   = "${env.HOME}/genomes"
//
// Blocks are rejected. Expressions may reference environment variables via
// env.NAME and call a small set of string functions.
type Loader struct {
	environ func() []string
}

// NewLoader creates a new HCL configuration loader reading the process environment.
func NewLoader() *Loader {
	return &Loader{environ: os.Environ}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string {
	return []string{".hcl"}
}

// Load implements config.Loader.
func (l *Loader) Load(ctx context.Context, path string) (config.Values, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	evalCtx := l.evalContext()
	vals := make(config.Values, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid value for %q in %s: %w", name, path, diags)
		}
		if err := config.ValidateScalar(name, val); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		vals[name] = val
	}

	logger.Debug("HCL loading complete.", "path", path, "values", len(vals))
	return vals, nil
}

func (l *Loader) evalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)
	for _, kv := range l.environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = cty.StringVal(v)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
		Functions: map[string]function.Function{
			"lower":     stdlib.LowerFunc,
			"upper":     stdlib.UpperFunc,
			"trimspace": stdlib.TrimSpaceFunc,
			"format":    stdlib.FormatFunc,
		},
	}
}
