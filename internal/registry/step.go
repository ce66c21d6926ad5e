package registry

import (
	"context"
	"fmt"
	"slices"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Inputs holds the values a step asked for, keyed by dependency name. Each
// step invocation gets its own map.
type Inputs map[string]cty.Value

// Outputs holds the values a step produced, keyed by declared output name.
type Outputs map[string]cty.Value

// StepFunc is the Go function behind a step.
type StepFunc func(ctx context.Context, in Inputs) (Outputs, error)

// Output declares one value a step produces. A Type of cty.DynamicPseudoType
// accepts a value of any type.
type Output struct {
	Name string
	Type cty.Type
}

// StepDefinition describes one unit of work. It is built with NewStep and the
// Requires/Provides methods, each of which returns a modified copy.
type StepDefinition struct {
	name    string
	inputs  []string
	outputs []Output
	fn      StepFunc
}

// NewStep starts a definition for the named step backed by fn.
func NewStep(name string, fn StepFunc) StepDefinition {
	return StepDefinition{name: name, fn: fn}
}

// Requires appends dependency names, in the order the step wants them.
func (s StepDefinition) Requires(names ...string) StepDefinition {
	s.inputs = append(slices.Clone(s.inputs), names...)
	return s
}

// Provides declares an output and its type.
func (s StepDefinition) Provides(name string, ty cty.Type) StepDefinition {
	s.outputs = append(slices.Clone(s.outputs), Output{Name: name, Type: ty})
	return s
}

// Name returns the step's identity.
func (s StepDefinition) Name() string { return s.name }

// Inputs returns the required dependency names in declaration order.
func (s StepDefinition) Inputs() []string { return slices.Clone(s.inputs) }

// Outputs returns the declared outputs in declaration order.
func (s StepDefinition) Outputs() []Output { return slices.Clone(s.outputs) }

// OutputNames returns only the names of the declared outputs.
func (s StepDefinition) OutputNames() []string {
	names := make([]string, 0, len(s.outputs))
	for _, o := range s.outputs {
		names = append(names, o.Name)
	}
	return names
}

// Call invokes the step's function.
func (s StepDefinition) Call(ctx context.Context, in Inputs) (Outputs, error) {
	return s.fn(ctx, in)
}

// String returns the value for the named input converted to a string.
// Numbers and bools are converted, so `genome_name: 38` in a config file is
// accepted where a string is expected.
func (in Inputs) String(name string) (string, error) {
	val, ok := in[name]
	if !ok {
		return "", fmt.Errorf("input %q was not provided", name)
	}
	if val.IsNull() || !val.IsKnown() {
		return "", fmt.Errorf("input %q has no value", name)
	}
	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("input %q: %w", name, err)
	}
	return str.AsString(), nil
}
