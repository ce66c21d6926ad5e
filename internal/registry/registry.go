package registry

import (
	"log/slog"
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Module is the interface that groups of steps implement to be registered.
type Module interface {
	Register(r *Registry) error
}

// Registry holds the step definitions for a single pipeline invocation.
type Registry struct {
	steps     map[string]StepDefinition
	producers map[string]string
	err       error
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		steps:     make(map[string]StepDefinition),
		producers: make(map[string]string),
	}
}

// Register adds a step. It fails with *DuplicateOutputError when one of the
// step's outputs is already produced by another step, and with ErrInvalidStep
// for malformed definitions. A failed registration adds nothing and is
// remembered; see Err.
func (r *Registry) Register(def StepDefinition) error {
	if err := r.check(def); err != nil {
		if r.err == nil {
			r.err = err
		}
		slog.Debug("Step registration rejected.", "step", def.name, "error", err)
		return err
	}

	r.steps[def.name] = def
	for _, o := range def.outputs {
		r.producers[o.Name] = def.name
	}
	slog.Debug("Registered step.", "step", def.name, "inputs", def.inputs, "outputs", def.OutputNames())
	return nil
}

func (r *Registry) check(def StepDefinition) error {
	if def.name == "" {
		return invalidf("step name is required")
	}
	if def.fn == nil {
		return invalidf("step %q has no function", def.name)
	}
	if len(def.outputs) == 0 {
		return invalidf("step %q declares no outputs", def.name)
	}
	if _, exists := r.steps[def.name]; exists {
		return invalidf("step %q already registered", def.name)
	}
	for _, in := range def.inputs {
		if in == "" {
			return invalidf("step %q requires an empty name", def.name)
		}
	}

	seen := make(map[string]struct{}, len(def.outputs))
	for _, o := range def.outputs {
		if o.Name == "" {
			return invalidf("step %q declares an output with an empty name", def.name)
		}
		if o.Type == cty.NilType {
			return invalidf("step %q output %q has no type", def.name, o.Name)
		}
		if _, dup := seen[o.Name]; dup {
			return invalidf("step %q declares output %q twice", def.name, o.Name)
		}
		seen[o.Name] = struct{}{}

		if existing, taken := r.producers[o.Name]; taken {
			return &DuplicateOutputError{Output: o.Name, Step: def.name, ExistingStep: existing}
		}
	}
	return nil
}

// RegisterModules registers every module in order, stopping at the first error.
func (r *Registry) RegisterModules(modules ...Module) error {
	for _, m := range modules {
		if err := m.Register(r); err != nil {
			return err
		}
	}
	return nil
}

// Err returns the first registration error, if any. A registry with a
// non-nil Err must not be used for resolution.
func (r *Registry) Err() error {
	return r.err
}

// AllSteps returns every registered step sorted by name.
func (r *Registry) AllSteps() []StepDefinition {
	names := make([]string, 0, len(r.steps))
	for name := range r.steps {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]StepDefinition, 0, len(names))
	for _, name := range names {
		out = append(out, r.steps[name])
	}
	return out
}

// Step looks a step up by name.
func (r *Registry) Step(name string) (StepDefinition, bool) {
	def, ok := r.steps[name]
	return def, ok
}

// Producer returns the step that declares output.
func (r *Registry) Producer(output string) (StepDefinition, bool) {
	name, ok := r.producers[output]
	if !ok {
		return StepDefinition{}, false
	}
	return r.steps[name], true
}

// Len returns the number of registered steps.
func (r *Registry) Len() int {
	return len(r.steps)
}
