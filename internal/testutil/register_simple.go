package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/vk/genomeprep/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// SimpleModule is a test helper that registers a fixed list of steps.
type SimpleModule struct {
	Steps []registry.StepDefinition
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(r *registry.Registry) error {
	for _, s := range m.Steps {
		if err := r.Register(s); err != nil {
			return err
		}
	}
	return nil
}

// ExecutionRecord is the wall-clock span of one step invocation.
type ExecutionRecord struct {
	Start time.Time
	End   time.Time
}

// Recorder tracks step invocations across a run.
type Recorder struct {
	mu      sync.Mutex
	order   []string
	records map[string]*ExecutionRecord
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{records: make(map[string]*ExecutionRecord)}
}

// Wrap returns fn instrumented to record the named step's invocation.
func (r *Recorder) Wrap(name string, fn registry.StepFunc) registry.StepFunc {
	return func(ctx context.Context, in registry.Inputs) (registry.Outputs, error) {
		start := time.Now()
		out, err := fn(ctx, in)

		r.mu.Lock()
		r.order = append(r.order, name)
		r.records[name] = &ExecutionRecord{Start: start, End: time.Now()}
		r.mu.Unlock()
		return out, err
	}
}

// Order returns step names in invocation order.
func (r *Recorder) Order() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// Count returns how often the named step was invoked.
func (r *Recorder) Count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.order {
		if s == name {
			n++
		}
	}
	return n
}

// Record returns the timing of the named step's last invocation.
func (r *Recorder) Record(name string) (*ExecutionRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[name]
	return rec, ok
}

// JoinStep returns a recorded step whose single string output is its inputs
// converted to strings and joined with "+", or its name when it has none.
func (r *Recorder) JoinStep(name string, inputs []string, output string) registry.StepDefinition {
	fn := func(_ context.Context, in registry.Inputs) (registry.Outputs, error) {
		if len(inputs) == 0 {
			return registry.Outputs{output: cty.StringVal(name)}, nil
		}
		parts := make([]string, 0, len(inputs))
		for _, n := range inputs {
			s, err := in.String(n)
			if err != nil {
				return nil, err
			}
			parts = append(parts, s)
		}
		return registry.Outputs{output: cty.StringVal(strings.Join(parts, "+"))}, nil
	}
	return registry.NewStep(name, r.Wrap(name, fn)).Requires(inputs...).Provides(output, cty.String)
}

// FailingStep returns a recorded step that always fails with err.
func (r *Recorder) FailingStep(name string, inputs []string, output string, err error) registry.StepDefinition {
	fn := func(context.Context, registry.Inputs) (registry.Outputs, error) {
		return nil, err
	}
	return registry.NewStep(name, r.Wrap(name, fn)).Requires(inputs...).Provides(output, cty.String)
}
