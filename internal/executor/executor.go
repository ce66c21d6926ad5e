// Package executor runs the steps a set of requested names needs, in
// dependency order, once each.
package executor

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/vk/genomeprep/internal/config"
	"github.com/vk/genomeprep/internal/ctxlog"
	"github.com/vk/genomeprep/internal/dag"
	"github.com/vk/genomeprep/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Result maps a requested name to its value.
type Result map[string]cty.Value

// Executor resolves and runs steps from a registry. It holds no per-run
// state; each Execute call is independent.
type Executor struct {
	registry  *registry.Registry
	observers []Observer
	newRunID  func() string
}

// New creates an Executor over reg.
func New(reg *registry.Registry, observers ...Observer) *Executor {
	return &Executor{
		registry:  reg,
		observers: observers,
		newRunID:  uuid.NewString,
	}
}

// run is the state of a single Execute call.
type run struct {
	id     string
	state  State
	values config.Values
	result Result
}

func (r *run) to(ctx context.Context, next State) error {
	state, err := Transition(r.state, next)
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Execution state changed.", "from", r.state, "to", state)
	r.state = state
	return nil
}

// fail moves the run to Failed and returns cause.
func (r *run) fail(ctx context.Context, cause error) error {
	if err := r.to(ctx, Failed); err != nil {
		return fmt.Errorf("%w (while handling: %v)", err, cause)
	}
	ctxlog.FromContext(ctx).Error("❌ Execution failed.", "error", cause)
	return cause
}

// Execute runs the steps needed for requested, reading config values from
// values, and returns exactly the requested names. On any error the result
// is nil and no further step is invoked.
func (e *Executor) Execute(ctx context.Context, requested []string, values config.Values) (Result, error) {
	r := &run{id: e.newRunID(), state: Idle, values: values, result: make(Result)}
	ctx, logger := ctxlog.With(ctx, "run_id", r.id)

	if err := r.to(ctx, Resolving); err != nil {
		return nil, err
	}
	logger.Debug("Resolving execution plan.", "requested", requested, "config", values.Names())

	if err := e.registry.Err(); err != nil {
		return nil, r.fail(ctx, fmt.Errorf("registry is unusable: %w", err))
	}
	for _, name := range requested {
		if values.Has(name) {
			continue
		}
		if _, ok := e.registry.Producer(name); !ok {
			return nil, r.fail(ctx, &dag.UnresolvedDependencyError{Name: name})
		}
	}

	plan, err := dag.Resolve(ctx, e.registry, values.Names(), requested)
	if err != nil {
		return nil, r.fail(ctx, fmt.Errorf("error resolving execution plan: %w", err))
	}

	if err := r.to(ctx, Running); err != nil {
		return nil, err
	}
	logger.Info("Executing plan.", "steps", plan.StepNames())

	for i, step := range plan.Steps {
		if err := e.runStep(ctx, r, step, i+1, len(plan.Steps)); err != nil {
			return nil, r.fail(ctx, &StepExecutionError{Step: step.Name(), Err: err})
		}
	}

	out := make(Result, len(requested))
	for _, name := range requested {
		out[name] = r.lookup(name)
	}

	if err := r.to(ctx, Succeeded); err != nil {
		return nil, err
	}
	logger.Info("🏁 Execution finished.", "steps", len(plan.Steps))
	return out, nil
}

// lookup returns a config value if one exists, otherwise a step output.
func (r *run) lookup(name string) cty.Value {
	if val, ok := r.values[name]; ok {
		return val
	}
	return r.result[name]
}

func (e *Executor) runStep(ctx context.Context, r *run, step registry.StepDefinition, index, total int) error {
	ctx, logger := ctxlog.With(ctx, "step", step.Name())

	in := make(registry.Inputs, len(step.Inputs()))
	for _, name := range step.Inputs() {
		in[name] = r.lookup(name)
	}

	ev := StepEvent{RunID: r.id, Step: step.Name(), Index: index, Total: total}
	started := ev
	started.Inputs = maps.Clone(in)
	for _, o := range e.observers {
		o.StepStarted(ctx, started)
	}

	logger.Info("▶️ Starting step", "position", fmt.Sprintf("%d/%d", index, total))
	start := time.Now()
	out, err := step.Call(ctx, in)
	if err == nil {
		err = checkOutputs(step, out)
	}
	ev.Duration = time.Since(start)

	if err != nil {
		for _, o := range e.observers {
			o.StepFinished(ctx, ev, err)
		}
		return err
	}

	for _, decl := range step.Outputs() {
		r.result[decl.Name] = out[decl.Name]
	}

	ev.Outputs = maps.Clone(out)
	for _, o := range e.observers {
		o.StepFinished(ctx, ev, nil)
	}
	logger.Info("✅ Finished step", "duration", ev.Duration)
	return nil
}

// checkOutputs verifies a step returned exactly its declared outputs, each
// non-null and of the declared type.
func checkOutputs(step registry.StepDefinition, out registry.Outputs) error {
	declared := make(map[string]bool)
	for _, decl := range step.Outputs() {
		declared[decl.Name] = true
		val, ok := out[decl.Name]
		if !ok || val.IsNull() {
			return fmt.Errorf("%w: %q", ErrMissingOutput, decl.Name)
		}
		if !decl.Type.Equals(cty.DynamicPseudoType) && !val.Type().Equals(decl.Type) {
			return fmt.Errorf("%w: %q is %s, declared %s", ErrOutputType, decl.Name, val.Type().FriendlyName(), decl.Type.FriendlyName())
		}
	}

	var extra []string
	for name := range out {
		if !declared[name] {
			extra = append(extra, name)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return fmt.Errorf("%w: %q", ErrUnexpectedOutput, extra)
	}
	return nil
}
