package dag

import (
	"context"
	"fmt"
	"slices"

	"github.com/vk/genomeprep/internal/ctxlog"
	"github.com/vk/genomeprep/internal/registry"
)

// Plan is the ordered list of steps needed to produce a set of names.
type Plan struct {
	// Steps are in execution order; every step comes after the producers of
	// its inputs.
	Steps []registry.StepDefinition
	// Requested holds the names the plan was resolved for.
	Requested []string
}

// StepNames returns the names of the planned steps in order.
func (p *Plan) StepNames() []string {
	names := make([]string, 0, len(p.Steps))
	for _, s := range p.Steps {
		names = append(names, s.Name())
	}
	return names
}

type visitState int

const (
	unvisited visitState = iota
	visiting
	resolved
)

type resolver struct {
	ctx      context.Context
	reg      *registry.Registry
	config   map[string]bool
	state    map[string]visitState
	stack    []string
	order    []registry.StepDefinition
	shadowed map[string]bool
}

// Resolve computes the minimal ordered set of steps producing the requested
// names. A requested or required name that is a config value needs no step.
// Ties between independent steps are broken by first discovery: requested
// order, then each step's declared input order. No partial plan is returned
// on error.
func Resolve(ctx context.Context, reg *registry.Registry, configNames []string, requested []string) (*Plan, error) {
	if err := reg.Err(); err != nil {
		return nil, fmt.Errorf("registry is unusable: %w", err)
	}

	r := &resolver{
		ctx:      ctx,
		reg:      reg,
		config:   make(map[string]bool, len(configNames)),
		state:    make(map[string]visitState),
		shadowed: make(map[string]bool),
	}
	for _, name := range configNames {
		r.config[name] = true
	}

	for _, name := range requested {
		if err := r.resolveName(name, ""); err != nil {
			return nil, err
		}
	}

	ctxlog.FromContext(ctx).Debug("Resolved execution plan.", "requested", requested, "steps", len(r.order))
	return &Plan{Steps: r.order, Requested: slices.Clone(requested)}, nil
}

func (r *resolver) resolveName(name, requiredBy string) error {
	producer, produced := r.reg.Producer(name)
	if r.config[name] {
		if produced && !r.shadowed[name] {
			r.shadowed[name] = true
			ctxlog.FromContext(r.ctx).Warn("Config value shadows step output.", "name", name, "step", producer.Name())
		}
		return nil
	}
	if !produced {
		return &UnresolvedDependencyError{Name: name, RequiredBy: requiredBy}
	}
	return r.visit(producer)
}

func (r *resolver) visit(step registry.StepDefinition) error {
	name := step.Name()
	switch r.state[name] {
	case resolved:
		return nil
	case visiting:
		start := slices.Index(r.stack, name)
		chain := append(slices.Clone(r.stack[start:]), name)
		return &CyclicDependencyError{Chain: chain}
	}

	r.state[name] = visiting
	r.stack = append(r.stack, name)

	for _, in := range step.Inputs() {
		if err := r.resolveName(in, name); err != nil {
			return err
		}
	}

	r.stack = r.stack[:len(r.stack)-1]
	r.state[name] = resolved
	r.order = append(r.order, step)
	return nil
}
