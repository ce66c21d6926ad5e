package dag

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/genomeprep/internal/ctxlog"
	"github.com/vk/genomeprep/internal/registry"
)

// Build constructs the complete dependency graph of a registry: one node per
// config value, step output and step, with edges from each value to the
// steps consuming it and from each step to the values it produces. Every
// step input must resolve and the graph must be acyclic.
func Build(ctx context.Context, reg *registry.Registry, configNames []string) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.")

	if err := reg.Err(); err != nil {
		return nil, fmt.Errorf("registry is unusable: %w", err)
	}

	graph := New()
	config := make(map[string]bool, len(configNames))
	for _, name := range configNames {
		config[name] = true
		graph.AddNode(ValueID(name), name, ConfigNode)
	}

	// First pass: steps and the values they produce.
	steps := reg.AllSteps()
	for _, step := range steps {
		graph.AddNode(StepID(step.Name()), step.Name(), StepNode)
		for _, out := range step.OutputNames() {
			if config[out] {
				logger.Warn("Config value shadows step output.", "name", out, "step", step.Name())
				continue
			}
			graph.AddNode(ValueID(out), out, OutputNode)
			if err := graph.AddEdge(StepID(step.Name()), ValueID(out)); err != nil {
				return nil, err
			}
		}
	}
	logger.Debug("Build: Node creation complete.", "node_count", len(graph.nodes))

	// Second pass: link each step to its inputs.
	for _, step := range steps {
		for _, in := range step.Inputs() {
			if _, _, ok := graph.Node(ValueID(in)); !ok {
				return nil, &UnresolvedDependencyError{Name: in, RequiredBy: step.Name()}
			}
			if err := graph.AddEdge(ValueID(in), StepID(step.Name())); err != nil {
				return nil, err
			}
		}
	}
	logger.Debug("Build: Node linking complete.")

	if err := graph.DetectCycles(); err != nil {
		var cycle *CyclicDependencyError
		if errors.As(err, &cycle) {
			return nil, graph.stepChain(cycle)
		}
		return nil, fmt.Errorf("error validating dependency graph: %w", err)
	}
	logger.Debug("Build: Cycle detection passed.")

	return graph, nil
}

// stepChain rewrites a cycle of node IDs into a cycle of step names, the
// form Resolve reports.
func (g *Graph) stepChain(cycle *CyclicDependencyError) *CyclicDependencyError {
	chain := make([]string, 0, len(cycle.Chain))
	for _, id := range cycle.Chain {
		if name, kind, ok := g.Node(id); ok && kind == StepNode {
			chain = append(chain, name)
		}
	}
	return &CyclicDependencyError{Chain: chain}
}
