package dag

import "sync"

// NodeKind classifies a vertex of the dependency graph.
type NodeKind int

const (
	// ConfigNode is a caller-supplied value.
	ConfigNode NodeKind = iota
	// OutputNode is a value produced by a step.
	OutputNode
	// StepNode is a unit of work.
	StepNode
)

func (k NodeKind) String() string {
	switch k {
	case ConfigNode:
		return "config"
	case OutputNode:
		return "output"
	case StepNode:
		return "step"
	default:
		return "unknown"
	}
}

// Graph is a collection of nodes and their dependencies, representing a DAG.
// All operations on the graph are concurrency-safe.
type Graph struct {
	// mutex protects the nodes map during concurrent access.
	mutex sync.RWMutex
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[string]*node
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using string IDs),
// not by direct struct manipulation.
type node struct {
	id   string
	name string
	kind NodeKind
	// deps holds the set of nodes that this node depends on (predecessors).
	deps map[string]*node
	// dependents holds the set of nodes that depend on this node (successors).
	dependents map[string]*node
}

// StepID returns the node ID of the named step.
func StepID(name string) string { return "step." + name }

// ValueID returns the node ID of the named config value or step output.
func ValueID(name string) string { return "value." + name }
