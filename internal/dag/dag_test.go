package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addNodes(g *Graph, ids ...string) {
	for _, id := range ids {
		g.AddNode(id, id, StepNode)
	}
}

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.NotNil(t, g.nodes)
	assert.Empty(t, g.nodes)
}

func TestAddNode(t *testing.T) {
	g := New()

	g.AddNode("value.a", "a", ConfigNode)
	assert.Len(t, g.nodes, 1)
	nodeA, ok := g.nodes["value.a"]
	require.True(t, ok)
	assert.Equal(t, "value.a", nodeA.id)
	assert.Equal(t, "a", nodeA.name)
	assert.Equal(t, ConfigNode, nodeA.kind)
	assert.NotNil(t, nodeA.deps)
	assert.NotNil(t, nodeA.dependents)

	g.AddNode("value.a", "other", OutputNode) // idempotent, first wins
	assert.Len(t, g.nodes, 1)
	name, kind, ok := g.Node("value.a")
	require.True(t, ok)
	assert.Equal(t, "a", name)
	assert.Equal(t, ConfigNode, kind)

	g.AddNode("step.b", "b", StepNode)
	assert.Equal(t, []string{"step.b", "value.a"}, g.NodeIDs())
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()
		addNodes(g, "a", "b")

		err := g.AddEdge("a", "b") // b depends on a
		require.NoError(t, err)

		nodeA := g.nodes["a"]
		nodeB := g.nodes["b"]

		assert.Contains(t, nodeA.dependents, "b")
		assert.Equal(t, nodeB, nodeA.dependents["b"])
		assert.Contains(t, nodeB.deps, "a")
		assert.Equal(t, nodeA, nodeB.deps["a"])
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		addNodes(g, "a", "b")

		err := g.AddEdge("dne", "a")
		assert.ErrorContains(t, err, "source node not found")

		err = g.AddEdge("a", "dne")
		assert.ErrorContains(t, err, "destination node not found")

		err = g.AddEdge("a", "a")
		assert.ErrorContains(t, err, "self-referential edge")
	})
}

func TestDependenciesAndDependents(t *testing.T) {
	g := New()
	addNodes(g, "a", "b", "c")
	require.NoError(t, g.AddEdge("b", "c"))
	require.NoError(t, g.AddEdge("a", "c"))

	deps, err := g.Dependencies("c")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, deps)

	dependents, err := g.Dependents("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, dependents)

	_, err = g.Dependencies("dne")
	assert.ErrorContains(t, err, "node not found")
	_, err = g.Dependents("dne")
	assert.ErrorContains(t, err, "node not found")
}

func TestDetectCycles(t *testing.T) {
	t.Run("empty graph has no cycles", func(t *testing.T) {
		g := New()
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("graph with nodes but no edges has no cycles", func(t *testing.T) {
		g := New()
		addNodes(g, "a", "b", "c")
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("valid dag has no cycles", func(t *testing.T) {
		g := New()
		addNodes(g, "a", "b", "c", "d")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("a", "c")) // Transitive edge
		require.NoError(t, g.AddEdge("c", "d"))
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("simple direct cycle is detected", func(t *testing.T) {
		g := New()
		addNodes(g, "a", "b")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "a")) // Cycle
		err := g.DetectCycles()

		var cycleErr *CyclicDependencyError
		require.ErrorAs(t, err, &cycleErr)
		assert.Equal(t, []string{"a", "b", "a"}, cycleErr.Chain)
		assert.EqualError(t, err, "cyclic dependency: a -> b -> a")
	})

	t.Run("longer cycle is detected", func(t *testing.T) {
		g := New()
		addNodes(g, "a", "b", "c", "d")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("c", "d"))
		require.NoError(t, g.AddEdge("d", "a")) // Cycle back to the start
		err := g.DetectCycles()

		var cycleErr *CyclicDependencyError
		require.ErrorAs(t, err, &cycleErr)
		// Chains follow dependencies: a depends on d, d on c, c on b.
		assert.Equal(t, []string{"a", "d", "c", "b", "a"}, cycleErr.Chain)
	})

	t.Run("cycle in a disjoint component is detected", func(t *testing.T) {
		g := New()
		// Component 1 (valid)
		addNodes(g, "a", "b")
		require.NoError(t, g.AddEdge("a", "b"))

		// Component 2 (has a cycle)
		addNodes(g, "x", "y", "z")
		require.NoError(t, g.AddEdge("x", "y"))
		require.NoError(t, g.AddEdge("y", "z"))
		require.NoError(t, g.AddEdge("z", "y")) // Cycle

		err := g.DetectCycles()
		var cycleErr *CyclicDependencyError
		require.ErrorAs(t, err, &cycleErr)
		assert.Equal(t, []string{"y", "z", "y"}, cycleErr.Chain)
	})
}
