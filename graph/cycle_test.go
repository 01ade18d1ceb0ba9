package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func nodesFor(ids ...string) []Node {
	nodes := make([]Node, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, Node{ID: id, Label: id + "@1.0.0", Version: "1.0.0"})
	}
	return nodes
}

func TestDetectCyclesSelfLoop(t *testing.T) {
	g := &Graph{
		Nodes: nodesFor("a"),
		Edges: []Edge{{Source: "a", Target: "a", Weight: 1}},
	}

	hasCycle, chains := DetectCycles(g)

	assert.True(t, hasCycle)
	assert.True(t, g.Edges[0].IsCircular)
	assert.Equal(t, [][]string{{"a"}}, chains)
}

func TestDetectCyclesTwoNodeCycle(t *testing.T) {
	g := &Graph{
		Nodes: nodesFor("a", "b"),
		Edges: []Edge{
			{Source: "a", Target: "b", Weight: 1},
			{Source: "b", Target: "a", Weight: 1},
		},
	}

	hasCycle, chains := DetectCycles(g)

	assert.True(t, hasCycle)
	for _, e := range g.Edges {
		assert.True(t, e.IsCircular)
	}
	assert.Equal(t, [][]string{{"a", "b"}}, chains)
}

func TestDetectCyclesAcyclicChain(t *testing.T) {
	g := &Graph{
		Nodes: nodesFor("a", "b", "c", "d"),
		Edges: []Edge{
			{Source: "a", Target: "b", Weight: 1},
			{Source: "b", Target: "c", Weight: 1},
			{Source: "c", Target: "d", Weight: 1},
		},
	}

	hasCycle, chains := DetectCycles(g)

	assert.False(t, hasCycle)
	for _, e := range g.Edges {
		assert.False(t, e.IsCircular)
	}
	assert.Empty(t, chains)
}

func TestDetectCyclesMarksOnlyCycleEdges(t *testing.T) {
	// root feeds the cycle but is not part of it; its edge must stay clean.
	g := &Graph{
		Nodes: nodesFor("a", "b", "c"),
		Edges: []Edge{
			{Source: RootID, Target: "a", Weight: 1},
			{Source: "a", Target: "b", Weight: 1},
			{Source: "b", Target: "a", Weight: 1},
			{Source: "a", Target: "c", Weight: 1},
		},
	}

	hasCycle, chains := DetectCycles(g)

	assert.True(t, hasCycle)
	assert.False(t, g.Edges[0].IsCircular, "edge from root is not on the cycle")
	assert.True(t, g.Edges[1].IsCircular)
	assert.True(t, g.Edges[2].IsCircular)
	assert.False(t, g.Edges[3].IsCircular, "branch off the cycle is not on it")
	assert.Equal(t, [][]string{{"a", "b"}}, chains)
}

func TestDetectCyclesDisconnectedComponents(t *testing.T) {
	// Cycle lives in a component unreachable from the first nodes visited.
	g := &Graph{
		Nodes: nodesFor("a", "b", "x", "y"),
		Edges: []Edge{
			{Source: "a", Target: "b", Weight: 1},
			{Source: "x", Target: "y", Weight: 1},
			{Source: "y", Target: "x", Weight: 1},
		},
	}

	hasCycle, chains := DetectCycles(g)

	assert.True(t, hasCycle)
	assert.False(t, g.Edges[0].IsCircular)
	assert.True(t, g.Edges[1].IsCircular)
	assert.True(t, g.Edges[2].IsCircular)
	assert.Equal(t, [][]string{{"x", "y"}}, chains)
}

func TestDetectCyclesMultipleCycles(t *testing.T) {
	g := &Graph{
		Nodes: nodesFor("a", "b", "c"),
		Edges: []Edge{
			{Source: "a", Target: "b", Weight: 1},
			{Source: "b", Target: "a", Weight: 1},
			{Source: "c", Target: "c", Weight: 1},
		},
	}

	hasCycle, chains := DetectCycles(g)

	assert.True(t, hasCycle)
	assert.Len(t, chains, 2)
	assert.Contains(t, chains, []string{"a", "b"})
	assert.Contains(t, chains, []string{"c"})
}

func TestDetectCyclesEmptyGraph(t *testing.T) {
	g := &Graph{Nodes: []Node{}, Edges: []Edge{}}

	hasCycle, chains := DetectCycles(g)

	assert.False(t, hasCycle)
	assert.Empty(t, chains)
}
