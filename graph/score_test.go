package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreCriticalityDegrees(t *testing.T) {
	g := &Graph{
		Nodes: nodesFor("a", "b"),
		Edges: []Edge{
			{Source: RootID, Target: "a", Weight: 1},
			{Source: RootID, Target: "a", Weight: 1},
			{Source: RootID, Target: "b", Weight: 1},
		},
	}

	ScoreCriticality(g)

	// in-degree is edge-count-based, so parallel edges both count
	assert.InDelta(t, 0.1, g.Nodes[0].CriticalityScore, 1e-9)
	assert.InDelta(t, 0.05, g.Nodes[1].CriticalityScore, 1e-9)
}

func TestScoreCriticalityCycleBoost(t *testing.T) {
	g := &Graph{
		Nodes: nodesFor("a", "b"),
		Edges: []Edge{
			{Source: "a", Target: "b", Weight: 1},
			{Source: "b", Target: "a", Weight: 1},
		},
	}
	DetectCycles(g)
	ScoreCriticality(g)

	// each node: in 1, out 1, two circular edges touching
	assert.InDelta(t, 0.48, g.Nodes[0].CriticalityScore, 1e-9)
	assert.InDelta(t, 0.48, g.Nodes[1].CriticalityScore, 1e-9)
}

func TestScoreCriticalitySelfLoop(t *testing.T) {
	g := &Graph{
		Nodes: nodesFor("a"),
		Edges: []Edge{{Source: "a", Target: "a", Weight: 1}},
	}
	DetectCycles(g)
	ScoreCriticality(g)

	// a self-loop counts once for in, once for out, once as circular
	assert.InDelta(t, 0.28, g.Nodes[0].CriticalityScore, 1e-9)
}

func TestScoreCriticalityMonotonicInIncomingEdges(t *testing.T) {
	base := &Graph{
		Nodes: nodesFor("a"),
		Edges: []Edge{{Source: RootID, Target: "a", Weight: 1}},
	}
	ScoreCriticality(base)

	grown := &Graph{
		Nodes: nodesFor("a"),
		Edges: []Edge{
			{Source: RootID, Target: "a", Weight: 1},
			{Source: RootID, Target: "a", Weight: 1},
		},
	}
	ScoreCriticality(grown)

	assert.GreaterOrEqual(t, grown.Nodes[0].CriticalityScore, base.Nodes[0].CriticalityScore)
}

func TestScoreCriticalityUnbounded(t *testing.T) {
	// a hub with many cyclic edges can exceed 1.0
	g := &Graph{
		Nodes: nodesFor("hub", "a", "b", "c"),
		Edges: []Edge{
			{Source: "hub", Target: "a", Weight: 1},
			{Source: "a", Target: "hub", Weight: 1},
			{Source: "hub", Target: "b", Weight: 1},
			{Source: "b", Target: "hub", Weight: 1},
			{Source: "hub", Target: "c", Weight: 1},
			{Source: "c", Target: "hub", Weight: 1},
		},
	}
	DetectCycles(g)
	ScoreCriticality(g)

	assert.Greater(t, g.Nodes[0].CriticalityScore, 1.0)
}
