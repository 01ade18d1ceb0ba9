package graph

// BuildGraph constructs one node per declared package (referenced or not)
// and one weight-1 edge from RootID per resolved specifier occurrence.
// Repeated imports of the same package are not coalesced: each occurrence
// yields its own edge, and the scorer's degree counts rely on that.
func BuildGraph(source string, pkgs []Package, oracle Oracle) *Graph {
	if oracle == nil {
		oracle = NullOracle
	}

	g := &Graph{
		Nodes: make([]Node, 0, len(pkgs)),
		Edges: []Edge{},
	}

	for _, p := range pkgs {
		g.Nodes = append(g.Nodes, Node{
			ID:         p.Name,
			Label:      p.Name + "@" + p.Version,
			Version:    p.Version,
			Vulnerable: oracle(p.Name, p.Version),
		})
	}

	for spec := range ExtractSpecifiers(source) {
		name, res := ResolveSpecifier(spec, pkgs)
		if res != ResolvedPackage {
			continue
		}
		g.Edges = append(g.Edges, Edge{
			Source: RootID,
			Target: name,
			Weight: 1,
		})
	}

	return g
}

// ParseDependencies runs the full pipeline: build, cycle detection,
// criticality scoring, statistics, and risk assessment. The returned
// Result owns a fresh Graph; nothing is shared across calls.
func ParseDependencies(source string, pkgs []Package, oracle Oracle) Result {
	g := BuildGraph(source, pkgs, oracle)
	hasCycle, chains := DetectCycles(g)
	ScoreCriticality(g)

	return Result{
		Graph:    g,
		Stats:    ComputeStatistics(g),
		Risk:     AssessRisk(g, chains),
		HasCycle: hasCycle,
	}
}
