package graph

// ComputeStatistics derives graph-wide aggregates. An empty graph yields
// zero values across the board.
func ComputeStatistics(g *Graph) Statistics {
	s := Statistics{
		NodeCount: len(g.Nodes),
		EdgeCount: len(g.Edges),
	}

	totalWeight := 0
	for _, e := range g.Edges {
		totalWeight += e.Weight
		if e.IsCircular {
			s.CircularEdgeCount++
		}
	}

	for _, n := range g.Nodes {
		if n.Vulnerable {
			s.VulnerableNodeCount++
		}
		if n.CriticalityScore > s.MaxCriticalityScore {
			s.MaxCriticalityScore = n.CriticalityScore
		}
	}

	if s.EdgeCount > 0 {
		s.AverageEdgeWeight = float64(totalWeight) / float64(s.EdgeCount)
	}

	return s
}
