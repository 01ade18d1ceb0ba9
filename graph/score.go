package graph

// highCriticality is the threshold above which a node is called out in
// recommendations and highlighted in DOT exports.
const highCriticality = 0.7

// ScoreCriticality assigns each node a weighted score from its fan-in,
// fan-out, and the number of circular edges touching it. Degree counts are
// edge-count-based, so parallel edges each contribute. Must run after
// DetectCycles; the result is a relative ranking with no upper bound.
func ScoreCriticality(g *Graph) {
	for i := range g.Nodes {
		id := g.Nodes[i].ID
		var in, out, circular int

		for _, e := range g.Edges {
			touches := false
			if e.Target == id {
				in++
				touches = true
			}
			if e.Source == id {
				out++
				touches = true
			}
			if touches && e.IsCircular {
				circular++
			}
		}

		g.Nodes[i].CriticalityScore = (float64(in)*0.5 + float64(out)*0.3 + float64(circular)*2) / 10
	}
}
