package graph

type visitState int

const (
	unvisited visitState = iota
	visiting
	visited
)

// DetectCycles runs a depth-first traversal over every node in insertion
// order, sharing one visited set across the outer loop. A back-edge to a
// node still on the recursion stack closes a cycle; the edges along the
// stack segment plus the back-edge itself are marked circular, and the
// ordered node sequence of each cycle is returned. Self-loops count.
//
// This is the only place edges are mutated after construction, and each
// edge's IsCircular flag is set at most once per analysis.
func DetectCycles(g *Graph) (bool, [][]string) {
	adjacency := make(map[string][]int, len(g.Edges))
	for i, e := range g.Edges {
		adjacency[e.Source] = append(adjacency[e.Source], i)
	}

	var (
		state  = make(map[string]visitState, len(g.Nodes))
		stack  []string
		onPath []int // onPath[i] is the edge taken from stack[i] to stack[i+1]
		chains [][]string
		found  bool
	)

	var visit func(id string)
	visit = func(id string) {
		state[id] = visiting
		stack = append(stack, id)

		for _, ei := range adjacency[id] {
			target := g.Edges[ei].Target
			switch state[target] {
			case visiting:
				found = true

				start := len(stack) - 1
				for start > 0 && stack[start] != target {
					start--
				}

				chain := make([]string, len(stack)-start)
				copy(chain, stack[start:])
				chains = append(chains, chain)

				g.Edges[ei].IsCircular = true
				for i := start; i < len(stack)-1; i++ {
					g.Edges[onPath[i]].IsCircular = true
				}
			case unvisited:
				onPath = append(onPath, ei)
				visit(target)
				onPath = onPath[:len(onPath)-1]
			}
		}

		stack = stack[:len(stack)-1]
		state[id] = visited
	}

	for _, n := range g.Nodes {
		if state[n.ID] == unvisited {
			visit(n.ID)
		}
	}

	return found, chains
}
