package graph

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ExportJSON serializes the graph with stable field order. Calling it
// twice on the same graph value yields byte-identical output.
func ExportJSON(g *Graph) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// ExportDOT renders the graph in Graphviz DOT form. Node fill color keys
// on state (vulnerable > high criticality > default), edge style keys on
// circularity, and every emitted value is quote-escaped.
func ExportDOT(g *Graph) string {
	var b strings.Builder
	b.WriteString("digraph dependencies {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, style=filled];\n\n")

	for _, n := range g.Nodes {
		color := "lightblue"
		switch {
		case n.Vulnerable:
			color = "red"
		case n.CriticalityScore > highCriticality:
			color = "orange"
		}
		fmt.Fprintf(&b, "  %s [label=%s, fillcolor=%s];\n",
			strconv.Quote(n.ID), strconv.Quote(n.Label), strconv.Quote(color))
	}

	b.WriteString("\n")
	for _, e := range g.Edges {
		style := "solid"
		if e.IsCircular {
			style = "dashed"
		}
		fmt.Fprintf(&b, "  %s -> %s [style=%s, label=%s];\n",
			strconv.Quote(e.Source), strconv.Quote(e.Target),
			strconv.Quote(style), strconv.Quote(strconv.Itoa(e.Weight)))
	}

	b.WriteString("}\n")
	return b.String()
}
