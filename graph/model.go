// Package graph builds and analyzes dependency graphs extracted from
// source text. The pipeline is synchronous and allocation-scoped: every
// call to ParseDependencies produces a fresh Graph value, so concurrent
// analyses never share state.
package graph

// RootID is the synthetic node id representing the analyzed file itself.
// It appears only as an edge source and is never present in the node list.
const RootID = "root"

// Package is a declared manifest entry (name + version).
type Package struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Oracle reports whether a known vulnerability affects the given package
// version. It is called once per node during graph construction.
type Oracle func(name, version string) bool

// NullOracle treats every package as not vulnerable.
func NullOracle(name, version string) bool {
	return false
}

type Node struct {
	ID               string  `json:"id"`
	Label            string  `json:"label"`
	Version          string  `json:"version"`
	Vulnerable       bool    `json:"vulnerable"`
	CriticalityScore float64 `json:"criticality_score"`
}

type Edge struct {
	Source     string `json:"source"`
	Target     string `json:"target"`
	Weight     int    `json:"weight"`
	IsCircular bool   `json:"is_circular"`
}

// Graph preserves node and edge insertion order so exports are
// deterministic. Every edge endpoint other than RootID must reference a
// node in Nodes.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Statistics is a derived snapshot, recomputed from the graph on demand.
type Statistics struct {
	NodeCount           int     `json:"node_count"`
	EdgeCount           int     `json:"edge_count"`
	CircularEdgeCount   int     `json:"circular_edge_count"`
	VulnerableNodeCount int     `json:"vulnerable_node_count"`
	AverageEdgeWeight   float64 `json:"average_edge_weight"`
	MaxCriticalityScore float64 `json:"max_criticality_score"`
}

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

type RiskAssessment struct {
	RiskLevel          RiskLevel  `json:"risk_level"`
	VulnerablePackages []string   `json:"vulnerable_packages"`
	CircularChains     [][]string `json:"circular_chains"`
	Recommendations    []string   `json:"recommendations"`
}

// Result bundles the outputs of a full analysis run.
type Result struct {
	Graph    *Graph         `json:"graph"`
	Stats    Statistics     `json:"stats"`
	Risk     RiskAssessment `json:"risk"`
	HasCycle bool           `json:"has_cycle"`
}
