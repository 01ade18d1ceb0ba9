package graph

import (
	"fmt"
	"strings"
)

// ClassifyRisk maps the two aggregate conditions onto the four risk
// levels. A single table lookup, deliberately not a sequence of
// conditional raises: the level is a pure function of its inputs.
func ClassifyRisk(hasVulnerable, hasCircular bool) RiskLevel {
	switch {
	case hasVulnerable && hasCircular:
		return RiskCritical
	case hasVulnerable:
		return RiskHigh
	case hasCircular:
		return RiskMedium
	default:
		return RiskLow
	}
}

// AssessRisk classifies the finished graph and generates plain-string
// recommendations. Chains come from DetectCycles on the same graph.
func AssessRisk(g *Graph, chains [][]string) RiskAssessment {
	var vulnerable, critical []string
	for _, n := range g.Nodes {
		if n.Vulnerable {
			vulnerable = append(vulnerable, n.ID)
		}
		if n.CriticalityScore > highCriticality {
			critical = append(critical, n.ID)
		}
	}

	hasCircular := false
	for _, e := range g.Edges {
		if e.IsCircular {
			hasCircular = true
			break
		}
	}

	if chains == nil {
		chains = [][]string{}
	}
	if vulnerable == nil {
		vulnerable = []string{}
	}

	assessment := RiskAssessment{
		RiskLevel:          ClassifyRisk(len(vulnerable) > 0, hasCircular),
		VulnerablePackages: vulnerable,
		CircularChains:     chains,
		Recommendations:    []string{},
	}

	if len(vulnerable) > 0 {
		assessment.Recommendations = append(assessment.Recommendations,
			fmt.Sprintf("Update vulnerable packages: %s", strings.Join(vulnerable, ", ")))
	}
	if hasCircular {
		assessment.Recommendations = append(assessment.Recommendations,
			"Break circular dependencies to improve maintainability")
	}
	if len(critical) > 0 {
		assessment.Recommendations = append(assessment.Recommendations,
			fmt.Sprintf("Review high-criticality packages: %s", strings.Join(critical, ", ")))
	}

	return assessment
}
