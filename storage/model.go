package storage

import (
	"encoding/json"
	"time"
)

type Analysis struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	CreatedAt         time.Time       `json:"created_at"`
	NodeCount         int             `json:"node_count"`
	EdgeCount         int             `json:"edge_count"`
	CircularEdgeCount int             `json:"circular_edge_count"`
	VulnerableCount   int             `json:"vulnerable_count"`
	MaxCriticality    float64         `json:"max_criticality"`
	RiskLevel         string          `json:"risk_level"`
	GraphJSON         json.RawMessage `json:"graph,omitempty"`
}

var riskRanks = map[string]int{
	"low":      0,
	"medium":   1,
	"high":     2,
	"critical": 3,
}

// RiskRank maps a risk level to its ordinal for threshold filtering.
func RiskRank(level string) (int, bool) {
	rank, ok := riskRanks[level]
	return rank, ok
}
