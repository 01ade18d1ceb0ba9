package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"depscope/config"
	"depscope/graph"
	"depscope/osv"
	"depscope/storage"

	"github.com/sirupsen/logrus"
)

type Storage interface {
	InsertAnalysis(ctx context.Context, a storage.Analysis) (int64, error)
	ListAnalyses(ctx context.Context) ([]storage.Analysis, error)
	UpdateAnalysisRisk(ctx context.Context, id int64, vulnerableCount int, riskLevel string, graphJSON []byte) error
}

type VulnerabilityOracle interface {
	QueryBatch(ctx context.Context, pkgs []graph.Package) (map[string]bool, error)
}

type Manager struct {
	Store         Storage
	Oracle        VulnerabilityOracle
	Log           *logrus.Logger
	MaxConcurrent int
	BatchSize     int
}

// Result is an analysis run plus its stored record id.
type Result struct {
	ID       int64                `json:"id"`
	Name     string               `json:"name"`
	Graph    *graph.Graph         `json:"graph"`
	Stats    graph.Statistics     `json:"stats"`
	Risk     graph.RiskAssessment `json:"risk"`
	HasCycle bool                 `json:"has_cycle"`
}

// Run prefetches vulnerability verdicts for the declared packages, runs
// the analysis pipeline, and persists the outcome. An oracle failure
// degrades to all-clear verdicts rather than failing the analysis.
func (m *Manager) Run(ctx context.Context, name, source string, pkgs []graph.Package) (*Result, error) {
	m.Log.Infof("Analyzing %s (%d declared packages)", name, len(pkgs))

	verdicts, err := m.fetchVerdicts(ctx, pkgs)
	if err != nil {
		m.Log.WithError(err).Warn("vulnerability lookup failed, continuing without verdicts")
		verdicts = map[string]bool{}
	}

	res := graph.ParseDependencies(source, pkgs, osv.VerdictOracle(verdicts))

	exported, err := graph.ExportJSON(res.Graph)
	if err != nil {
		return nil, fmt.Errorf("failed to export graph: %w", err)
	}

	id, err := m.Store.InsertAnalysis(ctx, storage.Analysis{
		Name:              name,
		NodeCount:         res.Stats.NodeCount,
		EdgeCount:         res.Stats.EdgeCount,
		CircularEdgeCount: res.Stats.CircularEdgeCount,
		VulnerableCount:   res.Stats.VulnerableNodeCount,
		MaxCriticality:    res.Stats.MaxCriticalityScore,
		RiskLevel:         string(res.Risk.RiskLevel),
		GraphJSON:         exported,
	})
	if err != nil {
		m.Log.WithError(err).Error("failed to store analysis")
		return nil, err
	}

	m.Log.Infof("Stored analysis %d: %d nodes, %d edges, risk %s",
		id, res.Stats.NodeCount, res.Stats.EdgeCount, res.Risk.RiskLevel)

	return &Result{
		ID:       id,
		Name:     name,
		Graph:    res.Graph,
		Stats:    res.Stats,
		Risk:     res.Risk,
		HasCycle: res.HasCycle,
	}, nil
}

// RescanVulnerabilities re-queries the oracle for every stored analysis
// and updates each record's vulnerability flags and risk level. Failures
// on individual records are logged and skipped.
func (m *Manager) RescanVulnerabilities(ctx context.Context) error {
	records, err := m.Store.ListAnalyses(ctx)
	if err != nil {
		m.Log.WithError(err).Error("failed to list analyses for rescan")
		return err
	}

	for _, rec := range records {
		var g graph.Graph
		if err := json.Unmarshal(rec.GraphJSON, &g); err != nil {
			m.Log.WithError(err).Warnf("skipping analysis %d: stored graph is unreadable", rec.ID)
			continue
		}

		pkgs := make([]graph.Package, 0, len(g.Nodes))
		for _, n := range g.Nodes {
			pkgs = append(pkgs, graph.Package{Name: n.ID, Version: n.Version})
		}

		verdicts, err := m.fetchVerdicts(ctx, pkgs)
		if err != nil {
			m.Log.WithError(err).Warnf("skipping analysis %d: vulnerability lookup failed", rec.ID)
			continue
		}

		oracle := osv.VerdictOracle(verdicts)
		vulnerable := 0
		for i := range g.Nodes {
			g.Nodes[i].Vulnerable = oracle(g.Nodes[i].ID, g.Nodes[i].Version)
			if g.Nodes[i].Vulnerable {
				vulnerable++
			}
		}

		hasCircular := false
		for _, e := range g.Edges {
			if e.IsCircular {
				hasCircular = true
				break
			}
		}

		level := graph.ClassifyRisk(vulnerable > 0, hasCircular)
		exported, err := graph.ExportJSON(&g)
		if err != nil {
			m.Log.WithError(err).Warnf("skipping analysis %d: failed to re-export graph", rec.ID)
			continue
		}

		if err := m.Store.UpdateAnalysisRisk(ctx, rec.ID, vulnerable, string(level), exported); err != nil {
			m.Log.WithError(err).Errorf("failed to update analysis %d", rec.ID)
			continue
		}
	}

	m.Log.Infof("Rescanned %d analyses", len(records))
	return nil
}

// fetchVerdicts splits the package list into batches and queries them with
// bounded concurrency. The first error wins; partial results are discarded.
func (m *Manager) fetchVerdicts(ctx context.Context, pkgs []graph.Package) (map[string]bool, error) {
	if m.Oracle == nil || len(pkgs) == 0 {
		return map[string]bool{}, nil
	}

	batchSize := m.BatchSize
	if batchSize <= 0 {
		batchSize = config.DefaultBatchSize
	}
	maxConcurrent := m.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = config.DefaultMaxConcurrent
	}

	var batches [][]graph.Package
	for start := 0; start < len(pkgs); start += batchSize {
		batches = append(batches, pkgs[start:min(start+batchSize, len(pkgs))])
	}

	var (
		verdicts = make(map[string]bool, len(pkgs))
		mu       sync.Mutex
		wg       sync.WaitGroup
		sem      = make(chan struct{}, maxConcurrent)
		firstErr error
	)

	for _, batch := range batches {
		wg.Add(1)
		go func(batch []graph.Package) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			result, err := m.Oracle.QueryBatch(ctx, batch)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			for k, v := range result {
				verdicts[k] = v
			}
		}(batch)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return verdicts, nil
}
