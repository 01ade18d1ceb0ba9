package storage

import (
	"context"
	"database/sql"
	"time"
)

type Storage struct {
	DB *sql.DB
}

func (s *Storage) InitSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS analyses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		node_count INTEGER NOT NULL,
		edge_count INTEGER NOT NULL,
		circular_edge_count INTEGER NOT NULL,
		vulnerable_count INTEGER NOT NULL,
		max_criticality REAL NOT NULL,
		risk_level TEXT NOT NULL,
		graph_json TEXT NOT NULL
	);`
	_, err := s.DB.ExecContext(ctx, query)
	return err
}

func (s *Storage) InsertAnalysis(ctx context.Context, a Analysis) (int64, error) {
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := s.DB.ExecContext(ctx,
		`INSERT INTO analyses
		 (name, created_at, node_count, edge_count, circular_edge_count,
		  vulnerable_count, max_criticality, risk_level, graph_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Name,
		createdAt,
		a.NodeCount,
		a.EdgeCount,
		a.CircularEdgeCount,
		a.VulnerableCount,
		a.MaxCriticality,
		a.RiskLevel,
		string(a.GraphJSON),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Storage) GetAnalysis(ctx context.Context, id int64) (Analysis, error) {
	var (
		a         Analysis
		graphJSON string
	)
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, name, created_at, node_count, edge_count, circular_edge_count,
		        vulnerable_count, max_criticality, risk_level, graph_json
		 FROM analyses WHERE id=?`,
		id,
	).Scan(&a.ID, &a.Name, &a.CreatedAt, &a.NodeCount, &a.EdgeCount,
		&a.CircularEdgeCount, &a.VulnerableCount, &a.MaxCriticality,
		&a.RiskLevel, &graphJSON)
	if err != nil {
		return Analysis{}, err
	}
	a.GraphJSON = []byte(graphJSON)
	return a, nil
}

// ListAnalysesFiltered returns analysis summaries without their graph
// payloads. name matches as a substring; minRisk filters by risk ordinal.
func (s *Storage) ListAnalysesFiltered(ctx context.Context, name string, minRisk string) ([]Analysis, error) {
	query := `
		SELECT id, name, created_at, node_count, edge_count, circular_edge_count,
		       vulnerable_count, max_criticality, risk_level
		FROM analyses
		WHERE 1=1
	`
	var args []any

	if name != "" {
		query += " AND name LIKE ?"
		args = append(args, "%"+name+"%")
	}

	if minRisk != "" {
		if rank, ok := RiskRank(minRisk); ok {
			query += ` AND (CASE risk_level
				WHEN 'low' THEN 0
				WHEN 'medium' THEN 1
				WHEN 'high' THEN 2
				WHEN 'critical' THEN 3
				ELSE 0 END) >= ?`
			args = append(args, rank)
		}
	}

	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Analysis
	for rows.Next() {
		var a Analysis
		if err := rows.Scan(&a.ID, &a.Name, &a.CreatedAt, &a.NodeCount,
			&a.EdgeCount, &a.CircularEdgeCount, &a.VulnerableCount,
			&a.MaxCriticality, &a.RiskLevel); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// ListAnalyses returns every stored analysis including its graph payload,
// for vulnerability rescans.
func (s *Storage) ListAnalyses(ctx context.Context) ([]Analysis, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, name, created_at, node_count, edge_count, circular_edge_count,
		        vulnerable_count, max_criticality, risk_level, graph_json
		 FROM analyses ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Analysis
	for rows.Next() {
		var (
			a         Analysis
			graphJSON string
		)
		if err := rows.Scan(&a.ID, &a.Name, &a.CreatedAt, &a.NodeCount,
			&a.EdgeCount, &a.CircularEdgeCount, &a.VulnerableCount,
			&a.MaxCriticality, &a.RiskLevel, &graphJSON); err != nil {
			return nil, err
		}
		a.GraphJSON = []byte(graphJSON)
		list = append(list, a)
	}
	return list, rows.Err()
}

func (s *Storage) DeleteAnalysis(ctx context.Context, id int64) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM analyses WHERE id=?`, id)
	return err
}

// UpdateAnalysisRisk rewrites the vulnerability-derived fields of a stored
// analysis after a rescan.
func (s *Storage) UpdateAnalysisRisk(ctx context.Context, id int64, vulnerableCount int, riskLevel string, graphJSON []byte) error {
	_, err := s.DB.ExecContext(ctx,
		`UPDATE analyses
		 SET vulnerable_count=?, risk_level=?, graph_json=?
		 WHERE id=?`,
		vulnerableCount, riskLevel, string(graphJSON), id)
	return err
}
