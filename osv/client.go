package osv

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"depscope/graph"
)

type Client struct {
	BaseURL    string
	Ecosystem  string
	HTTPClient *http.Client
}

// Query vulnerability verdicts for a batch of packages
func (c *Client) QueryBatch(ctx context.Context, pkgs []graph.Package) (map[string]bool, error) {
	if len(pkgs) == 0 {
		return map[string]bool{}, nil
	}

	batch := BatchRequest{Queries: make([]Query, 0, len(pkgs))}
	for _, p := range pkgs {
		batch.Queries = append(batch.Queries, Query{
			Package: PackageKey{Name: p.Name, Ecosystem: c.Ecosystem},
			Version: p.Version,
		})
	}

	payload, err := json.Marshal(batch)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query batch: %w", err)
	}

	u := fmt.Sprintf("%s/querybatch", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query vulnerabilities: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vulnerability query failed: %s", resp.Status)
	}

	var result BatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode vulnerability response: %w", err)
	}

	if len(result.Results) != len(pkgs) {
		return nil, fmt.Errorf("vulnerability response mismatch: %d results for %d queries",
			len(result.Results), len(pkgs))
	}

	verdicts := make(map[string]bool, len(pkgs))
	for i, p := range pkgs {
		verdicts[p.Name+"@"+p.Version] = len(result.Results[i].Vulns) > 0
	}
	return verdicts, nil
}

// VerdictOracle adapts a prefetched verdict map to the engine's oracle
// signature. Packages missing from the map default to not vulnerable.
func VerdictOracle(verdicts map[string]bool) graph.Oracle {
	return func(name, version string) bool {
		return verdicts[name+"@"+version]
	}
}
