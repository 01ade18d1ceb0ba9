package osv

type PackageKey struct {
	Name      string `json:"name"`
	Ecosystem string `json:"ecosystem"`
}

type Query struct {
	Package PackageKey `json:"package"`
	Version string     `json:"version"`
}

type BatchRequest struct {
	Queries []Query `json:"queries"`
}

type Vulnerability struct {
	ID       string `json:"id"`
	Summary  string `json:"summary,omitempty"`
	Modified string `json:"modified,omitempty"`
}

type QueryResult struct {
	Vulns []Vulnerability `json:"vulns"`
}

type BatchResponse struct {
	Results []QueryResult `json:"results"`
}
