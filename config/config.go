package config

const (
	OSVBaseURL       = "https://api.osv.dev/v1"
	DefaultEcosystem = "npm"

	DefaultMaxConcurrent = 10
	DefaultBatchSize     = 100
)
