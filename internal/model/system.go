package model

// VersionInfo contains version and feature information for the application.
type VersionInfo struct {
	AppVersion     string          `json:"app_version"`
	MarketProvider string          `json:"market_provider"`
	Benchmark      string          `json:"benchmark"`
	Features       map[string]bool `json:"features"`
}
