package service

import (
	"fmt"
	"time"

	"github.com/ndewijer/portfolio-vis/internal/model"
	"github.com/ndewijer/portfolio-vis/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	provider  string
	benchmark string
	catalog   SymbolCatalog
}

// NewSystemService creates a new SystemService
func NewSystemService(provider, benchmark string, catalog SymbolCatalog) *SystemService {
	return &SystemService{
		provider:  provider,
		benchmark: benchmark,
		catalog:   catalog,
	}
}

// CheckHealth reports whether the service can answer symbol lookups.
// Portfolio computations depend on the upstream provider, which is not checked here.
func (s *SystemService) CheckHealth() error {
	if s.catalog.LoadedAt().IsZero() {
		return fmt.Errorf("symbol catalog not loaded")
	}
	return nil
}

// CatalogStatus returns the number of catalog entries and when they were loaded.
func (s *SystemService) CatalogStatus() (int, time.Time) {
	return s.catalog.Len(), s.catalog.LoadedAt()
}

// CheckVersion returns the application version and enabled features.
func (s *SystemService) CheckVersion() model.VersionInfo {
	return model.VersionInfo{
		AppVersion:     version.Version,
		MarketProvider: s.provider,
		Benchmark:      s.benchmark,
		Features: map[string]bool{
			"distribution":        true,
			"timeseries":          true,
			"performance":         true,
			"performance_metrics": true,
			"custom_portfolio":    true,
			"predict":             true,
			"symbol_search":       s.catalog.Len() > 0,
		},
	}
}
