package service

import (
	"time"

	"github.com/ndewijer/portfolio-vis/internal/model"
)

// DefaultSymbolSearchLimit caps symbol search results when the caller sets no limit.
const DefaultSymbolSearchLimit = 50

// SymbolCatalog is the read side of the symbol catalog.
type SymbolCatalog interface {
	Search(query string, limit int) []model.SymbolInfo
	Len() int
	LoadedAt() time.Time
}

// SymbolService serves symbol lookups for the stock picker.
type SymbolService struct {
	catalog SymbolCatalog
}

// NewSymbolService creates a new SymbolService
func NewSymbolService(catalog SymbolCatalog) *SymbolService {
	return &SymbolService{
		catalog: catalog,
	}
}

// Search returns catalog entries matching query. limit <= 0 selects
// DefaultSymbolSearchLimit; an empty query with no limit returns the whole catalog, as
// the picker loads it once on start.
func (s *SymbolService) Search(query string, limit int) []model.SymbolInfo {
	if limit <= 0 && query != "" {
		limit = DefaultSymbolSearchLimit
	}
	return s.catalog.Search(query, limit)
}
