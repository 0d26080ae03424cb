package symbols

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/portfolio-vis/internal/apperrors"
	"github.com/ndewijer/portfolio-vis/internal/model"
)

// Catalog is the in-memory symbol list. It is safe for concurrent use: HTTP handlers
// read it while the scheduler reloads it.
type Catalog struct {
	path string
	log  zerolog.Logger

	mu       sync.RWMutex
	entries  []model.SymbolInfo
	loadedAt time.Time
}

// NewCatalog creates an empty catalog backed by the CSV at path. Call Load to fill it.
func NewCatalog(path string, log zerolog.Logger) *Catalog {
	return &Catalog{
		path:    path,
		log:     log.With().Str("component", "symbols").Logger(),
		entries: []model.SymbolInfo{},
	}
}

// NewStaticCatalog creates a catalog holding entries that is never reloaded.
func NewStaticCatalog(entries []model.SymbolInfo) *Catalog {
	c := &Catalog{log: zerolog.Nop()}
	c.Replace(entries)
	return c
}

// Load re-reads the CSV. On failure the previous entries are kept.
func (c *Catalog) Load() error {
	entries, err := LoadFile(c.path)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToLoadSymbolCatalog, err)
	}
	c.Replace(entries)

	c.log.Info().
		Str("path", c.path).
		Int("symbols", len(entries)).
		Msg("Symbol catalog loaded")
	return nil
}

// Replace swaps the catalog contents.
func (c *Catalog) Replace(entries []model.SymbolInfo) {
	if entries == nil {
		entries = []model.SymbolInfo{}
	}
	c.mu.Lock()
	c.entries = entries
	c.loadedAt = time.Now()
	c.mu.Unlock()
}

// Run reloads the catalog; it lets the scheduler drive refreshes.
func (c *Catalog) Run() error {
	return c.Load()
}

// Name identifies the reload job.
func (c *Catalog) Name() string {
	return "symbol-catalog-reload"
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// LoadedAt reports when the catalog was last replaced; zero if never.
func (c *Catalog) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}

// Search returns entries whose symbol or name contains query, case-insensitively.
// An exact symbol match is listed first; the rest keep catalog order. An empty query
// matches everything. limit <= 0 means no limit.
func (c *Catalog) Search(query string, limit int) []model.SymbolInfo {
	q := strings.ToUpper(strings.TrimSpace(query))

	c.mu.RLock()
	defer c.mu.RUnlock()

	results := []model.SymbolInfo{}
	for _, e := range c.entries {
		if q == "" {
			results = append(results, e)
			continue
		}
		symbol := strings.ToUpper(e.Symbol)
		if symbol == q {
			results = append([]model.SymbolInfo{e}, results...)
			continue
		}
		if strings.Contains(symbol, q) || strings.Contains(strings.ToUpper(e.Name), q) {
			results = append(results, e)
		}
	}

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
