package service_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/ndewijer/portfolio-vis/internal/symbols"
	"github.com/ndewijer/portfolio-vis/internal/testutil"
	"github.com/ndewijer/portfolio-vis/internal/version"
)

func TestSystemService_CheckHealth(t *testing.T) {
	t.Run("healthy once the catalog is loaded", func(t *testing.T) {
		svc := testutil.NewTestSystemService(t, testutil.NewTestSymbolCatalog(t))
		assert.NoError(t, svc.CheckHealth())

		n, loadedAt := svc.CatalogStatus()
		assert.Equal(t, 4, n)
		assert.False(t, loadedAt.IsZero())
	})

	t.Run("unhealthy before the first load", func(t *testing.T) {
		svc := testutil.NewTestSystemService(t, symbols.NewCatalog("unused.csv", zerolog.Nop()))
		assert.Error(t, svc.CheckHealth())
	})
}

func TestSystemService_CheckVersion(t *testing.T) {
	svc := testutil.NewTestSystemService(t, testutil.NewTestSymbolCatalog(t))

	info := svc.CheckVersion()

	assert.Equal(t, version.Version, info.AppVersion)
	assert.Equal(t, "fake", info.MarketProvider)
	assert.Equal(t, testutil.TestBenchmark, info.Benchmark)
	assert.True(t, info.Features["performance"])
	assert.True(t, info.Features["symbol_search"])
}

func TestSymbolService_Search(t *testing.T) {
	svc := testutil.NewTestSymbolService(t)

	assert.Len(t, svc.Search("", 0), 4, "empty query returns the whole catalog")
	assert.Len(t, svc.Search("", 2), 2)

	results := svc.Search("msft", 0)
	if assert.Len(t, results, 1) {
		assert.Equal(t, "Microsoft Corp.", results[0].Name)
	}
}
