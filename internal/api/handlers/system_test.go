package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/portfolio-vis/internal/model"
	"github.com/ndewijer/portfolio-vis/internal/symbols"
	"github.com/ndewijer/portfolio-vis/internal/testutil"
	"github.com/ndewijer/portfolio-vis/internal/version"
)

func TestSystemHandler_Health(t *testing.T) {
	t.Run("returns healthy status when the catalog is loaded", func(t *testing.T) {
		handler := NewSystemHandler(testutil.NewTestSystemService(t, testutil.NewTestSymbolCatalog(t)))

		w := httptest.NewRecorder()
		handler.Health(w, httptest.NewRequest(http.MethodGet, "/api/system/health", nil))

		require.Equal(t, http.StatusOK, w.Code)
		resp := testutil.DecodeJSON[HealthResponse](t, w)
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, 4, resp.Symbols)
		assert.NotNil(t, resp.CatalogLoadedAt)
		assert.Empty(t, resp.Error)
	})

	t.Run("returns 503 when the catalog was never loaded", func(t *testing.T) {
		catalog := symbols.NewCatalog("does-not-exist.csv", zerolog.Nop())
		handler := NewSystemHandler(testutil.NewTestSystemService(t, catalog))

		w := httptest.NewRecorder()
		handler.Health(w, httptest.NewRequest(http.MethodGet, "/api/system/health", nil))

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		resp := testutil.DecodeJSON[HealthResponse](t, w)
		assert.Equal(t, "unhealthy", resp.Status)
		assert.Nil(t, resp.CatalogLoadedAt)
		assert.NotEmpty(t, resp.Error)
	})
}

func TestSystemHandler_Version(t *testing.T) {
	handler := NewSystemHandler(testutil.NewTestSystemService(t, testutil.NewTestSymbolCatalog(t)))

	w := httptest.NewRecorder()
	handler.Version(w, httptest.NewRequest(http.MethodGet, "/api/system/version", nil))

	require.Equal(t, http.StatusOK, w.Code)
	resp := testutil.DecodeJSON[model.VersionInfo](t, w)
	assert.Equal(t, version.Version, resp.AppVersion)
	assert.Equal(t, "fake", resp.MarketProvider)
	assert.Equal(t, testutil.TestBenchmark, resp.Benchmark)
	assert.True(t, resp.Features["custom_portfolio"])
	assert.True(t, resp.Features["symbol_search"])
}
