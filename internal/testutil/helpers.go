package testutil

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/portfolio-vis/internal/config"
	"github.com/ndewijer/portfolio-vis/internal/model"
	"github.com/ndewijer/portfolio-vis/internal/service"
	"github.com/ndewijer/portfolio-vis/internal/symbols"
)

// TestBenchmark is the benchmark symbol test services are configured with.
const TestBenchmark = "SPY"

// TestLookbackDays is the default window test services are configured with.
const TestLookbackDays = 30

// Now is the fixed clock of test services: the day after Day(29), so that bars built
// from BaseDay fall inside the default window.
var Now = Day(TestLookbackDays).Add(21 * time.Hour)

// NewTestPortfolioService creates a PortfolioService over src with the test defaults,
// a one second fetch timeout and a fixed clock.
func NewTestPortfolioService(t *testing.T, src *FakeSource) *service.PortfolioService {
	t.Helper()

	return NewTestPortfolioServiceWithTimeout(t, src, time.Second)
}

// NewTestPortfolioServiceWithTimeout is NewTestPortfolioService with a custom fetch timeout.
func NewTestPortfolioServiceWithTimeout(t *testing.T, src *FakeSource, timeout time.Duration) *service.PortfolioService {
	t.Helper()

	defaults := config.PortfolioConfig{
		Benchmark:    TestBenchmark,
		LookbackDays: TestLookbackDays,
	}
	return service.NewPortfolioService(src, defaults, timeout, zerolog.Nop()).
		WithClock(func() time.Time { return Now })
}

// NewTestSymbolCatalog creates a static catalog with a few well-known symbols.
func NewTestSymbolCatalog(t *testing.T) *symbols.Catalog {
	t.Helper()

	return symbols.NewStaticCatalog([]model.SymbolInfo{
		{Symbol: "AAPL", Name: "Apple Inc."},
		{Symbol: "MSFT", Name: "Microsoft Corp."},
		{Symbol: "AMZN", Name: "Amazon.com Inc."},
		{Symbol: "SPY", Name: "SPDR S&P 500 ETF Trust"},
	})
}

// NewTestSymbolService creates a SymbolService over NewTestSymbolCatalog.
func NewTestSymbolService(t *testing.T) *service.SymbolService {
	t.Helper()

	return service.NewSymbolService(NewTestSymbolCatalog(t))
}

// NewTestSystemService creates a SystemService reporting the fake provider.
func NewTestSystemService(t *testing.T, catalog service.SymbolCatalog) *service.SystemService {
	t.Helper()

	return service.NewSystemService("fake", TestBenchmark, catalog)
}

// AAPLBars returns the AAPL fixture bars: closes 100 and 110 on Day(0) and Day(1).
func AAPLBars() []model.Bar { return MakeBars("AAPL", 100, 110) }

// MSFTBars returns the MSFT fixture bars: closes 200 and 190.
func MSFTBars() []model.Bar { return MakeBars("MSFT", 200, 190) }

// SPYBars returns the SPY fixture bars: closes 400 and 404.
func SPYBars() []model.Bar { return MakeBars("SPY", 400, 404) }
