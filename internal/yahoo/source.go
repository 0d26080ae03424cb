package yahoo

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/portfolio-vis/internal/market"
	"github.com/ndewijer/portfolio-vis/internal/model"
)

// Source adapts the Yahoo chart API to market.Source. Yahoo serves one symbol per call,
// so symbols are fetched concurrently, at most concurrency at a time.
type Source struct {
	client      Client
	concurrency int
	log         zerolog.Logger
}

var _ market.Source = (*Source)(nil)

// NewSource creates a Yahoo-backed market data source.
func NewSource(client Client, concurrency int, log zerolog.Logger) *Source {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Source{
		client:      client,
		concurrency: concurrency,
		log:         log.With().Str("source", "yahoo").Logger(),
	}
}

// Name identifies the provider.
func (s *Source) Name() string {
	return "yahoo"
}

// FetchDailyCloses fetches every requested symbol. Symbols Yahoo has no data for are
// omitted; any other failure cancels the remaining calls and fails the fetch.
func (s *Source) FetchDailyCloses(ctx context.Context, req market.Request) ([]model.Bar, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var (
		mu   sync.Mutex
		bars []model.Bar
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, symbol := range req.Symbols {
		g.Go(func() error {
			raw, err := s.client.QueryYahooSymbolByDateRange(gctx, string(symbol), req.Start, req.End)
			if err != nil {
				if errors.Is(err, ErrNoData) {
					s.log.Warn().Err(err).Str("symbol", string(symbol)).Msg("No data for symbol")
					return nil
				}
				return fmt.Errorf("query %s: %w", symbol, err)
			}

			chart, err := s.client.ParseChart(raw)
			if err != nil {
				if errors.Is(err, ErrNoData) {
					s.log.Warn().Err(err).Str("symbol", string(symbol)).Msg("Empty chart for symbol")
					return nil
				}
				return fmt.Errorf("parse %s: %w", symbol, err)
			}

			symbolBars := make([]model.Bar, 0, len(chart.Indicators))
			for _, ind := range chart.Indicators {
				symbolBars = append(symbolBars, model.Bar{
					Symbol: symbol,
					Date:   model.TradingDay(ind.Date),
					Close:  ind.PriceClose,
				})
			}

			mu.Lock()
			bars = append(bars, symbolBars...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.log.Debug().
		Int("symbols", len(req.Symbols)).
		Int("bars", len(bars)).
		Msg("Fetched daily closes")

	return bars, nil
}
