// Package alpaca provides a market.Source backed by the Alpaca market data API.
package alpaca

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/rs/zerolog"

	"github.com/ndewijer/portfolio-vis/internal/market"
	"github.com/ndewijer/portfolio-vis/internal/model"
)

// Options carries the credentials and endpoint of the Alpaca data API.
type Options struct {
	APIKey    string
	APISecret string
	// BaseURL overrides the data endpoint; empty selects the SDK default.
	BaseURL string
	// Feed is the bar feed ("iex" or "sip"); empty selects iex, which free accounts can read.
	Feed    string
	Timeout time.Duration
}

// BarsClient is the part of marketdata.Client the source uses.
type BarsClient interface {
	GetMultiBars(symbols []string, req marketdata.GetBarsRequest) (map[string][]marketdata.Bar, error)
}

// Source fetches daily bars for many symbols in a single Alpaca call.
type Source struct {
	client BarsClient
	feed   marketdata.Feed
	log    zerolog.Logger
}

var _ market.Source = (*Source)(nil)

// NewClient builds the SDK client from opts.
func NewClient(opts Options) *marketdata.Client {
	return marketdata.NewClient(marketdata.ClientOpts{
		APIKey:     opts.APIKey,
		APISecret:  opts.APISecret,
		BaseURL:    opts.BaseURL,
		HTTPClient: &http.Client{Timeout: opts.Timeout},
	})
}

// NewSource wraps an Alpaca bars client.
func NewSource(client BarsClient, feed string, log zerolog.Logger) *Source {
	if feed == "" {
		feed = string(marketdata.IEX)
	}
	return &Source{
		client: client,
		feed:   marketdata.Feed(feed),
		log:    log.With().Str("source", "alpaca").Logger(),
	}
}

// Name identifies the provider.
func (s *Source) Name() string {
	return "alpaca"
}

type multiBarsResult struct {
	bars map[string][]marketdata.Bar
	err  error
}

// FetchDailyCloses requests split-adjusted daily bars for all symbols at once.
// Symbols Alpaca has no bars for are absent from its answer and therefore from the result.
//
// The SDK call takes no context, so it runs in its own goroutine and the fetch returns
// ctx.Err() as soon as ctx is done; the abandoned call ends with the HTTP client timeout.
func (s *Source) FetchDailyCloses(ctx context.Context, req market.Request) ([]model.Bar, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	done := make(chan multiBarsResult, 1)
	go func() {
		bars, err := s.client.GetMultiBars(model.Strings(req.Symbols), marketdata.GetBarsRequest{
			TimeFrame:  marketdata.OneDay,
			Adjustment: marketdata.Split,
			Start:      req.Start,
			End:        req.End,
			Feed:       s.feed,
		})
		done <- multiBarsResult{bars: bars, err: err}
	}()

	var res multiBarsResult
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-done:
	}
	if res.err != nil {
		return nil, fmt.Errorf("alpaca bars: %w", res.err)
	}

	var bars []model.Bar
	for _, symbol := range req.Symbols {
		symbolBars, ok := res.bars[string(symbol)]
		if !ok || len(symbolBars) == 0 {
			s.log.Warn().Str("symbol", string(symbol)).Msg("No bars for symbol")
			continue
		}
		for _, b := range symbolBars {
			bars = append(bars, model.Bar{
				Symbol: symbol,
				Date:   model.TradingDay(b.Timestamp),
				Close:  b.Close,
			})
		}
	}

	s.log.Debug().
		Int("symbols", len(req.Symbols)).
		Int("bars", len(bars)).
		Msg("Fetched daily closes")

	return bars, nil
}
