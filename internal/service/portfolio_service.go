package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/portfolio-vis/internal/apperrors"
	"github.com/ndewijer/portfolio-vis/internal/config"
	"github.com/ndewijer/portfolio-vis/internal/market"
	"github.com/ndewijer/portfolio-vis/internal/model"
	"github.com/ndewijer/portfolio-vis/internal/portfolio"
)

// PortfolioService handles portfolio computations over freshly fetched market data.
// It owns no mutable state: every call fetches its own bars and builds its own table.
type PortfolioService struct {
	source   market.Source
	defaults config.PortfolioConfig
	timeout  time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

// CustomPortfolio bundles the three portfolio views computed from one fetch.
type CustomPortfolio struct {
	Distribution portfolio.ValuationResult
	Timeseries   portfolio.Timeseries
	Performance  portfolio.Performance
}

// Warnings returns the warnings of all three views, de-duplicated.
func (c CustomPortfolio) Warnings() []model.Warning {
	var all []model.Warning
	for _, group := range [][]model.Warning{c.Distribution.Warnings, c.Timeseries.Warnings, c.Performance.Warnings} {
		for _, w := range group {
			if !slices.Contains(all, w) {
				all = append(all, w)
			}
		}
	}
	return all
}

// MetricsReport holds summary statistics of a portfolio against its benchmark.
type MetricsReport struct {
	Benchmark model.Symbol
	Metrics   portfolio.Metrics
	Warnings  []model.Warning
}

// Prediction is the close series returned by the predict endpoint. There is no model
// behind it: predictions are the fetched closes rounded to cents.
type Prediction struct {
	Symbol      model.Symbol
	Dates       []string
	Predictions []float64
}

// NewPortfolioService creates a new PortfolioService. timeout bounds every market data
// fetch; zero disables the bound.
func NewPortfolioService(source market.Source, defaults config.PortfolioConfig, timeout time.Duration, log zerolog.Logger) *PortfolioService {
	return &PortfolioService{
		source:   source,
		defaults: defaults,
		timeout:  timeout,
		now:      time.Now,
		log:      log.With().Str("service", "portfolio").Logger(),
	}
}

// WithClock replaces the clock that anchors trailing windows.
func (s *PortfolioService) WithClock(now func() time.Time) *PortfolioService {
	s.now = now
	return s
}

// Distribution values every position at its latest close.
func (s *PortfolioService) Distribution(ctx context.Context, q model.PortfolioQuery) (portfolio.ValuationResult, error) {
	if err := requirePositions(q.Positions); err != nil {
		return portfolio.ValuationResult{}, err
	}

	table, err := s.fetch(ctx, model.PositionSymbols(q.Positions), s.days(q.Days))
	if err != nil {
		return portfolio.ValuationResult{}, err
	}

	result := portfolio.Value(q.Positions, table)
	s.logWarnings("distribution", result.Warnings)
	return result, nil
}

// Timeseries returns each symbol's close series normalized against its own first close.
func (s *PortfolioService) Timeseries(ctx context.Context, q model.SeriesQuery) (portfolio.Timeseries, error) {
	if len(q.Symbols) == 0 {
		return portfolio.Timeseries{}, fmt.Errorf("%w: no symbols", apperrors.ErrMalformedInput)
	}

	table, err := s.fetch(ctx, q.Symbols, s.days(q.Days))
	if err != nil {
		return portfolio.Timeseries{}, err
	}

	ts := portfolio.NormalizedSeries(q.Symbols, table)
	s.logWarnings("timeseries", ts.Warnings)
	return ts, nil
}

// Performance computes the normalized portfolio curve next to its benchmark's.
// Portfolio symbols and the benchmark are fetched together so both share one date axis.
func (s *PortfolioService) Performance(ctx context.Context, q model.PortfolioQuery) (portfolio.Performance, error) {
	if err := requirePositions(q.Positions); err != nil {
		return portfolio.Performance{}, err
	}

	benchmark := s.benchmark(q.Benchmark)
	table, err := s.fetch(ctx, withBenchmark(q.Positions, benchmark), s.days(q.Days))
	if err != nil {
		return portfolio.Performance{}, err
	}

	perf := portfolio.ComputePerformance(q.Positions, benchmark, table)
	s.logWarnings("performance", perf.Warnings)
	return perf, nil
}

// Metrics summarizes the performance curves with return, volatility, drawdown and,
// when the benchmark is available, correlation and beta.
func (s *PortfolioService) Metrics(ctx context.Context, q model.PortfolioQuery) (MetricsReport, error) {
	perf, err := s.Performance(ctx, q)
	if err != nil {
		return MetricsReport{}, err
	}
	return MetricsReport{
		Benchmark: perf.BenchmarkSymbol,
		Metrics:   portfolio.ComputeMetrics(perf),
		Warnings:  perf.Warnings,
	}, nil
}

// CustomPortfolio computes distribution, per-symbol timeseries and performance from a
// single fetch of the positions and the benchmark.
func (s *PortfolioService) CustomPortfolio(ctx context.Context, q model.PortfolioQuery) (CustomPortfolio, error) {
	if err := requirePositions(q.Positions); err != nil {
		return CustomPortfolio{}, err
	}

	benchmark := s.benchmark(q.Benchmark)
	table, err := s.fetch(ctx, withBenchmark(q.Positions, benchmark), s.days(q.Days))
	if err != nil {
		return CustomPortfolio{}, err
	}

	symbols := model.PositionSymbols(q.Positions)
	result := CustomPortfolio{
		Distribution: portfolio.Value(q.Positions, table),
		Timeseries:   portfolio.NormalizedSeries(symbols, table),
		Performance:  portfolio.ComputePerformance(q.Positions, benchmark, table),
	}
	s.logWarnings("custom_portfolio", result.Warnings())
	return result, nil
}

// Predict returns the symbol's closes over the window, rounded to two decimals.
func (s *PortfolioService) Predict(ctx context.Context, symbol model.Symbol, days int) (Prediction, error) {
	if symbol == "" {
		return Prediction{}, fmt.Errorf("%w: symbol is required", apperrors.ErrMalformedInput)
	}

	table, err := s.fetch(ctx, []model.Symbol{symbol}, s.days(days))
	if err != nil {
		return Prediction{}, err
	}

	series := table.CloseSeries(symbol)
	if len(series) == 0 {
		return Prediction{}, fmt.Errorf("%w: no bars for %s", apperrors.ErrDataUnavailable, symbol)
	}

	p := Prediction{
		Symbol:      symbol,
		Dates:       make([]string, len(series)),
		Predictions: make([]float64, len(series)),
	}
	for i, point := range series {
		p.Dates[i] = model.FormatDate(point.Date)
		p.Predictions[i] = decimal.NewFromFloat(point.Close).Round(2).InexactFloat64()
	}
	return p, nil
}

// DefaultBenchmark returns the configured benchmark symbol.
func (s *PortfolioService) DefaultBenchmark() model.Symbol {
	return model.NewSymbol(s.defaults.Benchmark)
}

// fetch loads the trailing window for symbols and builds the bar table. Any provider
// failure, including the deadline, is reported as apperrors.ErrDataUnavailable.
func (s *PortfolioService) fetch(ctx context.Context, symbols []model.Symbol, days int) (*portfolio.Table, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req := market.TrailingWindow(symbols, days, s.now())
	start := time.Now()
	bars, err := s.source.FetchDailyCloses(ctx, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrMalformedInput) || errors.Is(err, apperrors.ErrInvalidDateRange) {
			return nil, err
		}
		s.log.Error().
			Err(err).
			Str("provider", s.source.Name()).
			Strs("symbols", model.Strings(symbols)).
			Dur("elapsed", time.Since(start)).
			Msg("Market data fetch failed")
		return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrDataUnavailable, s.source.Name(), err)
	}

	table, err := portfolio.Build(bars)
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("provider", s.source.Name()).
		Strs("symbols", model.Strings(symbols)).
		Strs("returned", model.Strings(table.Symbols())).
		Int("days", days).
		Int("bars", len(bars)).
		Dur("elapsed", time.Since(start)).
		Msg("Market data fetched")

	return table, nil
}

func (s *PortfolioService) days(requested int) int {
	if requested > 0 {
		return requested
	}
	return s.defaults.LookbackDays
}

func (s *PortfolioService) benchmark(requested model.Symbol) model.Symbol {
	if requested != "" {
		return requested
	}
	return s.DefaultBenchmark()
}

func (s *PortfolioService) logWarnings(operation string, warnings []model.Warning) {
	for _, w := range warnings {
		s.log.Warn().
			Str("operation", operation).
			Str("symbol", string(w.Symbol)).
			Msg(w.Message)
	}
}

func requirePositions(positions []model.SharePosition) error {
	if len(positions) == 0 {
		return fmt.Errorf("%w: no positions", apperrors.ErrMalformedInput)
	}
	return nil
}

// withBenchmark returns the position symbols plus benchmark, without duplicates.
func withBenchmark(positions []model.SharePosition, benchmark model.Symbol) []model.Symbol {
	symbols := model.PositionSymbols(positions)
	if !slices.Contains(symbols, benchmark) {
		symbols = append(symbols, benchmark)
	}
	return symbols
}
