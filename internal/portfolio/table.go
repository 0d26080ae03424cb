// Package portfolio holds the request-scoped computation core: the bar table built from a
// provider fetch, position valuation, series normalization and benchmark-relative
// portfolio performance. Everything in this package is pure; no function performs I/O or
// keeps state between calls.
package portfolio

import (
	"fmt"
	"slices"
	"time"

	"github.com/ndewijer/portfolio-vis/internal/apperrors"
	"github.com/ndewijer/portfolio-vis/internal/model"
)

// Table groups fetched bars by symbol. Each symbol's bars are sorted by date ascending
// with unique dates.
type Table struct {
	bars map[model.Symbol][]model.Bar
}

// Build groups raw bars by symbol and sorts every group by date.
// Bar dates are truncated to their UTC trading day. When a provider sends the same
// day twice for one symbol the last bar wins.
//
// Returns apperrors.ErrDataUnavailable when bars is empty.
func Build(bars []model.Bar) (*Table, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: no bars returned for the requested symbols", apperrors.ErrDataUnavailable)
	}

	byDay := make(map[model.Symbol]map[time.Time]model.Bar)
	for _, b := range bars {
		b.Date = model.TradingDay(b.Date)
		days, ok := byDay[b.Symbol]
		if !ok {
			days = make(map[time.Time]model.Bar)
			byDay[b.Symbol] = days
		}
		days[b.Date] = b
	}

	grouped := make(map[model.Symbol][]model.Bar, len(byDay))
	for symbol, days := range byDay {
		series := make([]model.Bar, 0, len(days))
		for _, b := range days {
			series = append(series, b)
		}
		slices.SortFunc(series, func(a, b model.Bar) int {
			return a.Date.Compare(b.Date)
		})
		grouped[symbol] = series
	}

	return &Table{bars: grouped}, nil
}

// LatestClose returns the close of the most recent bar for symbol.
func (t *Table) LatestClose(symbol model.Symbol) (float64, error) {
	series := t.bars[symbol]
	if len(series) == 0 {
		return 0, fmt.Errorf("%w: %s", apperrors.ErrSymbolNotFound, symbol)
	}
	return series[len(series)-1].Close, nil
}

// CloseSeries returns symbol's (date, close) points in date order.
// Unknown symbols yield an empty series.
func (t *Table) CloseSeries(symbol model.Symbol) []model.PricePoint {
	series := t.bars[symbol]
	points := make([]model.PricePoint, len(series))
	for i, b := range series {
		points[i] = model.PricePoint{Date: b.Date, Close: b.Close}
	}
	return points
}

// closesByDay indexes a symbol's closes by trading day for aligned lookups.
func (t *Table) closesByDay(symbol model.Symbol) map[time.Time]float64 {
	series := t.bars[symbol]
	closes := make(map[time.Time]float64, len(series))
	for _, b := range series {
		closes[b.Date] = b.Close
	}
	return closes
}

// DateAxis returns the sorted, de-duplicated union of trading days across all symbols.
func (t *Table) DateAxis() []time.Time {
	seen := make(map[time.Time]struct{})
	for _, series := range t.bars {
		for _, b := range series {
			seen[b.Date] = struct{}{}
		}
	}

	axis := make([]time.Time, 0, len(seen))
	for d := range seen {
		axis = append(axis, d)
	}
	slices.SortFunc(axis, func(a, b time.Time) int {
		return a.Compare(b)
	})
	return axis
}

// Has reports whether symbol has at least one bar.
func (t *Table) Has(symbol model.Symbol) bool {
	return len(t.bars[symbol]) > 0
}

// Symbols returns the symbols present in the table, sorted.
func (t *Table) Symbols() []model.Symbol {
	symbols := make([]model.Symbol, 0, len(t.bars))
	for s := range t.bars {
		symbols = append(symbols, s)
	}
	slices.Sort(symbols)
	return symbols
}

// Subset returns a table restricted to the given symbols. Symbols without bars are
// skipped, so the result may be empty; unlike Build, Subset never fails.
func (t *Table) Subset(symbols []model.Symbol) *Table {
	sub := make(map[model.Symbol][]model.Bar, len(symbols))
	for _, s := range symbols {
		if series, ok := t.bars[s]; ok {
			sub[s] = series
		}
	}
	return &Table{bars: sub}
}
