package portfolio

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/portfolio-vis/internal/model"
)

// Performance is a portfolio's normalized equity curve next to its benchmark's,
// both laid out on the table's date axis.
type Performance struct {
	Dates           []string
	BenchmarkSymbol model.Symbol
	// Benchmark is empty when the benchmark symbol has no bars.
	Benchmark []float64
	Portfolio []float64
	// Values holds the raw aggregated portfolio value per date, before normalization.
	Values   []float64
	Warnings []model.Warning
}

// ComputePerformance aggregates the daily portfolio value over the table's date axis,
// normalizes it and aligns the benchmark's normalized series on the same axis.
//
// Missing data policy: a symbol without a bar on a given date contributes 0 to that
// date's value. There is no forward fill and no interpolation. A feed gap therefore shows
// up as a transient dip rather than being hidden behind a stale price; the curve never
// overstates the portfolio, at the cost of dips that are artefacts and not losses.
//
// The portfolio curve is anchored on the first date with a non-zero value (dates before
// it report 1.0); an all-zero portfolio is reported as all zeros.
func ComputePerformance(positions []model.SharePosition, benchmark model.Symbol, table *Table) Performance {
	axis := table.DateAxis()

	perf := Performance{
		Dates:           make([]string, len(axis)),
		BenchmarkSymbol: benchmark,
	}
	for i, d := range axis {
		perf.Dates[i] = model.FormatDate(d)
	}

	perf.Benchmark = benchmarkOnAxis(axis, table.CloseSeries(benchmark))
	if len(perf.Benchmark) == 0 {
		perf.Warnings = append(perf.Warnings, model.Warning{
			Symbol:  benchmark,
			Message: "no benchmark data; benchmark series omitted",
		})
	}

	values, warnings := portfolioValues(axis, positions, table)
	perf.Values = values
	perf.Warnings = append(perf.Warnings, warnings...)
	perf.Portfolio = NormalizeAnchored(values)

	return perf
}

// portfolioValues computes Σ shares × close for every date of axis, zero-filling gaps.
func portfolioValues(axis []time.Time, positions []model.SharePosition, table *Table) ([]float64, []model.Warning) {
	totals := make([]decimal.Decimal, len(axis))
	for i := range totals {
		totals[i] = decimal.Zero
	}

	var warnings []model.Warning
	for _, p := range positions {
		if !table.Has(p.Symbol) {
			warnings = append(warnings, model.Warning{
				Symbol:  p.Symbol,
				Message: "no price data; contributes 0 to every date",
			})
			continue
		}

		shares := decimal.NewFromFloat(p.Shares)
		closesByDay := table.closesByDay(p.Symbol)
		missing := 0
		for i, d := range axis {
			c, ok := closesByDay[d]
			if !ok {
				missing++
				continue
			}
			totals[i] = totals[i].Add(shares.Mul(decimal.NewFromFloat(c)))
		}

		if missing > 0 {
			warnings = append(warnings, model.Warning{
				Symbol:  p.Symbol,
				Message: fmt.Sprintf("missing %d of %d days; treated as zero value", missing, len(axis)),
			})
		}
	}

	values := make([]float64, len(axis))
	for i, t := range totals {
		values[i] = t.InexactFloat64()
	}
	return values, warnings
}

// benchmarkOnAxis normalizes the benchmark against its own first close and lays it out on
// axis. Dates the benchmark has no bar for repeat the previous normalized value (1.0 before
// its first bar): the benchmark is a reference line, and zero-filling it would draw a
// -100% move that never happened. Returns nil when the benchmark has no bars.
func benchmarkOnAxis(axis []time.Time, series []model.PricePoint) []float64 {
	if len(series) == 0 {
		return nil
	}

	normalized := normalizeOrAnchor(closeValues(series))
	byDay := make(map[time.Time]float64, len(series))
	for i, p := range series {
		byDay[p.Date] = normalized[i]
	}

	out := make([]float64, len(axis))
	last := 1.0
	for i, d := range axis {
		if v, ok := byDay[d]; ok {
			last = v
		}
		out[i] = last
	}
	return out
}
