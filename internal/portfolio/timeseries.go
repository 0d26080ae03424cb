package portfolio

import (
	"github.com/ndewijer/portfolio-vis/internal/model"
)

// Timeseries holds one normalized close series per symbol. Each series keeps the length of
// the symbol's own trading days; Dates is the union axis of the included symbols and is
// not index-aligned with shorter series.
type Timeseries struct {
	Dates    []string
	Series   map[model.Symbol][]float64
	Warnings []model.Warning
}

// NormalizedSeries normalizes each symbol's closes against its own first close.
// Symbols without bars are left out of Series and reported as warnings. A series that
// starts at zero is anchored on its first non-zero close instead.
func NormalizedSeries(symbols []model.Symbol, table *Table) Timeseries {
	sub := table.Subset(symbols)
	axis := sub.DateAxis()

	ts := Timeseries{
		Dates:  make([]string, len(axis)),
		Series: make(map[model.Symbol][]float64, len(symbols)),
	}
	for i, d := range axis {
		ts.Dates[i] = model.FormatDate(d)
	}

	for _, s := range symbols {
		series := table.CloseSeries(s)
		if len(series) == 0 {
			ts.Warnings = append(ts.Warnings, model.Warning{
				Symbol:  s,
				Message: "no price data; series omitted",
			})
			continue
		}

		values := closeValues(series)
		normalized, err := Normalize(values)
		if err != nil {
			ts.Warnings = append(ts.Warnings, model.Warning{
				Symbol:  s,
				Message: "first close is zero; series anchored on first non-zero close",
			})
			normalized = NormalizeAnchored(values)
		}
		ts.Series[s] = normalized
	}

	return ts
}
