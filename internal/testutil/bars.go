package testutil

import (
	"time"

	"github.com/ndewijer/portfolio-vis/internal/model"
)

// BaseDay is the first trading day used by bar builders: Tuesday 2 January 2024.
var BaseDay = time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)

// Day returns the trading day n calendar days after BaseDay.
func Day(n int) time.Time {
	return BaseDay.AddDate(0, 0, n)
}

// DayString returns Day(n) formatted as an API date.
func DayString(n int) string {
	return model.FormatDate(Day(n))
}

// MakeBars builds consecutive daily bars for symbol starting at Day(0).
//
// Example usage:
//
//	bars := testutil.MakeBars("AAPL", 100, 110)
//	// AAPL closes 100 on 2024-01-02 and 110 on 2024-01-03
func MakeBars(symbol string, closes ...float64) []model.Bar {
	return MakeBarsFrom(symbol, 0, closes...)
}

// MakeBarsFrom builds consecutive daily bars for symbol starting at Day(offset).
func MakeBarsFrom(symbol string, offset int, closes ...float64) []model.Bar {
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{
			Symbol: model.Symbol(symbol),
			Date:   Day(offset + i),
			Close:  c,
		}
	}
	return bars
}

// MakeBarsOn builds bars for symbol on the given day offsets. days and closes must have
// the same length.
//
// Example usage:
//
//	bars := testutil.MakeBarsOn("MSFT", []int{0, 2}, 200, 190)
//	// MSFT has no bar on Day(1)
func MakeBarsOn(symbol string, days []int, closes ...float64) []model.Bar {
	bars := make([]model.Bar, len(days))
	for i, d := range days {
		bars[i] = model.Bar{
			Symbol: model.Symbol(symbol),
			Date:   Day(d),
			Close:  closes[i],
		}
	}
	return bars
}

// MakePositions builds share positions from alternating symbol/shares pairs.
//
// Example usage:
//
//	positions := testutil.MakePositions("AAPL", 10, "MSFT", 5)
func MakePositions(pairs ...any) []model.SharePosition {
	positions := make([]model.SharePosition, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		positions = append(positions, model.SharePosition{
			Symbol: model.Symbol(pairs[i].(string)),
			Shares: toFloat(pairs[i+1]),
		})
	}
	return positions
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case float64:
		return n
	default:
		panic("testutil: shares must be int or float64")
	}
}
