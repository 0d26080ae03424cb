package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/portfolio-vis/internal/model"
)

// ValuationResult is the distribution of a portfolio at its latest closes, along with
// warnings for positions that could not be priced.
type ValuationResult struct {
	Positions []model.PositionValue
	Warnings  []model.Warning
}

// Value prices every position at its symbol's latest close.
//
// A symbol missing from the table does not fail the valuation: the position is reported
// with price 0 and value 0 and a warning is recorded. Output order follows positions.
func Value(positions []model.SharePosition, table *Table) ValuationResult {
	result := ValuationResult{
		Positions: make([]model.PositionValue, 0, len(positions)),
	}

	for _, p := range positions {
		price, err := table.LatestClose(p.Symbol)
		if err != nil {
			// ErrSymbolNotFound is the only failure; degrade to a zero-valued entry.
			price = 0
			result.Warnings = append(result.Warnings, model.Warning{
				Symbol:  p.Symbol,
				Message: "no price data; valued at 0",
			})
		}

		result.Positions = append(result.Positions, model.PositionValue{
			Symbol: p.Symbol,
			Shares: p.Shares,
			Price:  price,
			Value:  positionValue(p.Shares, price),
		})
	}

	return result
}

// positionValue multiplies in decimal so that e.g. 3 × 0.1 reports 0.3.
func positionValue(shares, price float64) float64 {
	return decimal.NewFromFloat(shares).Mul(decimal.NewFromFloat(price)).InexactFloat64()
}

// TotalValue sums the values of a distribution.
func TotalValue(positions []model.PositionValue) float64 {
	total := decimal.Zero
	for _, p := range positions {
		total = total.Add(decimal.NewFromFloat(p.Value))
	}
	return total.InexactFloat64()
}
