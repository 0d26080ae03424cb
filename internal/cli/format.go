package cli

import (
	"fmt"
	"strconv"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// displayCurrency is the currency closes are quoted in by both providers.
const displayCurrency = money.USD

// formatMoney renders v in displayCurrency, rounded to its minor unit: 1100 -> "$1,100.00".
func formatMoney(v float64) string {
	cur := money.GetCurrency(displayCurrency)
	minor := decimal.NewFromFloat(v).Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, displayCurrency).Display()
}

func formatShares(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatRatio(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v*100)
}
