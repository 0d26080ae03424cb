package request

import (
	"strings"

	"github.com/ndewijer/portfolio-vis/internal/model"
)

// PortfolioRequest represents the request body of the portfolio endpoints.
// Symbols and Shares are parallel arrays matched by position.
type PortfolioRequest struct {
	Symbols   []string  `json:"symbols"`
	Shares    []float64 `json:"shares"`
	Days      *int      `json:"days,omitempty"`
	Benchmark string    `json:"benchmark,omitempty"`
}

// Query converts a validated request into a portfolio query.
func (r PortfolioRequest) Query() model.PortfolioQuery {
	return model.PortfolioQuery{
		Positions: model.Positions(model.NewSymbols(r.Symbols), r.Shares),
		Benchmark: model.NewSymbol(r.Benchmark),
		Days:      days(r.Days),
	}
}

// TimeseriesRequest represents the request of the per-symbol timeseries endpoint.
type TimeseriesRequest struct {
	Symbols []string `json:"symbols"`
	Days    *int     `json:"days,omitempty"`
}

// Query converts a validated request into a series query.
func (r TimeseriesRequest) Query() model.SeriesQuery {
	return model.SeriesQuery{
		Symbols: model.NewSymbols(r.Symbols),
		Days:    days(r.Days),
	}
}

// PredictRequest represents the request body of the predict endpoint.
type PredictRequest struct {
	Symbol string `json:"symbol"`
	Days   *int   `json:"days,omitempty"`
}

// SplitSymbols parses a comma separated symbol list such as "AAPL,MSFT" from a query string.
func SplitSymbols(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

func days(d *int) int {
	if d == nil {
		return 0
	}
	return *d
}
