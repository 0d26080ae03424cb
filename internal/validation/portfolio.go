package validation

import (
	"github.com/ndewijer/portfolio-vis/internal/api/request"
	"github.com/ndewijer/portfolio-vis/internal/model"
)

// ValidatePortfolio checks a portfolio request: symbols and shares are parallel arrays
// of the same length, symbols are unique and share counts are non-negative.
func ValidatePortfolio(req request.PortfolioRequest) error {
	errs := fieldErrors{}

	validateSymbols(req.Symbols, errs)
	if len(req.Shares) != len(req.Symbols) {
		errs.add("shares", "expected %d share counts, got %d", len(req.Symbols), len(req.Shares))
	}
	validateShares(req.Shares, errs)
	validateDays(req.Days, errs)
	validateBenchmark(req.Benchmark, errs)

	return errs.err()
}

// ValidateTimeseries checks a per-symbol timeseries request.
func ValidateTimeseries(req request.TimeseriesRequest) error {
	errs := fieldErrors{}

	validateSymbols(req.Symbols, errs)
	validateDays(req.Days, errs)

	return errs.err()
}

// ValidatePredict checks a predict request.
func ValidatePredict(req request.PredictRequest) error {
	errs := fieldErrors{}

	symbol := model.NewSymbol(req.Symbol)
	switch {
	case symbol == "":
		errs.add("symbol", "symbol is required")
	case !ValidateSymbol(symbol):
		errs.add("symbol", "invalid symbol %q", req.Symbol)
	}
	validateDays(req.Days, errs)

	return errs.err()
}
