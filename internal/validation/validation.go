package validation

import (
	"math"
	"strings"

	"github.com/ndewijer/portfolio-vis/internal/model"
)

// Window bounds for the optional days field.
const (
	MinDays = 1
	MaxDays = 3650
)

// MaxShares bounds a share count so that shares × close stays finite.
const MaxShares = 1e12

// MaxSymbolLength bounds a ticker; the longest real tickers with exchange suffixes fit.
const MaxSymbolLength = 15

// ValidateSymbol checks a single ticker: upper-case letters, digits and the punctuation
// providers use for share classes, indices and suffixes (". - ^ =").
func ValidateSymbol(s model.Symbol) bool {
	if s == "" || len(s) > MaxSymbolLength {
		return false
	}
	for _, r := range string(s) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune(".-^=", r):
		default:
			return false
		}
	}
	return true
}

// validateSymbols checks the symbol list: non-empty, every entry a valid ticker, no
// duplicates after normalization.
func validateSymbols(raw []string, errs fieldErrors) {
	if len(raw) == 0 {
		errs.add("symbols", "at least one symbol is required")
		return
	}

	seen := make(map[model.Symbol]bool, len(raw))
	for i, r := range raw {
		s := model.NewSymbol(r)
		switch {
		case s == "":
			errs.add("symbols", "symbol at index %d is empty", i)
		case !ValidateSymbol(s):
			errs.add("symbols", "invalid symbol %q", r)
		case seen[s]:
			errs.add("symbols", "duplicate symbol %s", s)
		}
		seen[s] = true
	}
}

func validateDays(days *int, errs fieldErrors) {
	if days == nil {
		return
	}
	if *days < MinDays || *days > MaxDays {
		errs.add("days", "days must be between %d and %d", MinDays, MaxDays)
	}
}

func validateShares(shares []float64, errs fieldErrors) {
	for i, v := range shares {
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0) || v < 0:
			errs.add("shares", "share count at index %d must be a non-negative number", i)
		case v > MaxShares:
			errs.add("shares", "share count at index %d exceeds %g", i, MaxShares)
		}
	}
}

func validateBenchmark(benchmark string, errs fieldErrors) {
	if strings.TrimSpace(benchmark) == "" {
		return
	}
	if !ValidateSymbol(model.NewSymbol(benchmark)) {
		errs.add("benchmark", "invalid benchmark symbol %q", benchmark)
	}
}
