package validation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/portfolio-vis/internal/api/request"
	"github.com/ndewijer/portfolio-vis/internal/apperrors"
)

func intPtr(v int) *int { return &v }

// TestValidatePortfolio covers the malformed inputs rejected before any fetch.
//
// WHY: Symbols and shares are matched by position. A length mismatch or a duplicate
// symbol has no defined meaning and must be rejected, never guessed at.
func TestValidatePortfolio(t *testing.T) {
	testCases := []struct {
		name  string
		req   request.PortfolioRequest
		field string
	}{
		{
			name:  "no symbols",
			req:   request.PortfolioRequest{},
			field: "symbols",
		},
		{
			name:  "length mismatch",
			req:   request.PortfolioRequest{Symbols: []string{"AAPL", "MSFT"}, Shares: []float64{10}},
			field: "shares",
		},
		{
			name:  "duplicate after normalization",
			req:   request.PortfolioRequest{Symbols: []string{"AAPL", " aapl "}, Shares: []float64{1, 2}},
			field: "symbols",
		},
		{
			name:  "blank symbol",
			req:   request.PortfolioRequest{Symbols: []string{"  "}, Shares: []float64{1}},
			field: "symbols",
		},
		{
			name:  "invalid characters",
			req:   request.PortfolioRequest{Symbols: []string{"AA PL"}, Shares: []float64{1}},
			field: "symbols",
		},
		{
			name:  "negative shares",
			req:   request.PortfolioRequest{Symbols: []string{"AAPL"}, Shares: []float64{-1}},
			field: "shares",
		},
		{
			name:  "NaN shares",
			req:   request.PortfolioRequest{Symbols: []string{"AAPL"}, Shares: []float64{math.NaN()}},
			field: "shares",
		},
		{
			name:  "shares above the bound",
			req:   request.PortfolioRequest{Symbols: []string{"AAPL"}, Shares: []float64{MaxShares * 10}},
			field: "shares",
		},
		{
			name:  "days out of range",
			req:   request.PortfolioRequest{Symbols: []string{"AAPL"}, Shares: []float64{1}, Days: intPtr(0)},
			field: "days",
		},
		{
			name:  "invalid benchmark",
			req:   request.PortfolioRequest{Symbols: []string{"AAPL"}, Shares: []float64{1}, Benchmark: "S&P"},
			field: "benchmark",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePortfolio(tc.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrMalformedInput)

			var verr *Error
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}

	t.Run("valid request", func(t *testing.T) {
		err := ValidatePortfolio(request.PortfolioRequest{
			Symbols:   []string{"AAPL", "brk.b", "^GSPC"},
			Shares:    []float64{10, 0, 1.5},
			Days:      intPtr(90),
			Benchmark: "qqq",
		})
		assert.NoError(t, err)
	})
}

func TestValidateTimeseries(t *testing.T) {
	assert.NoError(t, ValidateTimeseries(request.TimeseriesRequest{Symbols: []string{"AAPL"}}))
	assert.Error(t, ValidateTimeseries(request.TimeseriesRequest{}))
	assert.Error(t, ValidateTimeseries(request.TimeseriesRequest{Symbols: []string{"AAPL"}, Days: intPtr(MaxDays + 1)}))
}

func TestValidatePredict(t *testing.T) {
	assert.NoError(t, ValidatePredict(request.PredictRequest{Symbol: "aapl"}))

	err := ValidatePredict(request.PredictRequest{})
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "symbol is required", verr.Fields["symbol"])

	assert.Error(t, ValidatePredict(request.PredictRequest{Symbol: "A B"}))
}

func TestError_Error(t *testing.T) {
	err := &Error{Fields: map[string]string{"symbols": "b", "days": "a"}}
	assert.Equal(t, "days: a; symbols: b", err.Error())
}
