package portfolio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/portfolio-vis/internal/apperrors"
	"github.com/ndewijer/portfolio-vis/internal/portfolio"
)

// TestNormalize verifies out[0] == 1 and out[i] == series[i] / series[0].
func TestNormalize(t *testing.T) {
	series := [][]float64{
		{50, 75, 25, 100},
		{1},
		{3.7, 3.9, 4.2, 1e-3, 12345.678},
		{0.01, 0, 0.02},
	}

	for _, s := range series {
		out, err := portfolio.Normalize(s)
		require.NoError(t, err)
		require.Len(t, out, len(s))

		assert.Equal(t, 1.0, out[0])
		for i := range s {
			assert.Equal(t, s[i]/s[0], out[i])
		}
	}

	t.Run("worked example", func(t *testing.T) {
		out, err := portfolio.Normalize([]float64{50, 75, 25, 100})
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 1.5, 0.5, 2}, out)
	})

	t.Run("empty series", func(t *testing.T) {
		_, err := portfolio.Normalize(nil)
		assert.ErrorIs(t, err, apperrors.ErrDivisionByZero)
	})

	t.Run("series starting at zero", func(t *testing.T) {
		_, err := portfolio.Normalize([]float64{0, 10})
		assert.ErrorIs(t, err, apperrors.ErrDivisionByZero)
	})
}

// TestNormalizeAnchored verifies the anchor search used for portfolio values.
//
// WHY: A portfolio whose symbols start trading after the first axis date has zero value
// on those dates. Normalizing must neither divide by zero nor fail the request.
func TestNormalizeAnchored(t *testing.T) {
	testCases := []struct {
		name     string
		values   []float64
		expected []float64
	}{
		{"anchor after leading zeros", []float64{0, 0, 50, 100}, []float64{1, 1, 1, 2}},
		{"all zero", []float64{0, 0, 0}, []float64{0, 0, 0}},
		{"no leading zeros", []float64{2000, 2050}, []float64{1, 1.025}},
		{"zero after anchor", []float64{10, 0, 20}, []float64{1, 0, 2}},
		{"empty", []float64{}, []float64{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, portfolio.NormalizeAnchored(tc.values))
		})
	}
}
