package portfolio_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/portfolio-vis/internal/apperrors"
	"github.com/ndewijer/portfolio-vis/internal/model"
	"github.com/ndewijer/portfolio-vis/internal/portfolio"
	"github.com/ndewijer/portfolio-vis/internal/testutil"
)

// TestBuild verifies grouping, ordering and de-duplication of fetched bars.
//
// WHY: Providers return bars in arbitrary order and occasionally repeat a day. Every
// downstream computation assumes each symbol's series is sorted with unique dates.
func TestBuild(t *testing.T) {
	t.Run("empty input is data unavailable", func(t *testing.T) {
		_, err := portfolio.Build(nil)
		assert.ErrorIs(t, err, apperrors.ErrDataUnavailable)
	})

	t.Run("sorts each symbol by date", func(t *testing.T) {
		bars := []model.Bar{
			{Symbol: "AAPL", Date: testutil.Day(2), Close: 120},
			{Symbol: "AAPL", Date: testutil.Day(0), Close: 100},
			{Symbol: "AAPL", Date: testutil.Day(1), Close: 110},
		}

		table, err := portfolio.Build(bars)
		require.NoError(t, err)

		series := table.CloseSeries("AAPL")
		require.Len(t, series, 3)
		assert.Equal(t, []float64{100, 110, 120}, []float64{series[0].Close, series[1].Close, series[2].Close})
	})

	t.Run("same day twice keeps the last bar", func(t *testing.T) {
		bars := []model.Bar{
			{Symbol: "AAPL", Date: testutil.Day(0), Close: 100},
			{Symbol: "AAPL", Date: testutil.Day(0).Add(14 * time.Hour), Close: 101},
		}

		table, err := portfolio.Build(bars)
		require.NoError(t, err)

		series := table.CloseSeries("AAPL")
		require.Len(t, series, 1)
		assert.Equal(t, 101.0, series[0].Close)
		assert.Equal(t, testutil.Day(0), series[0].Date)
	})
}

func TestTable_LatestClose(t *testing.T) {
	table, err := portfolio.Build(testutil.AAPLBars())
	require.NoError(t, err)

	t.Run("returns the most recent close", func(t *testing.T) {
		price, err := table.LatestClose("AAPL")
		require.NoError(t, err)
		assert.Equal(t, 110.0, price)
	})

	t.Run("unknown symbol", func(t *testing.T) {
		_, err := table.LatestClose("MSFT")
		assert.ErrorIs(t, err, apperrors.ErrSymbolNotFound)
	})
}

// TestTable_DateAxis verifies the axis is the sorted, de-duplicated union of all dates.
//
// WHY: Symbols trade on different days (listings, halts, holidays on other exchanges).
// The axis must cover all of them exactly once, in order, whatever the series lengths.
func TestTable_DateAxis(t *testing.T) {
	testCases := []struct {
		name     string
		bars     [][]model.Bar
		expected []int
	}{
		{
			name:     "single symbol",
			bars:     [][]model.Bar{testutil.MakeBars("AAPL", 1, 2, 3)},
			expected: []int{0, 1, 2},
		},
		{
			name: "overlapping symbols of different lengths",
			bars: [][]model.Bar{
				testutil.MakeBars("AAPL", 1, 2, 3, 4),
				testutil.MakeBarsFrom("MSFT", 2, 1, 2, 3, 4),
			},
			expected: []int{0, 1, 2, 3, 4, 5},
		},
		{
			name: "disjoint symbols with gaps",
			bars: [][]model.Bar{
				testutil.MakeBarsOn("AAPL", []int{5, 1}, 1, 2),
				testutil.MakeBarsOn("MSFT", []int{3, 1, 7}, 1, 2, 3),
			},
			expected: []int{1, 3, 5, 7},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var all []model.Bar
			for _, b := range tc.bars {
				all = append(all, b...)
			}
			table, err := portfolio.Build(all)
			require.NoError(t, err)

			axis := table.DateAxis()

			expected := make([]time.Time, len(tc.expected))
			for i, d := range tc.expected {
				expected[i] = testutil.Day(d)
			}
			assert.Equal(t, expected, axis)

			for i := 1; i < len(axis); i++ {
				assert.True(t, axis[i-1].Before(axis[i]), "axis must be strictly increasing")
			}
		})
	}
}

func TestTable_Subset(t *testing.T) {
	bars := append(testutil.AAPLBars(), testutil.MakeBarsFrom("SPY", 5, 400)...)
	table, err := portfolio.Build(bars)
	require.NoError(t, err)

	assert.Equal(t, []model.Symbol{"AAPL", "SPY"}, table.Symbols())

	sub := table.Subset([]model.Symbol{"AAPL", "GOOG"})
	assert.Equal(t, []model.Symbol{"AAPL"}, sub.Symbols())
	assert.Equal(t, []time.Time{testutil.Day(0), testutil.Day(1)}, sub.DateAxis())
	assert.True(t, sub.Has("AAPL"))
	assert.False(t, sub.Has("SPY"))
}
