package yahoo_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/portfolio-vis/internal/testutil"
	"github.com/ndewijer/portfolio-vis/internal/yahoo"
)

var start = time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)

func newServer(t *testing.T, handler http.HandlerFunc) *yahoo.FinanceClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return yahoo.NewFinanceClient(srv.Client(), srv.URL)
}

// TestFinanceClient_QueryYahooSymbolByDateRange verifies the request shape and decoding.
func TestFinanceClient_QueryYahooSymbolByDateRange(t *testing.T) {
	end := start.AddDate(0, 0, 2)

	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/AAPL", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		_ = json.NewEncoder(w).Encode(testutil.CreateMockYahooResponseForCloses("AAPL", start, 185.64, 184.25))
	})

	resp, err := client.QueryYahooSymbolByDateRange(context.Background(), "AAPL", start, end)
	require.NoError(t, err)
	require.Len(t, resp.Chart.Result, 1)
	assert.Equal(t, "AAPL", resp.Chart.Result[0].Meta.Symbol)
	assert.Len(t, resp.Chart.Result[0].Timestamp, 2)
}

// TestFinanceClient_Errors verifies which failures count as "no data".
//
// WHY: The source skips symbols Yahoo has no data for but fails the whole fetch on
// transport errors. Mixing them up either hides outages or fails on one bad ticker.
func TestFinanceClient_Errors(t *testing.T) {
	t.Run("yahoo error object is no data", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(testutil.CreateMockYahooErrorResponse("Not Found", "No data found, symbol may be delisted"))
		})

		_, err := client.QueryYahooSymbolByDateRange(context.Background(), "GONE", start, start)
		assert.ErrorIs(t, err, yahoo.ErrNoData)
		assert.ErrorContains(t, err, "delisted")
	})

	t.Run("empty result is no data", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"chart":{"result":[],"error":null}}`))
		})

		_, err := client.QueryYahooSymbolByDateRange(context.Background(), "GONE", start, start)
		assert.ErrorIs(t, err, yahoo.ErrNoData)
	})

	t.Run("server error is not no data", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "upstream down", http.StatusBadGateway)
		})

		_, err := client.QueryYahooSymbolByDateRange(context.Background(), "AAPL", start, start)
		require.Error(t, err)
		assert.False(t, errors.Is(err, yahoo.ErrNoData))
		assert.ErrorContains(t, err, "502")
	})

	t.Run("cancelled context", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.QueryYahooSymbolByDateRange(ctx, "AAPL", start, start)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFinanceClient_ParseChart(t *testing.T) {
	client := yahoo.NewFinanceClient(nil, "")

	t.Run("parses closes and skips nulls", func(t *testing.T) {
		resp := testutil.CreateMockYahooResponse("AAPL", start, testutil.Float(100), nil, testutil.Float(102))

		chart, err := client.ParseChart(resp)
		require.NoError(t, err)

		assert.Equal(t, "AAPL", chart.Symbol)
		assert.Equal(t, "USD", chart.Currency)
		require.Len(t, chart.Indicators, 2)
		assert.Equal(t, 100.0, chart.Indicators[0].PriceClose)
		assert.Equal(t, 102.0, chart.Indicators[1].PriceClose)
		assert.True(t, chart.Indicators[1].Date.Equal(start.AddDate(0, 0, 2).Add(14*time.Hour+30*time.Minute)))
	})

	t.Run("empty result", func(t *testing.T) {
		_, err := client.ParseChart(yahoo.Response{})
		assert.ErrorIs(t, err, yahoo.ErrNoData)
	})

	t.Run("mismatched lengths", func(t *testing.T) {
		resp := testutil.CreateMockYahooResponseForCloses("AAPL", start, 100, 101)
		resp.Chart.Result[0].Timestamp = resp.Chart.Result[0].Timestamp[:1]

		_, err := client.ParseChart(resp)
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "mismatched"))
	})
}
