package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/ndewijer/portfolio-vis/internal/yahoo"
)

// MockYahooClient is a mock implementation of yahoo.Client for testing.
// It returns predefined responses per symbol instead of making API calls, and is safe
// for the concurrent use the Yahoo source makes of it.
type MockYahooClient struct {
	mu sync.Mutex

	// Responses maps a symbol to the response returned for it.
	Responses map[string]yahoo.Response
	// Errors maps a symbol to the error returned for it; it takes precedence over Responses.
	Errors map[string]error
	// DefaultError is returned for symbols with neither a response nor an error configured.
	// When nil those symbols yield yahoo.ErrNoData.
	DefaultError error

	queries map[string]int
}

// NewMockYahooClient creates a mock Yahoo client without configured symbols.
func NewMockYahooClient() *MockYahooClient {
	return &MockYahooClient{
		Responses: make(map[string]yahoo.Response),
		Errors:    make(map[string]error),
		queries:   make(map[string]int),
	}
}

// WithResponse configures the response returned for symbol.
func (m *MockYahooClient) WithResponse(symbol string, resp yahoo.Response) *MockYahooClient {
	m.Responses[symbol] = resp
	return m
}

// WithError configures the error returned for symbol.
func (m *MockYahooClient) WithError(symbol string, err error) *MockYahooClient {
	m.Errors[symbol] = err
	return m
}

// QueryYahooSymbolByDateRange mocks the date range query with the configured data.
func (m *MockYahooClient) QueryYahooSymbolByDateRange(ctx context.Context, symbol string, _, _ time.Time) (yahoo.Response, error) {
	m.mu.Lock()
	m.queries[symbol]++
	resp, hasResp := m.Responses[symbol]
	err, hasErr := m.Errors[symbol]
	m.mu.Unlock()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return yahoo.Response{}, ctxErr
	}
	if hasErr {
		return yahoo.Response{}, err
	}
	if hasResp {
		return resp, nil
	}
	if m.DefaultError != nil {
		return yahoo.Response{}, m.DefaultError
	}
	return yahoo.Response{}, yahoo.ErrNoData
}

// ParseChart delegates to the real ParseChart method since it's pure logic with no side effects.
func (m *MockYahooClient) ParseChart(yahooResult yahoo.Response) (yahoo.PriceChart, error) {
	return yahoo.NewFinanceClient(nil, "").ParseChart(yahooResult)
}

// QueryCount returns how many times symbol was queried.
func (m *MockYahooClient) QueryCount(symbol string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queries[symbol]
}

// Float returns a pointer to v, for building quotes with null entries.
func Float(v float64) *float64 {
	return &v
}

// CreateMockYahooResponse creates a Yahoo chart response for symbol with one entry per
// close, on consecutive days starting at start. Yahoo stamps daily bars at the session
// open, so timestamps are set to 14:30 UTC. A nil close is emitted as JSON null.
func CreateMockYahooResponse(symbol string, start time.Time, closes ...*float64) yahoo.Response {
	timestamps := make([]int64, len(closes))
	for i := range closes {
		day := start.AddDate(0, 0, i)
		timestamps[i] = time.Date(day.Year(), day.Month(), day.Day(), 14, 30, 0, 0, time.UTC).Unix()
	}

	return yahoo.Response{
		Chart: yahoo.Chart{
			Result: []yahoo.Result{
				{
					Meta: yahoo.Meta{
						Symbol:           symbol,
						Currency:         "USD",
						ExchangeName:     "NMS",
						FullExchangeName: "NASDAQ",
						LongName:         symbol + " Inc.",
						Shortname:        symbol,
					},
					Timestamp: timestamps,
					Indicators: yahoo.IndicatorsContainer{
						Quote: []yahoo.Quote{
							{Close: closes},
						},
					},
				},
			},
		},
	}
}

// CreateMockYahooResponseForCloses is CreateMockYahooResponse without null entries.
func CreateMockYahooResponseForCloses(symbol string, start time.Time, closes ...float64) yahoo.Response {
	ptrs := make([]*float64, len(closes))
	for i, c := range closes {
		ptrs[i] = Float(c)
	}
	return CreateMockYahooResponse(symbol, start, ptrs...)
}

// CreateMockYahooErrorResponse creates a mock Yahoo response with an error.
// Useful for testing error handling scenarios.
func CreateMockYahooErrorResponse(code, description string) yahoo.Response {
	return yahoo.Response{
		Chart: yahoo.Chart{
			Result: []yahoo.Result{},
			Error: &yahoo.Error{
				Code:        code,
				Description: description,
			},
		},
	}
}
