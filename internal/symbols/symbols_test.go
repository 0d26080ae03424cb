package symbols

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/portfolio-vis/internal/apperrors"
	"github.com/ndewijer/portfolio-vis/internal/model"
)

const sampleCSV = "\xEF\xBB\xBFSymbol,Name,Sector\n" +
	"AAPL,Apple Inc.,Tech\n" +
	" MSFT , Microsoft Corp. ,Tech\n" +
	",Missing Symbol,Tech\n" +
	"XYZ,,Tech\n" +
	"FOOT,Note: prices delayed,\n" +
	"SPY,SPDR S&P 500 ETF Trust,ETF\n"

// TestParseCSV verifies the catalog filtering rules.
//
// WHY: The picker must not offer blank rows or the footnote lines vendors append to
// symbol exports.
func TestParseCSV(t *testing.T) {
	t.Run("filters and trims rows", func(t *testing.T) {
		entries, err := ParseCSV(strings.NewReader(sampleCSV))
		require.NoError(t, err)

		assert.Equal(t, []model.SymbolInfo{
			{Symbol: "AAPL", Name: "Apple Inc."},
			{Symbol: "MSFT", Name: "Microsoft Corp."},
			{Symbol: "SPY", Name: "SPDR S&P 500 ETF Trust"},
		}, entries)
	})

	t.Run("column order does not matter", func(t *testing.T) {
		entries, err := ParseCSV(strings.NewReader("Name,Symbol\nApple Inc.,AAPL\n"))
		require.NoError(t, err)
		assert.Equal(t, []model.SymbolInfo{{Symbol: "AAPL", Name: "Apple Inc."}}, entries)
	})

	t.Run("short rows are skipped", func(t *testing.T) {
		entries, err := ParseCSV(strings.NewReader("Symbol,Name\nAAPL\nMSFT,Microsoft\n"))
		require.NoError(t, err)
		assert.Equal(t, []model.SymbolInfo{{Symbol: "MSFT", Name: "Microsoft"}}, entries)
	})

	t.Run("missing name column", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader("Symbol,Sector\nAAPL,Tech\n"))
		assert.ErrorIs(t, err, ErrMissingColumn)
	})

	t.Run("empty input", func(t *testing.T) {
		entries, err := ParseCSV(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	err := WriteJSON(&buf, []model.SymbolInfo{{Symbol: "AAPL", Name: "Apple Inc."}})
	require.NoError(t, err)

	assert.Equal(t, "[\n  {\n    \"symbol\": \"AAPL\",\n    \"name\": \"Apple Inc.\"\n  }\n]\n", buf.String())
}

// TestConvert verifies the CSV to JSON file conversion end to end.
func TestConvert(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "symbols.csv")
	out := filepath.Join(dir, "stock_symbols.json")
	require.NoError(t, os.WriteFile(in, []byte(sampleCSV), 0o600))

	n, err := Convert(in, out)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var entries []model.SymbolInfo
	require.NoError(t, json.Unmarshal(data, &entries))
	assert.Len(t, entries, 3)
	assert.Equal(t, "AAPL", entries[0].Symbol)

	t.Run("missing input", func(t *testing.T) {
		_, err := Convert(filepath.Join(dir, "nope.csv"), out)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

// TestCatalog_Load verifies reloads replace the contents and failed reloads keep them.
//
// WHY: The scheduler reloads the catalog while the server is serving it; a broken or
// missing file must not empty the picker.
func TestCatalog_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "symbols.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	c := NewCatalog(path, zerolog.Nop())
	assert.Equal(t, 0, c.Len())
	assert.True(t, c.LoadedAt().IsZero())

	require.NoError(t, c.Run())
	assert.Equal(t, 3, c.Len())
	assert.False(t, c.LoadedAt().IsZero())

	require.NoError(t, os.Remove(path))
	assert.ErrorIs(t, c.Load(), apperrors.ErrFailedToLoadSymbolCatalog)
	assert.Equal(t, 3, c.Len())
}

func TestCatalog_Search(t *testing.T) {
	c := NewStaticCatalog([]model.SymbolInfo{
		{Symbol: "AAPL", Name: "Apple Inc."},
		{Symbol: "APLE", Name: "Apple Hospitality REIT"},
		{Symbol: "MSFT", Name: "Microsoft Corp."},
		{Symbol: "APP", Name: "AppLovin Corp."},
	})

	testCases := []struct {
		name     string
		query    string
		limit    int
		expected []string
	}{
		{"empty query returns all", "", 0, []string{"AAPL", "APLE", "MSFT", "APP"}},
		{"matches symbol and name case-insensitively", "apple", 0, []string{"AAPL", "APLE"}},
		{"exact symbol first", "app", 0, []string{"APP", "AAPL", "APLE"}},
		{"limit", "", 2, []string{"AAPL", "APLE"}},
		{"no match", "zzz", 0, []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			results := c.Search(tc.query, tc.limit)
			got := make([]string, len(results))
			for i, r := range results {
				got[i] = r.Symbol
			}
			assert.Equal(t, tc.expected, got)
		})
	}
}
