package model

import (
	"strings"
	"time"
)

// DateLayout is the ISO date format used for every date emitted by the API.
const DateLayout = "2006-01-02"

// Symbol is an opaque ticker identifier such as "AAPL" or "SPY".
type Symbol string

// NewSymbol trims and upper-cases a user-supplied ticker.
func NewSymbol(s string) Symbol {
	return Symbol(strings.ToUpper(strings.TrimSpace(s)))
}

// NewSymbols applies NewSymbol to every element.
func NewSymbols(values []string) []Symbol {
	symbols := make([]Symbol, len(values))
	for i, v := range values {
		symbols[i] = NewSymbol(v)
	}
	return symbols
}

// Strings converts symbols back to plain strings, as provider SDKs expect.
func Strings(symbols []Symbol) []string {
	out := make([]string, len(symbols))
	for i, s := range symbols {
		out[i] = string(s)
	}
	return out
}

// Bar is a single daily close for one symbol.
// Date is always truncated to midnight UTC; see TradingDay.
type Bar struct {
	Symbol Symbol
	Date   time.Time
	Close  float64
}

// PricePoint is one (date, close) entry of a symbol's close series.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// SymbolInfo is one entry of the symbol catalog offered to the stock picker.
type SymbolInfo struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// TradingDay strips the time of day from t, keeping its UTC calendar date.
// Providers stamp daily bars differently (Alpaca at midnight New York, Yahoo at the
// session open); both map to the same UTC date.
func TradingDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a trading day in DateLayout.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
