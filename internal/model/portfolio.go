package model

// SharePosition is one holding of a requested portfolio: a symbol and its share count.
// Share counts are fractional and never negative.
type SharePosition struct {
	Symbol Symbol  `json:"symbol" yaml:"symbol"`
	Shares float64 `json:"shares" yaml:"shares"`
}

// PositionValue is the valuation of a single position at its latest close.
// JSON keys are capitalized to match the distribution payload the frontend consumes.
type PositionValue struct {
	Symbol Symbol  `json:"Symbol"`
	Shares float64 `json:"Shares"`
	Price  float64 `json:"Price"`
	Value  float64 `json:"Value"`
}

// Warning is a non-fatal, per-symbol diagnostic produced while computing a result.
// A warning never fails the request; it travels next to the result it qualifies.
type Warning struct {
	Symbol  Symbol `json:"symbol"`
	Message string `json:"message"`
}

// Positions builds SharePositions from parallel symbol and share slices.
// The caller is responsible for having validated that both slices have the same length.
func Positions(symbols []Symbol, shares []float64) []SharePosition {
	positions := make([]SharePosition, len(symbols))
	for i, s := range symbols {
		positions[i] = SharePosition{Symbol: s, Shares: shares[i]}
	}
	return positions
}

// PositionSymbols returns the symbols of the given positions in order.
func PositionSymbols(positions []SharePosition) []Symbol {
	symbols := make([]Symbol, len(positions))
	for i, p := range positions {
		symbols[i] = p.Symbol
	}
	return symbols
}

// PortfolioQuery describes a portfolio computation over a trailing window.
// A zero Days or empty Benchmark selects the configured default.
type PortfolioQuery struct {
	Positions []SharePosition
	Benchmark Symbol
	Days      int
}

// SeriesQuery asks for the normalized close series of Symbols over a trailing window.
type SeriesQuery struct {
	Symbols []Symbol
	Days    int
}
