package portfolio

import (
	"fmt"

	"github.com/ndewijer/portfolio-vis/internal/apperrors"
	"github.com/ndewijer/portfolio-vis/internal/model"
)

// Normalize rebases series on its first value: out[i] = series[i] / series[0].
//
// Returns apperrors.ErrDivisionByZero when series is empty or starts at zero; callers
// fall back to NormalizeAnchored instead of failing the request.
func Normalize(series []float64) ([]float64, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: empty series", apperrors.ErrDivisionByZero)
	}
	base := series[0]
	if base == 0 {
		return nil, fmt.Errorf("%w: series starts at zero", apperrors.ErrDivisionByZero)
	}

	out := make([]float64, len(series))
	for i, v := range series {
		out[i] = v / base
	}
	return out, nil
}

// NormalizeAnchored rebases values on the first non-zero entry (the anchor).
// Entries before the anchor are reported flat at 1.0. When every entry is zero the
// result is all zeros: nothing is divided and no error is returned.
//
//	NormalizeAnchored([]float64{0, 0, 50, 100}) // [1 1 1 2]
//	NormalizeAnchored([]float64{0, 0, 0})       // [0 0 0]
func NormalizeAnchored(values []float64) []float64 {
	out := make([]float64, len(values))

	anchor := -1
	for i, v := range values {
		if v != 0 {
			anchor = i
			break
		}
	}
	if anchor < 0 {
		return out
	}

	base := values[anchor]
	for i := range values {
		if i < anchor {
			out[i] = 1.0
			continue
		}
		out[i] = values[i] / base
	}
	return out
}

// normalizeOrAnchor tries the strict normalization first and falls back to the anchored
// variant when the series starts at zero.
func normalizeOrAnchor(series []float64) []float64 {
	out, err := Normalize(series)
	if err != nil {
		return NormalizeAnchored(series)
	}
	return out
}

// closeValues extracts the close prices of a series.
func closeValues(points []model.PricePoint) []float64 {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Close
	}
	return values
}
