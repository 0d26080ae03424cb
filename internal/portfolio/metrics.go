package portfolio

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// TradingDaysPerYear annualizes daily statistics.
const TradingDaysPerYear = 252

// SeriesMetrics summarizes one normalized equity curve.
type SeriesMetrics struct {
	TotalReturn          float64 `json:"totalReturn"`
	AnnualizedVolatility float64 `json:"annualizedVolatility"`
	MaxDrawdown          float64 `json:"maxDrawdown"`
}

// Metrics compares the portfolio curve of a Performance with its benchmark.
// Benchmark, Correlation and Beta are nil when no benchmark is available or the
// curves are too short to compare.
type Metrics struct {
	Portfolio   SeriesMetrics  `json:"portfolio"`
	Benchmark   *SeriesMetrics `json:"benchmark,omitempty"`
	Correlation *float64       `json:"correlation,omitempty"`
	Beta        *float64       `json:"beta,omitempty"`
}

// ComputeMetrics derives summary statistics from a Performance.
func ComputeMetrics(perf Performance) Metrics {
	m := Metrics{Portfolio: seriesMetrics(perf.Portfolio)}

	if len(perf.Benchmark) == 0 || len(perf.Benchmark) != len(perf.Portfolio) {
		return m
	}
	bench := seriesMetrics(perf.Benchmark)
	m.Benchmark = &bench

	pr := dailyReturns(perf.Portfolio)
	br := dailyReturns(perf.Benchmark)
	if len(pr) < 2 {
		return m
	}

	if corr := stat.Correlation(pr, br, nil); !math.IsNaN(corr) {
		m.Correlation = &corr
	}
	if v := stat.Variance(br, nil); v > 0 {
		beta := stat.Covariance(pr, br, nil) / v
		m.Beta = &beta
	}
	return m
}

func seriesMetrics(curve []float64) SeriesMetrics {
	var sm SeriesMetrics
	if len(curve) == 0 {
		return sm
	}

	first, last := curve[0], curve[len(curve)-1]
	if first != 0 {
		sm.TotalReturn = last/first - 1
	}

	if r := dailyReturns(curve); len(r) > 1 {
		sm.AnnualizedVolatility = stat.StdDev(r, nil) * math.Sqrt(TradingDaysPerYear)
	}

	sm.MaxDrawdown = maxDrawdown(curve)
	return sm
}

// dailyReturns converts a curve into simple day-over-day returns. Steps from a zero value
// yield a zero return.
func dailyReturns(curve []float64) []float64 {
	if len(curve) < 2 {
		return nil
	}
	returns := make([]float64, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		if curve[i-1] != 0 {
			returns[i-1] = curve[i]/curve[i-1] - 1
		}
	}
	return returns
}

// maxDrawdown is the largest peak-to-trough decline, as a non-positive fraction.
func maxDrawdown(curve []float64) float64 {
	peak, worst := 0.0, 0.0
	for _, v := range curve {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			if dd := v/peak - 1; dd < worst {
				worst = dd
			}
		}
	}
	return worst
}
