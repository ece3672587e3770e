// Package analysis implements the statistical routines behind the
// reference analysis service: seasonal decomposition, stationarity
// testing, differencing, and autocorrelation.
package analysis

import "fmt"

// Model types for seasonal decomposition.
const (
	ModelAdditive       = "additive"
	ModelMultiplicative = "multiplicative"
)

// Decomposition splits a series into trend, seasonal, and residual
// components of the input's length.
type Decomposition struct {
	Trend    []float64
	Seasonal []float64
	Residual []float64
}

// Decompose performs classical seasonal decomposition. The trend is a
// centered moving average whose window shrinks at the edges, so every
// output has the full input length and carries no NaN values.
func Decompose(values []float64, period int, modelType string) (Decomposition, error) {
	n := len(values)
	if n == 0 {
		return Decomposition{}, fmt.Errorf("series is empty")
	}
	if period <= 0 {
		return Decomposition{}, fmt.Errorf("period must be positive, got %d", period)
	}
	if period > n {
		return Decomposition{}, fmt.Errorf("period %d exceeds series length %d", period, n)
	}
	if modelType != ModelAdditive && modelType != ModelMultiplicative {
		return Decomposition{}, fmt.Errorf("unknown model type %q", modelType)
	}

	trend := centeredTrend(values, period)

	detrended := make([]float64, n)
	for i := 0; i < n; i++ {
		if modelType == ModelMultiplicative {
			if trend[i] == 0 {
				detrended[i] = 0
			} else {
				detrended[i] = values[i] / trend[i]
			}
		} else {
			detrended[i] = values[i] - trend[i]
		}
	}

	pattern := make([]float64, period)
	counts := make([]int, period)
	for i := 0; i < n; i++ {
		pattern[i%period] += detrended[i]
		counts[i%period]++
	}
	for i := 0; i < period; i++ {
		if counts[i] > 0 {
			pattern[i] /= float64(counts[i])
		}
	}

	// Center the pattern so the seasonal component sums (additive) or
	// averages (multiplicative) to a neutral level.
	mean := 0.0
	for _, v := range pattern {
		mean += v
	}
	mean /= float64(period)
	for i := range pattern {
		if modelType == ModelMultiplicative {
			if mean != 0 {
				pattern[i] /= mean
			}
		} else {
			pattern[i] -= mean
		}
	}

	seasonal := make([]float64, n)
	residual := make([]float64, n)
	for i := 0; i < n; i++ {
		seasonal[i] = pattern[i%period]
		if modelType == ModelMultiplicative {
			den := trend[i] * seasonal[i]
			if den == 0 {
				residual[i] = 0
			} else {
				residual[i] = values[i] / den
			}
		} else {
			residual[i] = values[i] - trend[i] - seasonal[i]
		}
	}

	return Decomposition{Trend: trend, Seasonal: seasonal, Residual: residual}, nil
}

func centeredTrend(values []float64, period int) []float64 {
	n := len(values)
	trend := make([]float64, n)
	half := period / 2
	for i := 0; i < n; i++ {
		lo := i - half
		hi := i + half
		if lo < 0 {
			lo = 0
		}
		if hi > n-1 {
			hi = n - 1
		}
		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += values[j]
		}
		trend[i] = sum / float64(hi-lo+1)
	}
	return trend
}
