// Package series provides the raw time series type and summary statistics.
package series

import (
	"math"
	"sort"
)

// Series pairs ordered values with ordered timestamp labels of equal length.
type Series struct {
	Times  []string
	Values []float64
}

// New builds a series from values and timestamp labels. Lengths must match;
// mismatched input is truncated to the shorter side.
func New(times []string, values []float64) Series {
	n := len(values)
	if len(times) < n {
		n = len(times)
	}
	return Series{
		Times:  append([]string(nil), times[:n]...),
		Values: append([]float64(nil), values[:n]...),
	}
}

// Len returns the number of observations.
func (s Series) Len() int {
	return len(s.Values)
}

// Copy returns a deep copy of the series.
func (s Series) Copy() Series {
	return Series{
		Times:  append([]string(nil), s.Times...),
		Values: append([]float64(nil), s.Values...),
	}
}

// Diff returns the first difference of the series, one observation shorter.
func (s Series) Diff() Series {
	if len(s.Values) < 2 {
		return Series{}
	}
	values := make([]float64, len(s.Values)-1)
	for i := 1; i < len(s.Values); i++ {
		values[i-1] = s.Values[i] - s.Values[i-1]
	}
	times := append([]string(nil), s.Times[1:]...)
	return Series{Times: times, Values: values}
}

// Mean returns the arithmetic mean of the values.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Std returns the sample standard deviation of the values.
func Std(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}

// MinMax returns the smallest and largest value.
func MinMax(values []float64) (minVal, maxVal float64) {
	if len(values) == 0 {
		return 0, 0
	}
	minVal = values[0]
	maxVal = values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}

// Quantile returns the q-quantile (0..1) using linear interpolation.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	idx := int(math.Floor(pos))
	if idx >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(idx)
	return sorted[idx]*(1-frac) + sorted[idx+1]*frac
}

// Median returns the middle value of the series.
func Median(values []float64) float64 {
	return Quantile(values, 0.5)
}
