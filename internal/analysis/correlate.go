package analysis

import (
	"fmt"
	"math"
)

// Correlation holds ACF/PACF values for lags 0..maxLag with the matching
// lag indices and a constant 95% confidence band, all of equal length.
type Correlation struct {
	Lags       []int
	ACF        []float64
	PACF       []float64
	Confidence []float64
}

// Correlate computes the autocorrelation and partial autocorrelation
// functions for lags 0..maxLag.
func Correlate(values []float64, maxLag int) (Correlation, error) {
	n := len(values)
	if n == 0 {
		return Correlation{}, fmt.Errorf("series is empty")
	}
	if maxLag < 0 {
		return Correlation{}, fmt.Errorf("lag count must be non-negative, got %d", maxLag)
	}
	if maxLag >= n {
		return Correlation{}, fmt.Errorf("lag count %d must be smaller than series length %d", maxLag, n)
	}

	acf, err := acfValues(values, maxLag)
	if err != nil {
		return Correlation{}, err
	}
	pacf := pacfValues(acf)

	lags := make([]int, maxLag+1)
	confidence := make([]float64, maxLag+1)
	bound := 1.96 / math.Sqrt(float64(n))
	for i := range lags {
		lags[i] = i
		confidence[i] = bound
	}

	return Correlation{Lags: lags, ACF: acf, PACF: pacf, Confidence: confidence}, nil
}

func acfValues(values []float64, maxLag int) ([]float64, error) {
	n := len(values)
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	if variance == 0 {
		return nil, fmt.Errorf("series has zero variance")
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (values[i] - mean) * (values[i-k] - mean)
		}
		acf[k] = sum / variance
	}
	return acf, nil
}

// pacfValues derives the PACF from the ACF with the Durbin-Levinson
// recursion. PACF at lag 0 is 1 by convention.
func pacfValues(acf []float64) []float64 {
	maxLag := len(acf) - 1
	pacf := make([]float64, maxLag+1)
	pacf[0] = 1
	if maxLag < 1 {
		return pacf
	}

	phi := make([][]float64, maxLag+1)
	for i := range phi {
		phi[i] = make([]float64, maxLag+1)
	}
	phi[1][1] = acf[1]
	pacf[1] = acf[1]

	for k := 2; k <= maxLag; k++ {
		num := acf[k]
		den := 1.0
		for j := 1; j < k; j++ {
			num -= phi[k-1][j] * acf[k-j]
			den -= phi[k-1][j] * acf[j]
		}
		if den == 0 {
			pacf[k] = 0
			continue
		}
		phi[k][k] = num / den
		pacf[k] = phi[k][k]
		for j := 1; j < k; j++ {
			phi[k][j] = phi[k-1][j] - phi[k][k]*phi[k-1][k-j]
		}
	}
	return pacf
}
