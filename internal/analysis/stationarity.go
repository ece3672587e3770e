package analysis

import (
	"fmt"
	"math"
)

const minADFObservations = 8

// IsStationary runs an Augmented Dickey-Fuller test (constant, no trend)
// and reports whether the unit-root null is rejected at the 5% level.
func IsStationary(values []float64) (bool, error) {
	n := len(values)
	if n < minADFObservations+2 {
		return false, fmt.Errorf("need at least %d observations, got %d", minADFObservations+2, n)
	}

	maxLag := int(math.Floor(math.Pow(float64(n-1), 1.0/3.0)))
	for maxLag >= 0 {
		if n-maxLag-1 >= minADFObservations {
			break
		}
		maxLag--
	}
	if maxLag < 0 {
		return false, fmt.Errorf("series too short for the ADF regression")
	}

	diff := make([]float64, n-1)
	for i := 1; i < n; i++ {
		diff[i-1] = values[i] - values[i-1]
	}

	// Regression: diff_t = alpha + beta*y_{t-1} + sum(gamma_i * diff_{t-i}).
	// beta's t-statistic is the ADF test statistic.
	nObs := n - maxLag - 1
	y := make([]float64, nObs)
	x := make([][]float64, nObs)
	for i := 0; i < nObs; i++ {
		t := i + maxLag
		y[i] = diff[t]
		row := make([]float64, 2+maxLag)
		row[0] = 1
		row[1] = values[t]
		for j := 1; j <= maxLag; j++ {
			row[1+j] = diff[t-j]
		}
		x[i] = row
	}

	coeffs, stdErrs, err := olsRegression(x, y)
	if err != nil {
		return false, fmt.Errorf("ADF regression failed: %w", err)
	}
	if stdErrs[1] == 0 {
		return false, fmt.Errorf("ADF regression is degenerate")
	}

	tStat := coeffs[1] / stdErrs[1]
	return adfPValue(tStat) < 0.05, nil
}

// adfPValue approximates the MacKinnon p-value for the constant-only case.
func adfPValue(stat float64) float64 {
	switch {
	case stat < -3.96:
		return 0.001
	case stat < -3.43:
		return 0.01
	case stat < -2.86:
		return 0.05
	case stat < -2.57:
		return 0.10
	case stat < -1.94:
		return 0.25
	case stat < -1.62:
		return 0.50
	default:
		return math.Min(0.5+(stat+1.62)*0.25, 0.99)
	}
}

// olsRegression solves ordinary least squares and returns the coefficients
// with their standard errors.
func olsRegression(x [][]float64, y []float64) (coeffs, stdErrs []float64, err error) {
	n := len(y)
	if n == 0 || len(x) != n {
		return nil, nil, fmt.Errorf("regression inputs are empty or mismatched")
	}
	k := len(x[0])
	if n <= k {
		return nil, nil, fmt.Errorf("need more observations (%d) than regressors (%d)", n, k)
	}

	xtx := make([][]float64, k)
	for i := range xtx {
		xtx[i] = make([]float64, k)
	}
	xty := make([]float64, k)
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			xty[j] += x[i][j] * y[i]
			for l := 0; l < k; l++ {
				xtx[j][l] += x[i][j] * x[i][l]
			}
		}
	}

	inv, err := invertMatrix(xtx)
	if err != nil {
		return nil, nil, err
	}

	coeffs = make([]float64, k)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			coeffs[i] += inv[i][j] * xty[j]
		}
	}

	sse := 0.0
	for i := 0; i < n; i++ {
		pred := 0.0
		for j := 0; j < k; j++ {
			pred += coeffs[j] * x[i][j]
		}
		r := y[i] - pred
		sse += r * r
	}
	s2 := sse / float64(n-k)

	stdErrs = make([]float64, k)
	for i := 0; i < k; i++ {
		stdErrs[i] = math.Sqrt(s2 * inv[i][i])
	}
	return coeffs, stdErrs, nil
}

// invertMatrix inverts a square matrix by Gauss-Jordan elimination.
func invertMatrix(m [][]float64) ([][]float64, error) {
	n := len(m)
	if n == 0 {
		return nil, fmt.Errorf("matrix is empty")
	}

	aug := make([][]float64, n)
	for i := 0; i < n; i++ {
		aug[i] = make([]float64, 2*n)
		copy(aug[i][:n], m[i])
		aug[i][n+i] = 1
	}

	for i := 0; i < n; i++ {
		maxRow := i
		for k := i + 1; k < n; k++ {
			if math.Abs(aug[k][i]) > math.Abs(aug[maxRow][i]) {
				maxRow = k
			}
		}
		aug[i], aug[maxRow] = aug[maxRow], aug[i]
		if math.Abs(aug[i][i]) < 1e-10 {
			return nil, fmt.Errorf("matrix is singular")
		}
		pivot := aug[i][i]
		for j := 0; j < 2*n; j++ {
			aug[i][j] /= pivot
		}
		for k := 0; k < n; k++ {
			if k == i {
				continue
			}
			factor := aug[k][i]
			for j := 0; j < 2*n; j++ {
				aug[k][j] -= factor * aug[i][j]
			}
		}
	}

	inv := make([][]float64, n)
	for i := 0; i < n; i++ {
		inv[i] = make([]float64, n)
		copy(inv[i], aug[i][n:])
	}
	return inv, nil
}
