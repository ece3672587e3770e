package analysis

import (
	"math"
	"testing"
)

func seasonalSeries(n, period int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = 10 + 0.5*float64(i) + 3*math.Sin(2*math.Pi*float64(i)/float64(period))
	}
	return values
}

func TestDecomposeAdditive(t *testing.T) {
	const n, period = 48, 12
	values := seasonalSeries(n, period)

	dec, err := Decompose(values, period, ModelAdditive)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	if len(dec.Trend) != n || len(dec.Seasonal) != n || len(dec.Residual) != n {
		t.Fatalf("component lengths = %d/%d/%d, want %d each",
			len(dec.Trend), len(dec.Seasonal), len(dec.Residual), n)
	}

	// Additive identity: trend + seasonal + residual reproduces the input.
	for i := range values {
		sum := dec.Trend[i] + dec.Seasonal[i] + dec.Residual[i]
		if math.Abs(sum-values[i]) > 1e-9 {
			t.Fatalf("components at %d sum to %g, want %g", i, sum, values[i])
		}
	}

	// Seasonal component repeats with the period.
	for i := period; i < n; i++ {
		if math.Abs(dec.Seasonal[i]-dec.Seasonal[i-period]) > 1e-9 {
			t.Fatalf("seasonal not periodic at %d: %g vs %g", i, dec.Seasonal[i], dec.Seasonal[i-period])
		}
	}

	for i, v := range dec.Trend {
		if math.IsNaN(v) {
			t.Fatalf("trend carries NaN at %d", i)
		}
	}
}

func TestDecomposePeriodEqualsLength(t *testing.T) {
	values := seasonalSeries(12, 12)
	dec, err := Decompose(values, 12, ModelAdditive)
	if err != nil {
		t.Fatalf("Decompose with period == length: %v", err)
	}
	for i := range values {
		if math.IsNaN(dec.Trend[i]) || math.IsNaN(dec.Seasonal[i]) || math.IsNaN(dec.Residual[i]) {
			t.Fatalf("NaN component at %d", i)
		}
	}
}

func TestDecomposeMultiplicative(t *testing.T) {
	values := make([]float64, 36)
	for i := range values {
		values[i] = (10 + float64(i)) * (1 + 0.2*math.Sin(2*math.Pi*float64(i)/12))
	}
	dec, err := Decompose(values, 12, ModelMultiplicative)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	for i := range values {
		prod := dec.Trend[i] * dec.Seasonal[i] * dec.Residual[i]
		if math.Abs(prod-values[i]) > 1e-9 {
			t.Fatalf("components at %d multiply to %g, want %g", i, prod, values[i])
		}
	}
}

func TestDecomposeRejectsBadInput(t *testing.T) {
	values := seasonalSeries(24, 12)
	if _, err := Decompose(nil, 12, ModelAdditive); err == nil {
		t.Fatal("empty series accepted")
	}
	if _, err := Decompose(values, 0, ModelAdditive); err == nil {
		t.Fatal("zero period accepted")
	}
	if _, err := Decompose(values, 25, ModelAdditive); err == nil {
		t.Fatal("period beyond length accepted")
	}
	if _, err := Decompose(values, 12, "stl"); err == nil {
		t.Fatal("unknown model type accepted")
	}
}

// adfNoise is white noise; the unit-root null is clearly rejected.
var adfNoise = []float64{-0.2559, 0.5114, -0.2261, -0.3151, -0.93, -0.2133, 1.1119, 0.4241, 1.0369, 0.2489, 0.3948, 0.1853, -1.6661, 0.8553, 0.5064, 0.4988, -1.6914, -1.7439, -0.8896, -0.4682, 0.3054, -0.0459, 0.521, -0.6422, 0.3087, 0.3942, -0.6611, 1.7175, 0.5566, 1.197, -0.6203, -0.7395, -0.344, -0.1064, 0.6321, 0.2484, -0.4474, -0.9569, -0.5206, 1.2209, -0.8079, 0.2448, 0.4265, -1.4897, 0.0485, 1.3062, -2.0144, -0.3216, -0.1061, -0.8173, 0.4974, -0.0623, -1.4647, 0.8278, 0.6693, 0.9458, 1.4406, 0.3622, 0.1193, -1.2992}

// adfWalk is the cumulative sum of adfNoise; a random walk is not stationary.
var adfWalk = []float64{9.7441, 10.2555, 10.0294, 9.7143, 8.7843, 8.571, 9.6829, 10.107, 11.1439, 11.3928, 11.7876, 11.9729, 10.3068, 11.1621, 11.6685, 12.1673, 10.4759, 8.732, 7.8424, 7.3742, 7.6796, 7.6337, 8.1547, 7.5125, 7.8212, 8.2154, 7.5543, 9.2718, 9.8284, 11.0254, 10.4051, 9.6656, 9.3216, 9.2152, 9.8473, 10.0957, 9.6483, 8.6914, 8.1708, 9.3917, 8.5838, 8.8286, 9.2551, 7.7654, 7.8139, 9.1201, 7.1057, 6.7841, 6.678, 5.8607, 6.3581, 6.2958, 4.8311, 5.6589, 6.3282, 7.274, 8.7146, 9.0768, 9.1961, 7.8969}

func TestIsStationary(t *testing.T) {
	stationary, err := IsStationary(adfNoise)
	if err != nil {
		t.Fatalf("IsStationary(noise): %v", err)
	}
	if !stationary {
		t.Fatal("white noise reported non-stationary")
	}

	stationary, err = IsStationary(adfWalk)
	if err != nil {
		t.Fatalf("IsStationary(walk): %v", err)
	}
	if stationary {
		t.Fatal("random walk reported stationary")
	}
}

func TestIsStationaryTooShort(t *testing.T) {
	if _, err := IsStationary(adfNoise[:8]); err == nil {
		t.Fatal("short series accepted")
	}
}

func TestCorrelate(t *testing.T) {
	cor, err := Correlate(adfNoise, 4)
	if err != nil {
		t.Fatalf("Correlate: %v", err)
	}
	if len(cor.Lags) != 5 || len(cor.ACF) != 5 || len(cor.PACF) != 5 || len(cor.Confidence) != 5 {
		t.Fatalf("lengths = %d/%d/%d/%d, want 5 each",
			len(cor.Lags), len(cor.ACF), len(cor.PACF), len(cor.Confidence))
	}
	if cor.ACF[0] != 1 {
		t.Fatalf("ACF[0] = %g, want 1", cor.ACF[0])
	}
	if cor.PACF[0] != 1 {
		t.Fatalf("PACF[0] = %g, want 1", cor.PACF[0])
	}
	if math.Abs(cor.PACF[1]-cor.ACF[1]) > 1e-12 {
		t.Fatalf("PACF[1] = %g, want ACF[1] = %g", cor.PACF[1], cor.ACF[1])
	}
	for i, lag := range cor.Lags {
		if lag != i {
			t.Fatalf("Lags[%d] = %d, want %d", i, lag, i)
		}
	}
	want := 1.96 / math.Sqrt(float64(len(adfNoise)))
	for i, c := range cor.Confidence {
		if math.Abs(c-want) > 1e-12 {
			t.Fatalf("Confidence[%d] = %g, want %g", i, c, want)
		}
	}
}

func TestCorrelateDetectsSeasonality(t *testing.T) {
	values := make([]float64, 60)
	for i := range values {
		values[i] = math.Sin(2 * math.Pi * float64(i) / 12)
	}
	cor, err := Correlate(values, 12)
	if err != nil {
		t.Fatalf("Correlate: %v", err)
	}
	if cor.ACF[12] < 0.5 {
		t.Fatalf("ACF at the seasonal lag = %g, want strong positive", cor.ACF[12])
	}
	if cor.ACF[6] > -0.5 {
		t.Fatalf("ACF at the half period = %g, want strong negative", cor.ACF[6])
	}
}

func TestCorrelateRejectsBadInput(t *testing.T) {
	if _, err := Correlate(nil, 2); err == nil {
		t.Fatal("empty series accepted")
	}
	if _, err := Correlate([]float64{1, 2, 3}, -1); err == nil {
		t.Fatal("negative lag accepted")
	}
	if _, err := Correlate([]float64{1, 2, 3}, 3); err == nil {
		t.Fatal("lag >= length accepted")
	}
	if _, err := Correlate([]float64{5, 5, 5, 5}, 2); err == nil {
		t.Fatal("zero-variance series accepted")
	}
}

func TestInvertMatrix(t *testing.T) {
	m := [][]float64{{4, 7}, {2, 6}}
	inv, err := invertMatrix(m)
	if err != nil {
		t.Fatalf("invertMatrix: %v", err)
	}
	want := [][]float64{{0.6, -0.7}, {-0.2, 0.4}}
	for i := range want {
		for j := range want[i] {
			if math.Abs(inv[i][j]-want[i][j]) > 1e-9 {
				t.Fatalf("inv[%d][%d] = %g, want %g", i, j, inv[i][j], want[i][j])
			}
		}
	}

	if _, err := invertMatrix([][]float64{{1, 2}, {2, 4}}); err == nil {
		t.Fatal("singular matrix accepted")
	}
}
