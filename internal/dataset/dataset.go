// Package dataset stores pipeline outputs partitioned by category.
package dataset

import "sync"

// Decomposition holds the decompose branch categories.
type Decomposition struct {
	Trend    []float64
	Seasonal []float64
	Residual []float64
	Times    []string
}

// Correlation holds the correlate branch categories.
type Correlation struct {
	ACF        []float64
	PACF       []float64
	Confidence []float64
	Lags       []int
}

// Dataset is the shared derived dataset. Each pipeline branch writes a
// disjoint subset of categories, and a category is always replaced whole,
// never merged. A branch that fails leaves its categories untouched.
type Dataset struct {
	mu sync.RWMutex

	baseValues []float64
	baseTimes  []string

	trend           []float64
	seasonal        []float64
	residual        []float64
	decomposedTimes []string

	stationaryValues []float64
	stationaryTimes  []string

	acf        []float64
	pacf       []float64
	confidence []float64
	lags       []int
}

// New returns an empty dataset.
func New() *Dataset {
	return &Dataset{}
}

// SetBase replaces the base and time_base categories.
func (d *Dataset) SetBase(values []float64, times []string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.baseValues = copyFloats(values)
	d.baseTimes = copyStrings(times)
}

// SetDecomposition replaces trend, seasonal, residual, and time_decomposed.
func (d *Dataset) SetDecomposition(dec Decomposition) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.trend = copyFloats(dec.Trend)
	d.seasonal = copyFloats(dec.Seasonal)
	d.residual = copyFloats(dec.Residual)
	d.decomposedTimes = copyStrings(dec.Times)
}

// SetStationary replaces the stationary and time_stationary categories.
func (d *Dataset) SetStationary(values []float64, times []string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stationaryValues = copyFloats(values)
	d.stationaryTimes = copyStrings(times)
}

// SetCorrelation replaces acf, pacf, confidence_interval, and lags.
func (d *Dataset) SetCorrelation(cor Correlation) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.acf = copyFloats(cor.ACF)
	d.pacf = copyFloats(cor.PACF)
	d.confidence = copyFloats(cor.Confidence)
	d.lags = copyInts(cor.Lags)
}

// Base returns the base values and their timestamps.
func (d *Dataset) Base() (values []float64, times []string) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return copyFloats(d.baseValues), copyStrings(d.baseTimes)
}

// Decomposition returns the decompose branch categories.
func (d *Dataset) Decomposition() Decomposition {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return Decomposition{
		Trend:    copyFloats(d.trend),
		Seasonal: copyFloats(d.seasonal),
		Residual: copyFloats(d.residual),
		Times:    copyStrings(d.decomposedTimes),
	}
}

// Stationary returns the stationary values and their timestamps.
func (d *Dataset) Stationary() (values []float64, times []string) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return copyFloats(d.stationaryValues), copyStrings(d.stationaryTimes)
}

// Correlation returns the correlate branch categories.
func (d *Dataset) Correlation() Correlation {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return Correlation{
		ACF:        copyFloats(d.acf),
		PACF:       copyFloats(d.pacf),
		Confidence: copyFloats(d.confidence),
		Lags:       copyInts(d.lags),
	}
}

func copyFloats(in []float64) []float64 {
	if in == nil {
		return nil
	}
	return append([]float64(nil), in...)
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func copyInts(in []int) []int {
	if in == nil {
		return nil
	}
	return append([]int(nil), in...)
}
