package dataset

import (
	"reflect"
	"testing"
)

func TestSetBaseCopies(t *testing.T) {
	d := New()
	values := []float64{1, 2, 3}
	times := []string{"a", "b", "c"}
	d.SetBase(values, times)

	values[0] = 99
	times[0] = "mutated"

	gotValues, gotTimes := d.Base()
	if !reflect.DeepEqual(gotValues, []float64{1, 2, 3}) {
		t.Fatalf("Base values = %v, want [1 2 3]", gotValues)
	}
	if !reflect.DeepEqual(gotTimes, []string{"a", "b", "c"}) {
		t.Fatalf("Base times = %v, want [a b c]", gotTimes)
	}

	// Mutating the returned slice must not leak back in.
	gotValues[1] = 42
	again, _ := d.Base()
	if again[1] != 2 {
		t.Fatalf("Base returned shared slice: got %v", again)
	}
}

func TestCategoriesReplacedWhole(t *testing.T) {
	d := New()
	d.SetDecomposition(Decomposition{
		Trend:    []float64{1, 2, 3},
		Seasonal: []float64{4, 5, 6},
		Residual: []float64{7, 8, 9},
		Times:    []string{"t1", "t2", "t3"},
	})
	d.SetDecomposition(Decomposition{
		Trend:    []float64{10},
		Seasonal: []float64{20},
		Residual: []float64{30},
		Times:    []string{"t9"},
	})

	dec := d.Decomposition()
	if len(dec.Trend) != 1 || dec.Trend[0] != 10 {
		t.Fatalf("trend not replaced whole: %v", dec.Trend)
	}
	if len(dec.Times) != 1 || dec.Times[0] != "t9" {
		t.Fatalf("times not replaced whole: %v", dec.Times)
	}
}

func TestPartitionsIndependent(t *testing.T) {
	d := New()
	d.SetBase([]float64{1, 2}, []string{"a", "b"})
	d.SetStationary([]float64{0.5}, []string{"a"})
	d.SetCorrelation(Correlation{
		ACF:        []float64{1, 0.4},
		PACF:       []float64{1, 0.4},
		Confidence: []float64{0.9, 0.9},
		Lags:       []int{0, 1},
	})

	// Rewriting one partition leaves the others untouched.
	d.SetStationary([]float64{0.1, 0.2}, []string{"a", "b"})

	baseValues, _ := d.Base()
	if !reflect.DeepEqual(baseValues, []float64{1, 2}) {
		t.Fatalf("base changed by stationary write: %v", baseValues)
	}
	cor := d.Correlation()
	if !reflect.DeepEqual(cor.Lags, []int{0, 1}) {
		t.Fatalf("correlation changed by stationary write: %v", cor.Lags)
	}
	stationary, _ := d.Stationary()
	if !reflect.DeepEqual(stationary, []float64{0.1, 0.2}) {
		t.Fatalf("stationary = %v, want [0.1 0.2]", stationary)
	}
}

func TestEmptyDataset(t *testing.T) {
	d := New()
	if values, times := d.Base(); values != nil || times != nil {
		t.Fatalf("empty Base() = %v, %v; want nil, nil", values, times)
	}
	if dec := d.Decomposition(); dec.Trend != nil {
		t.Fatalf("empty Decomposition() trend = %v, want nil", dec.Trend)
	}
}
