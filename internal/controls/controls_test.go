package controls

import (
	"testing"

	"github.com/verte-zerg/tsdash/internal/model"
)

func newTestState() *State {
	return New(24, model.Controls{Freq: "M", Period: 12, Lags: 4, Bins: 10})
}

func TestSetFrequency(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
		want  string
	}{
		{name: "valid code", raw: "W", valid: true, want: "W"},
		{name: "trimmed", raw: "  D  ", valid: true, want: "D"},
		{name: "empty", raw: "", valid: false, want: "M"},
		{name: "leading zero", raw: "0M", valid: false, want: "M"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState()
			outcome := s.Set(Frequency, tt.raw)
			if outcome.Valid != tt.valid {
				t.Fatalf("Set(Frequency, %q).Valid = %v, want %v", tt.raw, outcome.Valid, tt.valid)
			}
			if got := s.Snapshot().Freq; got != tt.want {
				t.Fatalf("committed freq = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSetPeriodBounds(t *testing.T) {
	s := newTestState()

	// Upper bound is half the series length.
	if outcome := s.Set(Period, "12"); !outcome.Valid {
		t.Fatalf("Set(Period, 12) rejected: %s", outcome.Reason)
	}
	if got := s.Snapshot().Period; got != 12 {
		t.Fatalf("committed period = %d, want 12", got)
	}

	if outcome := s.Set(Period, "13"); outcome.Valid {
		t.Fatal("Set(Period, 13) accepted, want rejection above seriesLen/2")
	}
	if got := s.Snapshot().Period; got != 12 {
		t.Fatalf("rejected edit mutated committed period: got %d, want 12", got)
	}

	for _, raw := range []string{"0", "-3", "x", "2.5", ""} {
		if outcome := s.Set(Period, raw); outcome.Valid {
			t.Fatalf("Set(Period, %q) accepted, want rejection", raw)
		}
	}
}

func TestSetLagsBounds(t *testing.T) {
	s := newTestState()
	if outcome := s.Set(LagCount, "6"); !outcome.Valid {
		t.Fatalf("Set(LagCount, 6) rejected: %s", outcome.Reason)
	}
	if outcome := s.Set(LagCount, "40"); outcome.Valid {
		t.Fatal("Set(LagCount, 40) accepted, want rejection")
	}
	if got := s.Snapshot().Lags; got != 6 {
		t.Fatalf("committed lags = %d, want 6", got)
	}
}

func TestSetBins(t *testing.T) {
	s := newTestState()
	if outcome := s.Set(BinCount, "0"); outcome.Valid {
		t.Fatal("Set(BinCount, 0) accepted, want rejection")
	}
	if got := s.Snapshot().Bins; got != 10 {
		t.Fatalf("rejected edit mutated committed bins: got %g, want 10", got)
	}
	if outcome := s.Set(BinCount, "7.5"); !outcome.Valid {
		t.Fatalf("Set(BinCount, 7.5) rejected: %s", outcome.Reason)
	}
	if got := s.Snapshot().Bins; got != 7.5 {
		t.Fatalf("committed bins = %g, want 7.5", got)
	}
}

func TestDefaultBinsAdopted(t *testing.T) {
	s := New(24, model.Controls{Freq: "M", Period: 12, Lags: 4})
	if got := s.Snapshot().Bins; got != DefaultBins {
		t.Fatalf("default bins = %g, want %g", got, DefaultBins)
	}
}

func TestDefaultsNotValidated(t *testing.T) {
	// Externally supplied defaults may exceed the edit bound.
	s := New(12, model.Controls{Freq: "M", Period: 12, Lags: 20, Bins: 10})
	snap := s.Snapshot()
	if snap.Period != 12 || snap.Lags != 20 {
		t.Fatalf("defaults mutated: got %+v", snap)
	}
}

func TestRejectedInputDisplay(t *testing.T) {
	s := newTestState()
	s.Set(Period, "99")
	raw, ok := s.Rejected(Period)
	if !ok || raw != "99" {
		t.Fatalf("Rejected(Period) = %q, %v; want \"99\", true", raw, ok)
	}
	if _, ok := s.Rejected(LagCount); ok {
		t.Fatal("Rejected(LagCount) set without a rejection")
	}

	// A later valid edit clears the field's rejected input.
	s.Set(Period, "6")
	if _, ok := s.Rejected(Period); ok {
		t.Fatal("valid edit did not clear rejected input")
	}

	s.Set(BinCount, "zero")
	s.ResetInputDisplay()
	if _, ok := s.Rejected(BinCount); ok {
		t.Fatal("ResetInputDisplay did not clear rejected input")
	}
}

func TestSetSeriesLen(t *testing.T) {
	s := newTestState()
	s.SetSeriesLen(100)
	if outcome := s.Set(Period, "50"); !outcome.Valid {
		t.Fatalf("Set(Period, 50) after SetSeriesLen(100) rejected: %s", outcome.Reason)
	}
}
