// Package controls holds and validates the user-tunable analysis parameters.
package controls

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/verte-zerg/tsdash/internal/model"
)

// Kind identifies one control parameter.
type Kind int

// Control parameter kinds.
const (
	Frequency Kind = iota
	Period
	LagCount
	BinCount
)

// DefaultBins is the committed bin count when no other default is supplied.
const DefaultBins = 20.0

// Outcome reports whether an edit was committed.
type Outcome struct {
	Valid  bool
	Reason string
}

// State holds the last validated value of every control parameter.
// An invalid edit never mutates the committed value; the rejected raw
// input is kept per field until ResetInputDisplay.
type State struct {
	seriesLen int
	committed model.Controls
	rejected  map[Kind]string
}

// New builds a control state from externally supplied defaults.
// Defaults are adopted as-is; only user edits are validated.
func New(seriesLen int, defaults model.Controls) *State {
	if defaults.Bins == 0 {
		defaults.Bins = DefaultBins
	}
	return &State{
		seriesLen: seriesLen,
		committed: defaults,
		rejected:  map[Kind]string{},
	}
}

// Set validates a raw edit for the given parameter. On success the parsed
// value is committed; on failure the prior committed value is kept.
func (s *State) Set(kind Kind, raw string) Outcome {
	raw = strings.TrimSpace(raw)
	switch kind {
	case Frequency:
		if raw == "" || raw[0] == '0' {
			return s.reject(kind, raw, "frequency must be non-empty and not start with 0")
		}
		s.committed.Freq = raw
	case Period:
		v, ok := s.parseBounded(raw)
		if !ok {
			return s.reject(kind, raw, fmt.Sprintf("period must be an integer in 1..%d", s.bound()))
		}
		s.committed.Period = v
	case LagCount:
		v, ok := s.parseBounded(raw)
		if !ok {
			return s.reject(kind, raw, fmt.Sprintf("lag count must be an integer in 1..%d", s.bound()))
		}
		s.committed.Lags = v
	case BinCount:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v == 0 {
			return s.reject(kind, raw, "bin count must be a non-zero number")
		}
		s.committed.Bins = v
	default:
		return Outcome{Valid: false, Reason: "unknown control parameter"}
	}
	delete(s.rejected, kind)
	return Outcome{Valid: true}
}

// ResetInputDisplay clears the transient per-field rejected inputs before a
// new Apply.
func (s *State) ResetInputDisplay() {
	s.rejected = map[Kind]string{}
}

// Rejected returns the last rejected raw input for a field, if any.
func (s *State) Rejected(kind Kind) (string, bool) {
	raw, ok := s.rejected[kind]
	return raw, ok
}

// Snapshot returns a copy of the committed parameters.
func (s *State) Snapshot() model.Controls {
	return s.committed
}

// SetSeriesLen updates the series length used for validation bounds.
func (s *State) SetSeriesLen(n int) {
	s.seriesLen = n
}

func (s *State) bound() int {
	return s.seriesLen / 2
}

func (s *State) parseBounded(raw string) (int, bool) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	if v <= 0 || v > s.bound() {
		return 0, false
	}
	return v, true
}

func (s *State) reject(kind Kind, raw, reason string) Outcome {
	s.rejected[kind] = raw
	return Outcome{Valid: false, Reason: reason}
}
