// Package model defines shared data structures.
package model

import "time"

// Controls holds the committed analysis parameters for a run.
type Controls struct {
	Freq   string
	Period int
	Lags   int
	Bins   float64
}

// Variant identifies which series the line chart displays.
type Variant string

// Line chart variants.
const (
	VariantBase       Variant = "base"
	VariantTrend      Variant = "trend"
	VariantSeasonal   Variant = "seasonal"
	VariantResidual   Variant = "residual"
	VariantStationary Variant = "stationary"
)

// Variants lists the line chart variants in display order.
var Variants = []Variant{
	VariantBase,
	VariantTrend,
	VariantSeasonal,
	VariantResidual,
	VariantStationary,
}

// Category identifies one partition of the derived dataset.
type Category string

// Derived dataset categories. Each pipeline branch writes a disjoint subset.
const (
	CategoryBase               Category = "base"
	CategoryTrend              Category = "trend"
	CategorySeasonal           Category = "seasonal"
	CategoryResidual           Category = "residual"
	CategoryStationary         Category = "stationary"
	CategoryACF                Category = "acf"
	CategoryPACF               Category = "pacf"
	CategoryConfidenceInterval Category = "confidence_interval"
	CategoryLags               Category = "lags"
	CategoryTimeBase           Category = "time_base"
	CategoryTimeDecomposed     Category = "time_decomposed"
	CategoryTimeStationary     Category = "time_stationary"
)

// RunRecord captures a completed pipeline run for the history store.
type RunRecord struct {
	RunID     int64
	StartedAt time.Time
	EndedAt   time.Time
	SeriesLen int
	Freq      string
	Period    int
	Lags      int
	Bins      float64
	DiffCount int
	Message   string
}

// HistoryFilter selects runs to load from the history store.
type HistoryFilter struct {
	Freq  string
	Since *time.Time
	Last  int
}
