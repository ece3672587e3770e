package stats

import (
	"fmt"
	"io"

	"github.com/verte-zerg/tsdash/internal/series"
)

// Summary holds the numeric description of a value set.
type Summary struct {
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// Summarize computes the numeric summary of the values.
func Summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, fmt.Errorf("summary needs at least one value")
	}
	minVal, maxVal := series.MinMax(values)
	return Summary{
		Count:  len(values),
		Mean:   series.Mean(values),
		Std:    series.Std(values),
		Min:    minVal,
		Q1:     series.Quantile(values, 0.25),
		Median: series.Median(values),
		Q3:     series.Quantile(values, 0.75),
		Max:    maxVal,
	}, nil
}

// Rows returns the summary as label/value pairs in display order.
func (s Summary) Rows() [][]string {
	f := func(v float64) string { return fmt.Sprintf("%.4f", v) }
	return [][]string{
		{"count", fmt.Sprintf("%d", s.Count)},
		{"mean", f(s.Mean)},
		{"std", f(s.Std)},
		{"min", f(s.Min)},
		{"25%", f(s.Q1)},
		{"50%", f(s.Median)},
		{"75%", f(s.Q3)},
		{"max", f(s.Max)},
	}
}

// RenderSummary prints the summary as an aligned two-column table.
func RenderSummary(w io.Writer, title string, s Summary) error {
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	return FormatTable(w, []string{"statistic", "value"}, s.Rows())
}
