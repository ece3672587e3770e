package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/tsdash/internal/series"
)

const boxPlotWidth = 50

// BoxSummary holds the five-number summary of a value set.
type BoxSummary struct {
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// BoxPlot computes the five-number summary of the values.
func BoxPlot(values []float64) (BoxSummary, error) {
	if len(values) == 0 {
		return BoxSummary{}, fmt.Errorf("box plot needs at least one value")
	}
	minVal, maxVal := series.MinMax(values)
	return BoxSummary{
		Min:    minVal,
		Q1:     series.Quantile(values, 0.25),
		Median: series.Median(values),
		Q3:     series.Quantile(values, 0.75),
		Max:    maxVal,
	}, nil
}

// RenderBoxPlot draws the summary as a one-line whisker plot with the
// five numbers printed underneath.
func RenderBoxPlot(w io.Writer, title string, b BoxSummary) error {
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	span := b.Max - b.Min
	col := func(v float64) int {
		if span <= 0 {
			return 0
		}
		c := int((v - b.Min) / span * float64(boxPlotWidth-1))
		if c < 0 {
			c = 0
		}
		if c >= boxPlotWidth {
			c = boxPlotWidth - 1
		}
		return c
	}
	row := []rune(strings.Repeat(" ", boxPlotWidth))
	for i := col(b.Min); i <= col(b.Max); i++ {
		row[i] = '─'
	}
	for i := col(b.Q1); i <= col(b.Q3); i++ {
		row[i] = '═'
	}
	row[col(b.Min)] = '├'
	row[col(b.Max)] = '┤'
	row[col(b.Median)] = '█'
	if _, err := fmt.Fprintln(w, string(row)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "min=%s q1=%s median=%s q3=%s max=%s\n",
		compactFloat(b.Min), compactFloat(b.Q1), compactFloat(b.Median),
		compactFloat(b.Q3), compactFloat(b.Max))
	return err
}
