package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
)

const histogramBarWidth = 40

// HistogramBin is one bucket of a value histogram.
type HistogramBin struct {
	Low   float64
	High  float64
	Count int
}

// Histogram buckets values into equal-width bins over [min, max].
// A non-positive or fractional bin count is rounded and clamped to 1.
func Histogram(values []float64, bins float64) []HistogramBin {
	if len(values) == 0 {
		return nil
	}
	n := int(math.Round(bins))
	if n < 1 {
		n = 1
	}
	minVal, maxVal := sliceMinMax(values)
	if math.Abs(maxVal-minVal) < 1e-12 {
		return []HistogramBin{{Low: minVal, High: maxVal, Count: len(values)}}
	}
	width := (maxVal - minVal) / float64(n)
	out := make([]HistogramBin, n)
	for i := range out {
		out[i].Low = minVal + float64(i)*width
		out[i].High = minVal + float64(i+1)*width
	}
	for _, v := range values {
		idx := int((v - minVal) / width)
		if idx >= n {
			idx = n - 1
		}
		if idx < 0 {
			idx = 0
		}
		out[idx].Count++
	}
	return out
}

// RenderHistogram prints the histogram as horizontal bars scaled to the
// largest bucket.
func RenderHistogram(w io.Writer, title string, binsData []HistogramBin) error {
	if len(binsData) == 0 {
		return nil
	}
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	maxCount := 0
	for _, b := range binsData {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	for _, b := range binsData {
		barLen := 0
		if maxCount > 0 {
			barLen = b.Count * histogramBarWidth / maxCount
		}
		if b.Count > 0 && barLen == 0 {
			barLen = 1
		}
		bar := strings.Repeat("█", barLen)
		if _, err := fmt.Fprintf(w, "%10s … %-10s %s %d\n",
			compactFloat(b.Low), compactFloat(b.High), bar, b.Count); err != nil {
			return err
		}
	}
	return nil
}
