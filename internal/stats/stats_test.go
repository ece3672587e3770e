package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestHistogramCounts(t *testing.T) {
	values := []float64{0, 0.1, 0.2, 0.5, 0.6, 1.0}
	bins := Histogram(values, 2)
	if len(bins) != 2 {
		t.Fatalf("bin count = %d, want 2", len(bins))
	}
	if bins[0].Count != 3 || bins[1].Count != 3 {
		t.Fatalf("counts = %d/%d, want 3/3", bins[0].Count, bins[1].Count)
	}
	if bins[0].Low != 0 || bins[1].High != 1 {
		t.Fatalf("edges = %g..%g, want 0..1", bins[0].Low, bins[1].High)
	}

	total := 0
	for _, b := range Histogram(values, 4) {
		total += b.Count
	}
	if total != len(values) {
		t.Fatalf("total count = %d, want %d", total, len(values))
	}
}

func TestHistogramRoundsAndClamps(t *testing.T) {
	values := []float64{1, 2, 3}
	if got := len(Histogram(values, 2.6)); got != 3 {
		t.Fatalf("bins for 2.6 = %d, want 3", got)
	}
	if got := len(Histogram(values, -5)); got != 1 {
		t.Fatalf("bins for -5 = %d, want 1", got)
	}
	if got := Histogram(nil, 4); got != nil {
		t.Fatalf("Histogram(nil) = %v, want nil", got)
	}

	constant := Histogram([]float64{7, 7, 7}, 4)
	if len(constant) != 1 || constant[0].Count != 3 {
		t.Fatalf("constant series bins = %+v, want one bin with all values", constant)
	}
}

func TestSummarize(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	s, err := Summarize(values)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.Count != 8 || s.Mean != 5 || s.Min != 2 || s.Max != 9 {
		t.Fatalf("summary = %+v", s)
	}
	if s.Median != 4.5 {
		t.Fatalf("median = %g, want 4.5", s.Median)
	}
	if rows := s.Rows(); len(rows) != 8 || rows[0][0] != "count" || rows[0][1] != "8" {
		t.Fatalf("rows = %v", rows)
	}

	if _, err := Summarize(nil); err == nil {
		t.Fatal("empty summary accepted")
	}
}

func TestBoxPlot(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	b, err := BoxPlot(values)
	if err != nil {
		t.Fatalf("BoxPlot: %v", err)
	}
	if b.Min != 1 || b.Q1 != 2 || b.Median != 3 || b.Q3 != 4 || b.Max != 5 {
		t.Fatalf("box summary = %+v", b)
	}

	var buf bytes.Buffer
	if err := RenderBoxPlot(&buf, "Box plot", b); err != nil {
		t.Fatalf("RenderBoxPlot: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Box plot") || !strings.Contains(out, "median=3") {
		t.Fatalf("output = %q", out)
	}
}

func TestPlotSeries(t *testing.T) {
	values := make([]float64, 30)
	for i := range values {
		values[i] = math.Sin(float64(i) / 5)
	}
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Series: base", []Series{{Name: "base", Values: values}}, 40, 8, false)
	if err != nil {
		t.Fatalf("PlotSeries: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Series: base") {
		t.Fatalf("title missing: %q", out)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// Title, 8 plot rows, legend.
	if len(lines) != 10 {
		t.Fatalf("line count = %d, want 10", len(lines))
	}
	if !strings.Contains(lines[len(lines)-1], "base (solid)") {
		t.Fatalf("legend = %q", lines[len(lines)-1])
	}

	// Single series labels the axis with real values.
	if !strings.Contains(lines[1], "1.00") {
		t.Fatalf("top axis label missing from %q", lines[1])
	}
}

func TestPlotSeriesEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "x", nil, 40, 8, false); err != nil {
		t.Fatalf("PlotSeries(nil): %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("empty plot wrote %q", buf.String())
	}
}

func TestResample(t *testing.T) {
	up := resample([]float64{0, 10}, 5)
	if len(up) != 5 || up[0] != 0 || up[4] != 10 || up[2] != 5 {
		t.Fatalf("upsample = %v", up)
	}
	down := resample([]float64{1, 1, 3, 3}, 2)
	if len(down) != 2 || down[0] != 1 || down[1] != 3 {
		t.Fatalf("downsample = %v", down)
	}
	if same := resample([]float64{1, 2}, 2); len(same) != 2 || same[1] != 2 {
		t.Fatalf("identity resample = %v", same)
	}
}

func TestRenderCorrelogram(t *testing.T) {
	lags := []int{0, 1, 2}
	values := []float64{1, 0.6, 0.1}
	confidence := []float64{0.3, 0.3, 0.3}

	var buf bytes.Buffer
	if err := RenderCorrelogram(&buf, "ACF", lags, values, confidence); err != nil {
		t.Fatalf("RenderCorrelogram: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("line count = %d, want title + 3 rows", len(lines))
	}
	// Lags 0 and 1 exceed the band and are flagged, lag 2 is not.
	if !strings.Contains(lines[1], "*") || !strings.Contains(lines[2], "*") {
		t.Fatalf("significant lags not flagged: %q / %q", lines[1], lines[2])
	}
	if strings.Contains(lines[3], "*") {
		t.Fatalf("insignificant lag flagged: %q", lines[3])
	}
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	err := FormatTable(&buf, []string{"name", "value"}, [][]string{
		{"alpha", "1"},
		{"a-much-longer-name", "2"},
	})
	if err != nil {
		t.Fatalf("FormatTable: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("line count = %d, want 6", len(lines))
	}
	width := len([]rune(lines[0]))
	for i, line := range lines {
		if len([]rune(line)) != width {
			t.Fatalf("line %d width %d != %d: %q", i, len([]rune(line)), width, line)
		}
	}
	if !strings.Contains(lines[1], "name") || !strings.Contains(lines[3], "alpha") {
		t.Fatalf("table content wrong: %v", lines)
	}
}

func TestPlotWidthFor(t *testing.T) {
	if got := PlotWidthFor(80); got != 80-axisLabelWidth-3 {
		t.Fatalf("PlotWidthFor(80) = %d", got)
	}
	if got := PlotWidthFor(5); got != minPlotWidth {
		t.Fatalf("PlotWidthFor(5) = %d, want %d", got, minPlotWidth)
	}
}
