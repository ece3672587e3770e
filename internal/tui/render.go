package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tsdash/internal/model"
	"github.com/verte-zerg/tsdash/internal/stats"
)

// variantValues picks the line chart series for the selected variant.
// A variant whose category has not been produced yet yields nil.
func (m *Model) variantValues() []float64 {
	ds := m.session.Dataset
	switch m.variant {
	case model.VariantTrend:
		return ds.Decomposition().Trend
	case model.VariantSeasonal:
		return ds.Decomposition().Seasonal
	case model.VariantResidual:
		return ds.Decomposition().Residual
	case model.VariantStationary:
		values, _ := ds.Stationary()
		return values
	default:
		values, _ := ds.Base()
		return values
	}
}

func (m *Model) renderLineTab() string {
	values := m.variantValues()
	if len(values) == 0 {
		return fmt.Sprintf("No %s series yet. Press 'a' to run the pipeline.", m.variant)
	}
	var buf bytes.Buffer
	width := stats.PlotWidthFor(m.width)
	err := stats.PlotSeries(&buf, fmt.Sprintf("Series: %s", m.variant),
		[]stats.Series{{Name: string(m.variant), Values: values}}, width, plotHeight, true)
	if err != nil {
		return fmt.Sprintf("Failed to render line chart: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (m *Model) renderHistogramTab() string {
	values, _ := m.session.Dataset.Base()
	if len(values) == 0 {
		return "No data loaded."
	}
	snap := m.session.Controls.Snapshot()
	bins := stats.Histogram(values, snap.Bins)
	var buf bytes.Buffer
	if err := stats.RenderHistogram(&buf, fmt.Sprintf("Histogram (%g bins)", snap.Bins), bins); err != nil {
		return fmt.Sprintf("Failed to render histogram: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (m *Model) renderCorrelogramTab() string {
	cor := m.session.Dataset.Correlation()
	if len(cor.Lags) == 0 {
		return "No correlation yet. Press 'a' to run the pipeline."
	}
	var buf bytes.Buffer
	if err := stats.RenderCorrelogram(&buf, "Autocorrelation", cor.Lags, cor.ACF, cor.Confidence); err != nil {
		return fmt.Sprintf("Failed to render correlogram: %v", err)
	}
	buf.WriteString("\n")
	if err := stats.RenderCorrelogram(&buf, "Partial autocorrelation", cor.Lags, cor.PACF, cor.Confidence); err != nil {
		return fmt.Sprintf("Failed to render correlogram: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (m *Model) renderSummaryTab() string {
	values, _ := m.session.Dataset.Base()
	if len(values) == 0 {
		return "No data loaded."
	}
	summary, err := stats.Summarize(values)
	if err != nil {
		return fmt.Sprintf("Failed to summarize: %v", err)
	}
	box, err := stats.BoxPlot(values)
	if err != nil {
		return fmt.Sprintf("Failed to compute box plot: %v", err)
	}
	var buf bytes.Buffer
	if err := stats.RenderSummary(&buf, "Numeric summary", summary); err != nil {
		return fmt.Sprintf("Failed to render summary: %v", err)
	}
	buf.WriteString("\n")
	if err := stats.RenderBoxPlot(&buf, "Box plot", box); err != nil {
		return fmt.Sprintf("Failed to render box plot: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (m *Model) initHistoryTable() {
	columns := []table.Column{
		{Title: "Ended", Width: 19},
		{Title: "Freq", Width: 4},
		{Title: "Period", Width: 6},
		{Title: "Lags", Width: 4},
		{Title: "Bins", Width: 5},
		{Title: "Diffs", Width: 5},
		{Title: "Message", Width: 40},
	}
	t := table.New(table.WithColumns(columns), table.WithHeight(1))
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	t.SetStyles(styles)
	m.historyTable = t
}

func (m *Model) refreshHistory() {
	if m.history == nil {
		return
	}
	runs, err := m.history.ListRuns(context.Background(), model.HistoryFilter{})
	if err != nil {
		m.historyErr = err.Error()
		return
	}
	m.historyErr = ""
	rows := make([]table.Row, 0, len(runs))
	for i := len(runs) - 1; i >= 0; i-- {
		run := runs[i]
		message := run.Message
		if message == "" {
			message = "ok"
		}
		rows = append(rows, table.Row{
			run.EndedAt.Format(time.DateTime),
			run.Freq,
			fmt.Sprintf("%d", run.Period),
			fmt.Sprintf("%d", run.Lags),
			fmt.Sprintf("%g", run.Bins),
			fmt.Sprintf("%d", run.DiffCount),
			message,
		})
	}
	m.historyTable.SetRows(rows)
}
