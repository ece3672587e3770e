// Package main provides the CLI entrypoint for tsdash.
package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tsdash/internal/config"
	"github.com/verte-zerg/tsdash/internal/controls"
	"github.com/verte-zerg/tsdash/internal/feedback"
	"github.com/verte-zerg/tsdash/internal/model"
	"github.com/verte-zerg/tsdash/internal/pipeline"
	"github.com/verte-zerg/tsdash/internal/series"
	"github.com/verte-zerg/tsdash/internal/service"
	"github.com/verte-zerg/tsdash/internal/stats"
	"github.com/verte-zerg/tsdash/internal/store"
	"github.com/verte-zerg/tsdash/internal/tui"
)

const (
	defaultFreq        = "M"
	defaultPeriod      = 12
	defaultLags        = 20
	defaultTimeoutMs   = 10000
	defaultServeAddr   = ":8000"
	defaultValueColumn = "value"
)

var (
	runDataPath    string
	runDateColumn  string
	runValueColumn string
	runServiceURL  string
	runTimeoutMs   int
	runFreq        string
	runPeriod      int
	runLags        int
	runBins        float64
	runNoHistory   bool

	serveAddr string

	historyFreq  string
	historySince string
	historyLast  int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tsdash",
		Short:         "TUI time series exploration dashboard",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDashboardCmd,
	}
	addRunFlags(rootCmd)

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&runDataPath, "data", "", "path to input CSV")
	cmd.Flags().StringVar(&runDateColumn, "date-column", "", "CSV date column (default: first column)")
	cmd.Flags().StringVar(&runValueColumn, "value-column", defaultValueColumn, "CSV value column")
	cmd.Flags().StringVar(&runServiceURL, "service", "", "analysis service URL (default: in-process)")
	cmd.Flags().IntVar(&runTimeoutMs, "timeout", defaultTimeoutMs, "service timeout in milliseconds")
	cmd.Flags().StringVar(&runFreq, "freq", defaultFreq, "series frequency code")
	cmd.Flags().IntVar(&runPeriod, "period", defaultPeriod, "seasonal period")
	cmd.Flags().IntVar(&runLags, "lags", defaultLags, "correlation lag count")
	cmd.Flags().Float64Var(&runBins, "bins", controls.DefaultBins, "histogram bin count")
	cmd.Flags().BoolVar(&runNoHistory, "no-history", false, "disable run history persistence")
}

// resolveRunSettings overlays config file values under flags that were not
// set explicitly, mirroring flag-over-config precedence.
func resolveRunSettings(cmd *cobra.Command) (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "data", &runDataPath, fileCfg.Data.Path)
	applyStringConfig(cmd, "date-column", &runDateColumn, fileCfg.Data.DateColumn)
	applyStringConfig(cmd, "value-column", &runValueColumn, fileCfg.Data.ValueColumn)
	applyStringConfig(cmd, "service", &runServiceURL, fileCfg.Service.URL)
	applyIntConfig(cmd, "timeout", &runTimeoutMs, fileCfg.Service.TimeoutMs)
	applyStringConfig(cmd, "freq", &runFreq, fileCfg.Controls.Freq)
	applyIntConfig(cmd, "period", &runPeriod, fileCfg.Controls.Period)
	applyIntConfig(cmd, "lags", &runLags, fileCfg.Controls.Lags)
	applyFloatConfig(cmd, "bins", &runBins, fileCfg.Controls.Bins)
	return fileCfg, nil
}

func newRunSession(fileCfg config.FileConfig) (*pipeline.Session, *store.Store, error) {
	if runDataPath == "" {
		return nil, nil, fmt.Errorf("no input data: pass --data or set data.path in %s", config.DefaultConfigPath())
	}
	raw, err := series.LoadCSV(runDataPath, series.CSVOptions{
		DateColumn:  runDateColumn,
		ValueColumn: runValueColumn,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load series: %w", err)
	}

	var svc pipeline.Service
	if runServiceURL != "" {
		svc = service.NewClient(runServiceURL, time.Duration(runTimeoutMs)*time.Millisecond)
	} else {
		svc = service.NewLocal()
	}

	defaults := model.Controls{
		Freq:   runFreq,
		Period: runPeriod,
		Lags:   runLags,
		Bins:   runBins,
	}

	displayFor := feedback.DefaultDisplayFor
	if fileCfg.Feedback.DisplayMs != nil && *fileCfg.Feedback.DisplayMs > 0 {
		displayFor = time.Duration(*fileCfg.Feedback.DisplayMs) * time.Millisecond
	}

	var st *store.Store
	var sink pipeline.HistorySink
	if !runNoHistory {
		st, err = store.Open(config.DefaultDBPath())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open db: %w", err)
		}
		sink = st
	}

	return pipeline.NewSession(raw, svc, defaults, displayFor, sink), st, nil
}

func runDashboardCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := resolveRunSettings(cmd)
	if err != nil {
		return err
	}
	session, st, err := newRunSession(fileCfg)
	if err != nil {
		return err
	}
	if st != nil {
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
	}

	dashModel := tui.NewModel(session, st)
	program := tea.NewProgram(dashModel, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the pipeline once and print the charts",
		Args:  cobra.NoArgs,
		RunE:  runAnalyzeCmd,
	}
	addRunFlags(cmd)
	return cmd
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := resolveRunSettings(cmd)
	if err != nil {
		return err
	}
	session, st, err := newRunSession(fileCfg)
	if err != nil {
		return err
	}
	if st != nil {
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
	}

	result, err := session.Apply(context.Background())
	if err != nil {
		return err
	}
	for _, message := range result.Messages {
		logErrln(message)
	}
	return printAnalysis(cmd, session, result)
}

func printAnalysis(cmd *cobra.Command, session *pipeline.Session, result pipeline.Result) error {
	out := cmd.OutOrStdout()
	ds := session.Dataset
	snap := session.Controls.Snapshot()
	var buf bytes.Buffer

	baseValues, _ := ds.Base()
	dec := ds.Decomposition()
	stationary, _ := ds.Stationary()
	lineSeries := []stats.Series{{Name: "base", Values: baseValues}}
	if len(dec.Trend) > 0 {
		lineSeries = append(lineSeries,
			stats.Series{Name: "trend", Values: dec.Trend},
			stats.Series{Name: "seasonal", Values: dec.Seasonal},
			stats.Series{Name: "residual", Values: dec.Residual},
		)
	}
	if len(stationary) > 0 {
		lineSeries = append(lineSeries, stats.Series{Name: fmt.Sprintf("stationary (%d diffs)", result.DiffCount), Values: stationary})
	}
	if err := stats.PlotSeries(&buf, "Series", lineSeries, 0, 0, false); err != nil {
		return fmt.Errorf("failed to render line chart: %w", err)
	}
	buf.WriteString("\n")

	if err := stats.RenderHistogram(&buf, fmt.Sprintf("Histogram (%g bins)", snap.Bins), stats.Histogram(baseValues, snap.Bins)); err != nil {
		return fmt.Errorf("failed to render histogram: %w", err)
	}
	buf.WriteString("\n")

	cor := ds.Correlation()
	if len(cor.Lags) > 0 {
		if err := stats.RenderCorrelogram(&buf, "Autocorrelation", cor.Lags, cor.ACF, cor.Confidence); err != nil {
			return fmt.Errorf("failed to render correlogram: %w", err)
		}
		if err := stats.RenderCorrelogram(&buf, "Partial autocorrelation", cor.Lags, cor.PACF, cor.Confidence); err != nil {
			return fmt.Errorf("failed to render correlogram: %w", err)
		}
		buf.WriteString("\n")
	}

	summary, err := stats.Summarize(baseValues)
	if err != nil {
		return fmt.Errorf("failed to summarize: %w", err)
	}
	if err := stats.RenderSummary(&buf, "Numeric summary", summary); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	box, err := stats.BoxPlot(baseValues)
	if err != nil {
		return fmt.Errorf("failed to compute box plot: %w", err)
	}
	if err := stats.RenderBoxPlot(&buf, "Box plot", box); err != nil {
		return fmt.Errorf("failed to render box plot: %w", err)
	}

	if _, err := fmt.Fprint(out, buf.String()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis HTTP service",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveAddr, "addr", defaultServeAddr, "listen address")
	return cmd
}

func runServeCmd(_ *cobra.Command, _ []string) error {
	logErrf("Listening on %s\n", serveAddr)
	if err := http.ListenAndServe(serveAddr, service.Handler()); err != nil {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved pipeline runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyFreq, "freq", "", "frequency filter")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N runs")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	runs, err := st.ListRuns(context.Background(), model.HistoryFilter{
		Freq:  historyFreq,
		Since: sinceTime,
		Last:  historyLast,
	})
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		logErrln("No runs found.")
		return nil
	}

	headers := []string{"Ended", "Freq", "Period", "Lags", "Bins", "Diffs", "Len", "Message"}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		message := run.Message
		if message == "" {
			message = "ok"
		}
		rows = append(rows, []string{
			run.EndedAt.Format(time.DateTime),
			run.Freq,
			fmt.Sprintf("%d", run.Period),
			fmt.Sprintf("%d", run.Lags),
			fmt.Sprintf("%g", run.Bins),
			fmt.Sprintf("%d", run.DiffCount),
			fmt.Sprintf("%d", run.SeriesLen),
			message,
		})
	}
	if err := stats.FormatTable(cmd.OutOrStdout(), headers, rows); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tsdash configuration
# Uncomment a value to enable it. CLI flags override config values.

[data]
# path = "data.csv"        # Input CSV path
# date-column = "date"     # Date column (default: first column)
# value-column = %q        # Value column

[service]
# url = "http://localhost:8000"  # Analysis service URL (default: in-process)
# timeout-ms = %d                # Request timeout in milliseconds

[controls]
# freq = %q                # Frequency code
# period = %d              # Seasonal period
# lags = %d                # Correlation lag count
# bins = %.0f              # Histogram bin count

[feedback]
# display-ms = %d          # Status message display time in milliseconds
`,
		defaultValueColumn,
		defaultTimeoutMs,
		defaultFreq,
		defaultPeriod,
		defaultLags,
		controls.DefaultBins,
		int(feedback.DefaultDisplayFor/time.Millisecond),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
