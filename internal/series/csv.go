package series

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CSVOptions selects the columns of a CSV file to read a series from.
type CSVOptions struct {
	DateColumn  string // header of the timestamp column (default: first column)
	ValueColumn string // header of the value column (default: "value")
}

// DefaultCSVOptions returns the column defaults for CSV loading.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{ValueColumn: "value"}
}

// LoadCSV reads a series from a CSV file with a header row.
func LoadCSV(path string, opts CSVOptions) (Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return Series{}, fmt.Errorf("failed to open data file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only data file.
			_ = cerr
		}
	}()
	return ReadCSV(file, opts)
}

// ReadCSV reads a series from CSV content with a header row.
func ReadCSV(r io.Reader, opts CSVOptions) (Series, error) {
	if opts.ValueColumn == "" {
		opts.ValueColumn = "value"
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return Series{}, fmt.Errorf("failed to read CSV header: %w", err)
	}

	dateIdx := 0
	valueIdx := -1
	for i, name := range header {
		name = strings.TrimSpace(name)
		if opts.DateColumn != "" && name == opts.DateColumn {
			dateIdx = i
		}
		if name == opts.ValueColumn {
			valueIdx = i
		}
	}
	if valueIdx == -1 {
		return Series{}, fmt.Errorf("value column %q not found in CSV header", opts.ValueColumn)
	}
	if valueIdx == dateIdx {
		return Series{}, fmt.Errorf("date and value columns must differ")
	}

	var times []string
	var values []float64
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Series{}, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if valueIdx >= len(record) || dateIdx >= len(record) {
			return Series{}, fmt.Errorf("CSV row has %d columns, need %d", len(record), valueIdx+1)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(record[valueIdx]), 64)
		if err != nil {
			return Series{}, fmt.Errorf("invalid value %q: %w", record[valueIdx], err)
		}
		times = append(times, strings.TrimSpace(record[dateIdx]))
		values = append(values, value)
	}
	if len(values) == 0 {
		return Series{}, fmt.Errorf("data file contains no observations")
	}
	return Series{Times: times, Values: values}, nil
}
