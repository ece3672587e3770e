package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
)

const correlogramBarHalf = 25

// RenderCorrelogram prints a lollipop chart of per-lag correlations with
// the confidence band marked on each row. Lags whose absolute value
// exceeds the band are flagged as significant.
func RenderCorrelogram(w io.Writer, title string, lags []int, values, confidence []float64) error {
	if len(lags) == 0 || len(lags) != len(values) {
		return nil
	}
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for i, lag := range lags {
		v := values[i]
		conf := 0.0
		if i < len(confidence) {
			conf = math.Abs(confidence[i])
		}
		row := []rune(strings.Repeat(" ", 2*correlogramBarHalf+1))
		row[correlogramBarHalf] = '│'
		markBand := func(c float64) {
			col := corrColumn(c)
			if row[col] == ' ' {
				row[col] = '┊'
			}
		}
		markBand(conf)
		markBand(-conf)
		from, to := correlogramBarHalf, corrColumn(v)
		if to < from {
			from, to = to, from
		}
		for c := from; c <= to; c++ {
			if row[c] == ' ' || row[c] == '┊' {
				row[c] = '·'
			}
		}
		row[corrColumn(v)] = '●'
		marker := " "
		if conf > 0 && math.Abs(v) > conf {
			marker = "*"
		}
		if _, err := fmt.Fprintf(w, "%3d %s %s %+.3f\n", lag, marker, string(row), v); err != nil {
			return err
		}
	}
	return nil
}

func corrColumn(v float64) int {
	if v > 1 {
		v = 1
	}
	if v < -1 {
		v = -1
	}
	return correlogramBarHalf + int(math.Round(v*float64(correlogramBarHalf)))
}
