package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// FormatTable writes rows as a box-drawn table with a header line.
// Column widths follow the widest cell by display width.
func FormatTable(w io.Writer, headers []string, rows [][]string) error {
	if len(headers) == 0 {
		return nil
	}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	writeRow := func(cells []string) error {
		parts := make([]string, len(headers))
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = cell + strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell))
		}
		_, err := fmt.Fprintln(w, "│ "+strings.Join(parts, " │ ")+" │")
		return err
	}
	rule := func(left, mid, right string) error {
		parts := make([]string, len(widths))
		for i, width := range widths {
			parts[i] = strings.Repeat("─", width+2)
		}
		_, err := fmt.Fprintln(w, left+strings.Join(parts, mid)+right)
		return err
	}

	if err := rule("┌", "┬", "┐"); err != nil {
		return err
	}
	if err := writeRow(headers); err != nil {
		return err
	}
	if err := rule("├", "┼", "┤"); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeRow(row); err != nil {
			return err
		}
	}
	return rule("└", "┴", "┘")
}
