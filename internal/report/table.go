package report

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type align int

const (
	alignLeft align = iota
	alignRight
)

type column struct {
	header string
	align  align
}

// table is a plain-text grid; cells are separated by one space and lines
// carry no trailing blanks.
type table struct {
	cols []column
	rows [][]string
}

func (t *table) addColumn(header string, a align) {
	t.cols = append(t.cols, column{header: header, align: a})
}

func (t *table) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) widths() []int {
	n := len(t.cols)
	for _, row := range t.rows {
		n = max(n, len(row))
	}
	widths := make([]int, n)
	for i, col := range t.cols {
		widths[i] = displayWidth(col.header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], displayWidth(cell))
		}
	}
	return widths
}

func (t *table) lines() []string {
	widths := t.widths()
	if len(widths) == 0 {
		return nil
	}
	out := make([]string, 0, len(t.rows)+1)
	if len(t.cols) > 0 {
		headers := make([]string, len(t.cols))
		for i, col := range t.cols {
			headers[i] = col.header
		}
		out = append(out, t.line(headers, widths))
	}
	for _, row := range t.rows {
		out = append(out, t.line(row, widths))
	}
	return out
}

func (t *table) line(cells []string, widths []int) string {
	var b strings.Builder
	for i, w := range widths {
		if i > 0 {
			b.WriteByte(' ')
		}
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(pad(cell, w, t.alignOf(i)))
	}
	return strings.TrimRight(b.String(), " ")
}

func (t *table) alignOf(i int) align {
	if i < len(t.cols) {
		return t.cols[i].align
	}
	return alignLeft
}

func pad(value string, width int, a align) string {
	gap := width - displayWidth(value)
	if gap <= 0 {
		return value
	}
	if a == alignRight {
		return strings.Repeat(" ", gap) + value
	}
	return value + strings.Repeat(" ", gap)
}

func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}
