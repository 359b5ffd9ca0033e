// Package report formats test results and token listings as plain text.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/verte-zerg/fluence/internal/fluency"
	"github.com/verte-zerg/fluence/internal/lang"
)

const columnGap = 3

// ResultLines returns the result panel lines, title first.
func ResultLines(res fluency.Result, s lang.Strings) []string {
	return []string{
		s.ResultsTitle,
		fmt.Sprintf(s.ResultTime, res.ElapsedSeconds),
		fmt.Sprintf(s.ResultRead, res.WordsRead),
		fmt.Sprintf(s.ResultWrong, res.WordsWrong),
		fmt.Sprintf(s.ResultScore, res.FluencyScore),
	}
}

// ResultText renders a result as a single plain-text block.
func ResultText(res fluency.Result, s lang.Strings) string {
	return strings.Join(ResultLines(res, s), "\n")
}

// RenderResult prints a result.
func RenderResult(w io.Writer, res fluency.Result, s lang.Strings) error {
	for _, line := range ResultLines(res, s) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderTokenTable prints tokens with their indices, laid out column-major
// in as many column groups as fit in totalWidth.
func RenderTokenTable(w io.Writer, tokens []string, totalWidth int) error {
	if len(tokens) == 0 {
		_, err := fmt.Fprintln(w, "No tokens.")
		return err
	}
	lines := tokenTableLines(tokens, totalWidth)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n%d tokens\n", len(tokens))
	return err
}

func tokenTableLines(tokens []string, totalWidth int) []string {
	idxWidth := len(strconv.Itoa(len(tokens) - 1))
	tokWidth := displayWidth("Token")
	for _, tok := range tokens {
		if w := displayWidth(tok); w > tokWidth {
			tokWidth = w
		}
	}
	groupWidth := idxWidth + 1 + tokWidth
	groups := 1
	if totalWidth > groupWidth {
		groups = (totalWidth + columnGap) / (groupWidth + columnGap)
	}
	if groups > len(tokens) {
		groups = len(tokens)
	}
	rowCount := (len(tokens) + groups - 1) / groups

	var tbl table
	for g := 0; g < groups; g++ {
		if g > 0 {
			tbl.addColumn(strings.Repeat(" ", columnGap-2), alignLeft)
		}
		tbl.addColumn("#", alignRight)
		tbl.addColumn("Token", alignLeft)
	}
	for r := 0; r < rowCount; r++ {
		row := make([]string, 0, groups*3)
		for g := 0; g < groups; g++ {
			i := g*rowCount + r
			if g > 0 {
				row = append(row, "")
			}
			if i >= len(tokens) {
				row = append(row, "", "")
				continue
			}
			row = append(row, strconv.Itoa(i), tokens[i])
		}
		tbl.addRow(row...)
	}
	return tbl.lines()
}
