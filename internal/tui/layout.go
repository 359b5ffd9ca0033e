package tui

import (
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/fluence/internal/fluency"
	"github.com/verte-zerg/fluence/internal/lang"
)

const (
	marginLeft   = 2
	timerRow     = 0
	tokensTop    = 2
	buttonGap    = 2
	defaultWidth = 80
)

type tokenCell struct {
	index int
	text  string
	width int
	line  int
	col   int
}

type span struct {
	start int
	end   int
}

func (s span) contains(x int) bool {
	return x >= s.start && x < s.end
}

// screenLayout holds screen coordinates of everything clickable. Only token
// lines scroll..scroll+visible are drawn, starting at row tokensTop.
type screenLayout struct {
	cells       []tokenCell
	lineCount   int
	scroll      int
	visible     int
	buttonsRow  int
	endButton   span
	resetButton span
	panelTop    int
	// rows is the height of the rendered view and cut the number of its top
	// rows a shorter terminal drops.
	rows int
	cut  int
}

// frame is what the layout needs to know about the terminal and the rows
// drawn below the buttons.
type frame struct {
	width      int
	height     int
	scroll     int
	footerRows int
}

func contentWidth(width int) int {
	if width <= 0 {
		width = defaultWidth
	}
	w := width - 2*marginLeft
	if w < 1 {
		w = 1
	}
	return w
}

// wrapTokens places tokens on lines of at most width columns, one space
// apart. A token wider than width gets a line of its own.
func wrapTokens(tokens []string, width int) ([]tokenCell, int) {
	if len(tokens) == 0 {
		return nil, 0
	}
	cells := make([]tokenCell, 0, len(tokens))
	line := 0
	col := 0
	for i, tok := range tokens {
		w := runewidth.StringWidth(tok)
		if w == 0 {
			w = 1
		}
		if col > 0 && col+1+w > width {
			line++
			col = 0
		} else if col > 0 {
			col++
		}
		cells = append(cells, tokenCell{index: i, text: tok, width: w, line: line, col: col})
		col += w
	}
	return cells, line + 1
}

func computeLayout(tokens []string, f frame, mode fluency.Mode, s lang.Strings) screenLayout {
	cells, lineCount := wrapTokens(tokens, contentWidth(f.width))
	l := screenLayout{cells: cells, lineCount: lineCount, visible: lineCount}
	if f.height > 0 {
		// timer, blank, tokens, blank, buttons, footer
		l.visible = min(lineCount, max(1, f.height-tokensTop-2-f.footerRows))
	}
	l.scroll = min(max(f.scroll, 0), max(lineCount-l.visible, 0))
	l.buttonsRow = tokensTop + l.visible + 1
	endWidth := runewidth.StringWidth(buttonText(endLabel(mode, s)))
	resetWidth := runewidth.StringWidth(buttonText(s.ResetTest))
	l.endButton = span{start: marginLeft, end: marginLeft + endWidth}
	l.resetButton = span{start: l.endButton.end + buttonGap, end: l.endButton.end + buttonGap + resetWidth}
	l.panelTop = l.buttonsRow + 2
	l.rows = l.buttonsRow + 1 + f.footerRows
	if f.height > 0 && l.rows > f.height {
		l.cut = l.rows - f.height
	}
	return l
}

// hitTest maps a terminal position to the intent of what is under it.
// Positions outside tokens and buttons yield nil.
func (l screenLayout) hitTest(x, y int) fluency.Intent {
	y += l.cut
	if y == l.buttonsRow {
		switch {
		case l.endButton.contains(x):
			return fluency.EndClicked{}
		case l.resetButton.contains(x):
			return fluency.ResetClicked{}
		}
		return nil
	}
	if sel := l.tokenAt(x, y); sel.Valid {
		return fluency.TokenClicked{Selection: sel}
	}
	return nil
}

func (l screenLayout) tokenAt(x, y int) fluency.Selection {
	row := y - tokensTop
	if row < 0 || row >= l.visible {
		return fluency.NoSelection
	}
	line := l.scroll + row
	col := x - marginLeft
	for _, c := range l.cells {
		if c.line != line {
			continue
		}
		if col >= c.col && col < c.col+c.width {
			return fluency.At(c.index)
		}
	}
	return fluency.NoSelection
}

// scrollFor returns the scroll offset that keeps token cursor on screen.
func (l screenLayout) scrollFor(cursor int) int {
	if cursor < 0 || cursor >= len(l.cells) {
		return l.scroll
	}
	line := l.cells[cursor].line
	switch {
	case line < l.scroll:
		return line
	case line >= l.scroll+l.visible:
		return line - l.visible + 1
	}
	return l.scroll
}

// verticalNeighbor returns the token on the line delta away from cursor
// whose column is closest to the cursor's.
func (l screenLayout) verticalNeighbor(cursor, delta int) int {
	if cursor < 0 || cursor >= len(l.cells) {
		return cursor
	}
	from := l.cells[cursor]
	target := from.line + delta
	if target < 0 || target >= l.lineCount {
		return cursor
	}
	best := -1
	bestDist := 0
	center := from.col + from.width/2
	for _, c := range l.cells {
		if c.line != target {
			continue
		}
		dist := absInt(c.col + c.width/2 - center)
		if best == -1 || dist < bestDist {
			best = c.index
			bestDist = dist
		}
	}
	if best == -1 {
		return cursor
	}
	return best
}

func endLabel(mode fluency.Mode, s lang.Strings) string {
	if mode == fluency.End {
		return s.EditMistakes
	}
	return s.EndTest
}

func buttonText(label string) string {
	return "[ " + label + " ]"
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
