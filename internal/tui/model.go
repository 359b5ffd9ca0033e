// Package tui provides the Bubble Tea fluency test screen.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/fluence/internal/fluency"
	"github.com/verte-zerg/fluence/internal/lang"
	"github.com/verte-zerg/fluence/internal/report"
)

// BackMsg asks the owner to leave the test screen.
type BackMsg struct{}

type copiedMsg struct {
	err error
}

// Model renders a fluency test and forwards user input to it as intents.
// It keeps no test state of its own beyond the keyboard cursor.
type Model struct {
	test      *fluency.Test
	strings   lang.Strings
	keys      keyMap
	help      help.Model
	bar       progress.Model
	canGoBack bool

	width  int
	height int

	cursor int
	scroll int
	notice string
}

var (
	tokenStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	wrongStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Strikethrough(true)
	lastStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#1A1A1A")).Background(lipgloss.Color("#C89A3A"))
	timerStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	buttonStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	instructionsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Italic(true)
	resultTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Italic(true)
	resultStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	scoreStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	footerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a test screen. Attach must be called before the
// screen is shown; Listen should be registered as the test's listener.
func NewModel(s lang.Strings, canGoBack bool) *Model {
	keys := newKeyMap()
	keys.Back.SetEnabled(canGoBack)
	return &Model{
		strings:   s,
		keys:      keys,
		help:      help.New(),
		bar:       progress.New(progress.WithSolidFill("#C89A3A"), progress.WithoutPercentage()),
		canGoBack: canGoBack,
	}
}

// Attach binds the screen to a test.
func (m *Model) Attach(test *fluency.Test) {
	m.test = test
	m.cursor = 0
	m.scroll = 0
	m.notice = ""
}

// Test returns the attached test.
func (m *Model) Test() *fluency.Test {
	return m.test
}

// Listen is a fluency.Listener updating the transient notice line.
func (m *Model) Listen(ev fluency.Event) {
	switch ev.Kind {
	case fluency.EventWrongToggled:
		tok := ""
		if m.test != nil {
			tok, _ = m.test.Token(ev.Token.Index)
		}
		if ev.Marked {
			m.notice = fmt.Sprintf(m.strings.MarkedWrong, tok)
		} else {
			m.notice = fmt.Sprintf(m.strings.UnmarkedWrong, tok)
		}
	case fluency.EventTimerExpired:
		m.notice = m.strings.Expired
	case fluency.EventReset:
		m.cursor = 0
		m.scroll = 0
		m.notice = ""
	case fluency.EventModeChanged, fluency.EventResult:
		m.notice = ""
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.followCursor()
		return m, nil
	case copiedMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf(m.strings.CopyFailed, msg.err)
		} else {
			m.notice = m.strings.Copied
		}
		return m, nil
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.test == nil {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}
	defer m.followCursor()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Up):
		m.cursor = m.layout().verticalNeighbor(m.cursor, -1)
	case key.Matches(msg, m.keys.Down):
		m.cursor = m.layout().verticalNeighbor(m.cursor, 1)
	case key.Matches(msg, m.keys.Select):
		m.test.Handle(fluency.TokenClicked{Selection: m.cursorSelection()})
	case key.Matches(msg, m.keys.End):
		m.test.Handle(fluency.EndClicked{})
	case key.Matches(msg, m.keys.Reset):
		m.test.Handle(fluency.ResetClicked{})
	case key.Matches(msg, m.keys.Copy):
		if res, ok := m.test.Result(); ok {
			return m, copyCmd(report.ResultText(res, m.strings))
		}
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.test == nil {
		return
	}
	if msg.Action != tea.MouseActionPress {
		return
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollBy(-1)
	case tea.MouseButtonWheelDown:
		m.scrollBy(1)
	case tea.MouseButtonLeft:
		m.click(msg.X, msg.Y)
	}
}

func (m *Model) click(x, y int) {
	intent := m.layout().hitTest(x, y)
	if intent == nil {
		return
	}
	if clicked, ok := intent.(fluency.TokenClicked); ok {
		m.cursor = clicked.Selection.Index
	}
	m.test.Handle(intent)
	m.followCursor()
}

func (m *Model) moveCursor(delta int) {
	count := m.test.Snapshot().TokenCount
	if count == 0 {
		return
	}
	next := m.cursor + delta
	if next < 0 {
		next = 0
	}
	if next >= count {
		next = count - 1
	}
	m.cursor = next
}

func (m *Model) cursorSelection() fluency.Selection {
	if _, ok := m.test.Token(m.cursor); !ok {
		return fluency.NoSelection
	}
	return fluency.At(m.cursor)
}

func (m *Model) layout() screenLayout {
	f := frame{
		width:      m.width,
		height:     m.height,
		scroll:     m.scroll,
		footerRows: m.footerRows(m.test.Snapshot()),
	}
	return computeLayout(m.test.Tokens(), f, m.test.Mode(), m.strings)
}

// footerRows counts the rows View draws below the buttons.
func (m *Model) footerRows(snap fluency.Snapshot) int {
	rows := 2 + m.panelRows(snap) + m.helpRows()
	if m.notice != "" {
		rows++
	}
	return rows
}

func (m *Model) panelRows(snap fluency.Snapshot) int {
	if snap.Mode != fluency.End {
		return 0
	}
	res, ok := m.test.Result()
	if !ok {
		return 1
	}
	return len(report.ResultLines(res, m.strings))
}

func (m *Model) helpRows() int {
	return strings.Count(m.help.View(m.keys), "\n") + 1
}

func (m *Model) followCursor() {
	if m.test == nil {
		return
	}
	m.scroll = m.layout().scrollFor(m.cursor)
}

func (m *Model) scrollBy(delta int) {
	m.scroll += delta
	m.scroll = m.layout().scroll
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.test == nil {
		return ""
	}
	snap := m.test.Snapshot()
	l := m.layout()
	margin := strings.Repeat(" ", marginLeft)

	lines := make([]string, 0, l.rows)
	lines = append(lines, margin+m.renderTimer(snap), "")
	lines = append(lines, m.renderTokens(l, snap)...)
	lines = append(lines, "", margin+m.renderButtons(snap), "")
	for _, line := range m.renderPanel(snap) {
		lines = append(lines, margin+line)
	}
	lines = append(lines, "")
	if m.notice != "" {
		lines = append(lines, margin+footerStyle.Render(m.notice))
	}
	for _, line := range strings.Split(m.help.View(m.keys), "\n") {
		lines = append(lines, margin+line)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderTimer(snap fluency.Snapshot) string {
	readout := fmt.Sprintf("%3s", strconv.Itoa(snap.RemainingSeconds))
	barWidth := contentWidth(m.width) - len(readout) - 1
	if barWidth < 1 {
		barWidth = 1
	}
	m.bar.Width = barWidth
	return timerStyle.Render(readout) + " " + m.bar.ViewAs(snap.Percent())
}

// renderTokens draws the visible window of token lines.
func (m *Model) renderTokens(l screenLayout, snap fluency.Snapshot) []string {
	out := make([]string, l.visible)
	builders := make([]strings.Builder, l.visible)
	cols := make([]int, l.visible)
	for _, c := range l.cells {
		row := c.line - l.scroll
		if row < 0 || row >= l.visible {
			continue
		}
		b := &builders[row]
		if c.col > cols[row] {
			b.WriteString(strings.Repeat(" ", c.col-cols[row]))
		}
		b.WriteString(m.tokenStyle(c.index, snap).Render(c.text))
		cols[row] = c.col + c.width
	}
	margin := strings.Repeat(" ", marginLeft)
	for i := range builders {
		out[i] = margin + builders[i].String()
	}
	return out
}

func (m *Model) tokenStyle(i int, snap fluency.Snapshot) lipgloss.Style {
	style := tokenStyle
	switch {
	case snap.IsLast(i):
		style = lastStyle
	case snap.IsWrong(i):
		style = wrongStyle
	}
	if i == m.cursor {
		style = style.Underline(true)
	}
	return style
}

func (m *Model) renderButtons(snap fluency.Snapshot) string {
	end := buttonStyle.Render(buttonText(endLabel(snap.Mode, m.strings)))
	reset := buttonStyle.Render(buttonText(m.strings.ResetTest))
	return end + strings.Repeat(" ", buttonGap) + reset
}

func (m *Model) renderPanel(snap fluency.Snapshot) []string {
	if snap.Mode != fluency.End {
		return nil
	}
	res, ok := m.test.Result()
	if !ok {
		return []string{instructionsStyle.Render(m.strings.Instructions)}
	}
	lines := report.ResultLines(res, m.strings)
	out := make([]string, len(lines))
	for i, line := range lines {
		switch {
		case i == 0:
			out[i] = resultTitleStyle.Render(line)
		case i == len(lines)-1:
			out[i] = scoreStyle.Render(line)
		default:
			out[i] = resultStyle.Render(line)
		}
	}
	return out
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(text)}
	}
}
