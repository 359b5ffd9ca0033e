// Package picker provides the Bubble Tea text chooser shown before a test.
package picker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/verte-zerg/fluence/internal/lang"
	"github.com/verte-zerg/fluence/internal/wordsource"
)

// TextChosenMsg carries the tokens of a successfully loaded text.
type TextChosenMsg struct {
	Text   wordsource.Text
	Tokens []string
}

type loadedMsg struct {
	seq    int
	text   wordsource.Text
	tokens []string
	err    error
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Clear  key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "ctrl+p")),
		Down:   key.NewBinding(key.WithKeys("down", "ctrl+n")),
		Choose: key.NewBinding(key.WithKeys("enter")),
		Clear:  key.NewBinding(key.WithKeys("esc")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// textList adapts texts to fuzzy.Source, matching on display titles.
type textList []wordsource.Text

func (l textList) String(i int) string { return l[i].Title() }
func (l textList) Len() int            { return len(l) }

// Model lists the bundled text and the .txt files of a directory.
type Model struct {
	strings lang.Strings
	keys    keyMap
	filter  textinput.Model

	texts   textList
	matches []int
	cursor  int

	loading bool
	seq     int
	message string

	width  int
	height int
}

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	itemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#B4B4B4"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	builtinStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")).Italic(true)
	messageStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// New builds a picker over the bundled text followed by texts. A non-nil
// listErr is shown as a message and leaves the bundled text selectable.
func New(s lang.Strings, texts []wordsource.Text, listErr error) *Model {
	filter := textinput.New()
	filter.Prompt = s.FilterLabel
	filter.Focus()

	all := make(textList, 0, len(texts)+1)
	all = append(all, wordsource.BuiltinText())
	all = append(all, texts...)

	m := &Model{
		strings: s,
		keys:    newKeyMap(),
		filter:  filter,
		texts:   all,
	}
	if listErr != nil {
		m.message = listErr.Error()
	}
	m.refilter()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Loading reports whether a text is being loaded.
func (m *Model) Loading() bool {
	return m.loading
}

// Selected returns the highlighted text.
func (m *Model) Selected() (wordsource.Text, bool) {
	if m.cursor < 0 || m.cursor >= len(m.matches) {
		return wordsource.Text{}, false
	}
	return m.texts[m.matches[m.cursor]], true
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		return m, m.handleLoaded(msg)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1)
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1)
			return m, nil
		case key.Matches(msg, m.keys.Choose):
			return m, m.choose()
		case key.Matches(msg, m.keys.Clear):
			m.filter.SetValue("")
			m.refilter()
			return m, nil
		}
	}
	var cmd tea.Cmd
	before := m.filter.Value()
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.refilter()
	}
	return m, cmd
}

// choose starts loading the highlighted text. Only one load runs at a time.
func (m *Model) choose() tea.Cmd {
	if m.loading {
		return nil
	}
	text, ok := m.Selected()
	if !ok {
		return nil
	}
	m.loading = true
	m.seq++
	m.message = ""
	return loadCmd(m.seq, text)
}

func loadCmd(seq int, text wordsource.Text) tea.Cmd {
	return func() tea.Msg {
		tokens, err := text.Source().Load()
		return loadedMsg{seq: seq, text: text, tokens: tokens, err: err}
	}
}

func (m *Model) handleLoaded(msg loadedMsg) tea.Cmd {
	if msg.seq != m.seq {
		return nil
	}
	m.loading = false
	if msg.err != nil {
		var perr *wordsource.ParseError
		if errors.As(msg.err, &perr) {
			m.message = perr.Error()
		} else {
			m.message = fmt.Sprintf("%s: %v", msg.text.Title(), msg.err)
		}
		return nil
	}
	chosen := TextChosenMsg{Text: msg.text, Tokens: msg.tokens}
	return func() tea.Msg { return chosen }
}

func (m *Model) refilter() {
	pattern := strings.TrimSpace(m.filter.Value())
	m.matches = m.matches[:0]
	if pattern == "" {
		for i := range m.texts {
			m.matches = append(m.matches, i)
		}
	} else {
		for _, match := range fuzzy.FindFrom(pattern, m.texts) {
			m.matches = append(m.matches, match.Index)
		}
	}
	if m.cursor >= len(m.matches) {
		m.cursor = len(m.matches) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) moveCursor(delta int) {
	if len(m.matches) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.matches)) % len(m.matches)
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := []string{
		titleStyle.Render(m.strings.ChooseText),
		"",
		m.filter.View(),
		"",
	}
	if len(m.matches) == 0 {
		lines = append(lines, dimStyle.Render(m.strings.NoTexts))
	}
	start, end := m.visibleRange()
	for i := start; i < end; i++ {
		lines = append(lines, m.renderItem(i))
	}
	if m.loading {
		lines = append(lines, "", dimStyle.Render(m.strings.Loading))
	}
	if m.message != "" {
		lines = append(lines, "", messageStyle.Render(m.message))
	}
	return "  " + strings.Join(lines, "\n  ")
}

func (m *Model) renderItem(i int) string {
	text := m.texts[m.matches[i]]
	label := text.Title()
	if text.Builtin {
		label += " " + builtinStyle.Render("("+m.strings.BuiltinText+")")
	}
	if i == m.cursor {
		return selectedStyle.Render("> ") + selectedStyle.Render(label)
	}
	return "  " + itemStyle.Render(label)
}

// visibleRange keeps the cursor on screen when the list is taller than the
// window.
func (m *Model) visibleRange() (int, int) {
	n := len(m.matches)
	rows := m.height - 8
	if m.height <= 0 || rows >= n {
		return 0, n
	}
	if rows < 1 {
		rows = 1
	}
	start := m.cursor - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > n {
		start = n - rows
	}
	return start, start + rows
}
