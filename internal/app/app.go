// Package app wires the text chooser and the test screen into one Bubble Tea
// program.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/fluence/internal/fluency"
	"github.com/verte-zerg/fluence/internal/lang"
	"github.com/verte-zerg/fluence/internal/picker"
	"github.com/verte-zerg/fluence/internal/tui"
	"github.com/verte-zerg/fluence/internal/wordsource"
)

// Options configures the program.
type Options struct {
	Strings  lang.Strings
	Duration time.Duration
	// Texts and ListErr feed the chooser.
	Texts   []wordsource.Text
	ListErr error
	// Tokens, when set, start a test right away and disable the chooser.
	Tokens []string
}

// Model is the root model. It owns at most one test at a time.
type Model struct {
	opts   Options
	sched  *tui.Scheduler
	picker *picker.Model
	screen *tui.Model
	test   *fluency.Test

	width  int
	height int
}

// New builds the root model.
func New(opts Options) *Model {
	m := &Model{opts: opts, sched: tui.NewScheduler()}
	if opts.Tokens != nil {
		m.startTest(opts.Tokens)
		return m
	}
	m.picker = picker.New(opts.Strings, opts.Texts, opts.ListErr)
	return m
}

// Test returns the running test, if any.
func (m *Model) Test() *fluency.Test {
	return m.test
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.picker != nil && m.test == nil {
		return tea.Batch(m.sched.Wait(), m.picker.Init())
	}
	return m.sched.Wait()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ok := m.sched.Handle(msg); ok {
		return m, cmd
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.picker != nil {
			m.picker.Update(msg)
		}
		if m.screen != nil {
			m.screen.Update(msg)
		}
		return m, nil
	case picker.TextChosenMsg:
		m.startTest(msg.Tokens)
		return m, nil
	case tui.BackMsg:
		m.stopTest()
		return m, nil
	}
	if m.test != nil {
		_, cmd := m.screen.Update(msg)
		return m, cmd
	}
	if m.picker != nil {
		_, cmd := m.picker.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.test != nil {
		return m.screen.View()
	}
	if m.picker != nil {
		return m.picker.View()
	}
	return ""
}

func (m *Model) startTest(tokens []string) {
	m.stopTest()
	m.screen = tui.NewModel(m.opts.Strings, m.picker != nil)
	opts := []fluency.Option{fluency.WithListener(m.screen.Listen)}
	if m.opts.Duration > 0 {
		opts = append(opts, fluency.WithDuration(m.opts.Duration))
	}
	m.test = fluency.New(tokens, m.sched, opts...)
	m.screen.Attach(m.test)
	if m.width > 0 {
		m.screen.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	}
}

// stopTest drops the current test. Without a chooser there is nothing to go
// back to, so the test stays.
func (m *Model) stopTest() {
	if m.test == nil || m.picker == nil {
		return
	}
	m.test.Stop()
	m.test = nil
	m.screen = nil
}
