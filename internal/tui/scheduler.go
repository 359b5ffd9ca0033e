package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Scheduler implements fluency.Scheduler on top of the Bubble Tea loop.
// Ticker goroutines only post messages; callbacks run inside Update, so timer
// ticks and user input never interleave.
type Scheduler struct {
	fires chan fireMsg
}

type schedule struct {
	fn      func()
	done    chan struct{}
	stopped bool
}

type fireMsg struct {
	s *schedule
}

// NewScheduler returns a scheduler. Its Wait command must be part of the
// program's Init so fired ticks reach Update.
func NewScheduler() *Scheduler {
	return &Scheduler{fires: make(chan fireMsg)}
}

// Every implements fluency.Scheduler. The returned stop func must be called
// from the Bubble Tea loop.
func (s *Scheduler) Every(interval time.Duration, fn func()) func() {
	sc := &schedule{fn: fn, done: make(chan struct{})}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-sc.done:
				return
			case <-ticker.C:
				select {
				case s.fires <- fireMsg{s: sc}:
				case <-sc.done:
					return
				}
			}
		}
	}()
	return func() {
		if sc.stopped {
			return
		}
		sc.stopped = true
		close(sc.done)
	}
}

// Wait returns a command delivering the next fired tick.
func (s *Scheduler) Wait() tea.Cmd {
	return func() tea.Msg {
		return <-s.fires
	}
}

// Handle runs the callback carried by msg unless its schedule has been
// stopped since the tick was posted. It reports whether msg was a tick and
// returns the command waiting for the next one.
func (s *Scheduler) Handle(msg tea.Msg) (tea.Cmd, bool) {
	fire, ok := msg.(fireMsg)
	if !ok {
		return nil, false
	}
	if !fire.s.stopped {
		fire.s.fn()
	}
	return s.Wait(), true
}
