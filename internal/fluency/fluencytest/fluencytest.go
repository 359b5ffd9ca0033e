// Package fluencytest provides test doubles for the fluency package.
package fluencytest

import (
	"time"

	"github.com/verte-zerg/fluence/internal/fluency"
)

// Scheduler is a manually driven fluency.Scheduler. Fire runs the live
// callback, if any, as if its interval had elapsed.
type Scheduler struct {
	live     *entry
	Started  int
	Stopped  int
	Interval time.Duration
}

type entry struct {
	fn      func()
	stopped bool
}

// Every implements fluency.Scheduler.
func (s *Scheduler) Every(interval time.Duration, fn func()) func() {
	e := &entry{fn: fn}
	s.live = e
	s.Started++
	s.Interval = interval
	return func() {
		if e.stopped {
			return
		}
		e.stopped = true
		s.Stopped++
		if s.live == e {
			s.live = nil
		}
	}
}

// Active reports whether a schedule is live.
func (s *Scheduler) Active() bool {
	return s.live != nil
}

// Fire invokes the live callback n times, stopping early if it is cancelled.
func (s *Scheduler) Fire(n int) {
	for i := 0; i < n; i++ {
		e := s.live
		if e == nil || e.stopped {
			return
		}
		e.fn()
	}
}

// Recorder collects events emitted by a test.
type Recorder struct {
	Events []fluency.Event
}

// Listen is a fluency.Listener.
func (r *Recorder) Listen(ev fluency.Event) {
	r.Events = append(r.Events, ev)
}

// Kinds returns the recorded event kinds in order.
func (r *Recorder) Kinds() []fluency.EventKind {
	kinds := make([]fluency.EventKind, len(r.Events))
	for i, ev := range r.Events {
		kinds[i] = ev.Kind
	}
	return kinds
}

// Count returns the number of recorded events of kind k.
func (r *Recorder) Count(k fluency.EventKind) int {
	n := 0
	for _, ev := range r.Events {
		if ev.Kind == k {
			n++
		}
	}
	return n
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.Events = nil
}
