package fluency

import (
	"sort"
	"time"
)

// TickInterval is the period of timer ticks.
const TickInterval = time.Second

// Option configures a Test.
type Option func(*Test)

// WithDuration sets the test length, truncated to whole seconds (minimum 1s).
func WithDuration(d time.Duration) Option {
	return func(t *Test) {
		secs := int(d / time.Second)
		if secs < 1 {
			secs = 1
		}
		t.duration = secs
	}
}

// WithListener registers a listener for state change events.
func WithListener(l Listener) Option {
	return func(t *Test) {
		t.listener = l
	}
}

// Test is a single reading-fluency test over a fixed token sequence.
// It is not safe for concurrent use; all methods and scheduled ticks must
// run on one logical thread.
type Test struct {
	tokens   []string
	sched    Scheduler
	listener Listener

	duration int
	elapsed  int
	running  bool
	stop     func()

	mode           Mode
	wrong          map[int]struct{}
	lastWord       Selection
	remainingAtEnd int
	ended          bool
}

// New creates a test over tokens and starts its timer.
func New(tokens []string, sched Scheduler, opts ...Option) *Test {
	t := &Test{
		tokens:   append([]string(nil), tokens...),
		sched:    sched,
		duration: int(DefaultDuration / time.Second),
		wrong:    map[int]struct{}{},
	}
	for _, opt := range opts {
		opt(t)
	}
	t.Start()
	return t
}

// Start (re)starts the timer from zero. A running schedule is stopped first.
func (t *Test) Start() {
	t.cancelSchedule()
	t.elapsed = 0
	t.running = true
	t.stop = t.sched.Every(TickInterval, t.Tick)
}

// Stop cancels the timer schedule without touching any other state.
func (t *Test) Stop() {
	t.cancelSchedule()
	t.running = false
}

func (t *Test) cancelSchedule() {
	if t.stop != nil {
		stop := t.stop
		t.stop = nil
		stop()
	}
}

// Tick advances the timer by one second. It stops the schedule when the
// duration is reached; the mode is left unchanged.
func (t *Test) Tick() {
	if !t.running {
		return
	}
	t.elapsed++
	expired := t.elapsed >= t.duration
	if expired {
		t.elapsed = t.duration
		t.running = false
		t.cancelSchedule()
	}
	t.emit(Event{Kind: EventTick})
	if expired {
		t.emit(Event{Kind: EventTimerExpired})
	}
}

// ToggleWrong flips the mistake mark of token index. It only applies in
// Reading mode and reports whether anything changed.
func (t *Test) ToggleWrong(index int) bool {
	if t.mode != Reading || !t.validIndex(index) {
		return false
	}
	_, marked := t.wrong[index]
	if marked {
		delete(t.wrong, index)
	} else {
		t.wrong[index] = struct{}{}
	}
	t.emit(Event{Kind: EventWrongToggled, Token: At(index), Marked: !marked})
	return true
}

// RequestEnd switches from Reading to End and freezes the remaining time.
// The timer keeps running until it expires on its own.
func (t *Test) RequestEnd() bool {
	if t.mode != Reading {
		return false
	}
	t.remainingAtEnd = t.remaining()
	t.ended = true
	t.mode = End
	t.emit(Event{Kind: EventModeChanged})
	return true
}

// RequestResume switches from End back to Reading, clearing the last-word
// mark. Mistakes are kept.
func (t *Test) RequestResume() bool {
	if t.mode != End {
		return false
	}
	t.mode = Reading
	t.clearLastWord()
	t.emit(Event{Kind: EventModeChanged})
	return true
}

// MarkLastWord sets the last word read and computes the result. Passing
// NoSelection clears the mark without computing a result. It only applies in
// End mode.
func (t *Test) MarkLastWord(sel Selection) bool {
	if t.mode != End {
		return false
	}
	if sel.Valid && !t.validIndex(sel.Index) {
		return false
	}
	t.clearLastWord()
	if !sel.Valid {
		return true
	}
	t.lastWord = sel
	t.emit(Event{Kind: EventLastWordChanged, Token: sel, Marked: true})
	res, _ := t.Result()
	t.emit(Event{Kind: EventResult, Token: sel, Result: res})
	return true
}

func (t *Test) clearLastWord() {
	if !t.lastWord.Valid {
		return
	}
	prev := t.lastWord
	t.lastWord = NoSelection
	t.emit(Event{Kind: EventLastWordChanged, Token: prev, Marked: false})
}

// Reset returns the test to its initial state over the same tokens and
// restarts the timer.
func (t *Test) Reset() {
	t.cancelSchedule()
	t.mode = Reading
	t.wrong = map[int]struct{}{}
	t.lastWord = NoSelection
	t.remainingAtEnd = 0
	t.ended = false
	t.Start()
	t.emit(Event{Kind: EventReset})
}

// Handle applies a user intent. Token selections are routed by mode; an
// empty selection is ignored.
func (t *Test) Handle(intent Intent) bool {
	switch in := intent.(type) {
	case TokenClicked:
		if !in.Selection.Valid {
			return false
		}
		if t.mode == Reading {
			return t.ToggleWrong(in.Selection.Index)
		}
		return t.MarkLastWord(in.Selection)
	case EndClicked:
		if t.mode == Reading {
			return t.RequestEnd()
		}
		return t.RequestResume()
	case ResetClicked:
		t.Reset()
		return true
	default:
		return false
	}
}

// Result returns the score once a last word is marked.
func (t *Test) Result() (Result, bool) {
	if !t.lastWord.Valid {
		return Result{}, false
	}
	read := t.lastWord.Index + 1
	wrong := len(t.wrong)
	return Result{
		ElapsedSeconds: t.duration - t.remainingAtEnd,
		WordsRead:      read,
		WordsWrong:     wrong,
		FluencyScore:   read - wrong,
	}, true
}

// Snapshot returns a copy of the current state.
func (t *Test) Snapshot() Snapshot {
	wrong := make([]int, 0, len(t.wrong))
	for i := range t.wrong {
		wrong = append(wrong, i)
	}
	sort.Ints(wrong)
	return Snapshot{
		Mode:             t.mode,
		Wrong:            wrong,
		LastWord:         t.lastWord,
		ElapsedSeconds:   t.elapsed,
		RemainingSeconds: t.remaining(),
		DurationSeconds:  t.duration,
		Running:          t.running,
		RemainingAtEnd:   t.remainingAtEnd,
		Ended:            t.ended,
		TokenCount:       len(t.tokens),
	}
}

// Mode returns the current mode.
func (t *Test) Mode() Mode {
	return t.mode
}

// Tokens returns a copy of the token sequence.
func (t *Test) Tokens() []string {
	return append([]string(nil), t.tokens...)
}

// Token returns the token at index i.
func (t *Test) Token(i int) (string, bool) {
	if !t.validIndex(i) {
		return "", false
	}
	return t.tokens[i], true
}

// Duration returns the configured test length.
func (t *Test) Duration() time.Duration {
	return time.Duration(t.duration) * time.Second
}

func (t *Test) remaining() int {
	r := t.duration - t.elapsed
	if r < 0 {
		return 0
	}
	return r
}

func (t *Test) validIndex(i int) bool {
	return i >= 0 && i < len(t.tokens)
}

func (t *Test) emit(ev Event) {
	if t.listener == nil {
		return
	}
	ev.Snapshot = t.Snapshot()
	t.listener(ev)
}
