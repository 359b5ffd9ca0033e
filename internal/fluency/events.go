package fluency

// EventKind identifies a state change notification.
type EventKind int

const (
	// EventTick follows every timer tick.
	EventTick EventKind = iota
	// EventTimerExpired follows the tick that reaches the test duration.
	EventTimerExpired
	// EventWrongToggled follows a change of a token's mistake mark.
	EventWrongToggled
	// EventModeChanged follows a Reading/End transition.
	EventModeChanged
	// EventLastWordChanged follows setting or clearing the last-word mark.
	EventLastWordChanged
	// EventResult follows a result computation.
	EventResult
	// EventReset follows a reset to the initial state.
	EventReset
)

func (k EventKind) String() string {
	switch k {
	case EventTick:
		return "tick"
	case EventTimerExpired:
		return "timer-expired"
	case EventWrongToggled:
		return "wrong-toggled"
	case EventModeChanged:
		return "mode-changed"
	case EventLastWordChanged:
		return "last-word-changed"
	case EventResult:
		return "result"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event is emitted after each state change.
type Event struct {
	Kind EventKind
	// Token is the affected token for wrong/last-word events.
	Token Selection
	// Marked is the new marker state of Token.
	Marked   bool
	Result   Result
	Snapshot Snapshot
}

// Listener receives events synchronously, on the caller's thread.
type Listener func(Event)

// Intent is a raw user action forwarded by a presentation layer.
type Intent interface {
	isIntent()
}

// TokenClicked is a selection of a token, or of nothing.
type TokenClicked struct {
	Selection Selection
}

// EndClicked is a press of the end/edit button.
type EndClicked struct{}

// ResetClicked is a press of the reset button.
type ResetClicked struct{}

func (TokenClicked) isIntent() {}
func (EndClicked) isIntent()   {}
func (ResetClicked) isIntent() {}
