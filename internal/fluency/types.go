// Package fluency implements the reading-fluency test state machine.
package fluency

import "time"

// DefaultDuration is the test length used when no duration option is given.
const DefaultDuration = 60 * time.Second

// Mode is the interaction mode of a test.
type Mode int

const (
	// Reading means the test is in progress; selecting a token toggles a mistake.
	Reading Mode = iota
	// End means the test is paused for review; selecting a token marks the last word read.
	End
)

// String returns the lowercase mode name.
func (m Mode) String() string {
	switch m {
	case Reading:
		return "reading"
	case End:
		return "end"
	default:
		return "unknown"
	}
}

// Selection identifies a token, if any. The zero value means no selection,
// which is distinct from the first token.
type Selection struct {
	Index int
	Valid bool
}

// NoSelection is the empty selection.
var NoSelection = Selection{}

// At returns a selection of the token at index i.
func At(i int) Selection {
	return Selection{Index: i, Valid: true}
}

// Result is the score derived from a finished test.
type Result struct {
	ElapsedSeconds int
	WordsRead      int
	WordsWrong     int
	FluencyScore   int
}

// Snapshot is a read-only copy of the test state.
type Snapshot struct {
	Mode             Mode
	Wrong            []int
	LastWord         Selection
	ElapsedSeconds   int
	RemainingSeconds int
	DurationSeconds  int
	Running          bool
	// RemainingAtEnd is frozen when the test enters End mode.
	RemainingAtEnd int
	Ended          bool
	TokenCount     int
}

// IsWrong reports whether token i is marked as misread.
func (s Snapshot) IsWrong(i int) bool {
	for _, w := range s.Wrong {
		if w == i {
			return true
		}
	}
	return false
}

// IsLast reports whether token i carries the last-word mark.
func (s Snapshot) IsLast(i int) bool {
	return s.LastWord.Valid && s.LastWord.Index == i
}

// Percent returns the elapsed share of the timer in [0, 1].
func (s Snapshot) Percent() float64 {
	if s.DurationSeconds <= 0 {
		return 0
	}
	p := float64(s.ElapsedSeconds) / float64(s.DurationSeconds)
	if p > 1 {
		return 1
	}
	return p
}
