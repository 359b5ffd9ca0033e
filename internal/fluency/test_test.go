package fluency_test

import (
	"testing"
	"time"

	"github.com/verte-zerg/fluence/internal/fluency"
	"github.com/verte-zerg/fluence/internal/fluency/fluencytest"
)

var chats = []string{"Tous", "les", "chats"}

func newTest(t *testing.T, opts ...fluency.Option) (*fluency.Test, *fluencytest.Scheduler) {
	t.Helper()
	sched := &fluencytest.Scheduler{}
	return fluency.New(chats, sched, opts...), sched
}

func assertInitial(t *testing.T, snap fluency.Snapshot) {
	t.Helper()
	if snap.Mode != fluency.Reading {
		t.Fatalf("expected reading mode, got %s", snap.Mode)
	}
	if len(snap.Wrong) != 0 {
		t.Fatalf("expected no wrong words, got %v", snap.Wrong)
	}
	if snap.LastWord.Valid {
		t.Fatalf("expected no last word, got %+v", snap.LastWord)
	}
	if snap.ElapsedSeconds != 0 {
		t.Fatalf("expected 0 elapsed, got %d", snap.ElapsedSeconds)
	}
	if !snap.Running {
		t.Fatalf("expected running timer")
	}
}

func TestNewStartsTimer(t *testing.T) {
	test, sched := newTest(t)
	assertInitial(t, test.Snapshot())
	if !sched.Active() {
		t.Fatalf("expected live schedule")
	}
	if sched.Interval != time.Second {
		t.Fatalf("expected 1s interval, got %v", sched.Interval)
	}
	if test.Snapshot().DurationSeconds != 60 {
		t.Fatalf("expected default 60s duration, got %d", test.Snapshot().DurationSeconds)
	}
}

func TestToggleWrongAlternates(t *testing.T) {
	test, _ := newTest(t)
	for n := 1; n <= 5; n++ {
		if !test.ToggleWrong(1) {
			t.Fatalf("toggle %d not applied", n)
		}
		present := test.Snapshot().IsWrong(1)
		if present != (n%2 == 1) {
			t.Fatalf("after %d toggles expected present=%v", n, n%2 == 1)
		}
	}
}

func TestToggleWrongTwiceEmpties(t *testing.T) {
	test, _ := newTest(t)
	test.ToggleWrong(1)
	test.ToggleWrong(1)
	if got := test.Snapshot().Wrong; len(got) != 0 {
		t.Fatalf("expected empty wrong set, got %v", got)
	}
}

func TestToggleWrongIgnoredInEndMode(t *testing.T) {
	test, _ := newTest(t)
	test.RequestEnd()
	if test.ToggleWrong(0) {
		t.Fatalf("expected toggle to be a no-op in end mode")
	}
	if len(test.Snapshot().Wrong) != 0 {
		t.Fatalf("expected wrong set untouched")
	}
}

func TestToggleWrongRejectsInvalidIndex(t *testing.T) {
	test, _ := newTest(t)
	for _, i := range []int{-1, 3, 100} {
		if test.ToggleWrong(i) {
			t.Fatalf("expected index %d to be rejected", i)
		}
	}
}

func TestScenarioScore(t *testing.T) {
	test, sched := newTest(t)
	sched.Fire(12)
	test.ToggleWrong(1)
	if !test.RequestEnd() {
		t.Fatalf("expected end to apply")
	}
	snap := test.Snapshot()
	if snap.RemainingAtEnd != 48 {
		t.Fatalf("expected 48s remaining at end, got %d", snap.RemainingAtEnd)
	}
	if !test.MarkLastWord(fluency.At(2)) {
		t.Fatalf("expected last word to apply")
	}
	res, ok := test.Result()
	if !ok {
		t.Fatalf("expected result")
	}
	want := fluency.Result{ElapsedSeconds: 12, WordsRead: 3, WordsWrong: 1, FluencyScore: 2}
	if res != want {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestResultFrozenAtEnd(t *testing.T) {
	test, sched := newTest(t)
	sched.Fire(5)
	test.RequestEnd()
	sched.Fire(10)
	test.MarkLastWord(fluency.At(0))
	res, _ := test.Result()
	if res.ElapsedSeconds != 5 {
		t.Fatalf("expected result time frozen at 5s, got %d", res.ElapsedSeconds)
	}
	if test.Snapshot().ElapsedSeconds != 15 {
		t.Fatalf("expected timer to keep running in end mode")
	}
}

func TestFirstTokenCanBeLastWord(t *testing.T) {
	test, _ := newTest(t)
	test.RequestEnd()
	if !test.MarkLastWord(fluency.At(0)) {
		t.Fatalf("expected index 0 to be accepted")
	}
	res, ok := test.Result()
	if !ok || res.WordsRead != 1 {
		t.Fatalf("expected 1 word read, got %+v ok=%v", res, ok)
	}
}

func TestMarkLastWordAtMostOne(t *testing.T) {
	test, _ := newTest(t)
	test.RequestEnd()
	for _, i := range []int{2, 0, 1} {
		test.MarkLastWord(fluency.At(i))
	}
	snap := test.Snapshot()
	marked := 0
	for i := 0; i < snap.TokenCount; i++ {
		if snap.IsLast(i) {
			marked++
		}
	}
	if marked != 1 || !snap.IsLast(1) {
		t.Fatalf("expected only token 1 marked, got %+v", snap.LastWord)
	}
}

func TestMarkLastWordNoSelectionClears(t *testing.T) {
	rec := &fluencytest.Recorder{}
	test, _ := newTest(t, fluency.WithListener(rec.Listen))
	test.RequestEnd()
	test.MarkLastWord(fluency.At(1))
	rec.Reset()

	if !test.MarkLastWord(fluency.NoSelection) {
		t.Fatalf("expected clear to apply")
	}
	if _, ok := test.Result(); ok {
		t.Fatalf("expected no result after clearing")
	}
	if rec.Count(fluency.EventResult) != 0 {
		t.Fatalf("clearing must not compute a result")
	}
	if rec.Count(fluency.EventLastWordChanged) != 1 {
		t.Fatalf("expected one last-word change, got %v", rec.Kinds())
	}
}

func TestMarkLastWordIgnoredInReading(t *testing.T) {
	test, _ := newTest(t)
	if test.MarkLastWord(fluency.At(0)) {
		t.Fatalf("expected no-op in reading mode")
	}
	if test.Snapshot().LastWord.Valid {
		t.Fatalf("expected no last word")
	}
}

func TestResumeClearsLastWordKeepsWrong(t *testing.T) {
	test, _ := newTest(t)
	test.ToggleWrong(0)
	test.ToggleWrong(2)
	test.RequestEnd()
	test.MarkLastWord(fluency.At(2))
	if !test.RequestResume() {
		t.Fatalf("expected resume to apply")
	}
	snap := test.Snapshot()
	if snap.Mode != fluency.Reading {
		t.Fatalf("expected reading mode")
	}
	if snap.LastWord.Valid {
		t.Fatalf("expected last word cleared")
	}
	if len(snap.Wrong) != 2 || snap.Wrong[0] != 0 || snap.Wrong[1] != 2 {
		t.Fatalf("expected wrong set preserved, got %v", snap.Wrong)
	}
}

func TestModeTransitionsGuarded(t *testing.T) {
	test, _ := newTest(t)
	if test.RequestResume() {
		t.Fatalf("resume must be a no-op in reading mode")
	}
	test.RequestEnd()
	if test.RequestEnd() {
		t.Fatalf("end must be a no-op in end mode")
	}
}

func TestTimerMonotonicity(t *testing.T) {
	const duration = 5
	for n := 0; n <= duration; n++ {
		test, sched := newTest(t, fluency.WithDuration(duration*time.Second))
		sched.Fire(n)
		snap := test.Snapshot()
		if snap.ElapsedSeconds != n {
			t.Fatalf("after %d ticks expected elapsed %d, got %d", n, n, snap.ElapsedSeconds)
		}
		if snap.Running != (n < duration) {
			t.Fatalf("after %d ticks expected running=%v", n, n < duration)
		}
	}
}

func TestTimerStopsAtDuration(t *testing.T) {
	rec := &fluencytest.Recorder{}
	test, sched := newTest(t, fluency.WithDuration(3*time.Second), fluency.WithListener(rec.Listen))
	sched.Fire(10)
	snap := test.Snapshot()
	if snap.ElapsedSeconds != 3 || snap.RemainingSeconds != 0 {
		t.Fatalf("expected timer capped at duration, got %+v", snap)
	}
	if sched.Active() {
		t.Fatalf("expected schedule cancelled on expiry")
	}
	if rec.Count(fluency.EventTimerExpired) != 1 {
		t.Fatalf("expected one expiry event, got %v", rec.Kinds())
	}
	if snap.Mode != fluency.Reading {
		t.Fatalf("expiry must not change mode")
	}
	test.Tick()
	if test.Snapshot().ElapsedSeconds != 3 {
		t.Fatalf("tick after expiry must be ignored")
	}
}

func TestStartCancelsPreviousSchedule(t *testing.T) {
	test, sched := newTest(t)
	sched.Fire(4)
	test.Start()
	if sched.Started != 2 || sched.Stopped != 1 {
		t.Fatalf("expected previous schedule stopped, started=%d stopped=%d", sched.Started, sched.Stopped)
	}
	sched.Fire(1)
	if got := test.Snapshot().ElapsedSeconds; got != 1 {
		t.Fatalf("expected single live timer, elapsed=%d", got)
	}
}

func TestResetRoundTrip(t *testing.T) {
	test, sched := newTest(t)
	sched.Fire(20)
	test.ToggleWrong(0)
	test.ToggleWrong(1)
	test.RequestEnd()
	test.MarkLastWord(fluency.At(2))

	test.Reset()
	snap := test.Snapshot()
	assertInitial(t, snap)
	if snap.Ended || snap.RemainingAtEnd != 0 {
		t.Fatalf("expected end snapshot cleared, got %+v", snap)
	}
	if len(test.Tokens()) != len(chats) {
		t.Fatalf("expected tokens reused")
	}
	if sched.Started != 2 {
		t.Fatalf("expected timer restarted, started=%d", sched.Started)
	}
}

func TestStopHaltsTimer(t *testing.T) {
	test, sched := newTest(t)
	sched.Fire(2)
	test.Stop()
	sched.Fire(2)
	snap := test.Snapshot()
	if snap.Running || snap.ElapsedSeconds != 2 {
		t.Fatalf("expected stopped timer at 2s, got %+v", snap)
	}
}

func TestHandleRoutesByMode(t *testing.T) {
	test, _ := newTest(t)
	if test.Handle(fluency.TokenClicked{Selection: fluency.NoSelection}) {
		t.Fatalf("empty selection must be ignored")
	}
	test.Handle(fluency.TokenClicked{Selection: fluency.At(0)})
	if !test.Snapshot().IsWrong(0) {
		t.Fatalf("expected token 0 marked wrong in reading mode")
	}
	test.Handle(fluency.EndClicked{})
	if test.Mode() != fluency.End {
		t.Fatalf("expected end mode")
	}
	test.Handle(fluency.TokenClicked{Selection: fluency.At(0)})
	if !test.Snapshot().IsLast(0) {
		t.Fatalf("expected token 0 marked last in end mode")
	}
	test.Handle(fluency.EndClicked{})
	if test.Mode() != fluency.Reading || test.Snapshot().LastWord.Valid {
		t.Fatalf("expected resume to reading with cleared last word")
	}
	test.Handle(fluency.ResetClicked{})
	assertInitial(t, test.Snapshot())
}

func TestEventsCarrySnapshots(t *testing.T) {
	rec := &fluencytest.Recorder{}
	test, _ := newTest(t, fluency.WithListener(rec.Listen))
	test.ToggleWrong(1)
	test.RequestEnd()
	test.MarkLastWord(fluency.At(2))

	want := []fluency.EventKind{
		fluency.EventWrongToggled,
		fluency.EventModeChanged,
		fluency.EventLastWordChanged,
		fluency.EventResult,
	}
	got := rec.Kinds()
	if len(got) != len(want) {
		t.Fatalf("unexpected events: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	first := rec.Events[0]
	if !first.Marked || first.Token != fluency.At(1) || !first.Snapshot.IsWrong(1) {
		t.Fatalf("unexpected wrong event: %+v", first)
	}
	last := rec.Events[3]
	if last.Result.FluencyScore != 2 || last.Snapshot.Mode != fluency.End {
		t.Fatalf("unexpected result event: %+v", last)
	}
}

func TestTokensAreCopied(t *testing.T) {
	src := []string{"a", "b"}
	test := fluency.New(src, &fluencytest.Scheduler{})
	src[0] = "z"
	if tok, _ := test.Token(0); tok != "a" {
		t.Fatalf("expected token sequence to be immutable, got %q", tok)
	}
	out := test.Tokens()
	out[1] = "z"
	if tok, _ := test.Token(1); tok != "b" {
		t.Fatalf("expected Tokens to return a copy")
	}
	if _, ok := test.Token(2); ok {
		t.Fatalf("expected out-of-range token lookup to fail")
	}
}

func TestWithDurationMinimum(t *testing.T) {
	test, _ := newTest(t, fluency.WithDuration(100*time.Millisecond))
	if got := test.Duration(); got != time.Second {
		t.Fatalf("expected 1s minimum duration, got %v", got)
	}
}
