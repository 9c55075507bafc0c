package behavior

import (
	"math"
	"testing"
)

const epsilon = 1e-9

// timedAction is a test leaf: runs for duration seconds, then reports status.
// A zero duration makes it instant.
type timedAction struct {
	name     string
	duration float64
	status   Status
}

func instant(name string, status Status) timedAction {
	return timedAction{name: name, status: status}
}

func timed(name string, duration float64) timedAction {
	return timedAction{name: name, duration: duration, status: Success}
}

// leafRunner owns leaf continuations the way a real scheduler would: elapsed
// time per action, reset on completion so a restarted leaf runs fresh.
type leafRunner struct {
	elapsed map[string]float64
	calls   []string
}

func newLeafRunner() *leafRunner {
	return &leafRunner{elapsed: make(map[string]float64)}
}

func (r *leafRunner) invoke(dt float64, a timedAction) (Status, float64) {
	r.calls = append(r.calls, a.name)
	if a.duration <= 0 {
		return a.status, dt
	}
	e := r.elapsed[a.name] + dt
	if e >= a.duration {
		r.elapsed[a.name] = 0
		return a.status, e - a.duration
	}
	r.elapsed[a.name] = e
	return Running, 0
}

func assertStatus(t *testing.T, got, want Status) {
	t.Helper()
	if got != want {
		t.Errorf("status = %v, want %v", got, want)
	}
}

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// --- Leaves ---

func TestActionDelegatesToLeaf(t *testing.T) {
	r := newLeafRunner()
	s := NewState(Action(timed("a", 1.0)))

	status, _ := s.Advance(0.4, r.invoke)
	assertStatus(t, status, Running)

	status, remaining := s.Advance(0.8, r.invoke)
	assertStatus(t, status, Success)
	assertNear(t, "remaining", remaining, 0.2)

	if len(r.calls) != 2 {
		t.Errorf("leaf calls = %d, want 2", len(r.calls))
	}
}

func TestWaitTiming(t *testing.T) {
	s := NewState(Wait[timedAction](1.0))

	status, _ := s.Advance(0.4, nil)
	assertStatus(t, status, Running)
	status, _ = s.Advance(0.4, nil)
	assertStatus(t, status, Running)

	status, remaining := s.Advance(0.4, nil)
	assertStatus(t, status, Success)
	assertNear(t, "remaining", remaining, 0.2)
}

func TestWaitExactBoundary(t *testing.T) {
	s := NewState(Wait[timedAction](1.0))
	status, remaining := s.Advance(1.0, nil)
	assertStatus(t, status, Success)
	assertNear(t, "remaining", remaining, 0)
}

func TestWaitForeverNeverTerminates(t *testing.T) {
	s := NewState(WaitForever[timedAction]())
	for i := 0; i < 10; i++ {
		status, _ := s.Advance(1000, nil)
		assertStatus(t, status, Running)
	}
}

// --- Sequence ---

func TestSequenceCarriesLeftoverIntoNextStep(t *testing.T) {
	r := newLeafRunner()
	s := NewState(Sequence(
		Wait[timedAction](0.5),
		Action(timed("move", 1.0)),
	))

	// One 0.8s tick: the wait ends at 0.5 and the move gets the other 0.3
	// within the same advance.
	status, _ := s.Advance(0.8, r.invoke)
	assertStatus(t, status, Running)
	if len(r.calls) != 1 || r.calls[0] != "move" {
		t.Fatalf("calls = %v, want [move]", r.calls)
	}
	assertNear(t, "move elapsed", r.elapsed["move"], 0.3)

	status, remaining := s.Advance(0.9, r.invoke)
	assertStatus(t, status, Success)
	assertNear(t, "remaining", remaining, 0.2)
}

func TestSequenceFailsWhenStepFails(t *testing.T) {
	r := newLeafRunner()
	s := NewState(Sequence(
		Action(instant("ok", Success)),
		Action(instant("bad", Failure)),
		Action(instant("unreached", Success)),
	))

	status, _ := s.Advance(0.1, r.invoke)
	assertStatus(t, status, Failure)
	if len(r.calls) != 2 {
		t.Errorf("calls = %v, want [ok bad]", r.calls)
	}
}

func TestSequenceEmptySucceeds(t *testing.T) {
	s := NewState(Sequence[timedAction]())
	status, remaining := s.Advance(0.5, nil)
	assertStatus(t, status, Success)
	assertNear(t, "remaining", remaining, 0.5)
}

// --- Select ---

func TestSelectSkipsFailures(t *testing.T) {
	r := newLeafRunner()
	s := NewState(Select(
		Action(instant("no1", Failure)),
		Action(instant("no2", Failure)),
		Action(instant("yes", Success)),
	))

	status, _ := s.Advance(0.1, r.invoke)
	assertStatus(t, status, Success)
	if len(r.calls) != 3 {
		t.Errorf("calls = %v, want all three", r.calls)
	}
}

func TestSelectFailsWhenAllFail(t *testing.T) {
	r := newLeafRunner()
	s := NewState(Select(
		Action(instant("no1", Failure)),
		Action(instant("no2", Failure)),
	))

	status, _ := s.Advance(0.1, r.invoke)
	assertStatus(t, status, Failure)
}

// --- If ---

func TestIfTakesSuccessBranch(t *testing.T) {
	r := newLeafRunner()
	s := NewState(If(
		Action(instant("cond", Success)),
		Action(timed("then", 1.0)),
		Action(instant("else", Success)),
	))

	// The condition resolves instantly; the whole tick flows into the branch.
	status, _ := s.Advance(0.4, r.invoke)
	assertStatus(t, status, Running)
	assertNear(t, "then elapsed", r.elapsed["then"], 0.4)

	for _, call := range r.calls {
		if call == "else" {
			t.Error("failure branch should not run")
		}
	}
}

func TestIfTakesFailureBranch(t *testing.T) {
	r := newLeafRunner()
	s := NewState(If(
		Action(instant("cond", Failure)),
		Action(instant("then", Success)),
		Action(instant("else", Success)),
	))

	status, _ := s.Advance(0.1, r.invoke)
	assertStatus(t, status, Success)

	ran := false
	for _, call := range r.calls {
		if call == "else" {
			ran = true
		}
		if call == "then" {
			t.Error("success branch should not run")
		}
	}
	if !ran {
		t.Error("failure branch should run")
	}
}

// --- While ---

func TestWhileTerminatesWithCondition(t *testing.T) {
	r := newLeafRunner()
	s := NewState(While(
		Wait[timedAction](1.0),
		Action(timed("body", 0.3)),
	))

	status, _ := s.Advance(0.5, r.invoke)
	assertStatus(t, status, Running)

	status, remaining := s.Advance(0.6, r.invoke)
	assertStatus(t, status, Success)
	assertNear(t, "remaining", remaining, 0.1)
}

func TestWhileRestartsBody(t *testing.T) {
	r := newLeafRunner()
	s := NewState(While(
		WaitForever[timedAction](),
		Action(timed("body", 0.2)),
	))

	// 0.5s tick: the body completes at 0.2, restarts, completes at 0.4,
	// restarts again and is left running with 0.1 elapsed.
	status, _ := s.Advance(0.5, r.invoke)
	assertStatus(t, status, Running)
	if len(r.calls) != 3 {
		t.Errorf("body invocations = %d, want 3", len(r.calls))
	}
	assertNear(t, "body elapsed", r.elapsed["body"], 0.1)
}

func TestWhileFailsWhenBodyFails(t *testing.T) {
	r := newLeafRunner()
	s := NewState(While(
		WaitForever[timedAction](),
		Action(instant("bad", Failure)),
	))

	status, _ := s.Advance(0.1, r.invoke)
	assertStatus(t, status, Failure)
}

// --- WhenAll ---

func TestWhenAllWaitsForEveryChild(t *testing.T) {
	s := NewState(WhenAll(
		Wait[timedAction](0.5),
		Wait[timedAction](1.0),
	))

	status, _ := s.Advance(0.7, nil)
	assertStatus(t, status, Running)

	status, remaining := s.Advance(0.5, nil)
	assertStatus(t, status, Success)
	assertNear(t, "remaining", remaining, 0.2)
}

func TestWhenAllFailsFast(t *testing.T) {
	r := newLeafRunner()
	s := NewState(WhenAll(
		Wait[timedAction](10),
		Action(instant("bad", Failure)),
	))

	status, _ := s.Advance(0.1, r.invoke)
	assertStatus(t, status, Failure)
}

func TestWhenAllEmptySucceeds(t *testing.T) {
	s := NewState(WhenAll[timedAction]())
	status, _ := s.Advance(0.1, nil)
	assertStatus(t, status, Success)
}

// --- Decorators ---

func TestAlwaysSucceedMasksFailure(t *testing.T) {
	r := newLeafRunner()
	s := NewState(AlwaysSucceed(Action(instant("bad", Failure))))
	status, _ := s.Advance(0.1, r.invoke)
	assertStatus(t, status, Success)
}

func TestFailInvertsTerminalStatus(t *testing.T) {
	r := newLeafRunner()

	s := NewState(Fail(Action(instant("ok", Success))))
	status, _ := s.Advance(0.1, r.invoke)
	assertStatus(t, status, Failure)

	s = NewState(Fail(Action(instant("bad", Failure))))
	status, _ = s.Advance(0.1, r.invoke)
	assertStatus(t, status, Success)
}

func TestFailStaysRunning(t *testing.T) {
	r := newLeafRunner()
	s := NewState(Fail(Action(timed("slow", 1.0))))
	status, _ := s.Advance(0.5, r.invoke)
	assertStatus(t, status, Running)
}
