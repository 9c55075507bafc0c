package behavior

// LeafFunc executes a leaf action for up to dt seconds. It returns the
// action's status and how much of dt was left unconsumed. A Running action
// should report 0 remaining; a terminating action reports the time past its
// end so composites can hand it to the next step.
type LeafFunc[A any] func(dt float64, action A) (Status, float64)

// State is the control-flow cursor for one running behavior. It tracks where
// execution currently is inside the (possibly composite) behavior and is
// advanced by elapsed time each frame.
type State[A any] struct {
	behavior Behavior[A]

	elapsed  float64     // Wait: seconds consumed so far
	index    int         // Sequence / Select / While: position in children
	current  *State[A]   // active child cursor
	cond     *State[A]   // If / While condition cursor
	branched bool        // If: condition resolved, current is the chosen branch
	parallel []*State[A] // WhenAll children; nil entries have succeeded
}

// NewState creates the initial cursor for a behavior.
func NewState[A any](b Behavior[A]) *State[A] {
	s := &State[A]{behavior: b}
	switch b.kind {
	case kindSequence, kindSelect:
		if len(b.children) > 0 {
			s.current = NewState(b.children[0])
		}
	case kindWhile:
		s.cond = NewState(*b.cond)
		if len(b.children) > 0 {
			s.current = NewState(b.children[0])
		}
	case kindIf:
		s.cond = NewState(*b.cond)
	case kindWhenAll:
		s.parallel = make([]*State[A], len(b.children))
		for i, child := range b.children {
			s.parallel[i] = NewState(child)
		}
	case kindAlwaysSucceed, kindFail:
		s.current = NewState(*b.sub)
	}
	return s
}

// Advance moves the behavior forward by dt seconds, calling f for every leaf
// action reached. It returns the behavior's top-level status and, when the
// status is terminal, the portion of dt that was not consumed.
func (s *State[A]) Advance(dt float64, f LeafFunc[A]) (Status, float64) {
	switch s.behavior.kind {
	case kindAction:
		return f(dt, s.behavior.action)

	case kindWait:
		if s.elapsed+dt >= s.behavior.duration {
			remaining := s.elapsed + dt - s.behavior.duration
			s.elapsed = s.behavior.duration
			return Success, remaining
		}
		s.elapsed += dt
		return Running, 0

	case kindWaitForever:
		return Running, 0

	case kindSequence:
		return s.advanceSequence(dt, f)

	case kindSelect:
		return s.advanceSelect(dt, f)

	case kindIf:
		return s.advanceIf(dt, f)

	case kindWhile:
		return s.advanceWhile(dt, f)

	case kindWhenAll:
		return s.advanceWhenAll(dt, f)

	case kindAlwaysSucceed:
		status, remaining := s.current.Advance(dt, f)
		if status == Running {
			return Running, 0
		}
		return Success, remaining

	case kindFail:
		status, remaining := s.current.Advance(dt, f)
		switch status {
		case Success:
			return Failure, remaining
		case Failure:
			return Success, remaining
		default:
			return Running, 0
		}
	}
	return Failure, dt
}

func (s *State[A]) advanceSequence(dt float64, f LeafFunc[A]) (Status, float64) {
	steps := s.behavior.children
	remaining := dt
	for s.current != nil {
		status, rem := s.current.Advance(remaining, f)
		switch status {
		case Running:
			return Running, 0
		case Failure:
			return Failure, rem
		}
		s.index++
		if s.index >= len(steps) {
			s.current = nil
			return Success, rem
		}
		s.current = NewState(steps[s.index])
		remaining = rem
	}
	// Empty sequence (or already finished): nothing to do.
	return Success, dt
}

func (s *State[A]) advanceSelect(dt float64, f LeafFunc[A]) (Status, float64) {
	steps := s.behavior.children
	remaining := dt
	for s.current != nil {
		status, rem := s.current.Advance(remaining, f)
		switch status {
		case Running:
			return Running, 0
		case Success:
			return Success, rem
		}
		s.index++
		if s.index >= len(steps) {
			s.current = nil
			return Failure, rem
		}
		s.current = NewState(steps[s.index])
		remaining = rem
	}
	return Failure, dt
}

func (s *State[A]) advanceIf(dt float64, f LeafFunc[A]) (Status, float64) {
	remaining := dt
	if !s.branched {
		status, rem := s.cond.Advance(remaining, f)
		switch status {
		case Running:
			return Running, 0
		case Success:
			s.current = NewState(*s.behavior.onOk)
		case Failure:
			s.current = NewState(*s.behavior.onFail)
		}
		s.branched = true
		remaining = rem
	}
	return s.current.Advance(remaining, f)
}

func (s *State[A]) advanceWhile(dt float64, f LeafFunc[A]) (Status, float64) {
	// The condition gates the loop: once it terminates, so does the While.
	status, remaining := s.cond.Advance(dt, f)
	if status != Running {
		return status, remaining
	}

	body := s.behavior.children
	if s.current == nil {
		return Running, 0
	}
	remaining = dt
	for {
		status, rem := s.current.Advance(remaining, f)
		switch status {
		case Running:
			return Running, 0
		case Failure:
			return Failure, rem
		}
		s.index++
		if s.index >= len(body) {
			s.index = 0
		}
		s.current = NewState(body[s.index])
		// A body of instant steps consumes no time; stop looping rather
		// than restarting it forever within one tick.
		if rem >= remaining {
			return Running, 0
		}
		remaining = rem
	}
}

func (s *State[A]) advanceWhenAll(dt float64, f LeafFunc[A]) (Status, float64) {
	allDone := true
	minRemaining := dt
	for i, child := range s.parallel {
		if child == nil {
			continue
		}
		status, rem := child.Advance(dt, f)
		switch status {
		case Running:
			allDone = false
		case Failure:
			return Failure, rem
		case Success:
			s.parallel[i] = nil
			if rem < minRemaining {
				minRemaining = rem
			}
		}
	}
	if allDone {
		return Success, minRemaining
	}
	return Running, 0
}
