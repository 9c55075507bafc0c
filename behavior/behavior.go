package behavior

// Status is the result of advancing a behavior.
type Status uint8

const (
	// Running means the behavior needs more time.
	Running Status = iota
	// Success means the behavior completed.
	Success
	// Failure means the behavior gave up.
	Failure
)

// String returns the status name for logs and test output.
func (s Status) String() string {
	switch s {
	case Running:
		return "Running"
	case Success:
		return "Success"
	case Failure:
		return "Failure"
	default:
		return "Unknown"
	}
}

// kind discriminates Behavior variants. A single flat struct with a tag is
// used instead of an interface hierarchy so behaviors stay plain copyable
// values.
type kind uint8

const (
	kindAction kind = iota
	kindWait
	kindWaitForever
	kindSequence
	kindSelect
	kindIf
	kindWhile
	kindWhenAll
	kindAlwaysSucceed
	kindFail
)

// Behavior describes a leaf or composite time-based operation over an action
// type A. Behaviors are immutable values; running one creates a [State].
type Behavior[A any] struct {
	kind     kind
	action   A
	duration float64
	children []Behavior[A]
	cond     *Behavior[A] // If / While condition
	onOk     *Behavior[A] // If success branch
	onFail   *Behavior[A] // If failure branch
	sub      *Behavior[A] // AlwaysSucceed / Fail wrapped behavior
}

// Action creates a leaf behavior that runs a single action. The action's
// execution is delegated to the [LeafFunc] passed to [State.Advance].
func Action[A any](a A) Behavior[A] {
	return Behavior[A]{kind: kindAction, action: a}
}

// Wait succeeds after the given number of seconds has elapsed.
func Wait[A any](seconds float64) Behavior[A] {
	return Behavior[A]{kind: kindWait, duration: seconds}
}

// WaitForever runs indefinitely and never terminates on its own.
func WaitForever[A any]() Behavior[A] {
	return Behavior[A]{kind: kindWaitForever}
}

// Sequence runs steps in order. It succeeds when every step has succeeded and
// fails as soon as one step fails. Leftover time from a finished step carries
// into the next step within the same advance.
func Sequence[A any](steps ...Behavior[A]) Behavior[A] {
	return Behavior[A]{kind: kindSequence, children: steps}
}

// Select runs steps in order until one succeeds. It fails only when every
// step has failed.
func Select[A any](steps ...Behavior[A]) Behavior[A] {
	return Behavior[A]{kind: kindSelect, children: steps}
}

// If runs cond to completion, then runs onSuccess or onFailure depending on
// the condition's terminal status. Leftover time from the condition carries
// into the chosen branch.
func If[A any](cond, onSuccess, onFailure Behavior[A]) Behavior[A] {
	return Behavior[A]{kind: kindIf, cond: &cond, onOk: &onSuccess, onFail: &onFailure}
}

// While repeats body (as a restarting sequence) for as long as cond reports
// Running. When cond terminates, While terminates with the same status. If
// the body sequence fails, While fails.
func While[A any](cond Behavior[A], body ...Behavior[A]) Behavior[A] {
	return Behavior[A]{kind: kindWhile, cond: &cond, children: body}
}

// WhenAll runs all behaviors in parallel. It succeeds once every behavior has
// succeeded and fails as soon as any one fails.
func WhenAll[A any](all ...Behavior[A]) Behavior[A] {
	return Behavior[A]{kind: kindWhenAll, children: all}
}

// AlwaysSucceed runs b and reports Success regardless of how b terminates.
func AlwaysSucceed[A any](b Behavior[A]) Behavior[A] {
	return Behavior[A]{kind: kindAlwaysSucceed, sub: &b}
}

// Fail runs b and inverts its terminal status: Success becomes Failure and
// Failure becomes Success.
func Fail[A any](b Behavior[A]) Behavior[A] {
	return Behavior[A]{kind: kindFail, sub: &b}
}
