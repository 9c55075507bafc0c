// Package behavior is a small generic behavior-tree evaluator.
//
// A [Behavior] describes a leaf or composite time-based operation as a value:
// leaves wrap an arbitrary action type A, composites ([Sequence], [Select],
// [While], [WhenAll], ...) combine sub-behaviors. The package knows nothing
// about what an action does — callers supply a [LeafFunc] that executes leaf
// actions when [State.Advance] reaches them.
//
// A [State] is the resumable control-flow cursor for one running behavior.
// Each frame, advance it by the elapsed time:
//
//	state := behavior.NewState(behavior.Sequence(
//		behavior.Wait[MyAction](0.5),
//		behavior.Action(myAction),
//	))
//	status, _ := state.Advance(dt, func(dt float64, a MyAction) (behavior.Status, float64) {
//		// run a for up to dt seconds, report how much was left over
//		return behavior.Success, 0
//	})
//
// Composites subdivide a single advance across multiple leaf invocations: when
// a Wait finishes partway through a tick, the leftover time flows into the
// next step of the sequence within the same Advance call.
package behavior
