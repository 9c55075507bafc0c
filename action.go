package grove

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/grove/behavior"
)

// actionKind discriminates Action variants.
type actionKind uint8

const (
	actMoveTo actionKind = iota
	actMoveBy
	actRotateTo
	actRotateBy
	actScaleTo
	actScaleBy
	actFlipX
	actFlipY
	actShow
	actHide
	actToggleVisibility
	actBlink
	actFadeTo
)

// Action is the leaf-level operation that mutates a sprite's attributes over
// elapsed time. Actions are plain descriptions; running one produces a
// continuation seeded from the target sprite's live state at first binding,
// so e.g. MoveBy is relative to wherever the sprite is when the action
// starts, not when it was scheduled.
type Action struct {
	kind     actionKind
	duration float64
	x, y     float64 // targets or deltas; x doubles as angle / opacity
	flip     bool
	times    int
	easing   ease.TweenFunc // nil means linear
}

// MoveTo moves the sprite to (x, y) over the given number of seconds.
func MoveTo(duration, x, y float64) Action {
	return Action{kind: actMoveTo, duration: duration, x: x, y: y}
}

// MoveBy moves the sprite by (dx, dy), relative to its position when the
// action first runs, over the given number of seconds.
func MoveBy(duration, dx, dy float64) Action {
	return Action{kind: actMoveBy, duration: duration, x: dx, y: dy}
}

// RotateTo rotates the sprite to the given angle in degrees over the given
// number of seconds.
func RotateTo(duration, deg float64) Action {
	return Action{kind: actRotateTo, duration: duration, x: deg}
}

// RotateBy rotates the sprite by the given angle in degrees over the given
// number of seconds.
func RotateBy(duration, deg float64) Action {
	return Action{kind: actRotateBy, duration: duration, x: deg}
}

// ScaleTo scales the sprite to (sx, sy) over the given number of seconds.
func ScaleTo(duration, sx, sy float64) Action {
	return Action{kind: actScaleTo, duration: duration, x: sx, y: sy}
}

// ScaleBy adds (dsx, dsy) to the sprite's scale over the given number of
// seconds.
func ScaleBy(duration, dsx, dsy float64) Action {
	return Action{kind: actScaleBy, duration: duration, x: dsx, y: dsy}
}

// FlipX instantly sets horizontal mirroring.
func FlipX(flipped bool) Action {
	return Action{kind: actFlipX, flip: flipped}
}

// FlipY instantly sets vertical mirroring.
func FlipY(flipped bool) Action {
	return Action{kind: actFlipY, flip: flipped}
}

// Show instantly makes the sprite visible.
func Show() Action {
	return Action{kind: actShow}
}

// Hide instantly makes the sprite invisible.
func Hide() Action {
	return Action{kind: actHide}
}

// ToggleVisibility instantly flips the sprite's visibility.
func ToggleVisibility() Action {
	return Action{kind: actToggleVisibility}
}

// Blink toggles the sprite's visibility the given number of times over the
// given number of seconds, ending in the visibility it started with.
func Blink(duration float64, times int) Action {
	return Action{kind: actBlink, duration: duration, times: times}
}

// FadeIn fades the sprite's opacity to 1 over the given number of seconds.
func FadeIn(duration float64) Action {
	return FadeTo(duration, 1)
}

// FadeOut fades the sprite's opacity to 0 over the given number of seconds.
func FadeOut(duration float64) Action {
	return FadeTo(duration, 0)
}

// FadeTo fades the sprite's opacity to the given value over the given number
// of seconds.
func FadeTo(duration, opacity float64) Action {
	return Action{kind: actFadeTo, duration: duration, x: opacity}
}

// Ease returns a copy of a tween action that interpolates with the given
// easing function instead of linearly. Easing has no effect on instant
// actions or Blink.
func Ease(fn ease.TweenFunc, a Action) Action {
	a.easing = fn
	return a
}

// --- Action states ---

// actionState is the continuation an action carries between ticks. update
// advances the action against the live sprite by dt seconds and returns the
// state to carry forward (nil once terminal, so a later leaf binds fresh),
// the action's status, and the unconsumed portion of dt.
type actionState interface {
	update(sp *Sprite, dt float64) (actionState, behavior.Status, float64)
}

// bind seeds an action's continuation from the target sprite's live state.
func (a Action) bind(sp *Sprite) actionState {
	fn := a.easing
	if fn == nil {
		fn = ease.Linear
	}
	switch a.kind {
	case actMoveTo:
		x, y := sp.x, sp.y
		return newTweenState(a.duration, fn,
			[]float64{x, y}, []float64{a.x, a.y},
			func(sp *Sprite, v []float32) {
				sp.x = float64(v[0])
				sp.y = float64(v[1])
			})
	case actMoveBy:
		x, y := sp.x, sp.y
		return newTweenState(a.duration, fn,
			[]float64{x, y}, []float64{x + a.x, y + a.y},
			func(sp *Sprite, v []float32) {
				sp.x = float64(v[0])
				sp.y = float64(v[1])
			})
	case actRotateTo:
		return newTweenState(a.duration, fn,
			[]float64{sp.rotation}, []float64{a.x},
			func(sp *Sprite, v []float32) {
				sp.rotation = float64(v[0])
			})
	case actRotateBy:
		return newTweenState(a.duration, fn,
			[]float64{sp.rotation}, []float64{sp.rotation + a.x},
			func(sp *Sprite, v []float32) {
				sp.rotation = float64(v[0])
			})
	case actScaleTo:
		return newTweenState(a.duration, fn,
			[]float64{sp.scaleX, sp.scaleY}, []float64{a.x, a.y},
			func(sp *Sprite, v []float32) {
				sp.scaleX = float64(v[0])
				sp.scaleY = float64(v[1])
			})
	case actScaleBy:
		return newTweenState(a.duration, fn,
			[]float64{sp.scaleX, sp.scaleY}, []float64{sp.scaleX + a.x, sp.scaleY + a.y},
			func(sp *Sprite, v []float32) {
				sp.scaleX = float64(v[0])
				sp.scaleY = float64(v[1])
			})
	case actFadeTo:
		return newTweenState(a.duration, fn,
			[]float64{sp.opacity}, []float64{a.x},
			func(sp *Sprite, v []float32) {
				sp.opacity = float64(v[0])
			})
	case actFlipX:
		flip := a.flip
		return instantState{func(sp *Sprite) { sp.flipX = flip }}
	case actFlipY:
		flip := a.flip
		return instantState{func(sp *Sprite) { sp.flipY = flip }}
	case actShow:
		return instantState{func(sp *Sprite) { sp.visible = true }}
	case actHide:
		return instantState{func(sp *Sprite) { sp.visible = false }}
	case actToggleVisibility:
		return instantState{func(sp *Sprite) { sp.visible = !sp.visible }}
	case actBlink:
		return &blinkState{
			duration: a.duration,
			period:   a.duration / float64(2*max(a.times, 1)),
			toggles:  2 * max(a.times, 0),
			base:     sp.visible,
		}
	}
	panic("grove: unknown action")
}

// instantState performs a one-shot mutation, consuming no time.
type instantState struct {
	apply func(sp *Sprite)
}

func (st instantState) update(sp *Sprite, dt float64) (actionState, behavior.Status, float64) {
	st.apply(sp)
	return nil, behavior.Success, dt
}

// tweenState interpolates one or more sprite fields with gween tweens. The
// state does its own elapsed/duration bookkeeping so it can hand the
// evaluator the exact unconsumed time on the tick it finishes.
type tweenState struct {
	tweens   []*gween.Tween
	values   []float32
	ends     []float32
	apply    func(sp *Sprite, values []float32)
	duration float64
	elapsed  float64
}

func newTweenState(duration float64, fn ease.TweenFunc, begins, ends []float64, apply func(*Sprite, []float32)) *tweenState {
	st := &tweenState{
		tweens:   make([]*gween.Tween, len(begins)),
		values:   make([]float32, len(begins)),
		ends:     make([]float32, len(begins)),
		apply:    apply,
		duration: duration,
	}
	for i := range begins {
		st.tweens[i] = gween.New(float32(begins[i]), float32(ends[i]), float32(duration), fn)
		st.ends[i] = float32(ends[i])
	}
	return st
}

func (st *tweenState) update(sp *Sprite, dt float64) (actionState, behavior.Status, float64) {
	if st.duration <= 0 {
		st.apply(sp, st.ends)
		return nil, behavior.Success, dt
	}

	step := dt
	var remaining float64
	finished := st.elapsed+step >= st.duration
	if finished {
		remaining = st.elapsed + step - st.duration
		step = st.duration - st.elapsed
	}
	st.elapsed += step

	for i, tw := range st.tweens {
		v, _ := tw.Update(float32(step))
		st.values[i] = v
	}
	st.apply(sp, st.values)

	if finished {
		return nil, behavior.Success, remaining
	}
	return st, behavior.Running, 0
}

// blinkState toggles visibility on a fixed period. Visibility is derived
// from the phase rather than toggled incrementally, so uneven tick sizes
// cannot skip or double a toggle.
type blinkState struct {
	duration float64
	period   float64
	elapsed  float64
	toggles  int
	base     bool
}

func (st *blinkState) update(sp *Sprite, dt float64) (actionState, behavior.Status, float64) {
	if st.duration <= 0 || st.toggles == 0 {
		sp.visible = st.base
		return nil, behavior.Success, dt
	}

	step := dt
	var remaining float64
	finished := st.elapsed+step >= st.duration
	if finished {
		remaining = st.elapsed + step - st.duration
		step = st.duration - st.elapsed
	}
	st.elapsed += step

	phase := int(st.elapsed / st.period)
	if phase >= st.toggles {
		phase = st.toggles
	}
	sp.visible = st.base == (phase%2 == 0)

	if finished {
		sp.visible = st.base
		return nil, behavior.Success, remaining
	}
	return st, behavior.Running, 0
}
