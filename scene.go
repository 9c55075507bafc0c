package grove

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/phanxgames/grove/behavior"
)

// Behavior is the concrete behavior type a Scene schedules: a behavior tree
// whose leaves are sprite [Action]s.
type Behavior = behavior.Behavior[Action]

// runningPair is one scheduled behavior against one sprite: the evaluator's
// control-flow cursor plus the current leaf action's continuation. action is
// nil while the current leaf is unbound; it is seeded from the target's live
// state the first time the evaluator reaches that leaf.
type runningPair struct {
	state  *behavior.State[Action]
	action actionState
}

// Scene owns the root sprites and schedules running actions against sprites
// anywhere in the tree, addressed by id.
//
// Scenes are single-threaded and frame-stepped: call [Scene.Update] once per
// time event, then [Scene.Draw]. The two must not interleave.
type Scene struct {
	children      []*Sprite
	childrenIndex map[SpriteID]int

	// running maps a sprite id to its concurrently running behaviors.
	// order pins tick iteration to first-RunAction order so updates are
	// reproducible; ids whose pairs all retire drop out of both.
	running map[SpriteID][]*runningPair
	order   []SpriteID

	log *zap.Logger
}

// NewScene creates an empty scene. Logging is discarded until SetLogger is
// called.
func NewScene() *Scene {
	return &Scene{
		childrenIndex: make(map[SpriteID]int),
		running:       make(map[SpriteID][]*runningPair),
		log:           zap.NewNop(),
	}
}

// SetLogger sets the scene's structured logger. Passing nil restores the
// no-op logger.
func (s *Scene) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	s.log = log
}

// AddChild appends a sprite to the scene's root children and returns its id.
func (s *Scene) AddChild(sprite *Sprite) SpriteID {
	s.children, s.childrenIndex = appendChild(s.children, s.childrenIndex, sprite, nil)
	return sprite.id
}

// Child returns the sprite with the given id, searching the whole tree, or
// nil if the id does not resolve. Root-level sprites are found via the local
// index in O(1); deeper sprites by depth-first scan.
func (s *Scene) Child(id SpriteID) *Sprite {
	return lookupChild(s.children, s.childrenIndex, id)
}

// Children returns the root sprite list. The returned slice MUST NOT be
// mutated by the caller.
func (s *Scene) Children() []*Sprite {
	return s.children
}

// NumChildren returns the number of root sprites.
func (s *Scene) NumChildren() int {
	return len(s.children)
}

// RunAction schedules a behavior against the sprite with the given id. The
// behavior starts unbound; its leaf actions seed themselves from the
// target's live attributes when first reached. Behaviors already running on
// the same id keep running independently — registrations accumulate, they do
// not replace one another.
//
// The id is not checked here: a behavior scheduled against an id that never
// resolves is dropped (and logged) on the next Update.
func (s *Scene) RunAction(id SpriteID, b Behavior) {
	if _, ok := s.running[id]; !ok {
		s.order = append(s.order, id)
	}
	s.running[id] = append(s.running[id], &runningPair{state: behavior.NewState(b)})
}

// RunningActions returns how many behaviors are currently running against
// the sprite with the given id.
func (s *Scene) RunningActions(id SpriteID) int {
	return len(s.running[id])
}

// Update advances every running behavior by dt seconds.
//
// The whole running table is drained into a fresh one: each pair is advanced
// against its target (resolved by id this tick, so actions see attributes
// already mutated by earlier pairs on the same sprite) and re-enqueued only
// while its top-level status is Running. Ids whose pairs have all retired
// vanish from the table. Pairs whose target no longer resolves are dropped
// with a warning rather than silently.
func (s *Scene) Update(dt float64) {
	running := s.running
	order := s.order
	s.running = make(map[SpriteID][]*runningPair, len(running))
	s.order = make([]SpriteID, 0, len(order))

	for _, id := range order {
		pairs := running[id]
		sprite := s.Child(id)
		if sprite == nil {
			s.log.Warn("dropping running actions: target sprite not found",
				zap.Uint32("sprite_id", uint32(id)),
				zap.Int("dropped", len(pairs)))
			continue
		}

		kept := pairs[:0]
		for _, p := range pairs {
			status, _ := p.state.Advance(dt, func(leafDt float64, a Action) (behavior.Status, float64) {
				if p.action == nil {
					p.action = a.bind(sprite)
				}
				next, leafStatus, remaining := p.action.update(sprite, leafDt)
				p.action = next
				return leafStatus, remaining
			})
			if status == behavior.Running {
				kept = append(kept, p)
			}
		}

		if len(kept) > 0 {
			s.running[id] = kept
			s.order = append(s.order, id)
		}
	}
}

// Draw renders every root sprite (and so the whole tree) onto target under
// the given view transform. Draw never mutates the scene.
func (s *Scene) Draw(t Transform, target *ebiten.Image) {
	for _, child := range s.children {
		child.Draw(t, target)
	}
}
