// Package grove is a sprite scene graph with behavior-driven actions for
// [Ebitengine].
//
// Grove provides a tree of uniquely identified sprites with nested
// transforms, plus a per-sprite scheduler that advances time-based actions
// through a behavior-tree evaluator each frame.
//
// # Scene graph
//
// Every visual element is a [Sprite] holding a shared texture, an anchor,
// position, rotation, scale, and flips. Sprites nest; children inherit their
// parent's composed transform. Each sprite has an immutable [SpriteID], the
// sole addressing key:
//
//	scene := grove.NewScene()
//	hero := grove.NewSprite(heroTexture)
//	hero.SetPosition(100, 100)
//	id := scene.AddChild(hero)
//
//	sword := grove.NewSprite(swordTexture)
//	hero.AddChild(sword)
//
// [Scene.Child] resolves a sprite anywhere in the tree by id.
//
// # Actions
//
// An [Action] mutates one sprite over time: [MoveTo], [RotateBy], [FadeOut],
// [Blink], and friends. Compose actions into behavior trees with the
// [behavior] package and schedule them with [Scene.RunAction]:
//
//	scene.RunAction(id, behavior.Sequence(
//		behavior.Action(grove.MoveBy(1.0, 64, 0)),
//		behavior.Wait[grove.Action](0.5),
//		behavior.Action(grove.Ease(ease.OutBounce, grove.MoveBy(1.0, -64, 0))),
//	))
//
// Each frame, deliver the elapsed time and then draw:
//
//	func (g *Game) Update() error {
//		g.scene.Update(1.0 / float64(ebiten.TPS()))
//		return nil
//	}
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		g.scene.Draw(grove.Identity(), screen)
//	}
//
// Actions bind lazily: a relative action like MoveBy measures from wherever
// the sprite is when the action first runs. Behaviors whose target id cannot
// be resolved are dropped and reported through the scene's logger (see
// [Scene.SetLogger]).
//
// [Ebitengine]: https://ebitengine.org
package grove
