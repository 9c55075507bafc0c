package grove

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// SpriteID uniquely identifies a sprite. IDs are assigned once at
// construction and never change; they are the sole addressing key across a
// scene tree.
type SpriteID uint32

// spriteIDCounter is a plain counter (grove is single-threaded).
var spriteIDCounter uint32

func nextSpriteID() SpriteID {
	spriteIDCounter++
	return SpriteID(spriteIDCounter)
}

// Sprite is a positioned, nested, texture-bearing node in the scene tree.
// Sprites own their children exclusively: a sprite belongs to at most one
// parent, which rules out cycles by construction. There is no removal API —
// a subtree lives as long as its owner.
type Sprite struct {
	id SpriteID

	// anchor is the normalized pivot within the texture, in [0, 1] per axis.
	anchorX, anchorY float64

	x, y           float64
	rotation       float64 // degrees
	scaleX, scaleY float64

	flipX, flipY bool

	visible bool
	opacity float64

	// texture is shared read-only; many sprites may hold the same image.
	texture *ebiten.Image

	children      []*Sprite
	childrenIndex map[SpriteID]int // direct children only
}

// NewSprite creates a sprite displaying the given texture, anchored at its
// center, at the origin, unrotated, unscaled, visible, and fully opaque.
func NewSprite(texture *ebiten.Image) *Sprite {
	if texture == nil {
		panic("grove: nil texture")
	}
	return &Sprite{
		id:      nextSpriteID(),
		anchorX: 0.5,
		anchorY: 0.5,
		scaleX:  1,
		scaleY:  1,
		visible: true,
		opacity: 1,
		texture: texture,
	}
}

// ID returns the sprite's unique id.
func (s *Sprite) ID() SpriteID {
	return s.id
}

// Anchor returns the normalized anchor point.
func (s *Sprite) Anchor() (x, y float64) {
	return s.anchorX, s.anchorY
}

// SetAnchor sets the normalized anchor point.
func (s *Sprite) SetAnchor(x, y float64) {
	s.anchorX = x
	s.anchorY = y
}

// Position returns the sprite's parent-relative position.
func (s *Sprite) Position() (x, y float64) {
	return s.x, s.y
}

// SetPosition sets the sprite's parent-relative position.
func (s *Sprite) SetPosition(x, y float64) {
	s.x = x
	s.y = y
}

// Rotation returns the sprite's rotation in degrees.
func (s *Sprite) Rotation() float64 {
	return s.rotation
}

// SetRotation sets the sprite's rotation in degrees.
func (s *Sprite) SetRotation(deg float64) {
	s.rotation = deg
}

// Scale returns the sprite's scale factors.
func (s *Sprite) Scale() (sx, sy float64) {
	return s.scaleX, s.scaleY
}

// SetScale sets the sprite's scale factors.
func (s *Sprite) SetScale(sx, sy float64) {
	s.scaleX = sx
	s.scaleY = sy
}

// FlipX reports whether the sprite is mirrored horizontally.
func (s *Sprite) FlipX() bool {
	return s.flipX
}

// SetFlipX sets horizontal mirroring.
func (s *Sprite) SetFlipX(flip bool) {
	s.flipX = flip
}

// FlipY reports whether the sprite is mirrored vertically.
func (s *Sprite) FlipY() bool {
	return s.flipY
}

// SetFlipY sets vertical mirroring.
func (s *Sprite) SetFlipY(flip bool) {
	s.flipY = flip
}

// Visible reports whether the sprite and its subtree are drawn.
func (s *Sprite) Visible() bool {
	return s.visible
}

// SetVisible shows or hides the sprite. A hidden sprite skips its whole
// subtree during Draw.
func (s *Sprite) SetVisible(visible bool) {
	s.visible = visible
}

// Opacity returns the sprite's opacity in [0, 1].
func (s *Sprite) Opacity() float64 {
	return s.opacity
}

// SetOpacity sets the sprite's opacity in [0, 1].
func (s *Sprite) SetOpacity(opacity float64) {
	s.opacity = opacity
}

// Texture returns the sprite's shared texture.
func (s *Sprite) Texture() *ebiten.Image {
	return s.texture
}

// SetTexture replaces the sprite's texture.
func (s *Sprite) SetTexture(texture *ebiten.Image) {
	if texture == nil {
		panic("grove: nil texture")
	}
	s.texture = texture
}

// --- Tree manipulation & lookup ---

// AddChild appends child to this sprite's children and returns the child's
// id. Panics if child is nil or is this sprite itself. Adding a sprite that
// already has an owner is a programming error; the tree is append-only and
// exclusively owned.
func (s *Sprite) AddChild(child *Sprite) SpriteID {
	s.children, s.childrenIndex = appendChild(s.children, s.childrenIndex, child, s)
	return child.id
}

// Child returns the sprite with the given id, searching this sprite's
// subtree, or nil if the id does not resolve. Direct children are found via
// the local index in O(1); deeper descendants by depth-first scan.
func (s *Sprite) Child(id SpriteID) *Sprite {
	return lookupChild(s.children, s.childrenIndex, id)
}

// Children returns the child list. The returned slice MUST NOT be mutated by
// the caller.
func (s *Sprite) Children() []*Sprite {
	return s.children
}

// NumChildren returns the number of direct children.
func (s *Sprite) NumChildren() int {
	return len(s.children)
}

// appendChild is the shared add-child path for Scene roots and Sprite
// children: append, record id -> position in the owner's local index.
func appendChild(children []*Sprite, index map[SpriteID]int, child, owner *Sprite) ([]*Sprite, map[SpriteID]int) {
	if child == nil {
		panic("grove: cannot add nil child")
	}
	if child == owner {
		panic("grove: cannot add a sprite to itself")
	}
	if index == nil {
		index = make(map[SpriteID]int)
	}
	if _, exists := index[child.id]; exists {
		panic("grove: sprite already added to this parent")
	}
	children = append(children, child)
	index[child.id] = len(children) - 1
	return children, index
}

// lookupChild resolves id within children: O(1) against the local index,
// then a depth-first scan into each child's subtree in array order. Only
// direct children are indexed, so deep lookups cost a walk of the subtree.
func lookupChild(children []*Sprite, index map[SpriteID]int, id SpriteID) *Sprite {
	if i, ok := index[id]; ok {
		return children[i]
	}
	for _, child := range children {
		if found := child.Child(id); found != nil {
			return found
		}
	}
	return nil
}

// --- Drawing ---

// Draw renders the sprite and its subtree onto target under the parent
// transform. The sprite's local transform is parent ∘ translate(position) ∘
// rotate(rotation) ∘ scale(scale); the texture is placed so the anchor point
// lands on the local origin. Children inherit this sprite's composed
// transform, so transforms accumulate multiplicatively down the tree.
func (s *Sprite) Draw(parent Transform, target *ebiten.Image) {
	if !s.visible {
		return
	}

	t := s.localTransform(parent)

	op := &ebiten.DrawImageOptions{}
	op.GeoM = s.modelTransform(t).GeoM()
	op.ColorScale.ScaleAlpha(float32(s.opacity))
	target.DrawImage(s.texture, op)

	for _, child := range s.children {
		child.Draw(t, target)
	}
}

// localTransform composes the sprite's transform under parent, in the fixed
// order translate, rotate, scale. Children inherit this, not the model
// transform: anchor offset and flips affect only the sprite's own texture.
func (s *Sprite) localTransform(parent Transform) Transform {
	return parent.Trans(s.x, s.y).RotDeg(s.rotation).Scale(s.scaleX, s.scaleY)
}

// modelTransform maps the texture's pixel grid under the composed transform
// t: the texture spans [-anchorOffset, textureSize]. Flips are applied after
// the rect is placed: shift by (size - 2*anchorOffset) on the mirrored axis,
// then mirror, which keeps the rect's span in place.
func (s *Sprite) modelTransform(t Transform) Transform {
	w, h := textureSize(s.texture)
	anchorX := s.anchorX * w
	anchorY := s.anchorY * h

	model := t
	if s.flipX {
		model = model.Trans(w-2*anchorX, 0).FlipH()
	}
	if s.flipY {
		model = model.Trans(0, h-2*anchorY).FlipV()
	}
	return model.Trans(-anchorX, -anchorY)
}

// BoundingBox returns the sprite's axis-aligned bounds in its own local
// space: scaled texture size offset by the anchor. Rotation and descendants
// are ignored, so the box is approximate.
func (s *Sprite) BoundingBox() Rect {
	w, h := textureSize(s.texture)
	w *= s.scaleX
	h *= s.scaleY
	return Rect{
		X:      s.x - s.anchorX*w,
		Y:      s.y - s.anchorY*h,
		Width:  w,
		Height: h,
	}
}

// textureSize returns the pixel dimensions of a texture as floats.
func textureSize(img *ebiten.Image) (w, h float64) {
	b := img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}
