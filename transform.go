package grove

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Transform is a 2D affine matrix in [a, b, c, d, tx, ty] layout:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
//
// Methods post-multiply, so a chain reads left to right in parent space:
// Identity().Trans(x, y).RotDeg(r).Scale(sx, sy) positions, then rotates,
// then scales — the order sprites compose their local transform in.
type Transform [6]float64

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{1, 0, 0, 1, 0, 0}
}

// Mul composes two transforms: the result applies o first, then t.
func (t Transform) Mul(o Transform) Transform {
	return Transform{
		t[0]*o[0] + t[2]*o[1],
		t[1]*o[0] + t[3]*o[1],
		t[0]*o[2] + t[2]*o[3],
		t[1]*o[2] + t[3]*o[3],
		t[0]*o[4] + t[2]*o[5] + t[4],
		t[1]*o[4] + t[3]*o[5] + t[5],
	}
}

// Trans appends a translation by (x, y).
func (t Transform) Trans(x, y float64) Transform {
	return Transform{
		t[0], t[1], t[2], t[3],
		t[0]*x + t[2]*y + t[4],
		t[1]*x + t[3]*y + t[5],
	}
}

// RotDeg appends a rotation by the given angle in degrees.
func (t Transform) RotDeg(deg float64) Transform {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return t.Mul(Transform{cos, sin, -sin, cos, 0, 0})
}

// Scale appends a scale by (sx, sy).
func (t Transform) Scale(sx, sy float64) Transform {
	return Transform{
		t[0] * sx, t[1] * sx,
		t[2] * sy, t[3] * sy,
		t[4], t[5],
	}
}

// FlipH appends a horizontal mirror about the local y axis.
func (t Transform) FlipH() Transform {
	return t.Scale(-1, 1)
}

// FlipV appends a vertical mirror about the local x axis.
func (t Transform) FlipV() Transform {
	return t.Scale(1, -1)
}

// Apply maps the point (x, y) through the transform.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t[0]*x + t[2]*y + t[4], t[1]*x + t[3]*y + t[5]
}

// GeoM converts the transform to an ebiten.GeoM for draw submission.
func (t Transform) GeoM() ebiten.GeoM {
	var m ebiten.GeoM
	m.SetElement(0, 0, t[0])
	m.SetElement(0, 1, t[2])
	m.SetElement(0, 2, t[4])
	m.SetElement(1, 0, t[1])
	m.SetElement(1, 1, t[3])
	m.SetElement(1, 2, t[5])
	return m
}
