package scene

import (
	"errors"
	"math"

	"github.com/pfpforge/pfp/internal/imaging"
)

// ErrInvalidState is returned when an operation requires prior state that is
// missing, such as re-projecting against zero preview dimensions.
var ErrInvalidState = errors.New("scene: invalid state")

// minScale is the smallest scale factor a layer may carry. Scale factors are
// always positive; mirroring is expressed through the flip flags so that
// scale and flip stay independently invertible.
const minScale = 0.001

// Point is a position in preview-space coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Origin selects the anchor that a transform's position refers to.
type Origin uint8

const (
	// OriginCenter anchors the position at the source's center.
	// All sticker layers use this.
	OriginCenter Origin = iota

	// OriginTopLeft anchors the position at the source's top-left corner.
	// The background layer uses this for its cover/contain placement.
	OriginTopLeft
)

// String returns a human-readable name for the origin mode.
func (o Origin) String() string {
	switch o {
	case OriginCenter:
		return "Center"
	case OriginTopLeft:
		return "TopLeft"
	default:
		return "Unknown"
	}
}

// Transform is the affine state of a single layer.
//
// Position is interpreted relative to Origin. Scale factors are strictly
// positive; FlipX/FlipY mirror the respective axis. Rotation is in degrees,
// applied about the origin point.
type Transform struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	ScaleX   float64 `json:"scaleX"`
	ScaleY   float64 `json:"scaleY"`
	Rotation float64 `json:"rotationDegrees"`
	FlipX    bool    `json:"flipX,omitempty"`
	FlipY    bool    `json:"flipY,omitempty"`
	Origin   Origin  `json:"originMode"`
}

// NewTransform returns a unit transform at the given position.
func NewTransform(x, y float64, origin Origin) Transform {
	return Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1, Origin: origin}
}

// normalized returns a copy with scale factors forced positive.
func (t Transform) normalized() Transform {
	if t.ScaleX < minScale {
		t.ScaleX = minScale
	}
	if t.ScaleY < minScale {
		t.ScaleY = minScale
	}
	return t
}

// Matrix composes the full affine transform for a source with the given
// natural size, mapping source pixel coordinates into preview space.
//
// Composition order: anchor translation, flip-aware scale, rotation, then
// translation to the layer position.
func (t Transform) Matrix(srcW, srcH float64) imaging.Affine {
	n := t.normalized()

	sx := n.ScaleX
	sy := n.ScaleY
	if n.FlipX {
		sx = -sx
	}
	if n.FlipY {
		sy = -sy
	}

	var anchorX, anchorY float64
	if n.Origin == OriginCenter {
		anchorX = srcW / 2
		anchorY = srcH / 2
	}

	m := imaging.Translate(n.X, n.Y)
	if n.Rotation != 0 {
		m = m.Multiply(imaging.Rotate(n.Rotation * math.Pi / 180))
	}
	m = m.Multiply(imaging.Scale(sx, sy))
	return m.Multiply(imaging.Translate(-anchorX, -anchorY))
}

// Center returns the layer's center point in preview space for a source with
// the given natural size.
func (t Transform) Center(srcW, srcH float64) Point {
	if t.Origin == OriginCenter {
		return Point{X: t.X, Y: t.Y}
	}
	x, y := t.Matrix(srcW, srcH).TransformPoint(srcW/2, srcH/2)
	return Point{X: x, Y: y}
}

// Bounds returns the axis-aligned bounding box of the transformed source in
// preview space as (minX, minY, maxX, maxY).
func (t Transform) Bounds(srcW, srcH float64) (minX, minY, maxX, maxY float64) {
	m := t.Matrix(srcW, srcH)
	cx := [4]float64{0, srcW, srcW, 0}
	cy := [4]float64{0, 0, srcH, srcH}

	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for i := range cx {
		px, py := m.TransformPoint(cx[i], cy[i])
		minX = math.Min(minX, px)
		minY = math.Min(minY, py)
		maxX = math.Max(maxX, px)
		maxY = math.Max(maxY, py)
	}
	return minX, minY, maxX, maxY
}

// Reproject converts the transform from preview space to an output space of
// the given dimensions. Position and per-axis scale are multiplied by the
// respective output/preview factors; rotation and flips are copied unchanged.
//
// Returns ErrInvalidState if the preview dimensions are not positive.
func (t Transform) Reproject(outW, outH, previewW, previewH float64) (Transform, error) {
	if previewW <= 0 || previewH <= 0 {
		return Transform{}, ErrInvalidState
	}

	fx := outW / previewW
	fy := outH / previewH

	out := t
	out.X = t.X * fx
	out.Y = t.Y * fy
	out.ScaleX = t.ScaleX * fx
	out.ScaleY = t.ScaleY * fy
	return out.normalized(), nil
}
