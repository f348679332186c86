package scene

import "github.com/pfpforge/pfp/internal/imaging"

// Kind identifies what a layer holds.
type Kind string

const (
	// KindBackground is the single bottom photo layer.
	KindBackground Kind = "background"

	// KindSticker is a freely transformable overlay layer.
	KindSticker Kind = "sticker"
)

// BlendMode names how a sticker layer composites with the content below it.
// The names follow the CSS compositing vocabulary the editor exposes.
type BlendMode string

// Blend modes available to sticker layers.
const (
	BlendNormal   BlendMode = "normal"
	BlendMultiply BlendMode = "multiply"
	BlendScreen   BlendMode = "screen"
	BlendOverlay  BlendMode = "overlay"
	BlendDarken   BlendMode = "darken"
	BlendLighten  BlendMode = "lighten"
)

// Valid reports whether the blend mode is one of the recognized values.
// The empty string is treated as normal.
func (m BlendMode) Valid() bool {
	switch m {
	case "", BlendNormal, BlendMultiply, BlendScreen, BlendOverlay, BlendDarken, BlendLighten:
		return true
	default:
		return false
	}
}

// Raster converts the blend mode to the compositor's operation.
// Unrecognized values fall back to normal.
func (m BlendMode) Raster() imaging.BlendMode {
	op, err := imaging.ParseBlendMode(string(m))
	if err != nil {
		return imaging.BlendNormal
	}
	return op
}

// Layer is a single visual element on the canvas: the background photo or one
// sticker. All fields are plain values so that copying a Layer is a deep copy;
// pixel data lives in a Sources set keyed by SourceID.
type Layer struct {
	ID            string    `json:"id"`
	Kind          Kind      `json:"kind"`
	SourceID      string    `json:"sourceId"`
	NaturalWidth  int       `json:"naturalWidth"`
	NaturalHeight int       `json:"naturalHeight"`
	Transform     Transform `json:"transform"`
	Opacity       float64   `json:"opacity"`
	Blend         BlendMode `json:"blendMode,omitempty"`
}

// SetOpacity clamps v to [0, 1] and stores it.
func (l *Layer) SetOpacity(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	l.Opacity = v
}

// Center returns the layer's center point in preview space.
func (l *Layer) Center() Point {
	return l.Transform.Center(float64(l.NaturalWidth), float64(l.NaturalHeight))
}

// Bounds returns the layer's axis-aligned bounding box in preview space.
func (l *Layer) Bounds() (minX, minY, maxX, maxY float64) {
	return l.Transform.Bounds(float64(l.NaturalWidth), float64(l.NaturalHeight))
}
