// Package scene holds the layered scene graph of the compositing editor:
// one optional background layer plus any number of sticker layers, with
// slice order serving as z-order. It also provides the per-layer transform
// model and the center-guide snap used during interactive edits.
package scene

import (
	"fmt"

	"github.com/google/uuid"
)

// MaxPreviewEdge caps the preview canvas's longest edge. Preview dimensions
// keep the background's natural aspect ratio under this cap.
const MaxPreviewEdge = 800

// Direction selects the way a sticker moves through the z-order.
type Direction int8

const (
	// DirForward moves the layer one step toward the top of the stack.
	DirForward Direction = 1

	// DirBackward moves the layer one step toward the bottom of the stack.
	DirBackward Direction = -1
)

// Scene is the ordered layer stack plus the preview canvas dimensions.
//
// The layer slice order IS the z-order: index 0 renders first (bottom).
// When a background exists it always occupies index 0 and is excluded from
// normal layer operations. At most one layer is active (selected) at a time;
// selection belongs to the Scene, not to any Layer.
type Scene struct {
	layers        []Layer
	previewWidth  int
	previewHeight int
	activeID      string
}

// New returns an empty scene with no background and zero preview dimensions.
func New() *Scene {
	return &Scene{}
}

// PreviewSize returns the preview canvas dimensions. Both are zero until a
// background is set.
func (s *Scene) PreviewSize() (w, h int) {
	return s.previewWidth, s.previewHeight
}

// Layers returns the layers bottom-to-top. The slice is a copy; mutate
// layers through the scene's operations.
func (s *Scene) Layers() []Layer {
	out := make([]Layer, len(s.layers))
	copy(out, s.layers)
	return out
}

// LayerCount returns the number of layers including the background.
func (s *Scene) LayerCount() int {
	return len(s.layers)
}

// Background returns a copy of the background layer, if present.
func (s *Scene) Background() (Layer, bool) {
	if len(s.layers) > 0 && s.layers[0].Kind == KindBackground {
		return s.layers[0], true
	}
	return Layer{}, false
}

// HasBackground reports whether a background layer exists.
func (s *Scene) HasBackground() bool {
	_, ok := s.Background()
	return ok
}

// SetBackground creates or replaces the background layer for a source of the
// given natural size, recomputing the preview dimensions from the source's
// aspect ratio (longest edge capped at MaxPreviewEdge) and the background's
// top-left-anchored contain-fit placement.
func (s *Scene) SetBackground(sourceID string, naturalW, naturalH int) error {
	if sourceID == "" || naturalW <= 0 || naturalH <= 0 {
		return fmt.Errorf("%w: background needs a source and positive dimensions", ErrInvalidState)
	}

	s.previewWidth, s.previewHeight = previewDims(naturalW, naturalH)

	bg := Layer{
		ID:            uuid.NewString(),
		Kind:          KindBackground,
		SourceID:      sourceID,
		NaturalWidth:  naturalW,
		NaturalHeight: naturalH,
		Transform:     containFit(naturalW, naturalH, s.previewWidth, s.previewHeight),
		Opacity:       1,
	}

	if len(s.layers) > 0 && s.layers[0].Kind == KindBackground {
		s.layers[0] = bg
	} else {
		s.layers = append([]Layer{bg}, s.layers...)
	}
	return nil
}

// AddLayer appends a sticker layer at the top of the stack, or just above the
// background when atTop is false. Returns the stored layer's ID.
// Background layers cannot be added this way; use SetBackground.
func (s *Scene) AddLayer(l Layer, atTop bool) (string, error) {
	if l.Kind == KindBackground {
		return "", fmt.Errorf("%w: background layers are set via SetBackground", ErrInvalidState)
	}
	l.Kind = KindSticker
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	l.SetOpacity(l.Opacity)
	if !l.Blend.Valid() {
		l.Blend = BlendNormal
	}

	if atTop {
		s.layers = append(s.layers, l)
	} else {
		at := 0
		if len(s.layers) > 0 && s.layers[0].Kind == KindBackground {
			at = 1
		}
		s.layers = append(s.layers[:at], append([]Layer{l}, s.layers[at:]...)...)
	}
	return l.ID, nil
}

// RemoveLayer removes the sticker with the given ID. The background cannot be
// removed through layer operations. Reports whether anything changed.
func (s *Scene) RemoveLayer(id string) bool {
	idx := s.indexOf(id)
	if idx < 0 || s.layers[idx].Kind == KindBackground {
		return false
	}
	s.layers = append(s.layers[:idx], s.layers[idx+1:]...)
	if s.activeID == id {
		s.activeID = ""
	}
	return true
}

// Reorder swaps the sticker with its neighbor in the given direction.
// A no-op at the stack boundaries and for the background; reports whether
// the order changed so callers can skip a history push.
func (s *Scene) Reorder(id string, dir Direction) bool {
	idx := s.indexOf(id)
	if idx < 0 || s.layers[idx].Kind == KindBackground {
		return false
	}

	bottom := 0
	if len(s.layers) > 0 && s.layers[0].Kind == KindBackground {
		bottom = 1
	}

	swap := idx + int(dir)
	if swap < bottom || swap >= len(s.layers) {
		return false
	}
	s.layers[idx], s.layers[swap] = s.layers[swap], s.layers[idx]
	return true
}

// FindByID returns a pointer to the layer with the given ID, or nil.
// The pointer stays valid until the next structural mutation.
func (s *Scene) FindByID(id string) *Layer {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	return &s.layers[idx]
}

// ActiveLayer returns the selected layer, or nil when nothing is selected.
func (s *Scene) ActiveLayer() *Layer {
	if s.activeID == "" {
		return nil
	}
	return s.FindByID(s.activeID)
}

// SetActive selects the layer with the given ID; an empty ID or an unknown ID
// clears the selection. Selection changes never touch history.
func (s *Scene) SetActive(id string) {
	if id != "" && s.indexOf(id) < 0 {
		id = ""
	}
	s.activeID = id
}

// CanvasCenter returns the center of the preview canvas.
func (s *Scene) CanvasCenter() Point {
	return Point{X: float64(s.previewWidth) / 2, Y: float64(s.previewHeight) / 2}
}

func (s *Scene) indexOf(id string) int {
	for i := range s.layers {
		if s.layers[i].ID == id {
			return i
		}
	}
	return -1
}

// previewDims derives preview canvas dimensions from the background's natural
// size: same aspect ratio, longest edge capped at MaxPreviewEdge, never
// upscaled.
func previewDims(naturalW, naturalH int) (w, h int) {
	longest := naturalW
	if naturalH > longest {
		longest = naturalH
	}
	if longest <= MaxPreviewEdge {
		return naturalW, naturalH
	}

	f := float64(MaxPreviewEdge) / float64(longest)
	w = int(float64(naturalW)*f + 0.5)
	h = int(float64(naturalH)*f + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// containFit returns the top-left-anchored transform that letterboxes a
// source of the given natural size into the preview canvas, centered.
func containFit(naturalW, naturalH, previewW, previewH int) Transform {
	sx := float64(previewW) / float64(naturalW)
	sy := float64(previewH) / float64(naturalH)
	scale := sx
	if sy < scale {
		scale = sy
	}

	t := NewTransform(0, 0, OriginTopLeft)
	t.ScaleX = scale
	t.ScaleY = scale
	t.X = (float64(previewW) - float64(naturalW)*scale) / 2
	t.Y = (float64(previewH) - float64(naturalH)*scale) / 2
	return t
}
