// Package viewport implements the editor camera: zoom and pan over the
// preview canvas. The camera is view state only; it never mutates the scene
// and is never captured by history.
package viewport

import "math"

// Zoom bounds and the fit-to-view ceiling.
const (
	MinZoom    = 0.1
	MaxZoom    = 5.0
	MaxFitZoom = 1.5
)

// Viewport is the zoom/pan state mapping canvas (preview) coordinates to
// screen coordinates:
//
//	screen = canvas*Zoom + Pan
type Viewport struct {
	Zoom float64
	PanX float64
	PanY float64

	panning bool
}

// New returns a viewport at 1:1 zoom with no pan.
func New() *Viewport {
	return &Viewport{Zoom: 1}
}

// ZoomAtPoint multiplies the zoom by factor, clamped to [MinZoom, MaxZoom],
// and adjusts the pan so the canvas point under the screen position
// (pointerX, pointerY) stays visually fixed.
func (v *Viewport) ZoomAtPoint(pointerX, pointerY, factor float64) {
	old := v.Zoom
	next := clampZoom(old * factor)
	if next == old {
		return
	}

	// Keep the canvas point under the pointer stationary:
	// (pointer - pan) / zoom must be unchanged.
	cx := (pointerX - v.PanX) / old
	cy := (pointerY - v.PanY) / old
	v.Zoom = next
	v.PanX = pointerX - cx*next
	v.PanY = pointerY - cy*next
}

// FitToView sets the zoom so the whole canvas fits inside the available area,
// capped at MaxFitZoom and clamped to the zoom bounds, and resets the pan.
func (v *Viewport) FitToView(availW, availH, canvasW, canvasH float64) {
	if canvasW <= 0 || canvasH <= 0 {
		v.ResetToOneToOne()
		return
	}
	fit := math.Min(availW/canvasW, availH/canvasH)
	fit = math.Min(fit, MaxFitZoom)
	v.Zoom = clampZoom(fit)
	v.PanX = 0
	v.PanY = 0
}

// ResetToOneToOne restores 1:1 zoom and zero pan.
func (v *Viewport) ResetToOneToOne() {
	v.Zoom = 1
	v.PanX = 0
	v.PanY = 0
}

// BeginPan starts a pan gesture (space-held drag or middle-mouse drag).
func (v *Viewport) BeginPan() {
	v.panning = true
}

// Pan shifts the view by the given screen-space deltas. Active only while a
// pan gesture is in progress; otherwise a no-op.
func (v *Viewport) Pan(dx, dy float64) {
	if !v.panning {
		return
	}
	v.PanX += dx
	v.PanY += dy
}

// EndPan finishes the pan gesture.
func (v *Viewport) EndPan() {
	v.panning = false
}

// Panning reports whether a pan gesture is in progress.
func (v *Viewport) Panning() bool {
	return v.panning
}

// CanvasToScreen converts a canvas-space point to screen space.
func (v *Viewport) CanvasToScreen(x, y float64) (sx, sy float64) {
	return x*v.Zoom + v.PanX, y*v.Zoom + v.PanY
}

// ScreenToCanvas converts a screen-space point to canvas space.
func (v *Viewport) ScreenToCanvas(sx, sy float64) (x, y float64) {
	return (sx - v.PanX) / v.Zoom, (sy - v.PanY) / v.Zoom
}

func clampZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}
