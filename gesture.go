package pfp

import (
	"math"

	"github.com/pfpforge/pfp/scene"
)

// Gesture selects what a pointer drag manipulates.
type Gesture uint8

const (
	// GestureMove drags the layer across the canvas.
	GestureMove Gesture = iota

	// GestureScale drags a corner handle, scaling uniformly about the
	// layer center.
	GestureScale

	// GestureRotate drags the rotation handle around the layer center.
	GestureRotate
)

// Cmd is a discrete keyboard command. Unlike drag frames, key commands are
// completed actions and commit immediately.
type Cmd uint8

const (
	CmdNudgeLeft Cmd = iota
	CmdNudgeRight
	CmdNudgeUp
	CmdNudgeDown
	CmdDelete
	CmdRaise
	CmdLower
	CmdFlipX
	CmdFlipY
	CmdUndo
	CmdRedo
)

// Nudge distances in preview pixels.
const (
	nudgeStep      = 1.0
	nudgeStepLarge = 10.0
)

// wheelStep is the per-notch zoom/scale factor.
const wheelStep = 1.1

// dragState tracks the in-progress pointer gesture. Intermediate frames
// mutate the live layer but never commit; EndDrag commits once.
type dragState struct {
	active  bool
	id      string
	gesture Gesture
	lastX   float64
	lastY   float64
	start   scene.Layer
}

// BeginDrag starts a gesture on the sticker with the given ID at the given
// canvas-space pointer position, selecting it. The background is not
// draggable. Reports whether a gesture started.
func (e *Editor) BeginDrag(id string, g Gesture, x, y float64) bool {
	l := e.scene.FindByID(id)
	if l == nil || l.Kind != scene.KindSticker {
		return false
	}
	e.scene.SetActive(id)
	e.drag = dragState{
		active:  true,
		id:      id,
		gesture: g,
		lastX:   x,
		lastY:   y,
		start:   *l,
	}
	return true
}

// UpdateDrag applies one gesture frame at the new canvas-space pointer
// position: the transform update for the active gesture followed by the
// center-guide snap. Frames never push history.
func (e *Editor) UpdateDrag(x, y float64) {
	if !e.drag.active {
		return
	}
	l := e.scene.FindByID(e.drag.id)
	if l == nil {
		e.drag = dragState{}
		return
	}

	switch e.drag.gesture {
	case GestureMove:
		l.Transform.X += x - e.drag.lastX
		l.Transform.Y += y - e.drag.lastY

	case GestureScale:
		center := l.Center()
		d0 := math.Hypot(e.drag.lastX-center.X, e.drag.lastY-center.Y)
		d1 := math.Hypot(x-center.X, y-center.Y)
		if d0 > 1e-6 {
			f := d1 / d0
			l.Transform.ScaleX *= f
			l.Transform.ScaleY *= f
		}

	case GestureRotate:
		center := l.Center()
		a0 := math.Atan2(e.drag.lastY-center.Y, e.drag.lastX-center.X)
		a1 := math.Atan2(y-center.Y, x-center.X)
		l.Transform.Rotation = wrapDegrees(l.Transform.Rotation + (a1-a0)*180/math.Pi)
	}

	e.snapToCenter(l)
	e.drag.lastX = x
	e.drag.lastY = y
}

// EndDrag finishes the gesture, committing once if the layer changed.
// Reports whether a commit happened.
func (e *Editor) EndDrag() bool {
	if !e.drag.active {
		return false
	}
	l := e.scene.FindByID(e.drag.id)
	changed := l != nil && *l != e.drag.start
	e.drag = dragState{}

	if changed {
		e.commit()
		Logger().Debug("drag committed", "layer", l.ID)
	}
	return changed
}

// Wheel handles a scroll event at the given screen-space pointer position.
// With the zoom modifier held it zooms the viewport about the pointer (a
// camera change, never committed); otherwise it scales the active sticker by
// one step and commits.
func (e *Editor) Wheel(pointerX, pointerY, delta float64, zoomModifier bool) {
	factor := wheelStep
	if delta > 0 {
		factor = 1 / wheelStep
	}

	if zoomModifier {
		e.view.ZoomAtPoint(pointerX, pointerY, factor)
		return
	}

	l := e.activeSticker()
	if l == nil {
		return
	}
	l.Transform.ScaleX *= factor
	l.Transform.ScaleY *= factor
	e.snapToCenter(l)
	e.commit()
}

// KeyCommand executes a discrete keyboard command. Commands that mutate the
// scene commit immediately; no-ops (boundary reorders, nothing selected)
// commit nothing. Reports whether anything changed.
func (e *Editor) KeyCommand(c Cmd, shift bool) bool {
	switch c {
	case CmdUndo:
		return e.Undo()
	case CmdRedo:
		return e.Redo()
	}

	l := e.activeSticker()
	if l == nil {
		return false
	}

	step := nudgeStep
	if shift {
		step = nudgeStepLarge
	}

	switch c {
	case CmdNudgeLeft:
		l.Transform.X -= step
	case CmdNudgeRight:
		l.Transform.X += step
	case CmdNudgeUp:
		l.Transform.Y -= step
	case CmdNudgeDown:
		l.Transform.Y += step
	case CmdDelete:
		return e.RemoveLayer(l.ID)
	case CmdRaise:
		return e.ReorderLayer(l.ID, scene.DirForward)
	case CmdLower:
		return e.ReorderLayer(l.ID, scene.DirBackward)
	case CmdFlipX:
		l.Transform.FlipX = !l.Transform.FlipX
	case CmdFlipY:
		l.Transform.FlipY = !l.Transform.FlipY
	default:
		return false
	}

	e.commit()
	return true
}

// activeSticker returns the selected sticker layer, or nil when nothing is
// selected or the background is selected.
func (e *Editor) activeSticker() *scene.Layer {
	l := e.scene.ActiveLayer()
	if l == nil || l.Kind != scene.KindSticker {
		return nil
	}
	return l
}

// snapToCenter pins the layer center to the canvas center guides when within
// the snap threshold, scaled by the current zoom.
func (e *Editor) snapToCenter(l *scene.Layer) {
	if e.snapThreshold <= 0 {
		return
	}
	center := l.Center()
	snapped, res := scene.ComputeSnap(center, e.scene.CanvasCenter(), e.snapThreshold, e.view.Zoom)
	if !res.Any() {
		return
	}
	l.Transform.X += snapped.X - center.X
	l.Transform.Y += snapped.Y - center.Y
}

// wrapDegrees normalizes an angle into [0, 360).
func wrapDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
