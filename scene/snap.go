package scene

import "math"

// SnapResult reports which axes snapped to the canvas center guide.
type SnapResult struct {
	X bool
	Y bool
}

// Any reports whether at least one axis snapped.
func (r SnapResult) Any() bool {
	return r.X || r.Y
}

// ComputeSnap pins a layer center to the canvas center guides.
//
// Each axis is evaluated independently: when the distance between the layer
// center and the canvas center on an axis is below threshold/zoom, that axis
// is pinned to the canvas center exactly. Dividing by zoom keeps the snap
// distance constant in screen pixels regardless of the viewport zoom.
//
// This runs on every interactive frame of a move/scale/rotate gesture and is
// a pure function: it never commits anything to history.
func ComputeSnap(center Point, canvasCenter Point, threshold, zoom float64) (Point, SnapResult) {
	if zoom <= 0 {
		zoom = 1
	}
	limit := threshold / zoom

	out := center
	var res SnapResult
	if math.Abs(center.X-canvasCenter.X) < limit {
		out.X = canvasCenter.X
		res.X = true
	}
	if math.Abs(center.Y-canvasCenter.Y) < limit {
		out.Y = canvasCenter.Y
		res.Y = true
	}
	return out, res
}
