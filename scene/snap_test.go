package scene

import "testing"

func TestComputeSnap(t *testing.T) {
	canvasCenter := Point{X: 400, Y: 300}

	tests := []struct {
		name      string
		center    Point
		threshold float64
		zoom      float64
		wantX     float64
		wantY     float64
		snapX     bool
		snapY     bool
	}{
		{"both within", Point{X: 396, Y: 303}, 8, 1, 400, 300, true, true},
		{"x only", Point{X: 396, Y: 350}, 8, 1, 400, 350, true, false},
		{"y only", Point{X: 200, Y: 297}, 8, 1, 200, 300, false, true},
		{"neither", Point{X: 100, Y: 100}, 8, 1, 100, 100, false, false},
		{"exactly at threshold is no snap", Point{X: 408, Y: 300}, 8, 1, 408, 300, false, true},
		{"zoom tightens the band", Point{X: 396, Y: 300}, 8, 4, 396, 300, false, true},
		{"zoom widens the band", Point{X: 390, Y: 300}, 8, 0.5, 400, 300, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, res := ComputeSnap(tt.center, canvasCenter, tt.threshold, tt.zoom)
			if got.X != tt.wantX || got.Y != tt.wantY {
				t.Errorf("snapped = (%v, %v), want (%v, %v)", got.X, got.Y, tt.wantX, tt.wantY)
			}
			if res.X != tt.snapX || res.Y != tt.snapY {
				t.Errorf("result = %+v, want X=%v Y=%v", res, tt.snapX, tt.snapY)
			}
		})
	}
}

func TestComputeSnapZeroZoomDefaultsToOne(t *testing.T) {
	got, res := ComputeSnap(Point{X: 402, Y: 300}, Point{X: 400, Y: 300}, 8, 0)
	if !res.X || got.X != 400 {
		t.Errorf("snap with zero zoom = (%v, %+v), want pinned to 400", got.X, res)
	}
}

func TestComputeSnapAlreadyCentered(t *testing.T) {
	center := Point{X: 400, Y: 300}
	got, res := ComputeSnap(center, center, 8, 1)
	if got != center || !res.X || !res.Y {
		t.Errorf("centered layer = (%+v, %+v), want snap on both axes", got, res)
	}
}
