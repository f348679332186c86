package imaging

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestIdentity(t *testing.T) {
	id := Identity()
	x, y := id.TransformPoint(3.5, -2.25)
	if x != 3.5 || y != -2.25 {
		t.Errorf("Identity().TransformPoint(3.5, -2.25) = (%v, %v), want unchanged", x, y)
	}
	if !id.IsIdentity() {
		t.Error("Identity().IsIdentity() = false, want true")
	}
}

func TestTranslate(t *testing.T) {
	tr := Translate(10, -5)
	x, y := tr.TransformPoint(1, 2)
	if x != 11 || y != -3 {
		t.Errorf("Translate(10,-5).TransformPoint(1,2) = (%v, %v), want (11, -3)", x, y)
	}
}

func TestScale(t *testing.T) {
	s := Scale(2, 3)
	x, y := s.TransformPoint(4, 5)
	if x != 8 || y != 15 {
		t.Errorf("Scale(2,3).TransformPoint(4,5) = (%v, %v), want (8, 15)", x, y)
	}
}

func TestRotateQuarterTurn(t *testing.T) {
	r := Rotate(math.Pi / 2)
	x, y := r.TransformPoint(1, 0)
	if !almostEqual(x, 0) || !almostEqual(y, 1) {
		t.Errorf("Rotate(90deg).TransformPoint(1,0) = (%v, %v), want (0, 1)", x, y)
	}
}

func TestRotateAtKeepsCenterFixed(t *testing.T) {
	r := RotateAt(1.234, 50, 60)
	x, y := r.TransformPoint(50, 60)
	if !almostEqual(x, 50) || !almostEqual(y, 60) {
		t.Errorf("RotateAt pivot moved to (%v, %v), want (50, 60)", x, y)
	}
}

func TestScaleAtKeepsCenterFixed(t *testing.T) {
	s := ScaleAt(3, 0.5, 10, 20)
	x, y := s.TransformPoint(10, 20)
	if !almostEqual(x, 10) || !almostEqual(y, 20) {
		t.Errorf("ScaleAt pivot moved to (%v, %v), want (10, 20)", x, y)
	}
}

func TestMultiplyOrder(t *testing.T) {
	// Translate-then-scale vs scale-then-translate must differ.
	ts := Scale(2, 2).Multiply(Translate(1, 0)) // translate first
	st := Translate(1, 0).Multiply(Scale(2, 2)) // scale first

	x1, _ := ts.TransformPoint(0, 0)
	x2, _ := st.TransformPoint(0, 0)
	if x1 != 2 {
		t.Errorf("scale∘translate at origin x = %v, want 2", x1)
	}
	if x2 != 1 {
		t.Errorf("translate∘scale at origin x = %v, want 1", x2)
	}
}

func TestInvertRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		m    Affine
	}{
		{"translate", Translate(7, -3)},
		{"scale", Scale(2.5, 0.25)},
		{"rotate", Rotate(0.7)},
		{"composite", Translate(3, 4).Multiply(Rotate(1.1)).Multiply(Scale(2, 3))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, ok := tt.m.Invert()
			if !ok {
				t.Fatal("Invert() reported singular for invertible matrix")
			}
			x, y := tt.m.TransformPoint(12.5, -8)
			rx, ry := inv.TransformPoint(x, y)
			if !almostEqual(rx, 12.5) || !almostEqual(ry, -8) {
				t.Errorf("round trip = (%v, %v), want (12.5, -8)", rx, ry)
			}
		})
	}
}

func TestInvertSingular(t *testing.T) {
	if _, ok := Scale(0, 1).Invert(); ok {
		t.Error("Invert() of zero-scale matrix succeeded, want singular")
	}
}
