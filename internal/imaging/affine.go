// Package imaging provides the raster plumbing for the compositing engine:
// affine transforms, blended image drawing, and image decode/encode.
//
// All pixel work happens on 8-bit non-premultiplied RGBA (*image.NRGBA).
package imaging

import "math"

// Affine is a 2D affine transformation matrix.
//
// The transformation is stored as the top two rows of a 3x3 matrix:
//
//	| A  B  C |
//	| D  E  F |
//	| 0  0  1 |
//
// so that x' = A*x + B*y + C and y' = D*x + E*y + F.
type Affine struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation.
func Identity() Affine {
	return Affine{A: 1, E: 1}
}

// Translate returns a transformation that shifts points by (tx, ty).
func Translate(tx, ty float64) Affine {
	return Affine{A: 1, C: tx, E: 1, F: ty}
}

// Scale returns a transformation that scales by (sx, sy) around the origin.
// Negative factors mirror the respective axis.
func Scale(sx, sy float64) Affine {
	return Affine{A: sx, E: sy}
}

// Rotate returns a transformation that rotates by angle (radians) around the
// origin. Positive angles rotate clockwise in the image coordinate system
// (y grows downward).
func Rotate(angle float64) Affine {
	sin, cos := math.Sincos(angle)
	return Affine{A: cos, B: -sin, D: sin, E: cos}
}

// RotateAt returns a rotation by angle (radians) around the point (cx, cy).
func RotateAt(angle, cx, cy float64) Affine {
	return Translate(cx, cy).Multiply(Rotate(angle)).Multiply(Translate(-cx, -cy))
}

// ScaleAt returns a scale by (sx, sy) around the point (cx, cy).
func ScaleAt(sx, sy, cx, cy float64) Affine {
	return Translate(cx, cy).Multiply(Scale(sx, sy)).Multiply(Translate(-cx, -cy))
}

// Multiply returns a*other. The result applies other first, then a.
func (a Affine) Multiply(other Affine) Affine {
	return Affine{
		A: a.A*other.A + a.B*other.D,
		B: a.A*other.B + a.B*other.E,
		C: a.A*other.C + a.B*other.F + a.C,
		D: a.D*other.A + a.E*other.D,
		E: a.D*other.B + a.E*other.E,
		F: a.D*other.C + a.E*other.F + a.F,
	}
}

// Invert returns the inverse transformation.
// Reports false if the matrix is singular.
func (a Affine) Invert() (Affine, bool) {
	det := a.A*a.E - a.B*a.D
	if math.Abs(det) < 1e-12 {
		return Affine{}, false
	}
	inv := 1.0 / det
	return Affine{
		A: a.E * inv,
		B: -a.B * inv,
		C: (a.B*a.F - a.C*a.E) * inv,
		D: -a.D * inv,
		E: a.A * inv,
		F: (a.C*a.D - a.A*a.F) * inv,
	}, true
}

// TransformPoint applies the transformation to the point (x, y).
func (a Affine) TransformPoint(x, y float64) (float64, float64) {
	return a.A*x + a.B*y + a.C, a.D*x + a.E*y + a.F
}

// IsIdentity reports whether the matrix is exactly the identity.
func (a Affine) IsIdentity() bool {
	return a == Identity()
}
