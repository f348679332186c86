package imaging

import (
	"image"
	"math"
)

// InterpolationMode selects how source pixels are sampled during a
// transformed draw.
type InterpolationMode uint8

const (
	// InterpBilinear interpolates between the four neighboring pixels.
	// Default; good quality for scaled and rotated stickers.
	InterpBilinear InterpolationMode = iota

	// InterpNearest picks the closest pixel. Fast but blocky under scaling.
	InterpNearest
)

// String returns a human-readable name for the interpolation mode.
func (m InterpolationMode) String() string {
	switch m {
	case InterpBilinear:
		return "Bilinear"
	case InterpNearest:
		return "Nearest"
	default:
		return unknownStr
	}
}

// DrawParams configures a transformed, blended image draw.
type DrawParams struct {
	// Transform maps source pixel coordinates to destination pixel
	// coordinates. Nil means identity.
	Transform *Affine

	// Opacity scales the source alpha, clamped to [0, 1].
	Opacity float64

	// Blend selects the compositing operation against existing destination
	// content.
	Blend BlendMode

	// Interp selects the sampling mode. Zero value is bilinear.
	Interp InterpolationMode
}

// Draw composites src onto dst in place.
//
// For every destination pixel inside the transformed source bounding box,
// the inverse transform locates the corresponding source position, the
// source is sampled with the configured interpolation, opacity scales the
// sampled alpha, and the result is blended with the destination pixel.
func Draw(dst, src *image.NRGBA, p DrawParams) {
	if dst == nil || src == nil {
		return
	}

	transform := Identity()
	if p.Transform != nil {
		transform = *p.Transform
	}
	inv, ok := transform.Invert()
	if !ok {
		return
	}

	opacity := math.Max(0, math.Min(1, p.Opacity))
	if opacity == 0 {
		return
	}

	srcW := float64(src.Rect.Dx())
	srcH := float64(src.Rect.Dy())

	// Iterate only the destination pixels the transformed source can reach.
	x0, y0, x1, y1 := transformedBounds(transform, srcW, srcH)
	if x0 < dst.Rect.Min.X {
		x0 = dst.Rect.Min.X
	}
	if y0 < dst.Rect.Min.Y {
		y0 = dst.Rect.Min.Y
	}
	if x1 > dst.Rect.Max.X {
		x1 = dst.Rect.Max.X
	}
	if y1 > dst.Rect.Max.Y {
		y1 = dst.Rect.Max.Y
	}
	if x0 >= x1 || y0 >= y1 {
		return
	}

	for dy := y0; dy < y1; dy++ {
		for dx := x0; dx < x1; dx++ {
			// Sample at the pixel center.
			sx, sy := inv.TransformPoint(float64(dx)+0.5, float64(dy)+0.5)
			if sx < 0 || sx > srcW || sy < 0 || sy > srcH {
				continue
			}

			var sr, sg, sb, sa uint8
			if p.Interp == InterpNearest {
				sr, sg, sb, sa = sampleNearest(src, sx, sy)
			} else {
				sr, sg, sb, sa = sampleBilinear(src, sx, sy)
			}
			if sa == 0 {
				continue
			}
			if opacity < 1 {
				sa = uint8(float64(sa) * opacity)
			}

			off := dst.PixOffset(dx, dy)
			dr, dg, db, da := dst.Pix[off], dst.Pix[off+1], dst.Pix[off+2], dst.Pix[off+3]
			r, g, b, a := blendPixel(sr, sg, sb, sa, dr, dg, db, da, p.Blend)
			dst.Pix[off] = r
			dst.Pix[off+1] = g
			dst.Pix[off+2] = b
			dst.Pix[off+3] = a
		}
	}
}

// transformedBounds returns the integer pixel bounding box covering the
// source rectangle (0,0,w,h) mapped through the transform.
func transformedBounds(t Affine, w, h float64) (x0, y0, x1, y1 int) {
	cx := [4]float64{0, w, w, 0}
	cy := [4]float64{0, 0, h, h}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := range cx {
		px, py := t.TransformPoint(cx[i], cy[i])
		minX = math.Min(minX, px)
		minY = math.Min(minY, py)
		maxX = math.Max(maxX, px)
		maxY = math.Max(maxY, py)
	}

	return int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY))
}

// sampleNearest returns the source pixel containing (x, y).
// Coordinates are in source pixel space; out-of-range values clamp to the edge.
func sampleNearest(src *image.NRGBA, x, y float64) (r, g, b, a uint8) {
	ix := clampInt(int(math.Floor(x)), 0, src.Rect.Dx()-1)
	iy := clampInt(int(math.Floor(y)), 0, src.Rect.Dy()-1)
	off := src.PixOffset(src.Rect.Min.X+ix, src.Rect.Min.Y+iy)
	return src.Pix[off], src.Pix[off+1], src.Pix[off+2], src.Pix[off+3]
}

// sampleBilinear interpolates between the four pixels surrounding (x, y).
// Coordinates are in source pixel space; edge pixels are clamped.
func sampleBilinear(src *image.NRGBA, x, y float64) (r, g, b, a uint8) {
	w := src.Rect.Dx()
	h := src.Rect.Dy()

	// Shift so that integer coordinates land on pixel centers.
	fx := x - 0.5
	fy := y - 0.5

	ix := int(math.Floor(fx))
	iy := int(math.Floor(fy))
	tx := fx - float64(ix)
	ty := fy - float64(iy)

	x0 := clampInt(ix, 0, w-1)
	x1 := clampInt(ix+1, 0, w-1)
	y0 := clampInt(iy, 0, h-1)
	y1 := clampInt(iy+1, 0, h-1)

	o00 := src.PixOffset(src.Rect.Min.X+x0, src.Rect.Min.Y+y0)
	o10 := src.PixOffset(src.Rect.Min.X+x1, src.Rect.Min.Y+y0)
	o01 := src.PixOffset(src.Rect.Min.X+x0, src.Rect.Min.Y+y1)
	o11 := src.PixOffset(src.Rect.Min.X+x1, src.Rect.Min.Y+y1)

	lerp2 := func(c int) uint8 {
		top := float64(src.Pix[o00+c])*(1-tx) + float64(src.Pix[o10+c])*tx
		bot := float64(src.Pix[o01+c])*(1-tx) + float64(src.Pix[o11+c])*tx
		return uint8(top*(1-ty) + bot*ty + 0.5)
	}

	return lerp2(0), lerp2(1), lerp2(2), lerp2(3)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
