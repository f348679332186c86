package imaging

import (
	"image"
	"testing"
)

// solidNRGBA creates a w x h image filled with the given color.
func solidNRGBA(w, h int, r, g, b, a uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

func pixelAt(img *image.NRGBA, x, y int) (r, g, b, a uint8) {
	off := img.PixOffset(x, y)
	return img.Pix[off], img.Pix[off+1], img.Pix[off+2], img.Pix[off+3]
}

func TestDrawIdentityCopiesPixels(t *testing.T) {
	dst := solidNRGBA(8, 8, 0, 0, 0, 255)
	src := solidNRGBA(8, 8, 200, 100, 50, 255)

	Draw(dst, src, DrawParams{Opacity: 1})

	r, g, b, a := pixelAt(dst, 4, 4)
	if r != 200 || g != 100 || b != 50 || a != 255 {
		t.Errorf("center pixel = (%d,%d,%d,%d), want (200,100,50,255)", r, g, b, a)
	}
}

func TestDrawTranslatedPlacement(t *testing.T) {
	dst := solidNRGBA(16, 16, 0, 0, 0, 255)
	src := solidNRGBA(4, 4, 255, 255, 255, 255)

	tr := Translate(8, 8)
	Draw(dst, src, DrawParams{Transform: &tr, Opacity: 1})

	if r, _, _, _ := pixelAt(dst, 10, 10); r != 255 {
		t.Errorf("pixel inside translated source = %d, want 255", r)
	}
	if r, _, _, _ := pixelAt(dst, 2, 2); r != 0 {
		t.Errorf("pixel outside translated source = %d, want 0 (untouched)", r)
	}
}

func TestDrawScaleCoversLargerArea(t *testing.T) {
	dst := solidNRGBA(20, 20, 0, 0, 0, 255)
	src := solidNRGBA(5, 5, 255, 0, 0, 255)

	tr := Scale(2, 2)
	Draw(dst, src, DrawParams{Transform: &tr, Opacity: 1})

	// The 5x5 source scaled 2x covers (0,0)-(10,10).
	if r, _, _, _ := pixelAt(dst, 9, 9); r != 255 {
		t.Errorf("pixel inside scaled source = %d, want 255", r)
	}
	if r, _, _, _ := pixelAt(dst, 12, 12); r != 0 {
		t.Errorf("pixel outside scaled source = %d, want 0", r)
	}
}

func TestDrawOpacityScalesAlpha(t *testing.T) {
	dst := solidNRGBA(4, 4, 0, 0, 0, 255)
	src := solidNRGBA(4, 4, 255, 255, 255, 255)

	Draw(dst, src, DrawParams{Opacity: 0.5})

	r, _, _, a := pixelAt(dst, 2, 2)
	if a != 255 {
		t.Errorf("alpha = %d, want 255 (opaque destination)", a)
	}
	if r < 117 || r > 137 {
		t.Errorf("half-opacity white over black = %d, want ~127", r)
	}
}

func TestDrawZeroOpacityIsNoop(t *testing.T) {
	dst := solidNRGBA(4, 4, 9, 9, 9, 255)
	src := solidNRGBA(4, 4, 255, 255, 255, 255)

	Draw(dst, src, DrawParams{Opacity: 0})

	if r, _, _, _ := pixelAt(dst, 1, 1); r != 9 {
		t.Errorf("zero-opacity draw modified destination: %d", r)
	}
}

func TestDrawSingularTransformIsNoop(t *testing.T) {
	dst := solidNRGBA(4, 4, 9, 9, 9, 255)
	src := solidNRGBA(4, 4, 255, 255, 255, 255)

	tr := Scale(0, 0)
	Draw(dst, src, DrawParams{Transform: &tr, Opacity: 1})

	if r, _, _, _ := pixelAt(dst, 1, 1); r != 9 {
		t.Errorf("singular transform modified destination: %d", r)
	}
}

func TestDrawOffCanvasClipped(t *testing.T) {
	dst := solidNRGBA(4, 4, 0, 0, 0, 255)
	src := solidNRGBA(4, 4, 255, 255, 255, 255)

	// Entirely outside the destination; must not panic or write.
	tr := Translate(100, 100)
	Draw(dst, src, DrawParams{Transform: &tr, Opacity: 1})

	if r, _, _, _ := pixelAt(dst, 2, 2); r != 0 {
		t.Errorf("off-canvas draw modified destination: %d", r)
	}
}

func TestDrawMultiplyBlend(t *testing.T) {
	dst := solidNRGBA(4, 4, 128, 128, 128, 255)
	src := solidNRGBA(4, 4, 128, 128, 128, 255)

	Draw(dst, src, DrawParams{Opacity: 1, Blend: BlendMultiply})

	if r, _, _, _ := pixelAt(dst, 2, 2); r != 64 {
		t.Errorf("multiply blend = %d, want 64", r)
	}
}

func TestDrawNearestVsBilinearBothCover(t *testing.T) {
	for _, interp := range []InterpolationMode{InterpNearest, InterpBilinear} {
		t.Run(interp.String(), func(t *testing.T) {
			dst := solidNRGBA(10, 10, 0, 0, 0, 255)
			src := solidNRGBA(5, 5, 255, 0, 0, 255)
			tr := Scale(2, 2)
			Draw(dst, src, DrawParams{Transform: &tr, Opacity: 1, Interp: interp})
			if r, _, _, _ := pixelAt(dst, 5, 5); r != 255 {
				t.Errorf("interior pixel = %d, want 255", r)
			}
		})
	}
}
