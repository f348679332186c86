package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/bep/gowebp/libwebp"
	"github.com/bep/gowebp/libwebp/webpoptions"

	// Register decoders for the formats the editor accepts.
	_ "image/gif"

	_ "golang.org/x/image/webp"
)

// Codec errors.
var (
	// ErrDecode is returned when image data cannot be decoded.
	ErrDecode = errors.New("imaging: decode failed")

	// ErrEncode is returned when an image cannot be encoded.
	ErrEncode = errors.New("imaging: encode failed")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("imaging: empty data")
)

// Decode decodes image bytes, auto-detecting the format.
// Supported formats: PNG, JPEG, GIF, WebP.
// The result is always non-premultiplied RGBA.
func Decode(data []byte) (*image.NRGBA, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return ToNRGBA(img), nil
}

// ToNRGBA converts any image to non-premultiplied RGBA.
// Returns the input unchanged when it is already *image.NRGBA with a
// zero-origin rectangle.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Rect, img, bounds.Min, draw.Src)
	return dst
}

// EncodePNG encodes img as PNG. PNG carries alpha natively; the quality
// parameter of the export path does not apply here.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("%w: png: %v", ErrEncode, err)
	}
	return nil
}

// EncodeJPEG encodes img as JPEG with quality in [0, 1].
// JPEG has no alpha channel; the caller must flatten transparency first
// (see Flatten).
func EncodeJPEG(w io.Writer, img image.Image, quality float64) error {
	opts := &jpeg.Options{Quality: qualityScale(quality)}
	if err := jpeg.Encode(w, img, opts); err != nil {
		return fmt.Errorf("%w: jpeg: %v", ErrEncode, err)
	}
	return nil
}

// EncodeWebP encodes img as WebP with quality in [0, 1]. Alpha is preserved.
func EncodeWebP(w io.Writer, img image.Image, quality float64) error {
	opts := webpoptions.EncodingOptions{
		Quality:        qualityScale(quality),
		EncodingPreset: webpoptions.EncodingPresetPicture,
		UseSharpYuv:    true,
	}
	if err := libwebp.Encode(w, img, opts); err != nil {
		return fmt.Errorf("%w: webp: %v", ErrEncode, err)
	}
	return nil
}

// Flatten composites img over an opaque white canvas of the same size.
// Transparent regions become white, never black.
func Flatten(img *image.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(img.Rect)
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
		out.Pix[i+1] = 0xff
		out.Pix[i+2] = 0xff
		out.Pix[i+3] = 0xff
	}
	draw.Draw(out, out.Rect, img, img.Rect.Min, draw.Over)
	return out
}

// qualityScale maps a [0, 1] quality to the 1-100 range the codecs use.
func qualityScale(q float64) int {
	scaled := int(q*100 + 0.5)
	if scaled < 1 {
		scaled = 1
	}
	if scaled > 100 {
		scaled = 100
	}
	return scaled
}
