// Package export renders a scene at an arbitrary output resolution and
// encodes it as PNG, JPEG, or WebP.
//
// The preview-resolution scene is re-projected into output space: the
// background master image (kept at full natural resolution) is placed with a
// cover or contain policy, and every sticker transform is scaled by the
// output/preview factors.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"math"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/pfpforge/pfp/internal/imaging"
	"github.com/pfpforge/pfp/scene"
)

// Export errors.
var (
	// ErrNoBackground is returned when exporting a scene without a
	// background layer.
	ErrNoBackground = errors.New("export: no background loaded")

	// ErrBadOptions is returned for unrecognized sizes, formats, or
	// option combinations.
	ErrBadOptions = errors.New("export: invalid options")
)

// Format selects the output encoding.
type Format string

// Supported output formats.
const (
	FormatPNG  Format = "png"
	FormatJPG  Format = "jpg"
	FormatWebP Format = "webp"
)

// ParseFormat converts a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPNG, FormatJPG, FormatWebP:
		return Format(s), nil
	case "jpeg":
		return FormatJPG, nil
	default:
		return "", fmt.Errorf("%w: format %q", ErrBadOptions, s)
	}
}

// SizeOriginal exports at the background's natural dimensions.
// Any other recognized size produces a square output of that edge length.
const SizeOriginal = 0

// Sizes lists the recognized square output edge lengths.
var Sizes = []int{512, 1024, 1500, 1080, 400, 128}

// Options configures an export.
type Options struct {
	// Size is SizeOriginal or one of Sizes (square edge length in pixels).
	Size int

	// Format is the output encoding.
	Format Format

	// CropToSquare selects the background placement policy: cover (crop
	// overflow) when true, contain (letterbox) when false.
	CropToSquare bool

	// Quality in [0, 1]; meaningful for jpg and webp, ignored for png.
	Quality float64
}

// Validate checks the options against the recognized configuration set.
func (o Options) Validate() error {
	if _, err := ParseFormat(string(o.Format)); err != nil {
		return err
	}
	if o.Size != SizeOriginal && !validSize(o.Size) {
		return fmt.Errorf("%w: size %d", ErrBadOptions, o.Size)
	}
	return nil
}

func validSize(s int) bool {
	for _, v := range Sizes {
		if v == s {
			return true
		}
	}
	return false
}

// Artifact is an encoded export result.
type Artifact struct {
	Data     []byte
	Width    int
	Height   int
	Filename string
}

// Export renders the scene at the requested resolution and encodes it.
//
// Fails with ErrNoBackground when the scene has no background layer. The
// scene and sources are read-only inputs; a failed export leaves no partial
// state anywhere.
func Export(sc *scene.Scene, sources *scene.Sources, opts Options) (Artifact, error) {
	if err := opts.Validate(); err != nil {
		return Artifact{}, err
	}

	bg, ok := sc.Background()
	if !ok {
		return Artifact{}, ErrNoBackground
	}
	bgImg := sources.Get(bg.SourceID)
	if bgImg == nil {
		return Artifact{}, fmt.Errorf("%w: background source missing", ErrNoBackground)
	}

	previewW, previewH := sc.PreviewSize()
	if previewW <= 0 || previewH <= 0 {
		return Artifact{}, fmt.Errorf("%w: zero preview dimensions", scene.ErrInvalidState)
	}

	outW := bg.NaturalWidth
	outH := bg.NaturalHeight
	if opts.Size != SizeOriginal {
		outW = opts.Size
		outH = opts.Size
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, outW, outH))
	drawBackground(canvas, bgImg, opts.CropToSquare)

	for _, l := range sc.Layers() {
		if l.Kind != scene.KindSticker {
			continue
		}
		src := sources.Get(l.SourceID)
		if src == nil {
			return Artifact{}, fmt.Errorf("%w: sticker source %s missing", scene.ErrInvalidState, l.SourceID)
		}

		rt, err := l.Transform.Reproject(float64(outW), float64(outH), float64(previewW), float64(previewH))
		if err != nil {
			return Artifact{}, err
		}
		m := rt.Matrix(float64(l.NaturalWidth), float64(l.NaturalHeight))
		imaging.Draw(canvas, src, imaging.DrawParams{
			Transform: &m,
			Opacity:   l.Opacity,
			Blend:     l.Blend.Raster(),
		})
	}

	data, err := encode(canvas, opts)
	if err != nil {
		return Artifact{}, err
	}

	return Artifact{
		Data:     data,
		Width:    outW,
		Height:   outH,
		Filename: Filename(outW, outH, opts.Format, time.Now()),
	}, nil
}

// drawBackground places the full-resolution background onto the output
// canvas: cover scales by the larger axis ratio and crops the overflow,
// contain scales by the smaller ratio and letterboxes. Both center the image.
func drawBackground(dst *image.NRGBA, src *image.NRGBA, cover bool) {
	outW := dst.Rect.Dx()
	outH := dst.Rect.Dy()
	scale := backgroundScale(src.Rect.Dx(), src.Rect.Dy(), outW, outH, cover)

	w := int(math.Round(float64(src.Rect.Dx()) * scale))
	h := int(math.Round(float64(src.Rect.Dy()) * scale))
	x := (outW - w) / 2
	y := (outH - h) / 2

	// CatmullRom resampling for the master image; the scaler clips to the
	// destination bounds, which implements the cover crop.
	xdraw.CatmullRom.Scale(dst, image.Rect(x, y, x+w, y+h), src, src.Rect, xdraw.Src, nil)
}

// backgroundScale returns the background scale factor for the given policy:
// cover = max of the axis ratios, contain = min.
func backgroundScale(naturalW, naturalH, outW, outH int, cover bool) float64 {
	rx := float64(outW) / float64(naturalW)
	ry := float64(outH) / float64(naturalH)
	if cover {
		return math.Max(rx, ry)
	}
	return math.Min(rx, ry)
}

// encode serializes the canvas in the requested format. JPEG output is
// flattened onto opaque white first: transparent regions must never encode
// as black.
func encode(canvas *image.NRGBA, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	switch opts.Format {
	case FormatPNG:
		if err := imaging.EncodePNG(&buf, canvas); err != nil {
			return nil, err
		}
	case FormatJPG:
		if err := imaging.EncodeJPEG(&buf, imaging.Flatten(canvas), opts.Quality); err != nil {
			return nil, err
		}
	case FormatWebP:
		if err := imaging.EncodeWebP(&buf, canvas, opts.Quality); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: format %q", ErrBadOptions, opts.Format)
	}
	return buf.Bytes(), nil
}

// Filename suggests a download name of the form
// pfp_<width>x<height>_<YYYYMMDD_HHMMSS>.<ext> using local time.
func Filename(w, h int, format Format, ts time.Time) string {
	return fmt.Sprintf("pfp_%dx%d_%s.%s", w, h, ts.Local().Format("20060102_150405"), format)
}
