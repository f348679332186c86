package imaging

import (
	"fmt"
	"strings"
)

// BlendMode selects how source pixels combine with destination pixels.
type BlendMode uint8

const (
	// BlendNormal is standard alpha compositing (source over destination).
	BlendNormal BlendMode = iota

	// BlendMultiply multiplies source and destination channels.
	// The result is always darker or equal: dst * src.
	BlendMultiply

	// BlendScreen is the inverse multiply: 1 - (1-dst)*(1-src).
	// The result is always lighter or equal.
	BlendScreen

	// BlendOverlay multiplies dark destination areas and screens light ones.
	BlendOverlay

	// BlendDarken keeps the darker of source and destination per channel.
	BlendDarken

	// BlendLighten keeps the lighter of source and destination per channel.
	BlendLighten
)

const unknownStr = "Unknown"

// String returns a human-readable name for the blend mode.
func (m BlendMode) String() string {
	switch m {
	case BlendNormal:
		return "Normal"
	case BlendMultiply:
		return "Multiply"
	case BlendScreen:
		return "Screen"
	case BlendOverlay:
		return "Overlay"
	case BlendDarken:
		return "Darken"
	case BlendLighten:
		return "Lighten"
	default:
		return unknownStr
	}
}

// ParseBlendMode converts a mode name (case-insensitive) to a BlendMode.
// Returns an error for unrecognized names.
func ParseBlendMode(s string) (BlendMode, error) {
	switch strings.ToLower(s) {
	case "normal", "":
		return BlendNormal, nil
	case "multiply":
		return BlendMultiply, nil
	case "screen":
		return BlendScreen, nil
	case "overlay":
		return BlendOverlay, nil
	case "darken":
		return BlendDarken, nil
	case "lighten":
		return BlendLighten, nil
	default:
		return BlendNormal, fmt.Errorf("imaging: unknown blend mode %q", s)
	}
}

// blendPixel combines a source pixel with a destination pixel.
// All channels are 8-bit non-premultiplied.
func blendPixel(srcR, srcG, srcB, srcA, dstR, dstG, dstB, dstA uint8, mode BlendMode) (r, g, b, a uint8) {
	if srcA == 0 {
		return dstR, dstG, dstB, dstA
	}

	if mode == BlendNormal {
		return compositeOver(srcR, srcG, srcB, srcA, dstR, dstG, dstB, dstA)
	}

	// Separable blend modes: blend the color channels first, then
	// alpha-composite the blended color over the destination.
	var br, bg, bb uint8
	switch mode {
	case BlendMultiply:
		br = mul8(srcR, dstR)
		bg = mul8(srcG, dstG)
		bb = mul8(srcB, dstB)
	case BlendScreen:
		br = screen8(srcR, dstR)
		bg = screen8(srcG, dstG)
		bb = screen8(srcB, dstB)
	case BlendOverlay:
		br = overlay8(srcR, dstR)
		bg = overlay8(srcG, dstG)
		bb = overlay8(srcB, dstB)
	case BlendDarken:
		br = min8(srcR, dstR)
		bg = min8(srcG, dstG)
		bb = min8(srcB, dstB)
	case BlendLighten:
		br = max8(srcR, dstR)
		bg = max8(srcG, dstG)
		bb = max8(srcB, dstB)
	default:
		br, bg, bb = srcR, srcG, srcB
	}

	// Where the destination is transparent the blend has nothing to act on;
	// fall back to the plain source color so edges keep the sticker's hue.
	if dstA == 0 {
		return compositeOver(srcR, srcG, srcB, srcA, dstR, dstG, dstB, dstA)
	}

	return compositeOver(br, bg, bb, srcA, dstR, dstG, dstB, dstA)
}

// compositeOver applies the Porter-Duff source-over formula on
// non-premultiplied channels.
func compositeOver(srcR, srcG, srcB, srcA, dstR, dstG, dstB, dstA uint8) (r, g, b, a uint8) {
	if srcA == 255 {
		return srcR, srcG, srcB, 255
	}
	if dstA == 0 {
		return srcR, srcG, srcB, srcA
	}

	sa := float64(srcA) / 255.0
	da := float64(dstA) / 255.0
	outA := sa + da*(1-sa)
	if outA == 0 {
		return 0, 0, 0, 0
	}

	r = uint8((float64(srcR)*sa + float64(dstR)*da*(1-sa)) / outA)
	g = uint8((float64(srcG)*sa + float64(dstG)*da*(1-sa)) / outA)
	b = uint8((float64(srcB)*sa + float64(dstB)*da*(1-sa)) / outA)
	a = uint8(outA*255.0 + 0.5)
	return r, g, b, a
}

func mul8(s, d uint8) uint8 {
	return uint8((int(s) * int(d)) / 255)
}

func screen8(s, d uint8) uint8 {
	return uint8(255 - (255-int(s))*(255-int(d))/255)
}

func overlay8(s, d uint8) uint8 {
	if d < 128 {
		return uint8(2 * int(s) * int(d) / 255)
	}
	return uint8(255 - 2*(255-int(s))*(255-int(d))/255)
}

func min8(s, d uint8) uint8 {
	if s < d {
		return s
	}
	return d
}

func max8(s, d uint8) uint8 {
	if s > d {
		return s
	}
	return d
}
