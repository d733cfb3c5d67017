// Package color implements the tagged-union terminal color model: the
// Normal/Standard/Bright/Extended/RGB variants, their precomputed SGR
// parameter strings, the 256-color cube + grayscale ramp mapping, and the
// nearest-palette down-conversion functions used when a terminal cannot
// display the color a caller asked for.
package color

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Kind tags which variant of the color union a Color holds.
type Kind uint8

const (
	// KindNormal is the terminal's default foreground/background.
	KindNormal Kind = iota
	// KindStandard is one of the 8 standard ANSI colors (0-7).
	KindStandard
	// KindBright is one of the 8 bright ANSI colors (0-7).
	KindBright
	// KindExtended is a 256-color palette index (0-255).
	KindExtended
	// KindRGB is a 24-bit true color.
	KindRGB
)

// Color is a tagged union over the terminal color variants. Values are
// immutable; construct via Normal, Standard, Bright, Extended, or RGB.
type Color struct {
	kind  Kind
	index uint8 // Standard/Bright: 0-7. Extended: 0-255.
	r, g, b uint8
	fgParam string
	bgParam string
}

// Normal returns the terminal's default color.
func Normal() Color {
	return Color{kind: KindNormal, fgParam: "39", bgParam: "49"}
}

// Standard returns one of the 8 standard ANSI colors. n is clamped to 0-7.
func Standard(n int) Color {
	n = clamp(n, 0, 7)
	return Color{
		kind:    KindStandard,
		index:   uint8(n),
		fgParam: fmt.Sprintf("%d", 30+n),
		bgParam: fmt.Sprintf("%d", 40+n),
	}
}

// Bright returns one of the 8 bright ANSI colors. n is clamped to 0-7.
func Bright(n int) Color {
	n = clamp(n, 0, 7)
	return Color{
		kind:    KindBright,
		index:   uint8(n),
		fgParam: fmt.Sprintf("%d", 90+n),
		bgParam: fmt.Sprintf("%d", 100+n),
	}
}

// Extended returns a 256-color palette color. n is clamped to 0-255.
func Extended(n int) Color {
	n = clamp(n, 0, 255)
	return Color{
		kind:    KindExtended,
		index:   uint8(n),
		fgParam: fmt.Sprintf("38;5;%d", n),
		bgParam: fmt.Sprintf("48;5;%d", n),
	}
}

// RGB returns a 24-bit true color.
func RGB(r, g, b uint8) Color {
	return Color{
		kind:    KindRGB,
		r:       r,
		g:       g,
		b:       b,
		fgParam: fmt.Sprintf("38;2;%d;%d;%d", r, g, b),
		bgParam: fmt.Sprintf("48;2;%d;%d;%d", r, g, b),
	}
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// Kind returns the variant tag.
func (c Color) Kind() Kind { return c.kind }

// Index returns the palette index for Standard, Bright, or Extended colors.
func (c Color) Index() int { return int(c.index) }

// FgParam returns the precomputed SGR parameter string for use as a
// foreground color (e.g. "38;2;255;0;0"), without the leading CSI or
// trailing "m".
func (c Color) FgParam() string { return c.fgParam }

// BgParam returns the precomputed SGR parameter string for use as a
// background color, without the leading CSI or trailing "m".
func (c Color) BgParam() string { return c.bgParam }

// Equals reports whether c and other are the same tag with the same payload.
func (c Color) Equals(other Color) bool {
	if c.kind != other.kind {
		return false
	}
	switch c.kind {
	case KindNormal:
		return true
	case KindStandard, KindBright, KindExtended:
		return c.index == other.index
	case KindRGB:
		return c.r == other.r && c.g == other.g && c.b == other.b
	default:
		return false
	}
}

// optimizedExtended maps a raw 0..255 value into the tightest-fitting
// variant: 0..15 becomes Standard/Bright, 16..255 stays Extended.
func optimizedExtended(n int) Color {
	n = clamp(n, 0, 255)
	switch {
	case n < 8:
		return Standard(n)
	case n < 16:
		return Bright(n - 8)
	default:
		return Extended(n)
	}
}

// ansi16RGB is the standard ANSI 16-color palette in RGB, indices 0-15
// (0-7 standard, 8-15 bright).
var ansi16RGB = [16][3]uint8{
	{0, 0, 0}, {170, 0, 0}, {0, 170, 0}, {170, 85, 0},
	{0, 0, 170}, {170, 0, 170}, {0, 170, 170}, {170, 170, 170},
	{85, 85, 85}, {255, 85, 85}, {85, 255, 85}, {255, 255, 85},
	{85, 85, 255}, {255, 85, 255}, {85, 255, 255}, {255, 255, 255},
}

// cubeRGB returns the RGB value for a 256-color palette index using the
// standard 6x6x6 color cube (16-231) + 24-step grayscale ramp (232-255)
// mapping, falling back to the 16-color table for 0-15.
func cubeRGB(idx int) (r, g, b uint8) {
	idx = clamp(idx, 0, 255)
	switch {
	case idx < 16:
		c := ansi16RGB[idx]
		return c[0], c[1], c[2]
	case idx < 232:
		n := idx - 16
		bl := n % 6
		gr := (n / 6) % 6
		rd := n / 36
		return uint8(rd * 51), uint8(gr * 51), uint8(bl * 51)
	default:
		gray := uint8((idx-232)*10 + 8)
		return gray, gray, gray
	}
}

// getRgb resolves any Color variant to a concrete RGB triple. Normal
// resolves to light gray (192,192,192), a typical terminal default
// foreground, whether it is used as foreground or background —
// callers that care about the terminal's actual default should not call
// getRgb on Normal colors in the first place.
func getRgb(c Color) (r, g, b uint8) {
	switch c.kind {
	case KindNormal:
		return 192, 192, 192
	case KindStandard:
		rgb := ansi16RGB[c.index]
		return rgb[0], rgb[1], rgb[2]
	case KindBright:
		rgb := ansi16RGB[c.index+8]
		return rgb[0], rgb[1], rgb[2]
	case KindExtended:
		return cubeRGB(int(c.index))
	case KindRGB:
		return c.r, c.g, c.b
	default:
		return 0, 0, 0
	}
}

// GetRGB is the exported form of getRgb.
func GetRGB(c Color) (r, g, b uint8) { return getRgb(c) }

func colorfulOf(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// nearest finds the index into candidates whose RGB is perceptually
// closest (CIE76) to target.
func nearest(target colorful.Color, candidates [][3]uint8) int {
	best := 0
	bestDist := -1.0
	for i, c := range candidates {
		d := target.DistanceCIE76(colorfulOf(c[0], c[1], c[2]))
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// toStandard down-converts any color to the nearest of the 8 standard
// (non-bright) ANSI colors.
func toStandard(c Color) Color {
	r, g, b := getRgb(c)
	target := colorfulOf(r, g, b)
	candidates := make([][3]uint8, 8)
	for i := 0; i < 8; i++ {
		candidates[i] = ansi16RGB[i]
	}
	return Standard(nearest(target, candidates))
}

// toAnsi down-converts any color to the nearest of the 16 standard+bright
// ANSI colors.
func toAnsi(c Color) Color {
	r, g, b := getRgb(c)
	target := colorfulOf(r, g, b)
	candidates := make([][3]uint8, 16)
	for i := 0; i < 16; i++ {
		candidates[i] = ansi16RGB[i]
	}
	idx := nearest(target, candidates)
	if idx < 8 {
		return Standard(idx)
	}
	return Bright(idx - 8)
}

// toExtended down-converts any color to the nearest 256-color palette
// index (the 6x6x6 cube plus the grayscale ramp).
func toExtended(c Color) Color {
	r, g, b := getRgb(c)
	target := colorfulOf(r, g, b)
	candidates := make([][3]uint8, 256)
	for i := 0; i < 256; i++ {
		rr, gg, bb := cubeRGB(i)
		candidates[i] = [3]uint8{rr, gg, bb}
	}
	return Extended(nearest(target, candidates))
}

// ToStandard is the exported form of toStandard.
func ToStandard(c Color) Color { return toStandard(c) }

// ToAnsi is the exported form of toAnsi.
func ToAnsi(c Color) Color { return toAnsi(c) }

// ToExtended is the exported form of toExtended.
func ToExtended(c Color) Color { return toExtended(c) }

// OptimizedExtended is the exported form of optimizedExtended.
func OptimizedExtended(n int) Color { return optimizedExtended(n) }
