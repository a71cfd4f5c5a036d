// Package harmony synthesizes display palettes from colours sampled out of
// artwork. Given a ranked candidate list and a light/dark mode it produces a
// small set of background, shape, and dot tones that stay inside
// perceptually safe saturation/brightness envelopes and away from catalogued
// ugly hue zones.
package harmony

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an immutable HSB colour value.
// Hue is in degrees [0, 360); saturation, brightness, and alpha are in [0, 1].
type Color struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// NewColor builds a Color, clamping every component into its legal domain.
// NaN hue, saturation, or brightness collapse to 0; NaN alpha collapses to 1.
// This is the documented out-of-domain policy: clamp at the boundary, never
// reject.
func NewColor(h, s, b, a float64) Color {
	return Color{
		H: normalizeHue(safeComponent(h, 0)),
		S: clamp01(safeComponent(s, 0)),
		B: clamp01(safeComponent(b, 0)),
		A: clamp01(safeComponent(a, 1)),
	}
}

// NewOpaque builds a fully opaque Color.
func NewOpaque(h, s, b float64) Color {
	return NewColor(h, s, b, 1)
}

// ParseHex parses a "#rrggbb" string into an HSB Color.
func ParseHex(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("parse colour %q: %w", hex, err)
	}
	h, s, v := c.Hsv()
	return NewOpaque(h, s, v), nil
}

// Hex returns the colour as a "#rrggbb" string.
func (c Color) Hex() string {
	return colorful.Hsv(c.H, c.S, c.B).Clamped().Hex()
}

// RGB returns the colour converted to sRGB via go-colorful.
func (c Color) RGB() colorful.Color {
	return colorful.Hsv(c.H, c.S, c.B).Clamped()
}

// RGB255 returns 8-bit sRGB channels, handy for ANSI previews.
func (c Color) RGB255() (uint8, uint8, uint8) {
	return c.RGB().RGB255()
}

// WithAlpha returns a copy of the colour with the given alpha.
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(safeComponent(a, 1))
	return c
}

// String returns a compact human-readable representation.
func (c Color) String() string {
	return fmt.Sprintf("hsb(%.1f, %.2f, %.2f)", c.H, c.S, c.B)
}

// safeComponent replaces NaN with a fallback so malformed numeric input can
// never leak past the boundary.
func safeComponent(v, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return v
}

// normalizeHue wraps a hue into [0, 360).
func normalizeHue(h float64) float64 {
	if math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// clamp01 clamps v into [0, 1].
func clamp01(v float64) float64 {
	if math.IsInf(v, 1) {
		return 1
	}
	if math.IsInf(v, -1) {
		return 0
	}
	return math.Min(1, math.Max(0, v))
}

// clampFloat clamps v into [lo, hi].
func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// hueDistance returns the shortest angular distance between two hues,
// in [0, 180].
func hueDistance(h1, h2 float64) float64 {
	diff := math.Abs(normalizeHue(h1) - normalizeHue(h2))
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// hueDelta returns the signed shortest rotation from `from` to `to`,
// in (-180, 180].
func hueDelta(from, to float64) float64 {
	d := math.Mod(normalizeHue(to)-normalizeHue(from), 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

// clampHueTo pulls a hue to within maxArc degrees of an anchor hue.
// Hues already inside the arc are returned unchanged.
func clampHueTo(h, anchor, maxArc float64) float64 {
	d := hueDelta(anchor, h)
	if math.Abs(d) <= maxArc {
		return normalizeHue(h)
	}
	if d > 0 {
		return normalizeHue(anchor + maxArc)
	}
	return normalizeHue(anchor - maxArc)
}

// rotateHueToward moves a hue a fraction of the way toward a target.
func rotateHueToward(h, target, fraction float64) float64 {
	return normalizeHue(h + hueDelta(h, target)*fraction)
}
