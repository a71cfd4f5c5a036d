package harmony

import (
	"fmt"
	"math"
)

// ElementKind selects which tier ranges and risk rules apply to a colour.
type ElementKind int

const (
	// KindBackground is a background stop.
	KindBackground ElementKind = iota
	// KindShape is a foreground shape tone.
	KindShape
	// KindDot is the single accent dot tone.
	KindDot
)

// String returns the string representation of an ElementKind.
func (k ElementKind) String() string {
	switch k {
	case KindBackground:
		return "background"
	case KindShape:
		return "shape"
	default:
		return "dot"
	}
}

// Range is a closed numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Clamp clamps v into the range.
func (r Range) Clamp(v float64) float64 {
	return clampFloat(v, r.Min, r.Max)
}

// Mid returns the midpoint of the range.
func (r Range) Mid() float64 {
	return (r.Min + r.Max) / 2
}

// Contains reports whether v lies inside the range, with a small epsilon for
// float drift.
func (r Range) Contains(v float64) bool {
	const eps = 1e-9
	return v >= r.Min-eps && v <= r.Max+eps
}

// String renders the range for diagnostics.
func (r Range) String() string {
	return fmt.Sprintf("[%.2f, %.2f]", r.Min, r.Max)
}

// scaleMax shrinks or grows the upper bound, keeping Min ≤ Max.
func (r Range) scaleMax(factor float64) Range {
	r.Max *= factor
	if r.Min > r.Max {
		r.Min = r.Max
	}
	return r
}

// TierRanges holds the six brightness/saturation target ranges for the
// three element tiers.
type TierRanges struct {
	BackgroundS Range `json:"background_s"`
	BackgroundB Range `json:"background_b"`
	ShapeS      Range `json:"shape_s"`
	ShapeB      Range `json:"shape_b"`
	DotS        Range `json:"dot_s"`
	DotB        Range `json:"dot_b"`
}

// SaturationFor returns the saturation range for a kind.
func (t TierRanges) SaturationFor(kind ElementKind) Range {
	switch kind {
	case KindBackground:
		return t.BackgroundS
	case KindShape:
		return t.ShapeS
	default:
		return t.DotS
	}
}

// BrightnessFor returns the brightness range for a kind.
func (t TierRanges) BrightnessFor(kind ElementKind) Range {
	switch kind {
	case KindBackground:
		return t.BackgroundB
	case KindShape:
		return t.ShapeB
	default:
		return t.DotB
	}
}

// The cross-tier gaps the enforcer and calculator both guarantee.
// Tuned constants; the dark/light brightness gaps differ on purpose.
const (
	saturationGap      = 0.06
	brightnessGapMajor = 0.10 // background vs shape
	brightnessGapMinor = 0.08 // shape vs dot
)

// baseTierRanges returns the mode-dependent starting ranges. Dark mode uses
// lower brightness tiers and wider saturation ceilings; light mode flips the
// brightness hierarchy and narrows the ceilings.
func baseTierRanges(isDark bool) TierRanges {
	if isDark {
		return TierRanges{
			BackgroundS: Range{0.12, 0.34},
			BackgroundB: Range{0.16, 0.30},
			ShapeS:      Range{0.42, 0.68},
			ShapeB:      Range{0.42, 0.62},
			DotS:        Range{0.48, 0.78},
			DotB:        Range{0.70, 0.88},
		}
	}
	return TierRanges{
		BackgroundS: Range{0.08, 0.26},
		BackgroundB: Range{0.84, 0.95},
		ShapeS:      Range{0.36, 0.60},
		ShapeB:      Range{0.52, 0.70},
		DotS:        Range{0.42, 0.70},
		DotB:        Range{0.30, 0.44},
	}
}

// CalculateTierRanges computes the six target ranges for one palette. The
// adjustments apply in a fixed sequence; each may reopen an earlier one, so
// the hard background/shape separation runs last.
func CalculateTierRanges(stats Statistics, isDark, nearGray bool) TierRanges {
	t := baseTierRanges(isDark)

	// Very dark or very desaturated covers get their envelopes nudged
	// before any classification-driven shaping.
	if stats.CoverLuma < 0.18 {
		if isDark {
			t.BackgroundB.Min = clampFloat(t.BackgroundB.Min-0.04, 0.08, 1)
			t.BackgroundB.Max -= 0.02
		} else {
			t.BackgroundB.Min += 0.01
		}
	}
	if stats.AvgSaturation < 0.10 {
		t.BackgroundS = t.BackgroundS.scaleMax(0.85)
		t.ShapeS = t.ShapeS.scaleMax(0.85)
		t.DotS = t.DotS.scaleMax(0.85)
	}

	// Monochrome and low-complexity covers, and near-gray covers, shrink
	// the saturation ceilings so the palette reads calm.
	if stats.Kind == CoverGrayscaleTrue {
		t.BackgroundS = Range{0, 0.02}
		t.ShapeS = Range{0.02, 0.10}
		t.DotS = Range{0.02, 0.12}
	} else {
		switch stats.Complexity {
		case ComplexityMonochrome:
			t.BackgroundS = t.BackgroundS.scaleMax(0.30)
			t.ShapeS = t.ShapeS.scaleMax(0.30)
			t.DotS = t.DotS.scaleMax(0.35)
		case ComplexityLow:
			t.BackgroundS = t.BackgroundS.scaleMax(0.75)
			t.ShapeS = t.ShapeS.scaleMax(0.80)
			t.DotS = t.DotS.scaleMax(0.80)
		}
		if nearGray {
			t.BackgroundS = t.BackgroundS.scaleMax(0.55)
			t.ShapeS = t.ShapeS.scaleMax(0.60)
			t.DotS = t.DotS.scaleMax(0.65)
		}
	}

	// Low-saturation-but-colourful covers earn their vividness back.
	if stats.Kind == CoverLowSatColor {
		t.ShapeS.Max = clampFloat(t.ShapeS.Max*1.20, t.ShapeS.Min, 0.72)
		t.DotS.Max = clampFloat(t.DotS.Max*1.20, t.DotS.Min, 0.80)
		if isDark {
			t.ShapeB.Max = clampFloat(t.ShapeB.Max+0.03, t.ShapeB.Min, 0.66)
			t.DotB.Max = clampFloat(t.DotB.Max+0.02, t.DotB.Min, 0.90)
			// Keep the shape/dot gap intact under the lifted ceiling.
			if t.DotB.Min < t.ShapeB.Max+brightnessGapMinor {
				t.DotB.Min = math.Min(t.ShapeB.Max+brightnessGapMinor, t.DotB.Max)
			}
		} else {
			t.ShapeB.Min = clampFloat(t.ShapeB.Min-0.03, 0.46, t.ShapeB.Max)
			if t.DotB.Max > t.ShapeB.Min-brightnessGapMinor {
				t.DotB.Max = math.Max(t.ShapeB.Min-brightnessGapMinor, t.DotB.Min)
			}
		}
	}

	// Hard separation: background saturation ceiling must sit at least
	// saturationGap below the shape floor; raise the shape floor first if
	// the band has collapsed.
	if t.ShapeS.Min < t.BackgroundS.Max+saturationGap {
		t.ShapeS.Min = clampFloat(t.BackgroundS.Max+saturationGap, 0, t.ShapeS.Max)
	}
	if t.BackgroundS.Max > t.ShapeS.Min-saturationGap {
		t.BackgroundS.Max = math.Max(0, t.ShapeS.Min-saturationGap)
		if t.BackgroundS.Min > t.BackgroundS.Max {
			t.BackgroundS.Min = t.BackgroundS.Max
		}
	}

	return t
}
