package harmony

import (
	"math"
	"strings"
)

// RiskFlag is a set of named hue-danger categories triggered during
// sanitation. Diagnostic only; it never changes behaviour, but it must stay
// reproducible so tests can assert on it.
type RiskFlag uint16

const (
	RiskGreenDanger RiskFlag = 1 << iota
	RiskMuddyYellow
	RiskRedZone
	RiskDirtyPurple
	RiskFluorescentPink
	RiskMuddyCombo
	RiskHospitalGreen
	RiskDarkShadow
	RiskReverseHue
)

var riskNames = []struct {
	flag RiskFlag
	name string
}{
	{RiskGreenDanger, "green-danger"},
	{RiskMuddyYellow, "muddy-yellow"},
	{RiskRedZone, "red-zone"},
	{RiskDirtyPurple, "dirty-purple"},
	{RiskFluorescentPink, "fluorescent-pink"},
	{RiskMuddyCombo, "muddy-combo"},
	{RiskHospitalGreen, "hospital-green"},
	{RiskDarkShadow, "dark-shadow"},
	{RiskReverseHue, "reverse-hue"},
}

// Has reports whether the set contains the given flag.
func (f RiskFlag) Has(flag RiskFlag) bool {
	return f&flag != 0
}

// String lists the triggered categories, comma separated.
func (f RiskFlag) String() string {
	if f == 0 {
		return "none"
	}
	parts := make([]string, 0, 4)
	for _, entry := range riskNames {
		if f.Has(entry.flag) {
			parts = append(parts, entry.name)
		}
	}
	return strings.Join(parts, ",")
}

// The catalogued hue danger zones. Tuned constants; ported literally.
const (
	greenDangerLo = 92.0
	greenDangerHi = 140.0
	greenExitLo   = 90.0
	greenExitHi   = 148.0

	muddyYellowLo     = 45.0
	muddyYellowHi     = 78.0
	muddyYellowAnchor = 42.0

	redZoneLo = 350.0
	redZoneHi = 15.0

	dirtyPurpleLo = 255.0
	dirtyPurpleHi = 290.0

	fluorPinkLo = 300.0
	fluorPinkHi = 335.0

	hospitalHueLo = 118.0
	hospitalHueHi = 142.0
	hospitalSatLo = 0.32
	hospitalSatHi = 0.75
	hospitalBriLo = 0.18
	hospitalBriHi = 0.55
)

// inRedZone reports whether a hue sits in the wraparound red band.
func inRedZone(h float64) bool {
	return h >= redZoneLo || h <= redZoneHi
}

// inHospitalGreen is the "hospital green" predicate; no sanitized colour may
// satisfy it.
func inHospitalGreen(c Color) bool {
	return c.H >= hospitalHueLo && c.H <= hospitalHueHi &&
		c.S >= hospitalSatLo && c.S <= hospitalSatHi &&
		c.B >= hospitalBriLo && c.B <= hospitalBriHi
}

// sanitizer clamps individual colours away from catalogued ugly zones. One
// instance serves a single Make call; it accumulates the triggered risk
// flags for diagnostics.
type sanitizer struct {
	ranges     TierRanges
	isDark     bool
	complexity ComplexityLevel
	nearGray   bool

	flags RiskFlag
}

func newSanitizer(ranges TierRanges, isDark bool, complexity ComplexityLevel, nearGray bool) *sanitizer {
	return &sanitizer{
		ranges:     ranges,
		isDark:     isDark,
		complexity: complexity,
		nearGray:   nearGray,
	}
}

func (sz *sanitizer) flag(f RiskFlag) {
	sz.flags |= f
}

// sanitize runs the full per-colour pipeline for the given element kind.
// The rule order is load-bearing: a later rule may react to a correction an
// earlier rule already made. Do not reorder.
func (sz *sanitizer) sanitize(c Color, kind ElementKind) Color {
	satRange := sz.ranges.SaturationFor(kind)
	briRange := sz.ranges.BrightnessFor(kind)

	h := normalizeHue(c.H)
	s := clamp01(c.S)
	b := briRange.Clamp(clamp01(c.B))

	// Dark shadow cap: permitted saturation shrinks as brightness falls
	// below 0.30, preventing muddy near-black output.
	if b < 0.30 {
		maxS := 0.30 + (b/0.30)*0.25
		if s > maxS {
			s = maxS
			sz.flag(RiskDarkShadow)
		}
	}

	// Brightness-dependent saturation envelope.
	ceil := envelopeCeiling(b)
	floor := envelopeFloor(b)
	if floor > ceil {
		floor = ceil
	}
	s = clampFloat(s, floor, ceil)

	// Hard per-tier/per-mode/per-complexity ceiling.
	s = math.Min(s, sz.hardCeiling(kind))

	h, s, b = sz.applyHueZones(h, s, b, kind, briRange)

	// Monochrome and near-gray covers halve the ceiling once more.
	if sz.complexity == ComplexityMonochrome || sz.nearGray {
		s = math.Min(s, satRange.Max*0.5)
	}

	// Back into the tier envelope, then the targeted hospital-green escape.
	s = satRange.Clamp(s)
	b = briRange.Clamp(b)
	h, s, b = sz.escapeHospitalGreen(h, s, b, briRange)
	s = satRange.Clamp(s)
	b = briRange.Clamp(b)

	return Color{H: h, S: s, B: b, A: c.A}
}

// envelopeCeiling rises from 0.38 below b=0.22 to 0.68 across the 0.40–0.75
// band, then falls back to 0.52 above b=0.88.
func envelopeCeiling(b float64) float64 {
	switch {
	case b < 0.22:
		return 0.38
	case b < 0.40:
		return 0.38 + (b-0.22)/0.18*0.30
	case b <= 0.75:
		return 0.68
	case b <= 0.88:
		return 0.68 - (b-0.75)/0.13*0.16
	default:
		return 0.52
	}
}

// envelopeFloor moves symmetrically between 0.08 at the brightness extremes
// and 0.12 in the mid band.
func envelopeFloor(b float64) float64 {
	switch {
	case b < 0.22 || b > 0.88:
		return 0.08
	case b < 0.40:
		return 0.08 + (b-0.22)/0.18*0.04
	case b <= 0.75:
		return 0.12
	default:
		return 0.12 - (b-0.75)/0.13*0.04
	}
}

// hardCeiling is the per-tier/per-mode cap, shrunk again for simple covers.
func (sz *sanitizer) hardCeiling(kind ElementKind) float64 {
	var ceil float64
	if sz.isDark {
		switch kind {
		case KindBackground:
			ceil = 0.40
		case KindShape:
			ceil = 0.72
		default:
			ceil = 0.82
		}
	} else {
		switch kind {
		case KindBackground:
			ceil = 0.32
		case KindShape:
			ceil = 0.62
		default:
			ceil = 0.72
		}
	}
	switch sz.complexity {
	case ComplexityMonochrome:
		ceil *= 0.5
	case ComplexityLow:
		ceil *= 0.8
	}
	return ceil
}

// applyHueZones walks the ordered chain of hue-zone rules.
func (sz *sanitizer) applyHueZones(h, s, b float64, kind ElementKind, briRange Range) (float64, float64, float64) {
	// Green danger: cap saturation hard, harder still for backgrounds.
	if h >= greenDangerLo && h <= greenDangerHi {
		limit := 0.60
		if kind == KindBackground {
			limit = 0.34
		}
		if s > limit {
			s = limit
			sz.flag(RiskGreenDanger)
		}
	}

	// Muddy yellow: cap saturation, force a brightness floor, pull the hue
	// back toward the warm anchor.
	if h >= muddyYellowLo && h <= muddyYellowHi {
		if s > 0.55 {
			s = 0.55
		}
		if b < 0.52 {
			b = briRange.Clamp(0.52)
		}
		h = rotateHueToward(h, muddyYellowAnchor, 0.30)
		sz.flag(RiskMuddyYellow)
	}

	// Red wraparound: cap saturation and brightness by mode.
	if inRedZone(h) {
		if sz.isDark {
			s = math.Min(s, 0.78)
			b = math.Min(b, briRange.Clamp(0.80))
		} else {
			s = math.Min(s, 0.70)
			b = math.Min(b, briRange.Clamp(0.85))
		}
		sz.flag(RiskRedZone)
	}

	// Dirty purple: dark purples get lifted and desaturated.
	if h >= dirtyPurpleLo && h <= dirtyPurpleHi && b < 0.30 {
		b = briRange.Clamp(0.32)
		s *= 0.80
		sz.flag(RiskDirtyPurple)
	}

	// Fluorescent pink: cap saturation, more when bright.
	if h >= fluorPinkLo && h <= fluorPinkHi {
		limit := 0.62
		if b > 0.80 {
			limit = 0.52
		}
		if s > limit {
			s = limit
			sz.flag(RiskFluorescentPink)
		}
	}

	// Muddy combo: dark plus saturated is mud regardless of hue. Raise
	// brightness when the tier allows it, otherwise narrow saturation.
	if b < 0.28 && s > 0.45 {
		if briRange.Contains(0.34) {
			b = 0.34
		} else {
			s = 0.45
		}
		sz.flag(RiskMuddyCombo)
	}

	return h, s, b
}

// escapeHospitalGreen iteratively moves a colour out of the hospital-green
// sub-band: a gentle pass combining hue shift, desaturation, and a
// brightness floor, then a forced-exit pass if the colour is still inside.
// The forced exit moves the hue itself so later saturation or brightness
// clamps cannot re-enter the zone.
func (sz *sanitizer) escapeHospitalGreen(h, s, b float64, briRange Range) (float64, float64, float64) {
	c := Color{H: h, S: s, B: b}
	if !inHospitalGreen(c) {
		return h, s, b
	}
	sz.flag(RiskHospitalGreen)

	// Gentle pass.
	exit := hospitalExitHue(h)
	h = rotateHueToward(h, exit, 0.5)
	s *= 0.82
	b = briRange.Clamp(math.Max(b, 0.56))

	c = Color{H: h, S: s, B: b}
	if !inHospitalGreen(c) {
		return h, s, b
	}

	// Forced exit: jump the hue clear of the band.
	h = exit
	b = briRange.Clamp(math.Max(b, 0.56))
	return h, s, b
}

// hospitalExitHue is the nearer hue just outside [118, 142].
func hospitalExitHue(h float64) float64 {
	if h < (hospitalHueLo+hospitalHueHi)/2 {
		return hospitalHueLo - 2
	}
	return hospitalHueHi + 4
}
