package harmony

import "math"

// synthesizer builds the three colour pools for one palette. It owns the
// sanitizer so risk flags accumulate across every colour it emits.
type synthesizer struct {
	stats    Statistics
	ranges   TierRanges
	san      *sanitizer
	primary  float64
	isDark   bool
	nearGray bool
}

// Per-slot perturbation tables for the shape pool, applied cyclically
// around the luma-matched midpoints. Tuned constants; ported literally.
var (
	shapeBrightnessOffsets = []float64{0, 0.05, -0.04, 0.08, -0.06, 0.03}
	shapeSaturationOffsets = []float64{0, -0.05, 0.06, -0.03, 0.08, -0.06}
)

// Hue offset ladders for the three shape bands, degrees from the band
// anchor. The majority ladder stays within 18°, the expanded ladder within
// 35°.
var (
	majorityHueOffsets = []float64{0, 8, -8, 14, -14, 18, -18}
	accentHueOffsets   = []float64{0, 6, -6, 10, -10}
	expandedHueOffsets = []float64{24, -24, 30, -30, 35, -35}
)

func newSynthesizer(stats Statistics, ranges TierRanges, san *sanitizer, primary float64, isDark, nearGray bool) *synthesizer {
	return &synthesizer{
		stats:    stats,
		ranges:   ranges,
		san:      san,
		primary:  primary,
		isDark:   isDark,
		nearGray: nearGray,
	}
}

// lumaBlend is how strongly tier midpoints get pulled toward the
// cover-luma-derived brightness target.
func (sy *synthesizer) lumaBlend() float64 {
	blend := 0.25
	if sy.isDark {
		blend = 0.35
	}
	switch sy.stats.Kind {
	case CoverMostlyBWWithColor:
		blend *= 0.6
	case CoverGrayscaleTrue:
		blend *= 0.5
	}
	return blend
}

// lumaMatchedMid maps the cover luma into a brightness range and pulls the
// range midpoint part way toward it.
func (sy *synthesizer) lumaMatchedMid(r Range) float64 {
	target := r.Min + clamp01(sy.stats.CoverLuma)*(r.Max-r.Min)
	mid := r.Mid()
	return mid + (target-mid)*sy.lumaBlend()
}

// backgroundHueOffset grows with cover complexity; busier artwork earns
// slightly more hue movement between stops.
func (sy *synthesizer) backgroundHueOffset() float64 {
	switch sy.stats.Complexity {
	case ComplexityMonochrome, ComplexityLow:
		return 2
	case ComplexityMedium:
		return 3.5
	default:
		return 5
	}
}

// backgroundStops synthesizes the three background stops around the
// area-dominant hue.
func (sy *synthesizer) backgroundStops() []Color {
	offset := sy.backgroundHueOffset()
	hueOffsets := []float64{0, -offset, offset}
	briDeltas := []float64{0, -0.02, 0.02}
	satDeltas := []float64{0, 0.01, -0.01}

	midB := sy.lumaMatchedMid(sy.ranges.BackgroundB)
	midS := sy.ranges.BackgroundS.Mid()
	// Lean the saturation midpoint toward what the artwork actually shows.
	midS += (sy.ranges.BackgroundS.Clamp(sy.stats.AreaSaturation) - midS) * 0.30

	stops := make([]Color, 0, len(hueOffsets))
	for i, dh := range hueOffsets {
		s := midS + satDeltas[i]
		b := midB + briDeltas[i]
		if sy.stats.Kind == CoverLowSatColor {
			s = math.Min(s*1.24, sy.ranges.BackgroundS.Max)
			b += 0.02
		}
		c := NewOpaque(sy.stats.AreaHue+dh, s, b)
		stops = append(stops, sy.san.sanitize(c, KindBackground))
	}
	return stops
}

// shapePoolSize sets the pool count from cover kind and complexity,
// clamped into [4, 10].
func (sy *synthesizer) shapePoolSize() int {
	var n int
	switch {
	case sy.stats.Kind == CoverGrayscaleTrue:
		n = 4
	case sy.stats.Kind == CoverMostlyBWWithColor:
		n = 5
	case sy.stats.Kind == CoverRichDistributed:
		n = 8
	default:
		switch sy.stats.Complexity {
		case ComplexityMonochrome:
			n = 4
		case ComplexityLow:
			n = 5
		case ComplexityMedium:
			n = 6
		default:
			n = 8
		}
	}
	return int(clampFloat(float64(n), 4, 10))
}

// shapeHueQueue builds the ordered hue list for the shape pool: a majority
// band around the primary hue, an accent band when the accent cluster is
// strong enough, and a wider expanded band filling the remainder. Up to two
// slots are then overridden by injected high-saturation cluster hues.
func (sy *synthesizer) shapeHueQueue(count int) ([]float64, []bool) {
	accentSlots := 0
	if sy.stats.AccentEnabled {
		share := clampFloat(0.22+0.18*sy.stats.AccentStrength, 0.22, 0.40)
		accentSlots = int(math.Round(float64(count) * share))
		if accentSlots < 1 {
			accentSlots = 1
		}
	}
	majoritySlots := int(math.Round(float64(count) * 0.65))
	if majoritySlots+accentSlots > count {
		majoritySlots = count - accentSlots
	}
	if majoritySlots < 1 {
		majoritySlots = 1
	}

	hues := make([]float64, 0, count)
	isAccent := make([]bool, 0, count)

	for i := 0; i < majoritySlots; i++ {
		off := majorityHueOffsets[i%len(majorityHueOffsets)]
		hues = append(hues, normalizeHue(sy.primary+off))
		isAccent = append(isAccent, false)
	}
	for i := 0; i < accentSlots && len(hues) < count; i++ {
		// Accent slots anchor on the accent cluster itself; the ladder keeps
		// them tight around it while the band as a whole may sit far from
		// the primary hue.
		off := accentHueOffsets[i%len(accentHueOffsets)]
		hues = append(hues, normalizeHue(sy.stats.AccentHue+off))
		isAccent = append(isAccent, true)
	}
	for i := 0; len(hues) < count; i++ {
		off := expandedHueOffsets[i%len(expandedHueOffsets)]
		hues = append(hues, normalizeHue(sy.primary+off))
		isAccent = append(isAccent, false)
	}

	// Accent injection: colourful covers may force up to two raw cluster
	// hues into non-accent slots, replacing the tail of the majority band.
	if sy.stats.MatchedSaturation >= 0.35 {
		injected := 0
		for _, h := range sy.stats.InjectionHues {
			if injected == 2 {
				break
			}
			slot := majoritySlots - 1 - injected
			if slot < 1 {
				break
			}
			hues[slot] = h
			injected++
		}
	}

	return hues, isAccent
}

// applyPoolAdjustments is the shared saturation trim for shape and dot
// colours: low-sat-colourful covers get vividness back, mostly-BW covers
// and weak dominant saturation pull it down.
func (sy *synthesizer) applyPoolAdjustments(s float64, satRange Range) float64 {
	if sy.stats.Kind == CoverLowSatColor {
		s = math.Min(s*1.24, satRange.Max)
	}
	if sy.stats.Kind == CoverMostlyBWWithColor {
		s *= 0.88
	}
	if sy.stats.DominantSaturation < 0.25 {
		s *= 0.90
	}
	return s
}

// shapePool synthesizes the full shape pool.
func (sy *synthesizer) shapePool() []Color {
	count := sy.shapePoolSize()
	hues, accents := sy.shapeHueQueue(count)

	midB := sy.lumaMatchedMid(sy.ranges.ShapeB)
	midS := sy.ranges.ShapeS.Mid()

	pool := make([]Color, 0, count)
	for i, h := range hues {
		s := midS + shapeSaturationOffsets[i%len(shapeSaturationOffsets)]
		b := midB + shapeBrightnessOffsets[i%len(shapeBrightnessOffsets)]
		if accents[i] {
			s = math.Max(s, midS+0.05)
			b += 0.04
		}
		s = sy.applyPoolAdjustments(s, sy.ranges.ShapeS)
		pool = append(pool, sy.san.sanitize(NewOpaque(h, s, b), KindShape))
	}
	return pool
}

// dotBase synthesizes the single dot tone near the dominant hue.
func (sy *synthesizer) dotBase() Color {
	h := sy.stats.DominantHue
	maxArc := 10.0
	if sy.nearGray {
		h = rotateHueToward(h, sy.primary, 0.5)
		maxArc = 14
	}
	h = clampHueTo(h, sy.stats.DominantHue, maxArc)

	b := sy.lumaMatchedMid(sy.ranges.DotB)
	s := sy.applyPoolAdjustments(sy.ranges.DotS.Mid(), sy.ranges.DotS)
	return sy.san.sanitize(NewOpaque(h, s, b), KindDot)
}
