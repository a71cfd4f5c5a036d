package harmony

import "math"

// enforcer re-validates the cross-colour invariants after synthesis. The
// stage order is fixed: a later stage may re-open an invariant an earlier
// one closed, which is why the saturation gap runs twice.
type enforcer struct {
	stats  Statistics
	ranges *TierRanges
	san    *sanitizer
	isDark bool

	candidateHues []float64
}

func newEnforcer(stats Statistics, ranges *TierRanges, san *sanitizer, isDark bool, candidates []Color) *enforcer {
	hues := make([]float64, 0, len(candidates))
	for _, c := range candidates {
		if c.S >= chromaticMinSat {
			hues = append(hues, c.H)
		}
	}
	return &enforcer{
		stats:         stats,
		ranges:        ranges,
		san:           san,
		isDark:        isDark,
		candidateHues: hues,
	}
}

// enforce runs every stage over the three pools in place and returns the
// corrected pools.
func (en *enforcer) enforce(bg, shapes []Color, dot Color) ([]Color, []Color, Color) {
	bg, shapes, dot = en.clampToCandidateHues(bg, shapes, dot)
	bg, shapes, dot = en.clampToDominantHues(bg, shapes, dot)
	bg = en.enforceSaturationGap(bg, shapes)
	bg, shapes, dot = en.enforceBrightnessHierarchy(bg, shapes, dot)
	bg, shapes, dot = en.matchCoverSaturation(bg, shapes, dot)
	bg = en.enforceSaturationGap(bg, shapes)
	return bg, shapes, dot
}

// clampToCandidateHues pins every output hue to within 18° of some hue the
// artwork actually contained. Skipped when the input carried no chromatic
// candidate.
func (en *enforcer) clampToCandidateHues(bg, shapes []Color, dot Color) ([]Color, []Color, Color) {
	if len(en.candidateHues) == 0 {
		return bg, shapes, dot
	}
	clampOne := func(c Color, kind ElementKind) Color {
		nearest, arc := en.nearestCandidateHue(c.H)
		if arc <= 18 {
			return c
		}
		en.san.flag(RiskReverseHue)
		c.H = clampHueTo(c.H, nearest, 18)
		return en.san.sanitize(c, kind)
	}
	for i := range bg {
		bg[i] = clampOne(bg[i], KindBackground)
	}
	for i := range shapes {
		shapes[i] = clampOne(shapes[i], KindShape)
	}
	dot = clampOne(dot, KindDot)
	return bg, shapes, dot
}

func (en *enforcer) nearestCandidateHue(h float64) (float64, float64) {
	nearest := en.candidateHues[0]
	nearestArc := hueDistance(h, nearest)
	for _, cand := range en.candidateHues[1:] {
		if arc := hueDistance(h, cand); arc < nearestArc {
			nearest = cand
			nearestArc = arc
		}
	}
	return nearest, nearestArc
}

// shapeAffinityArc is how far a shape hue may sit from its anchor: tight
// for simple covers, wide open for richly distributed ones.
func (en *enforcer) shapeAffinityArc() float64 {
	if en.stats.Kind == CoverRichDistributed {
		return 75
	}
	switch en.stats.Complexity {
	case ComplexityMonochrome, ComplexityLow:
		return 8
	default:
		return 10
	}
}

// clampToDominantHues enforces hue affinity with the artwork: backgrounds
// hug the area-dominant hue, shapes hug the nearer of the dominant and
// accent anchors, the dot hugs the dominant hue. A pre-clamp deviation
// beyond 90° is recorded as a reverse-hue event.
func (en *enforcer) clampToDominantHues(bg, shapes []Color, dot Color) ([]Color, []Color, Color) {
	clampOne := func(c Color, kind ElementKind, anchor, arc float64) Color {
		dev := hueDistance(c.H, anchor)
		if dev <= arc {
			return c
		}
		if dev > 90 {
			en.san.flag(RiskReverseHue)
		}
		c.H = clampHueTo(c.H, anchor, arc)
		return en.san.sanitize(c, kind)
	}

	for i := range bg {
		bg[i] = clampOne(bg[i], KindBackground, en.stats.AreaHue, 6)
	}

	shapeArc := en.shapeAffinityArc()
	for i := range shapes {
		anchor := en.stats.DominantHue
		if en.stats.AccentEnabled &&
			hueDistance(shapes[i].H, en.stats.AccentHue) < hueDistance(shapes[i].H, anchor) {
			anchor = en.stats.AccentHue
		}
		shapes[i] = clampOne(shapes[i], KindShape, anchor, shapeArc)
	}

	dot = clampOne(dot, KindDot, en.stats.DominantHue, 14)
	return bg, shapes, dot
}

// enforceSaturationGap pushes background saturations down until the
// quietest shape is at least saturationGap more saturated than the loudest
// background. The stored background range is narrowed along with the
// colours so the tier invariant keeps holding.
func (en *enforcer) enforceSaturationGap(bg, shapes []Color) []Color {
	if len(bg) == 0 || len(shapes) == 0 {
		return bg
	}
	minShape := math.Inf(1)
	for _, c := range shapes {
		minShape = math.Min(minShape, c.S)
	}
	limit := math.Max(0, minShape-saturationGap)

	for i := range bg {
		if bg[i].S > limit {
			bg[i].S = limit
		}
	}
	if en.ranges.BackgroundS.Max > limit {
		en.ranges.BackgroundS.Max = limit
	}
	if en.ranges.BackgroundS.Min > limit {
		en.ranges.BackgroundS.Min = limit
	}
	return bg
}

// enforceBrightnessHierarchy enforces the mode-dependent brightness
// ordering: dark mode stacks background under shapes under the dot, light
// mode mirrors it.
func (en *enforcer) enforceBrightnessHierarchy(bg, shapes []Color, dot Color) ([]Color, []Color, Color) {
	if len(bg) == 0 || len(shapes) == 0 {
		return bg, shapes, dot
	}
	minShape, maxShape := math.Inf(1), math.Inf(-1)
	for _, c := range shapes {
		minShape = math.Min(minShape, c.B)
		maxShape = math.Max(maxShape, c.B)
	}

	if en.isDark {
		bgCap := minShape - brightnessGapMajor
		for i := range bg {
			if bg[i].B > bgCap {
				bg[i].B = math.Max(0, bgCap)
			}
		}
		if en.ranges.BackgroundB.Max > bgCap {
			en.ranges.BackgroundB.Max = math.Max(en.ranges.BackgroundB.Min, bgCap)
		}
		if floor := maxShape + brightnessGapMinor; dot.B < floor {
			dot.B = math.Min(1, floor)
			if en.ranges.DotB.Min < floor {
				en.ranges.DotB.Min = math.Min(en.ranges.DotB.Max, floor)
			}
		}
		return bg, shapes, dot
	}

	bgFloor := maxShape + brightnessGapMajor
	for i := range bg {
		if bg[i].B < bgFloor {
			bg[i].B = math.Min(1, bgFloor)
		}
	}
	if en.ranges.BackgroundB.Min < bgFloor {
		en.ranges.BackgroundB.Min = math.Min(en.ranges.BackgroundB.Max, bgFloor)
	}
	if limit := minShape - brightnessGapMinor; dot.B > limit {
		dot.B = math.Max(0, limit)
		if en.ranges.DotB.Max > limit {
			en.ranges.DotB.Max = math.Max(en.ranges.DotB.Min, limit)
		}
	}
	return bg, shapes, dot
}

// Very desaturated covers get absolute saturation ceilings so the palette
// never reads louder than the artwork. Tuned constants.
const (
	coverMatchAvgSat   = 0.12
	coverMatchBgCeil   = 0.12
	coverMatchShapeCap = 0.18
	coverMatchDotCap   = 0.22
)

// matchCoverSaturation hard-caps all three tiers for very-low-saturation
// covers and raises the background floor in proportion to the measured
// average. The stored ranges narrow with the colours.
func (en *enforcer) matchCoverSaturation(bg, shapes []Color, dot Color) ([]Color, []Color, Color) {
	if en.stats.AvgSaturation >= coverMatchAvgSat {
		return bg, shapes, dot
	}

	bgFloor := clampFloat(en.stats.AvgSaturation*0.5, 0, coverMatchBgCeil)
	for i := range bg {
		bg[i].S = clampFloat(bg[i].S, bgFloor, coverMatchBgCeil)
	}
	for i := range shapes {
		shapes[i].S = math.Min(shapes[i].S, coverMatchShapeCap)
	}
	dot.S = math.Min(dot.S, coverMatchDotCap)

	// The floor never rises above the current ceiling: an earlier stage may
	// already have narrowed the range below it.
	narrow := func(r Range, floor, ceil float64) Range {
		r.Max = math.Min(r.Max, ceil)
		r.Min = clampFloat(r.Min, math.Min(floor, r.Max), r.Max)
		return r
	}
	en.ranges.BackgroundS = narrow(en.ranges.BackgroundS, bgFloor, coverMatchBgCeil)
	en.ranges.ShapeS = narrow(en.ranges.ShapeS, 0, coverMatchShapeCap)
	en.ranges.DotS = narrow(en.ranges.DotS, 0, coverMatchDotCap)

	return bg, shapes, dot
}
