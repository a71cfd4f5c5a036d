package harmony

import "math"

// The grayscale branch pins the whole palette to this blue anchor.
const grayscalePrimaryHue = 215.0

// salientScoreMin is the score a top salient candidate needs to win the
// anchor outright.
const salientScoreMin = 0.22

// preferredHues are the fallback anchors the scored search nudges toward
// when its winner lands far from every one of them.
var preferredHues = []float64{220, 190, 265, 28, 350}

// SelectPrimaryHue picks the single anchor hue for a palette. Preference
// order: a strong salient candidate, then the primary cluster centre, then a
// scored search over the raw candidates. The returned hue has already been
// pulled clear of the catalogued danger bands; the second return value is
// the hue before that correction, kept for diagnostics.
func SelectPrimaryHue(stats Statistics, candidates []Color, isDark bool) (hue, rawHue float64) {
	if stats.Kind == CoverGrayscaleTrue {
		return grayscalePrimaryHue, grayscalePrimaryHue
	}

	raw, scored := pickRawPrimaryHue(stats, candidates, isDark)
	h := raw
	if scored {
		h = nudgeTowardPreferred(h)
	}
	return correctPrimaryHue(h, isDark), raw
}

// pickRawPrimaryHue applies the three-step preference order. The boolean
// reports whether the scored search produced the hue; only scorer output
// gets the preferred-set nudge.
func pickRawPrimaryHue(stats Statistics, candidates []Color, isDark bool) (float64, bool) {
	if len(stats.TopSalientHues) > 0 && stats.TopSalientHues[0].Score >= salientScoreMin {
		return stats.TopSalientHues[0].Hue, false
	}
	if len(stats.TopClusters) > 0 && stats.TopClusters[0].Weight > 1e-9 {
		return stats.TopClusters[0].Center, false
	}
	if h, ok := scorePrimaryHue(stats, candidates, isDark); ok {
		return h, true
	}
	return stats.DominantHue, false
}

// scorePrimaryHue runs the candidate search: closeness to a target
// saturation and brightness, minus a risk penalty and a distance-from-
// dominant penalty, plus a bonus for sitting near a top salient hue.
func scorePrimaryHue(stats Statistics, candidates []Color, isDark bool) (float64, bool) {
	targetB := 0.52
	if !isDark {
		targetB = 0.48
	}
	const targetS = 0.45

	bestScore := math.Inf(-1)
	bestHue := 0.0
	found := false

	for _, c := range candidates {
		if c.B < 0.12 {
			continue
		}
		if c.B > nearWhiteMinB && c.S < nearWhiteMaxS {
			continue
		}
		if c.S < 0.10 {
			continue
		}

		score := 1.0
		score -= math.Abs(c.S-targetS) * 0.9
		score -= math.Abs(c.B-targetB) * 0.7
		score -= hueRiskPenalty(c.H)
		score -= hueDistance(c.H, stats.DominantHue) / 180 * 0.35
		for _, sal := range stats.TopSalientHues {
			if hueDistance(c.H, sal.Hue) <= 20 {
				score += 0.12
				break
			}
		}

		if score > bestScore {
			bestScore = score
			bestHue = c.H
			found = true
		}
	}
	return bestHue, found
}

// hueRiskPenalty charges candidates whose hue sits inside a danger band.
func hueRiskPenalty(h float64) float64 {
	switch {
	case h >= greenDangerLo && h <= greenDangerHi:
		return 0.30
	case h >= muddyYellowLo && h <= muddyYellowHi:
		return 0.22
	case inRedZone(h):
		return 0.18
	case h >= dirtyPurpleLo && h <= dirtyPurpleHi:
		return 0.12
	case h >= fluorPinkLo && h <= fluorPinkHi:
		return 0.12
	default:
		return 0
	}
}

// nudgeTowardPreferred moves a scorer-sourced hue a quarter of the way
// toward the nearest preferred anchor when it is more than 30° from all of
// them.
func nudgeTowardPreferred(h float64) float64 {
	nearest := preferredHues[0]
	nearestArc := hueDistance(h, nearest)
	for _, p := range preferredHues[1:] {
		if arc := hueDistance(h, p); arc < nearestArc {
			nearest = p
			nearestArc = arc
		}
	}
	if nearestArc <= 30 {
		return h
	}
	return rotateHueToward(h, nearest, 0.25)
}

// correctPrimaryHue pulls the chosen anchor out of the danger bands. The
// green band snaps to the nearer boundary exit, muddy yellow is pulled
// toward the warm anchor, and the red wraparound is snapped just outside
// the band.
func correctPrimaryHue(h float64, isDark bool) float64 {
	if h > greenDangerLo-2 && h < greenDangerHi+2 {
		if h < (greenExitLo+greenExitHi)/2 {
			h = greenExitLo
		} else {
			h = greenExitHi
		}
	}

	if h >= muddyYellowLo && h <= muddyYellowHi {
		pull := 0.28
		if isDark {
			pull = 0.40
		}
		h = rotateHueToward(h, muddyYellowAnchor, pull)
	}

	if inRedZone(h) {
		if h <= redZoneHi {
			h = redZoneHi + 1
		} else {
			h = redZoneLo - 1
		}
	}
	return normalizeHue(h)
}
