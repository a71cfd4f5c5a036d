package harmony

import (
	"math"
	"sort"
)

// Variant selection scoring. The hue-separation term dominates so the
// alternates actually look different from each other.
const (
	variantSepWeight      = 0.72
	variantSaliencyWeight = 0.28
	variantMinSeparation  = 18.0
)

// variantCandidate is one chromatic input colour with its saliency score,
// kept for the greedy pick.
type variantCandidate struct {
	color Color
	score float64
}

// variantSetCount sizes the number of alternate background sets from how
// colourful and hue-diverse the artwork is.
func variantSetCount(stats Statistics) int {
	switch {
	case stats.AvgSaturation < 0.15:
		return 1
	case stats.HueSpread > 60 && stats.AvgSaturation > 0.30:
		return 3
	default:
		return 2
	}
}

// generateBackgroundVariants builds the alternate background stop sets.
// Each set is picked greedily from the chromatic input candidates,
// maximizing hue separation from the colours already chosen with a smaller
// saliency term, then every pick is blended into background-tier
// saturation/brightness sitting a gap below the shape pool's mean
// saturation.
func generateBackgroundVariants(stats Statistics, ranges TierRanges, san *sanitizer, candidates, shapes []Color) [][]Color {
	pool := make([]variantCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.S < chromaticMinSat {
			continue
		}
		pool = append(pool, variantCandidate{color: c, score: saliency(c)})
	}
	if len(pool) == 0 {
		return nil
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].score > pool[j].score
	})
	maxScore := pool[0].score
	if maxScore <= 1e-9 {
		maxScore = 1
	}

	shapeMeanS := 0.0
	for _, c := range shapes {
		shapeMeanS += c.S
	}
	if len(shapes) > 0 {
		shapeMeanS /= float64(len(shapes))
	}

	sets := variantSetCount(stats)
	variants := make([][]Color, 0, sets)
	for v := 0; v < sets; v++ {
		// Seed each set with a different high-saliency candidate so the
		// sets diverge from the first pick onward.
		seed := v % len(pool)
		chosen := pickVariantHues(pool, seed, maxScore, 3)
		if len(chosen) == 0 {
			continue
		}
		set := make([]Color, 0, len(chosen))
		for _, c := range chosen {
			set = append(set, variantStop(c, ranges, san, shapeMeanS, stats.CoverLuma))
		}
		variants = append(variants, set)
	}
	return variants
}

// pickVariantHues greedily selects up to n candidates, requiring at least
// variantMinSeparation degrees from every earlier pick.
func pickVariantHues(pool []variantCandidate, seed int, maxScore float64, n int) []Color {
	chosen := []Color{pool[seed].color}
	for len(chosen) < n {
		best := -1
		bestScore := math.Inf(-1)
		for i, cand := range pool {
			minSep := math.Inf(1)
			for _, c := range chosen {
				minSep = math.Min(minSep, hueDistance(cand.color.H, c.H))
			}
			if minSep < variantMinSeparation {
				continue
			}
			score := variantSepWeight*(minSep/180) + variantSaliencyWeight*(cand.score/maxScore)
			if score > bestScore {
				bestScore = score
				best = i
			}
		}
		if best < 0 {
			break
		}
		chosen = append(chosen, pool[best].color)
	}
	return chosen
}

// variantStop turns a picked candidate into a background-tier stop: keep
// its hue, pull saturation a gap below the shape pool mean, match
// brightness to the cover luma inside the background band.
func variantStop(c Color, ranges TierRanges, san *sanitizer, shapeMeanS, coverLuma float64) Color {
	s := ranges.BackgroundS.Clamp(c.S)
	if shapeMeanS > 0 {
		gapCeil := math.Max(0, shapeMeanS-saturationGap)
		gapFloor := math.Max(0, shapeMeanS-saturationGap*2)
		s = clampFloat(s, math.Min(gapFloor, gapCeil), gapCeil)
	}
	b := ranges.BackgroundB.Min + clamp01(coverLuma)*(ranges.BackgroundB.Max-ranges.BackgroundB.Min)
	return san.sanitize(NewOpaque(c.H, s, b), KindBackground)
}
