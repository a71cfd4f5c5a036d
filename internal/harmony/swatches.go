package harmony

import (
	"fmt"
	"math"
	"sort"
)

// splitmix64 is the seeded generator behind swatch jitter. It is
// deliberately not math/rand: the exact output sequence is part of the
// reproducibility contract, so the algorithm is pinned here.
type splitmix64 struct {
	state uint64
}

func newSplitmix64(seed uint64) *splitmix64 {
	return &splitmix64{state: seed}
}

func (r *splitmix64) next() uint64 {
	r.state += 0x9e3779b97f4a7c15
	z := r.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// float64 returns a uniform value in [0, 1).
func (r *splitmix64) float64() float64 {
	return float64(r.next()>>11) / float64(1<<53)
}

// symmetric returns a uniform value in [-scale, scale].
func (r *splitmix64) symmetric(scale float64) float64 {
	return (r.float64()*2 - 1) * scale
}

// SwatchDiagnostics describes one swatch generation run: deterministic,
// suitable for test assertions and for the CLI's verbose output.
type SwatchDiagnostics struct {
	AvgSaturation             float64   `json:"avg_saturation"`
	HueSpread                 float64   `json:"hue_spread"`
	SwatchCount               int       `json:"swatch_count"`
	Descriptions              []string  `json:"descriptions"`
	NearestCandidateHueDeltas []float64 `json:"nearest_candidate_hue_deltas"`
}

// Swatch selection thresholds. Tuned constants.
const (
	swatchMaxCount      = 6
	swatchFarHueArc     = 45.0
	swatchFarHueRelaxed = 30.0
	swatchMinSeparation = 18.0
)

// swatchCandidate carries the rank/saliency composite score for one input
// colour.
type swatchCandidate struct {
	color Color
	score float64
}

// MakeShapeSwatches picks up to six representative swatches from the
// artwork and applies small deterministic jitter. Identical seeds always
// reproduce identical output; the fallback list is used verbatim when the
// extracted list is empty.
func MakeShapeSwatches(seed uint64, extracted, fallback []Color, isDark bool) ([]Color, SwatchDiagnostics) {
	candidates := extracted
	if len(candidates) == 0 {
		candidates = fallback
	}

	stats := Analyze(candidates)
	nearGray := isNearGray(stats)
	ranges := CalculateTierRanges(stats, isDark, nearGray)
	san := newSanitizer(ranges, isDark, stats.Complexity, nearGray)

	count := swatchCount(stats)
	picked := pickSwatchCandidates(candidates, count)

	rng := newSplitmix64(seed)
	colors := make([]Color, 0, len(picked))
	for _, c := range picked {
		colors = append(colors, san.sanitize(jitterSwatch(c, rng), KindShape))
	}

	diag := SwatchDiagnostics{
		AvgSaturation: stats.AvgSaturation,
		HueSpread:     stats.HueSpread,
		SwatchCount:   len(colors),
	}
	for _, c := range colors {
		diag.Descriptions = append(diag.Descriptions, describeSwatch(c))
		diag.NearestCandidateHueDeltas = append(diag.NearestCandidateHueDeltas, nearestHueDelta(c.H, candidates))
	}
	return colors, diag
}

// swatchCount sizes the run from the cover's complexity.
func swatchCount(stats Statistics) int {
	switch stats.Complexity {
	case ComplexityMonochrome:
		return 2
	case ComplexityLow:
		return 3
	case ComplexityMedium:
		return 4
	default:
		return swatchMaxCount
	}
}

// pickSwatchCandidates runs the selection: always keep the top composite
// scorer, add one far-hue accent once three or more swatches are wanted,
// then greedily fill by hue separation and normalized score, padding by
// repetition when the input is scarce.
func pickSwatchCandidates(candidates []Color, count int) []Color {
	if len(candidates) == 0 {
		candidates = []Color{NewOpaque(220, 0.25, 0.5)}
	}

	weights := rankWeights(len(candidates))
	scored := make([]swatchCandidate, len(candidates))
	for i, c := range candidates {
		scored[i] = swatchCandidate{color: c, score: weights[i] * (0.4 + saliency(c))}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	maxScore := scored[0].score
	if maxScore <= 1e-9 {
		maxScore = 1
	}

	chosen := []Color{scored[0].color}

	if count >= 3 {
		if far, ok := farHueAccent(scored, chosen[0], swatchFarHueArc); ok {
			chosen = append(chosen, far)
		} else if far, ok := farHueAccent(scored, chosen[0], swatchFarHueRelaxed); ok {
			chosen = append(chosen, far)
		}
	}

	for len(chosen) < count {
		best := -1
		bestScore := math.Inf(-1)
		for i, cand := range scored {
			minSep := math.Inf(1)
			for _, c := range chosen {
				minSep = math.Min(minSep, hueDistance(cand.color.H, c.H))
			}
			if minSep < swatchMinSeparation {
				continue
			}
			s := 0.6*(minSep/180) + 0.4*(cand.score/maxScore)
			if s > bestScore {
				bestScore = s
				best = i
			}
		}
		if best < 0 {
			break
		}
		chosen = append(chosen, scored[best].color)
	}

	// Pad by repetition when the input cannot fill the request.
	for i := 0; len(chosen) < count; i++ {
		chosen = append(chosen, chosen[i%len(chosen)])
	}
	return chosen
}

// farHueAccent returns the best-scored candidate at least arc degrees from
// the anchor swatch.
func farHueAccent(scored []swatchCandidate, anchor Color, arc float64) (Color, bool) {
	for _, cand := range scored {
		if hueDistance(cand.color.H, anchor.H) >= arc {
			return cand.color, true
		}
	}
	return Color{}, false
}

// jitterSwatch applies the deterministic per-swatch jitter: hue movement
// between 2° and 12° scaled down for vivid colours, saturation and
// brightness within ±0.03.
func jitterSwatch(c Color, rng *splitmix64) Color {
	vivid := clamp01(c.S * (0.5 + 0.5*c.B))
	hueScale := 12 - 10*vivid
	return NewColor(
		c.H+rng.symmetric(hueScale),
		c.S+rng.symmetric(0.03),
		c.B+rng.symmetric(0.03),
		c.A,
	)
}

func describeSwatch(c Color) string {
	return fmt.Sprintf("%s %s", c.Hex(), c.String())
}

// nearestHueDelta is the signed hue distance from a swatch to the closest
// chromatic input candidate, for diagnostics.
func nearestHueDelta(h float64, candidates []Color) float64 {
	best := math.Inf(1)
	bestSigned := 0.0
	for _, c := range candidates {
		if c.S < chromaticMinSat {
			continue
		}
		d := hueDelta(c.H, h)
		if math.Abs(d) < best {
			best = math.Abs(d)
			bestSigned = d
		}
	}
	if math.IsInf(best, 1) {
		return 0
	}
	return bestSigned
}
