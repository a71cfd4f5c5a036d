package harmony

import (
	"math"
	"sort"
)

// CoverKind classifies the sampled artwork; it drives every downstream
// decision from tier ranges to pool sizes.
type CoverKind int

const (
	// CoverNormal is the default classification.
	CoverNormal CoverKind = iota
	// CoverGrayscaleTrue means essentially no chromatic candidate survived.
	CoverGrayscaleTrue
	// CoverMostlyBWWithColor means extreme-brightness weight dominates but
	// some chroma remains.
	CoverMostlyBWWithColor
	// CoverLowSatColor means the matched saturation is low but the cover is
	// not achromatic.
	CoverLowSatColor
	// CoverRichDistributed means three or more well-balanced hue clusters
	// with moderate or better saturation.
	CoverRichDistributed
)

// String returns the string representation of a CoverKind.
func (k CoverKind) String() string {
	switch k {
	case CoverGrayscaleTrue:
		return "grayscale-true"
	case CoverMostlyBWWithColor:
		return "mostly-bw-with-color"
	case CoverLowSatColor:
		return "low-sat-color"
	case CoverRichDistributed:
		return "rich-distributed"
	default:
		return "normal"
	}
}

// ComplexityLevel grades how much hue structure the cover carries.
type ComplexityLevel int

const (
	ComplexityMonochrome ComplexityLevel = iota
	ComplexityLow
	ComplexityMedium
	ComplexityHigh
)

// String returns the string representation of a ComplexityLevel.
func (l ComplexityLevel) String() string {
	switch l {
	case ComplexityMonochrome:
		return "monochrome"
	case ComplexityLow:
		return "low"
	case ComplexityMedium:
		return "medium"
	default:
		return "high"
	}
}

// HueCluster is one weighted hue family found by incremental
// nearest-centre merging.
type HueCluster struct {
	Center     float64 // circular mean of member hues
	Weight     float64 // summed member weight
	Saturation float64 // weighted mean saturation of members
	Brightness float64 // weighted mean brightness of members

	sinSum float64
	cosSum float64
}

// SalientHue is a hue with its rank-and-saliency composite score.
type SalientHue struct {
	Hue   float64
	Score float64
}

// Statistics is the read-only snapshot the analyzer reduces the ranked
// candidate list into.
type Statistics struct {
	AvgSaturation     float64
	MatchedSaturation float64
	HueSpread         float64 // weighted circular std-dev, degrees
	CircularVariance  float64 // 1 - resultant length, [0, 1]

	Clusters    []HueCluster
	TopClusters []HueCluster

	DominantHue        float64
	DominantSaturation float64
	DominantShare      float64

	AreaHue        float64 // hue of the largest-area (top ranked) candidate
	AreaSaturation float64
	AreaBrightness float64

	AccentHue      float64
	AccentShare    float64
	AccentStrength float64
	AccentEnabled  bool

	BlackShare float64
	WhiteShare float64
	ColorShare float64
	GrayScore  float64
	CoverLuma  float64
	Evenness   float64

	TopSalientHues []SalientHue
	InjectionHues  []float64

	Kind       CoverKind
	Complexity ComplexityLevel
}

// Analyzer thresholds. Tuned constants; ported literally.
const (
	clusterMergeArc   = 25.0 // max distance to a running cluster centre
	saliencyExponent  = 1.28
	chromaticMinSat   = 0.05 // below this a hue angle is meaningless
	nearBlackMax      = 0.15
	nearWhiteMinB     = 0.92
	nearWhiteMaxS     = 0.12
	accentMinArc      = 40.0
	accentMinShare    = 0.12
	accentMinStrength = 0.05
	injectionMinSat   = 0.55
	injectionMinShare = 0.08
)

// rankWeights infers candidate weights from rank position: a fixed decaying
// head then a geometric tail, normalized to sum 1.
func rankWeights(n int) []float64 {
	if n <= 0 {
		return nil
	}
	head := []float64{0.40, 0.25, 0.18, 0.12}
	weights := make([]float64, n)
	total := 0.0
	last := head[len(head)-1]
	for i := 0; i < n; i++ {
		if i < len(head) {
			weights[i] = head[i]
		} else {
			last *= 0.62
			weights[i] = last
		}
		total += weights[i]
	}
	for i := range weights {
		weights[i] /= total
	}
	return weights
}

// saliency scores how visually prominent a candidate is: saturated
// mid-brightness colours beat bland ones.
func saliency(c Color) float64 {
	midBoost := clamp01(1 - math.Abs(c.B-0.55)/0.55)
	return math.Pow(c.S, saliencyExponent) * (0.6 + 0.4*midBoost)
}

// Analyze reduces a ranked candidate list into a Statistics snapshot.
// The list is assumed most-dominant first; weights are inferred from rank.
// An empty list yields a fixed neutral snapshot so downstream stages never
// see empty statistics.
func Analyze(candidates []Color) Statistics {
	if len(candidates) == 0 {
		return neutralStatistics()
	}

	weights := rankWeights(len(candidates))
	stats := Statistics{}

	var (
		satSum      float64
		matchedSum  float64
		matchedNorm float64
		graySum     float64
		lumaSum     float64
		sinSum      float64
		cosSum      float64
		circNorm    float64
	)

	for i, c := range candidates {
		w := weights[i]
		satSum += w * c.S
		lumaSum += w * c.B

		// Matched saturation suppresses fake vividness from near-black and
		// near-white candidates.
		window := brightnessWindow(c.B)
		matchedSum += w * window * c.S
		matchedNorm += w * window

		graySum += w * grayness(c)

		switch {
		case c.B < nearBlackMax:
			stats.BlackShare += w
		case c.B > nearWhiteMinB && c.S < nearWhiteMaxS:
			stats.WhiteShare += w
		}
		if c.S >= 0.15 && c.B >= 0.12 && c.B <= 0.95 {
			stats.ColorShare += w
		}

		// Saliency-weighted circular hue statistics.
		if c.S >= chromaticMinSat {
			cw := w * saliency(c)
			rad := c.H * math.Pi / 180
			sinSum += cw * math.Sin(rad)
			cosSum += cw * math.Cos(rad)
			circNorm += cw
		}
	}

	stats.AvgSaturation = satSum
	if matchedNorm > 1e-9 {
		stats.MatchedSaturation = matchedSum / matchedNorm
	}
	stats.GrayScore = graySum
	stats.CoverLuma = lumaSum

	if circNorm > 1e-9 {
		resultant := math.Hypot(sinSum, cosSum) / circNorm
		resultant = clamp01(resultant)
		stats.CircularVariance = 1 - resultant
		if resultant > 1e-9 {
			stats.HueSpread = math.Sqrt(-2*math.Log(resultant)) * 180 / math.Pi
		} else {
			stats.HueSpread = 180
		}
	}

	stats.Clusters = clusterHues(candidates, weights)
	stats.TopClusters = topClusters(stats.Clusters, 3)
	stats.Evenness = clusterEvenness(stats.Clusters)

	fillDominant(&stats)
	fillAccent(&stats)

	top := candidates[0]
	stats.AreaHue = top.H
	stats.AreaSaturation = top.S
	stats.AreaBrightness = top.B

	stats.TopSalientHues = topSalientHues(candidates, weights, 3)
	stats.InjectionHues = injectionHues(stats)

	stats.Kind = classifyCover(stats)
	stats.Complexity = classifyComplexity(stats)

	return stats
}

// neutralStatistics is the fixed fallback snapshot for empty input.
func neutralStatistics() Statistics {
	cluster := HueCluster{Center: 220, Weight: 1, Saturation: 0.25, Brightness: 0.5}
	return Statistics{
		AvgSaturation:      0.25,
		MatchedSaturation:  0.25,
		Clusters:           []HueCluster{cluster},
		TopClusters:        []HueCluster{cluster},
		DominantHue:        220,
		DominantSaturation: 0.25,
		DominantShare:      1,
		AreaHue:            220,
		AreaSaturation:     0.25,
		AreaBrightness:     0.5,
		ColorShare:         1,
		CoverLuma:          0.5,
		Kind:               CoverLowSatColor,
		Complexity:         ComplexityLow,
	}
}

// brightnessWindow damps the contribution of near-black and near-white
// candidates to the matched saturation estimate.
func brightnessWindow(b float64) float64 {
	switch {
	case b < 0.12 || b > 0.96:
		return 0
	case b < 0.22:
		return (b - 0.12) / 0.10
	case b > 0.88:
		return (0.96 - b) / 0.08
	default:
		return 1
	}
}

// grayness scores how achromatic a single candidate reads.
func grayness(c Color) float64 {
	g := clamp01(1 - c.S/0.18)
	if c.B < 0.08 || c.B > 0.95 {
		g = math.Max(g, 0.85)
	}
	return g
}

// clusterHues performs incremental nearest-centre hue clustering: a
// candidate merges into an existing cluster when it is within
// clusterMergeArc of the running circular-mean centre, else starts a new
// cluster. Near-achromatic candidates are skipped.
func clusterHues(candidates []Color, weights []float64) []HueCluster {
	clusters := make([]HueCluster, 0, 4)
	for i, c := range candidates {
		if c.S < chromaticMinSat {
			continue
		}
		w := weights[i]

		best := -1
		bestArc := clusterMergeArc
		for j := range clusters {
			arc := hueDistance(c.H, clusters[j].Center)
			if arc <= bestArc {
				best = j
				bestArc = arc
			}
		}

		rad := c.H * math.Pi / 180
		if best < 0 {
			clusters = append(clusters, HueCluster{
				Center:     c.H,
				Weight:     w,
				Saturation: c.S,
				Brightness: c.B,
				sinSum:     w * math.Sin(rad),
				cosSum:     w * math.Cos(rad),
			})
			continue
		}

		cl := &clusters[best]
		cl.Saturation = (cl.Saturation*cl.Weight + c.S*w) / (cl.Weight + w)
		cl.Brightness = (cl.Brightness*cl.Weight + c.B*w) / (cl.Weight + w)
		cl.Weight += w
		cl.sinSum += w * math.Sin(rad)
		cl.cosSum += w * math.Cos(rad)
		cl.Center = normalizeHue(math.Atan2(cl.sinSum, cl.cosSum) * 180 / math.Pi)
	}
	return clusters
}

// topClusters returns up to n clusters ordered by weight, heaviest first.
func topClusters(clusters []HueCluster, n int) []HueCluster {
	ordered := append([]HueCluster(nil), clusters...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Weight > ordered[j].Weight
	})
	if len(ordered) > n {
		ordered = ordered[:n]
	}
	return ordered
}

// clusterEvenness is the normalized entropy of the cluster weight
// distribution: 0 for one dominant cluster, 1 for perfectly even weights.
func clusterEvenness(clusters []HueCluster) float64 {
	if len(clusters) < 2 {
		return 0
	}
	total := 0.0
	for _, cl := range clusters {
		total += cl.Weight
	}
	if total <= 1e-9 {
		return 0
	}
	entropy := 0.0
	for _, cl := range clusters {
		p := cl.Weight / total
		if p > 1e-12 {
			entropy -= p * math.Log(p)
		}
	}
	return entropy / math.Log(float64(len(clusters)))
}

// fillDominant records the heaviest cluster as the dominant hue family.
func fillDominant(stats *Statistics) {
	if len(stats.TopClusters) == 0 {
		stats.DominantHue = 220
		stats.DominantSaturation = 0
		stats.DominantShare = 0
		return
	}
	total := 0.0
	for _, cl := range stats.Clusters {
		total += cl.Weight
	}
	top := stats.TopClusters[0]
	stats.DominantHue = top.Center
	stats.DominantSaturation = top.Saturation
	if total > 1e-9 {
		stats.DominantShare = top.Weight / total
	}
}

// fillAccent looks for a second hue family far enough from the dominant one
// and strong enough to carry accent slots in the shape pool.
func fillAccent(stats *Statistics) {
	if len(stats.TopClusters) < 2 {
		return
	}
	total := 0.0
	for _, cl := range stats.Clusters {
		total += cl.Weight
	}
	if total <= 1e-9 {
		return
	}
	for _, cl := range stats.TopClusters[1:] {
		if hueDistance(cl.Center, stats.DominantHue) < accentMinArc {
			continue
		}
		share := cl.Weight / total
		strength := share * clamp01(cl.Saturation*1.4)
		if share < accentMinShare || strength < accentMinStrength {
			continue
		}
		stats.AccentHue = cl.Center
		stats.AccentShare = share
		stats.AccentStrength = strength
		stats.AccentEnabled = true
		return
	}
}

// topSalientHues picks the n highest rank-and-saliency scored chromatic
// candidates.
func topSalientHues(candidates []Color, weights []float64, n int) []SalientHue {
	scored := make([]SalientHue, 0, len(candidates))
	for i, c := range candidates {
		if c.S < chromaticMinSat {
			continue
		}
		scored = append(scored, SalientHue{Hue: c.H, Score: weights[i] * saliency(c)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > n {
		scored = scored[:n]
	}
	return scored
}

// injectionHues selects up to two high-saturation cluster representatives
// far enough from the dominant hue to be worth forcing into the shape pool.
func injectionHues(stats Statistics) []float64 {
	total := 0.0
	for _, cl := range stats.Clusters {
		total += cl.Weight
	}
	if total <= 1e-9 {
		return nil
	}
	hues := make([]float64, 0, 2)
	for _, cl := range topClusters(stats.Clusters, len(stats.Clusters)) {
		if len(hues) == 2 {
			break
		}
		if cl.Saturation < injectionMinSat || cl.Weight/total < injectionMinShare {
			continue
		}
		if hueDistance(cl.Center, stats.DominantHue) < 18 {
			continue
		}
		hues = append(hues, cl.Center)
	}
	return hues
}

// classifyCover assigns the CoverKind. The priority order matters: the
// grayscale test runs first, rich-distributed beats low-sat.
func classifyCover(stats Statistics) CoverKind {
	switch {
	case stats.ColorShare < 0.03 && stats.MatchedSaturation < 0.06:
		return CoverGrayscaleTrue
	case stats.BlackShare+stats.WhiteShare > 0.62 && stats.ColorShare > 0.05:
		return CoverMostlyBWWithColor
	case len(stats.Clusters) >= 3 && stats.Evenness > 0.55 && stats.MatchedSaturation >= 0.28:
		return CoverRichDistributed
	case stats.MatchedSaturation < 0.18:
		return CoverLowSatColor
	default:
		return CoverNormal
	}
}

// classifyComplexity grades the cover from the same signals.
func classifyComplexity(stats Statistics) ComplexityLevel {
	switch {
	case stats.Kind == CoverGrayscaleTrue:
		return ComplexityMonochrome
	case len(stats.Clusters) <= 1 && stats.MatchedSaturation < 0.10:
		return ComplexityMonochrome
	case len(stats.Clusters) <= 1 || stats.HueSpread < 18:
		return ComplexityLow
	case len(stats.Clusters) == 2 || stats.HueSpread < 45:
		return ComplexityMedium
	default:
		return ComplexityHigh
	}
}

// isNearGray reports whether a cover should be treated as near-gray: low
// saturation but not fully achromatic. A true-grayscale cover is not
// near-gray; it has its own branch.
func isNearGray(stats Statistics) bool {
	if stats.Kind == CoverGrayscaleTrue {
		return false
	}
	return stats.GrayScore >= 0.55 || stats.MatchedSaturation <= 0.12
}
