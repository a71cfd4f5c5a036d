package harmony

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Palette is the harmonized output for one piece of artwork: three
// background stops with alternates, a shape pool, one dot base, and the
// tier ranges they were validated against. The ranges are retained so
// later re-tinting (Stabilize) validates against the same bounds.
type Palette struct {
	PrimaryHue float64 `json:"primary_hue"`
	SourceHue  float64 `json:"source_hue"`
	IsDark     bool    `json:"is_dark"`

	Complexity       ComplexityLevel `json:"complexity"`
	Kind             CoverKind       `json:"kind"`
	IsGrayscaleCover bool            `json:"is_grayscale_cover"`
	IsNearGray       bool            `json:"is_near_gray"`
	CoverLuma        float64         `json:"cover_luma"`

	BackgroundStops    []Color   `json:"background_stops"`
	BackgroundVariants [][]Color `json:"background_variants"`
	ShapePool          []Color   `json:"shape_pool"`
	DotBase            Color     `json:"dot_base"`

	Ranges TierRanges `json:"ranges"`
	Flags  RiskFlag   `json:"flags"`
}

// String returns a compact human-readable summary of the palette.
func (p Palette) String() string {
	mode := "light"
	if p.IsDark {
		mode = "dark"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "palette(%s %s/%s primary=%.1f", mode, p.Kind, p.Complexity, p.PrimaryHue)
	fmt.Fprintf(&b, " bg=%d", len(p.BackgroundStops))
	if len(p.BackgroundVariants) > 0 {
		fmt.Fprintf(&b, "+%d", len(p.BackgroundVariants))
	}
	fmt.Fprintf(&b, " shapes=%d dot=%s)", len(p.ShapePool), p.DotBase.Hex())
	return b.String()
}

// Make harmonizes a ranked candidate list into a Palette. The list is
// most-dominant first; fallback is used verbatim when extracted is empty.
// The call is pure: identical inputs produce identical palettes.
func Make(extracted, fallback []Color, isDark bool) Palette {
	return MakeWithLogger(extracted, fallback, isDark, hclog.NewNullLogger())
}

// MakeWithLogger is Make with structured diagnostics. The logger never
// influences the output; it exists for tuning and test forensics.
func MakeWithLogger(extracted, fallback []Color, isDark bool, logger hclog.Logger) Palette {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	candidates := extracted
	if len(candidates) == 0 {
		candidates = fallback
	}

	stats := Analyze(candidates)
	nearGray := isNearGray(stats)
	logger.Debug("classified cover",
		"kind", stats.Kind.String(),
		"complexity", stats.Complexity.String(),
		"near_gray", nearGray,
		"avg_saturation", stats.AvgSaturation,
		"matched_saturation", stats.MatchedSaturation,
		"hue_spread", stats.HueSpread,
		"clusters", len(stats.Clusters),
	)

	primary, rawPrimary := SelectPrimaryHue(stats, candidates, isDark)
	logger.Debug("selected primary hue", "raw", rawPrimary, "corrected", primary)

	ranges := CalculateTierRanges(stats, isDark, nearGray)
	san := newSanitizer(ranges, isDark, stats.Complexity, nearGray)

	sy := newSynthesizer(stats, ranges, san, primary, isDark, nearGray)
	bg := sy.backgroundStops()
	shapes := sy.shapePool()
	dot := sy.dotBase()

	en := newEnforcer(stats, &ranges, san, isDark, candidates)
	bg, shapes, dot = en.enforce(bg, shapes, dot)

	// Variants sanitize against the post-enforcement ranges, not the ones
	// synthesis started from.
	vsan := newSanitizer(ranges, isDark, stats.Complexity, nearGray)
	variants := generateBackgroundVariants(stats, ranges, vsan, candidates, shapes)
	san.flags |= vsan.flags

	logger.Debug("synthesized palette",
		"background_stops", len(bg),
		"background_variants", len(variants),
		"shape_pool", len(shapes),
		"risk_flags", san.flags.String(),
	)

	return Palette{
		PrimaryHue:         primary,
		SourceHue:          rawPrimary,
		IsDark:             isDark,
		Complexity:         stats.Complexity,
		Kind:               stats.Kind,
		IsGrayscaleCover:   stats.Kind == CoverGrayscaleTrue,
		IsNearGray:         nearGray,
		CoverLuma:          stats.CoverLuma,
		BackgroundStops:    bg,
		BackgroundVariants: variants,
		ShapePool:          shapes,
		DotBase:            dot,
		Ranges:             ranges,
		Flags:              san.flags,
	}
}
