package harmony

import (
	"math"
	"testing"
)

func testRanges(isDark bool) TierRanges {
	return baseTierRanges(isDark)
}

func TestSanitizeKeepsTierRanges(t *testing.T) {
	for _, isDark := range []bool{true, false} {
		ranges := testRanges(isDark)
		sz := newSanitizer(ranges, isDark, ComplexityMedium, false)

		inputs := []Color{
			NewOpaque(0, 0.9, 0.9),
			NewOpaque(130, 0.5, 0.5),
			NewOpaque(270, 0.2, 0.1),
			NewOpaque(60, 0.8, 0.2),
		}
		for _, kind := range []ElementKind{KindBackground, KindShape, KindDot} {
			satRange := ranges.SaturationFor(kind)
			briRange := ranges.BrightnessFor(kind)
			for _, in := range inputs {
				got := sz.sanitize(in, kind)
				if !satRange.Contains(got.S) {
					t.Errorf("dark=%v kind=%v in=%v: saturation %v outside %v", isDark, kind, in, got.S, satRange)
				}
				if !briRange.Contains(got.B) {
					t.Errorf("dark=%v kind=%v in=%v: brightness %v outside %v", isDark, kind, in, got.B, briRange)
				}
			}
		}
	}
}

func TestDarkShadowCap(t *testing.T) {
	// Shape tier, dark mode, a brightness low enough to trip the cap.
	ranges := TierRanges{
		ShapeS: Range{0, 1},
		ShapeB: Range{0, 1},
	}
	sz := newSanitizer(ranges, true, ComplexityHigh, false)

	got := sz.sanitize(NewOpaque(220, 0.9, 0.15), KindShape)
	maxS := 0.30 + (0.15/0.30)*0.25
	if got.S > maxS+1e-9 {
		t.Errorf("saturation %v exceeds dark-shadow cap %v", got.S, maxS)
	}
	if !sz.flags.Has(RiskDarkShadow) {
		t.Error("dark-shadow flag not recorded")
	}
}

func TestEnvelopeCeiling(t *testing.T) {
	tests := []struct {
		name string
		b    float64
		want float64
	}{
		{name: "deep shadow", b: 0.10, want: 0.38},
		{name: "mid band", b: 0.60, want: 0.68},
		{name: "highlight", b: 0.95, want: 0.52},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := envelopeCeiling(tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("envelopeCeiling(%v) = %v, want %v", tt.b, got, tt.want)
			}
		})
	}

	// The ramp between segments is monotone.
	prev := envelopeCeiling(0.22)
	for b := 0.23; b <= 0.40; b += 0.01 {
		cur := envelopeCeiling(b)
		if cur < prev {
			t.Fatalf("ceiling not monotone rising at b=%v", b)
		}
		prev = cur
	}
}

func TestGreenDangerCaps(t *testing.T) {
	ranges := TierRanges{
		BackgroundS: Range{0, 1},
		BackgroundB: Range{0, 1},
		ShapeS:      Range{0, 1},
		ShapeB:      Range{0, 1},
	}
	sz := newSanitizer(ranges, true, ComplexityHigh, false)

	bg := sz.sanitize(NewOpaque(110, 0.9, 0.6), KindBackground)
	if bg.S > 0.34+1e-9 {
		t.Errorf("background green saturation = %v, want <= 0.34", bg.S)
	}
	shape := sz.sanitize(NewOpaque(110, 0.9, 0.6), KindShape)
	if shape.S > 0.60+1e-9 {
		t.Errorf("shape green saturation = %v, want <= 0.60", shape.S)
	}
	if !sz.flags.Has(RiskGreenDanger) {
		t.Error("green-danger flag not recorded")
	}
}

func TestMuddyYellowCorrection(t *testing.T) {
	ranges := TierRanges{ShapeS: Range{0, 1}, ShapeB: Range{0, 1}}
	sz := newSanitizer(ranges, true, ComplexityHigh, false)

	got := sz.sanitize(NewOpaque(70, 0.8, 0.3), KindShape)
	if got.S > 0.55+1e-9 {
		t.Errorf("muddy yellow saturation = %v, want <= 0.55", got.S)
	}
	if got.B < 0.52-1e-9 {
		t.Errorf("muddy yellow brightness = %v, want >= 0.52", got.B)
	}
	if hueDistance(got.H, muddyYellowAnchor) >= hueDistance(70, muddyYellowAnchor) {
		t.Errorf("muddy yellow hue %v did not move toward %v", got.H, muddyYellowAnchor)
	}
	if !sz.flags.Has(RiskMuddyYellow) {
		t.Error("muddy-yellow flag not recorded")
	}
}

func TestHospitalGreenEscape(t *testing.T) {
	ranges := testRanges(true)
	sz := newSanitizer(ranges, true, ComplexityHigh, false)

	inputs := []Color{
		NewOpaque(130, 0.5, 0.5),
		NewOpaque(120, 0.6, 0.4),
		NewOpaque(140, 0.4, 0.3),
	}
	for _, in := range inputs {
		for _, kind := range []ElementKind{KindBackground, KindShape, KindDot} {
			got := sz.sanitize(in, kind)
			if inHospitalGreen(got) {
				t.Errorf("kind=%v in=%v: sanitized colour %v still inside hospital-green zone", kind, in, got)
			}
		}
	}
}

func TestHospitalGreenForcedExit(t *testing.T) {
	// A brightness ceiling below the gentle pass's 0.56 floor keeps the
	// colour trapped, forcing the hue jump.
	ranges := TierRanges{ShapeS: Range{0.40, 0.70}, ShapeB: Range{0.30, 0.50}}
	sz := newSanitizer(ranges, true, ComplexityHigh, false)

	got := sz.sanitize(NewOpaque(130, 0.6, 0.45), KindShape)
	if inHospitalGreen(got) {
		t.Fatalf("forced exit failed: %v still inside hospital-green zone", got)
	}
	if got.H > hospitalHueLo && got.H < hospitalHueHi {
		t.Errorf("forced exit should move the hue out of [%v, %v], got %v", hospitalHueLo, hospitalHueHi, got.H)
	}
	if !sz.flags.Has(RiskHospitalGreen) {
		t.Error("hospital-green flag not recorded")
	}
}

func TestRiskFlagString(t *testing.T) {
	if got := RiskFlag(0).String(); got != "none" {
		t.Errorf("empty flag set = %q, want none", got)
	}
	f := RiskGreenDanger | RiskRedZone
	if got := f.String(); got != "green-danger,red-zone" {
		t.Errorf("flag set = %q, want green-danger,red-zone", got)
	}
}
