package harmony

import (
	"math"
	"testing"
)

func selectFor(t *testing.T, candidates []Color, isDark bool) float64 {
	t.Helper()
	stats := Analyze(candidates)
	hue, _ := SelectPrimaryHue(stats, candidates, isDark)
	return hue
}

func TestGrayscalePrimaryHue(t *testing.T) {
	candidates := []Color{
		NewOpaque(0, 0.02, 0.1),
		NewOpaque(0, 0.02, 0.5),
		NewOpaque(0, 0.02, 0.9),
	}
	if got := selectFor(t, candidates, true); got != grayscalePrimaryHue {
		t.Errorf("grayscale primary hue = %v, want %v", got, grayscalePrimaryHue)
	}
}

func TestGreenBandSnapsToBoundary(t *testing.T) {
	tests := []struct {
		name string
		hue  float64
		want float64
	}{
		{name: "upper half snaps high", hue: 125, want: greenExitHi},
		{name: "lower half snaps low", hue: 100, want: greenExitLo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := selectFor(t, []Color{NewOpaque(tt.hue, 0.5, 0.4)}, false)
			if got != tt.want {
				t.Errorf("primary hue = %v, want exactly %v", got, tt.want)
			}
			if got > 92 && got < 140 {
				t.Errorf("primary hue %v landed inside the green danger band", got)
			}
		})
	}
}

func TestRedZonePrimaryHuePulledOut(t *testing.T) {
	tests := []struct {
		name string
		hue  float64
	}{
		{name: "low wrap", hue: 0},
		{name: "high wrap", hue: 355},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := []Color{
				NewOpaque(tt.hue, 0.9, 0.9),
				NewOpaque(tt.hue, 0.9, 0.9),
				NewOpaque(tt.hue, 0.9, 0.9),
			}
			got := selectFor(t, candidates, false)
			if inRedZone(got) {
				t.Errorf("primary hue %v still inside the red wraparound zone", got)
			}
			if hueDistance(got, tt.hue) > 20 {
				t.Errorf("red correction should stay light: %v is %v degrees from %v",
					got, hueDistance(got, tt.hue), tt.hue)
			}
		})
	}
}

func TestMuddyYellowPulledTowardAnchor(t *testing.T) {
	got := selectFor(t, []Color{NewOpaque(60, 0.5, 0.5)}, false)
	if got >= 60 {
		t.Errorf("primary hue %v should move toward %v from 60", got, muddyYellowAnchor)
	}
	if hueDistance(got, muddyYellowAnchor) >= hueDistance(60, muddyYellowAnchor) {
		t.Errorf("primary hue %v did not approach the anchor %v", got, muddyYellowAnchor)
	}
}

func TestSalientCandidateWins(t *testing.T) {
	// One vivid mid-brightness candidate dominates the ranking; its hue is
	// in no danger band, so it survives correction untouched.
	candidates := []Color{
		NewOpaque(210, 0.8, 0.6),
		NewOpaque(40, 0.3, 0.3),
	}
	got := selectFor(t, candidates, true)
	if math.Abs(got-210) > 1e-9 {
		t.Errorf("primary hue = %v, want the salient candidate's 210", got)
	}
}

func TestClusterCentreFallback(t *testing.T) {
	// Bland candidates: no salient score reaches the threshold, so the
	// primary cluster centre decides.
	candidates := []Color{
		NewOpaque(230, 0.18, 0.5),
		NewOpaque(226, 0.18, 0.5),
	}
	stats := Analyze(candidates)
	if len(stats.TopSalientHues) > 0 && stats.TopSalientHues[0].Score >= salientScoreMin {
		t.Fatalf("setup: salient score %v should be below %v", stats.TopSalientHues[0].Score, salientScoreMin)
	}
	got, _ := SelectPrimaryHue(stats, candidates, true)
	if hueDistance(got, stats.TopClusters[0].Center) > 1e-6 {
		t.Errorf("primary hue = %v, want cluster centre %v", got, stats.TopClusters[0].Center)
	}
}

func TestHueRiskPenaltyOrdering(t *testing.T) {
	if hueRiskPenalty(110) <= hueRiskPenalty(220) {
		t.Error("green danger must cost more than a safe hue")
	}
	if hueRiskPenalty(220) != 0 {
		t.Errorf("hue 220 should carry no penalty, got %v", hueRiskPenalty(220))
	}
}
