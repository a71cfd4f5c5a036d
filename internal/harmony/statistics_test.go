package harmony

import (
	"math"
	"testing"
)

func TestRankWeights(t *testing.T) {
	for _, n := range []int{1, 2, 4, 5, 10} {
		weights := rankWeights(n)
		if len(weights) != n {
			t.Fatalf("rankWeights(%d) returned %d weights", n, len(weights))
		}
		sum := 0.0
		for i, w := range weights {
			sum += w
			if i > 0 && w > weights[i-1] {
				t.Errorf("rankWeights(%d): weight %d (%v) exceeds weight %d (%v)", n, i, w, i-1, weights[i-1])
			}
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("rankWeights(%d) sums to %v, want 1", n, sum)
		}
	}

	if rankWeights(0) != nil {
		t.Error("rankWeights(0) should return nil")
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	stats := Analyze(nil)

	if len(stats.Clusters) != 1 {
		t.Fatalf("neutral snapshot should carry one cluster, got %d", len(stats.Clusters))
	}
	if stats.Clusters[0].Center != 220 {
		t.Errorf("neutral cluster centre = %v, want 220", stats.Clusters[0].Center)
	}
	if stats.AvgSaturation != 0.25 {
		t.Errorf("neutral avg saturation = %v, want 0.25", stats.AvgSaturation)
	}
	if stats.Kind != CoverLowSatColor {
		t.Errorf("neutral kind = %v, want %v", stats.Kind, CoverLowSatColor)
	}
}

func TestClassifyCover(t *testing.T) {
	tests := []struct {
		name       string
		candidates []Color
		want       CoverKind
	}{
		{
			name: "grayscale true",
			candidates: []Color{
				NewOpaque(0, 0.02, 0.1),
				NewOpaque(0, 0.02, 0.3),
				NewOpaque(0, 0.02, 0.5),
				NewOpaque(0, 0.02, 0.7),
				NewOpaque(0, 0.02, 0.9),
			},
			want: CoverGrayscaleTrue,
		},
		{
			name: "mostly bw with colour",
			candidates: []Color{
				NewOpaque(0, 0, 0.05),
				NewOpaque(0, 0, 0.08),
				NewOpaque(0, 0.05, 0.95),
				NewOpaque(0, 0.05, 0.96),
				NewOpaque(200, 0.8, 0.5),
			},
			want: CoverMostlyBWWithColor,
		},
		{
			name: "rich distributed",
			candidates: []Color{
				NewOpaque(0, 0.6, 0.6),
				NewOpaque(120, 0.6, 0.6),
				NewOpaque(240, 0.6, 0.6),
				NewOpaque(0, 0.6, 0.6),
				NewOpaque(120, 0.6, 0.6),
				NewOpaque(240, 0.6, 0.6),
			},
			want: CoverRichDistributed,
		},
		{
			name: "low sat colour",
			candidates: []Color{
				NewOpaque(210, 0.10, 0.5),
				NewOpaque(215, 0.10, 0.5),
				NewOpaque(212, 0.10, 0.5),
			},
			want: CoverLowSatColor,
		},
		{
			name: "normal",
			candidates: []Color{
				NewOpaque(200, 0.5, 0.5),
				NewOpaque(205, 0.5, 0.5),
				NewOpaque(210, 0.5, 0.5),
			},
			want: CoverNormal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := Analyze(tt.candidates)
			if stats.Kind != tt.want {
				t.Errorf("Analyze().Kind = %v, want %v", stats.Kind, tt.want)
			}
		})
	}
}

func TestAccentDetection(t *testing.T) {
	candidates := []Color{
		NewOpaque(200, 0.5, 0.5),
		NewOpaque(200, 0.5, 0.5),
		NewOpaque(200, 0.5, 0.5),
		NewOpaque(30, 0.6, 0.6),
		NewOpaque(30, 0.6, 0.6),
	}
	stats := Analyze(candidates)

	if !stats.AccentEnabled {
		t.Fatal("accent should be enabled for a strong second cluster")
	}
	if hueDistance(stats.AccentHue, 30) > 5 {
		t.Errorf("accent hue = %v, want near 30", stats.AccentHue)
	}
	if hueDistance(stats.DominantHue, 200) > 5 {
		t.Errorf("dominant hue = %v, want near 200", stats.DominantHue)
	}
	if stats.AccentShare < accentMinShare {
		t.Errorf("accent share = %v, want at least %v", stats.AccentShare, accentMinShare)
	}
}

func TestClusteringMergesNearbyHues(t *testing.T) {
	candidates := []Color{
		NewOpaque(100, 0.5, 0.5),
		NewOpaque(110, 0.5, 0.5),
		NewOpaque(105, 0.5, 0.5),
	}
	stats := Analyze(candidates)
	if len(stats.Clusters) != 1 {
		t.Errorf("hues within the merge arc should form one cluster, got %d", len(stats.Clusters))
	}
}

func TestClusteringSplitsFarHues(t *testing.T) {
	candidates := []Color{
		NewOpaque(100, 0.5, 0.5),
		NewOpaque(180, 0.5, 0.5),
	}
	stats := Analyze(candidates)
	if len(stats.Clusters) != 2 {
		t.Errorf("hues beyond the merge arc should split, got %d clusters", len(stats.Clusters))
	}
}

func TestIsNearGray(t *testing.T) {
	tests := []struct {
		name       string
		candidates []Color
		want       bool
	}{
		{
			name: "vivid cover",
			candidates: []Color{
				NewOpaque(200, 0.7, 0.5),
				NewOpaque(205, 0.7, 0.5),
			},
			want: false,
		},
		{
			name: "washed out cover",
			candidates: []Color{
				NewOpaque(200, 0.08, 0.5),
				NewOpaque(205, 0.08, 0.5),
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := Analyze(tt.candidates)
			if got := isNearGray(stats); got != tt.want {
				t.Errorf("isNearGray() = %v, want %v", got, tt.want)
			}
		})
	}

	grayscale := Analyze([]Color{NewOpaque(0, 0.01, 0.2), NewOpaque(0, 0.01, 0.8)})
	if grayscale.Kind != CoverGrayscaleTrue {
		t.Fatalf("setup: kind = %v, want grayscale", grayscale.Kind)
	}
	if isNearGray(grayscale) {
		t.Error("a true grayscale cover must not be near-gray; it has its own branch")
	}
}
