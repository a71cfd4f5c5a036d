package harmony

import (
	"math"
	"testing"
)

func TestNewColorClampsDomain(t *testing.T) {
	tests := []struct {
		name       string
		h, s, b, a float64
		want       Color
	}{
		{
			name: "in range",
			h:    120, s: 0.5, b: 0.5, a: 1,
			want: Color{H: 120, S: 0.5, B: 0.5, A: 1},
		},
		{
			name: "negative hue wraps",
			h:    -30, s: 0.5, b: 0.5, a: 1,
			want: Color{H: 330, S: 0.5, B: 0.5, A: 1},
		},
		{
			name: "hue over 360 wraps",
			h:    400, s: 0.5, b: 0.5, a: 1,
			want: Color{H: 40, S: 0.5, B: 0.5, A: 1},
		},
		{
			name: "saturation and brightness clamp",
			h:    10, s: 1.5, b: -0.2, a: 1,
			want: Color{H: 10, S: 1, B: 0, A: 1},
		},
		{
			name: "NaN components collapse to neutral",
			h:    math.NaN(), s: math.NaN(), b: math.NaN(), a: math.NaN(),
			want: Color{H: 0, S: 0, B: 0, A: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewColor(tt.h, tt.s, tt.b, tt.a)
			if got != tt.want {
				t.Errorf("NewColor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHueDistance(t *testing.T) {
	tests := []struct {
		name   string
		h1, h2 float64
		want   float64
	}{
		{name: "same hue", h1: 100, h2: 100, want: 0},
		{name: "simple", h1: 10, h2: 40, want: 30},
		{name: "wraparound", h1: 350, h2: 10, want: 20},
		{name: "opposite", h1: 0, h2: 180, want: 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hueDistance(tt.h1, tt.h2); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("hueDistance(%v, %v) = %v, want %v", tt.h1, tt.h2, got, tt.want)
			}
		})
	}
}

func TestClampHueTo(t *testing.T) {
	tests := []struct {
		name              string
		h, anchor, maxArc float64
		want              float64
	}{
		{name: "inside arc unchanged", h: 205, anchor: 200, maxArc: 10, want: 205},
		{name: "clamped above", h: 230, anchor: 200, maxArc: 10, want: 210},
		{name: "clamped below", h: 170, anchor: 200, maxArc: 10, want: 190},
		{name: "wraparound clamp", h: 40, anchor: 350, maxArc: 20, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampHueTo(tt.h, tt.anchor, tt.maxArc); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("clampHueTo(%v, %v, %v) = %v, want %v", tt.h, tt.anchor, tt.maxArc, got, tt.want)
			}
		})
	}
}

func TestRotateHueToward(t *testing.T) {
	if got := rotateHueToward(60, 42, 0.5); math.Abs(got-51) > 1e-9 {
		t.Errorf("rotateHueToward(60, 42, 0.5) = %v, want 51", got)
	}
	// Rotation takes the short way around the wheel.
	if got := rotateHueToward(350, 10, 0.5); math.Abs(got-0) > 1e-9 {
		t.Errorf("rotateHueToward(350, 10, 0.5) = %v, want 0", got)
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#ff0000")
	if err != nil {
		t.Fatalf("ParseHex(#ff0000) error: %v", err)
	}
	if math.Abs(c.H-0) > 0.5 || math.Abs(c.S-1) > 0.01 || math.Abs(c.B-1) > 0.01 {
		t.Errorf("ParseHex(#ff0000) = %v, want pure red", c)
	}

	if _, err := ParseHex("not-a-colour"); err == nil {
		t.Error("ParseHex should reject malformed input")
	}
}
