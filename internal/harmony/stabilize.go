package harmony

// Stabilize re-tints one previously issued colour: apply the given jitter
// deltas, re-normalize, and re-run the risk sanitizer against the tier
// ranges stored in the palette the colour came from. Pure and stateless;
// safe to call repeatedly on its own output.
func Stabilize(c Color, kind ElementKind, p Palette, hueJitter, saturationJitter, brightnessJitter float64) Color {
	jittered := NewColor(c.H+hueJitter, c.S+saturationJitter, c.B+brightnessJitter, c.A)
	san := newSanitizer(p.Ranges, p.IsDark, p.Complexity, p.IsNearGray)
	return san.sanitize(jittered, kind)
}
