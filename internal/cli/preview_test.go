package cli

import (
	"strings"
	"testing"

	"github.com/velvetcat/harmonia/internal/harmony"
)

func TestColourPreview(t *testing.T) {
	c := harmony.NewOpaque(0, 1, 1) // pure red

	got := colourPreview(c, 4)
	if !strings.HasPrefix(got, ansiBgPrefix) {
		t.Errorf("preview %q missing ANSI background prefix", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Errorf("preview %q missing ANSI reset", got)
	}
	if !strings.Contains(got, "255;0;0") {
		t.Errorf("preview %q should carry the red RGB channels", got)
	}

	// Zero width falls back to the default block size.
	if !strings.Contains(colourPreview(c, 0), strings.Repeat(" ", defaultWidth)) {
		t.Error("zero width should use the default block width")
	}
}

func TestFormatColour(t *testing.T) {
	c := harmony.NewOpaque(0, 1, 1)

	plain := formatColour(c, false)
	if !strings.Contains(plain, "#ff0000") {
		t.Errorf("plain format %q missing hex code", plain)
	}
	if strings.Contains(plain, ansiBgPrefix) {
		t.Errorf("plain format %q should not carry ANSI codes", plain)
	}

	with := formatColour(c, true)
	if !strings.Contains(with, ansiBgPrefix) {
		t.Errorf("preview format %q should carry ANSI codes", with)
	}
}
