package cli

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/velvetcat/harmonia/internal/harmony"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// colourPreview returns an ANSI-coloured preview block for a colour.
// Uses background colour with spaces for a solid block.
func colourPreview(c harmony.Color, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	r, g, b := c.RGB255()
	bgColour := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, r, g, b, ansiSuffix)
	block := strings.Repeat(" ", width)
	return bgColour + block + ansiReset
}

// formatColour renders one colour line: preview block (when the terminal
// supports it), hex code, and HSB components.
func formatColour(c harmony.Color, showPreview bool) string {
	if showPreview {
		return fmt.Sprintf("%s %s  %s", colourPreview(c, defaultWidth), c.Hex(), c.String())
	}
	return fmt.Sprintf("%s  %s", c.Hex(), c.String())
}

// supportsColourPreviews reports whether stdout is a terminal that can
// render the ANSI blocks. The --no-color flag always wins.
func supportsColourPreviews() bool {
	if globalNoColor {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
