package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/velvetcat/harmonia/internal/harmony"
)

// ParseColours converts a list of "#rrggbb" strings into ranked HSB
// candidates, preserving order. The list is assumed most-dominant first.
func ParseColours(hexes []string) ([]harmony.Color, error) {
	colours := make([]harmony.Color, 0, len(hexes))
	for _, raw := range hexes {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, "#") {
			trimmed = "#" + trimmed
		}
		c, err := harmony.ParseHex(trimmed)
		if err != nil {
			return nil, err
		}
		colours = append(colours, c)
	}
	return colours, nil
}

// ReadColourFile loads colours from a file: either a JSON array of hex
// strings or plain text with one hex colour per line. Blank lines and
// #-only comment lines are skipped in the text form.
func ReadColourFile(path string) ([]harmony.Color, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read colour file: %w", err)
	}

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var hexes []string
		if err := json.Unmarshal(data, &hexes); err != nil {
			return nil, fmt.Errorf("failed to parse colour file %s: %w", path, err)
		}
		return ParseColours(hexes)
	}

	var lines []string
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == "#" {
			continue
		}
		lines = append(lines, line)
	}
	return ParseColours(lines)
}
