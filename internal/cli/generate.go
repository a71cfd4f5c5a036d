package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/velvetcat/harmonia/internal/harmony"
)

var (
	// Generate command flags
	generateInput string
	generateDark  bool
	generateLight bool
	generateJSON  bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [colour...]",
	Short: "Harmonize a ranked colour list into a display palette",
	Long: `Generate a harmonized palette from a ranked list of artwork colours.

Colours are given as hex strings, most dominant first, either as
arguments or via --input (a JSON array of hex strings, or one colour
per line).

Examples:
  # Harmonize three colours for a dark background
  harmonia generate --dark "#3a6ea5" "#c1440e" "#1f1f1f"

  # Read the ranked colours from a file and emit JSON
  harmonia generate --input cover.json --json

  # Light mode with verbose diagnostics
  harmonia generate --light -v "#88aacc" "#ddeeff"`,
	Args: cobra.ArbitraryArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateInput, "input", "i", "", "file with ranked hex colours (JSON array or one per line)")
	generateCmd.Flags().BoolVar(&generateDark, "dark", false, "harmonize for a dark surface (default)")
	generateCmd.Flags().BoolVar(&generateLight, "light", false, "harmonize for a light surface")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "emit the palette as JSON")
}

// resolveMode turns a --dark/--light pair into a single flag. Dark is the
// default when neither is given.
func resolveMode(dark, light bool) (bool, error) {
	if dark && light {
		return false, fmt.Errorf("--dark and --light are mutually exclusive")
	}
	return !light, nil
}

// loadCandidates gathers the ranked colour list from flags and arguments.
func loadCandidates(args []string) ([]harmony.Color, error) {
	if generateInput != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("colours must come from either --input or arguments, not both")
		}
		return ReadColourFile(generateInput)
	}
	return ParseColours(args)
}

// runGenerate executes the generate command.
func runGenerate(cmd *cobra.Command, args []string) error {
	isDark, err := resolveMode(generateDark, generateLight)
	if err != nil {
		return err
	}

	candidates, err := loadCandidates(args)
	if err != nil {
		return err
	}

	palette := harmony.MakeWithLogger(candidates, nil, isDark, newLogger())

	if generateJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(palette); err != nil {
			return fmt.Errorf("failed to encode palette: %w", err)
		}
		return nil
	}

	printPalette(cmd, palette)
	return nil
}

// printPalette renders the palette for humans, with ANSI previews when the
// terminal supports them.
func printPalette(cmd *cobra.Command, p harmony.Palette) {
	preview := supportsColourPreviews()
	out := cmd.OutOrStdout()

	mode := "light"
	if p.IsDark {
		mode = "dark"
	}
	fmt.Fprintf(out, "Palette (%s, %s, complexity %s)\n", mode, p.Kind, p.Complexity)
	fmt.Fprintf(out, "Primary hue: %.1f (source %.1f)\n", p.PrimaryHue, p.SourceHue)
	if p.Flags != 0 {
		fmt.Fprintf(out, "Risk corrections: %s\n", p.Flags)
	}

	fmt.Fprintln(out, "\nBackground stops:")
	for _, c := range p.BackgroundStops {
		fmt.Fprintf(out, "  %s\n", formatColour(c, preview))
	}

	for i, set := range p.BackgroundVariants {
		fmt.Fprintf(out, "\nBackground variant %d:\n", i+1)
		for _, c := range set {
			fmt.Fprintf(out, "  %s\n", formatColour(c, preview))
		}
	}

	fmt.Fprintln(out, "\nShape pool:")
	for _, c := range p.ShapePool {
		fmt.Fprintf(out, "  %s\n", formatColour(c, preview))
	}

	fmt.Fprintln(out, "\nDot base:")
	fmt.Fprintf(out, "  %s\n", formatColour(p.DotBase, preview))
}
