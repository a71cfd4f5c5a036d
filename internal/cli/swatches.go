package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/velvetcat/harmonia/internal/harmony"
)

var (
	// Swatches command flags
	swatchesInput string
	swatchesSeed  uint64
	swatchesDark  bool
	swatchesLight bool
	swatchesJSON  bool
)

// swatchesCmd represents the swatches command
var swatchesCmd = &cobra.Command{
	Use:   "swatches [colour...]",
	Short: "Generate seeded shape swatches from a colour list",
	Long: `Generate representative shape swatches from a ranked colour list.

Swatch selection favours salient, well-separated hues and applies a
small deterministic jitter: identical seeds always reproduce identical
swatches.

Examples:
  # Six swatches from a ranked list, seed 42
  harmonia swatches --seed 42 "#3a6ea5" "#c1440e" "#e0b040"

  # Swatches plus selection diagnostics as JSON
  harmonia swatches --input cover.json --json`,
	Args: cobra.ArbitraryArgs,
	RunE: runSwatches,
}

func init() {
	swatchesCmd.Flags().StringVarP(&swatchesInput, "input", "i", "", "file with ranked hex colours (JSON array or one per line)")
	swatchesCmd.Flags().Uint64Var(&swatchesSeed, "seed", 0, "jitter seed; identical seeds reproduce identical swatches")
	swatchesCmd.Flags().BoolVar(&swatchesDark, "dark", false, "generate for a dark surface (default)")
	swatchesCmd.Flags().BoolVar(&swatchesLight, "light", false, "generate for a light surface")
	swatchesCmd.Flags().BoolVar(&swatchesJSON, "json", false, "emit swatches and diagnostics as JSON")
}

// runSwatches executes the swatches command.
func runSwatches(cmd *cobra.Command, args []string) error {
	isDark, err := resolveMode(swatchesDark, swatchesLight)
	if err != nil {
		return err
	}

	var candidates []harmony.Color
	if swatchesInput != "" {
		if len(args) > 0 {
			return fmt.Errorf("colours must come from either --input or arguments, not both")
		}
		candidates, err = ReadColourFile(swatchesInput)
	} else {
		candidates, err = ParseColours(args)
	}
	if err != nil {
		return err
	}

	colors, diag := harmony.MakeShapeSwatches(swatchesSeed, candidates, nil, isDark)

	if swatchesJSON {
		payload := struct {
			Swatches    []harmony.Color           `json:"swatches"`
			Diagnostics harmony.SwatchDiagnostics `json:"diagnostics"`
		}{Swatches: colors, Diagnostics: diag}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(payload); err != nil {
			return fmt.Errorf("failed to encode swatches: %w", err)
		}
		return nil
	}

	preview := supportsColourPreviews()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Swatches (seed %d, avg saturation %.2f, hue spread %.1f)\n",
		swatchesSeed, diag.AvgSaturation, diag.HueSpread)
	for _, c := range colors {
		fmt.Fprintf(out, "  %s\n", formatColour(c, preview))
	}
	return nil
}
