// Package cli provides the command-line interface for Harmonia.
package cli

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/velvetcat/harmonia/internal/version"
)

var (
	// Global flags
	globalVerbose bool
	globalNoColor bool

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "harmonia",
		Short: "A deterministic artwork colour harmonizer",
		Long: `Harmonia turns a ranked list of artwork colours into a display palette:
background stops, a shape pool, and a dot accent, each kept inside
perceptually safe saturation and brightness envelopes and away from
catalogued ugly hue zones.

The engine is a pure function: the same colours, mode, and seed always
produce the same palette.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd returns the configured root command for main.
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	registerGlobalFlags(rootCmd.PersistentFlags())

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(swatchesCmd)
}

// registerGlobalFlags wires the flags every subcommand inherits.
func registerGlobalFlags(flags *pflag.FlagSet) {
	flags.BoolVarP(&globalVerbose, "verbose", "v", false, "enable verbose diagnostics on stderr")
	flags.BoolVar(&globalNoColor, "no-color", false, "disable ANSI colour previews")
}

// newLogger builds the diagnostics logger: debug to stderr when verbose,
// otherwise fully off.
func newLogger() hclog.Logger {
	level := hclog.Off
	output := io.Writer(io.Discard)
	if globalVerbose {
		level = hclog.Debug
		output = os.Stderr
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "harmonia",
		Level:  level,
		Output: output,
	})
}
