// Harmonia - a deterministic artwork colour harmonizer
//
// Harmonia turns ranked artwork colours into display palettes with
// background, shape, and dot tiers kept inside perceptually safe bounds.
package main

import (
	"os"

	"github.com/velvetcat/harmonia/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
