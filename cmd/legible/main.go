// Legible - accessible colour palettes for rich-text editors
//
// Legible filters text and background colour palettes so that every
// colour offered to an author keeps a WCAG contrast ratio with the
// colour it will be paired with.
package main

import (
	"os"

	"github.com/jmylchreest/legible/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
