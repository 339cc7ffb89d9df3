package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/legible/internal/accessibility"
	"github.com/jmylchreest/legible/internal/preview"
)

func newPreviewCmd(root *rootOptions) *cobra.Command {
	level := accessibility.LevelAA
	var output string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render a PNG grid of every text colour on every background",
		Long: `Render a PNG contrast grid: one row per text colour, one column per
background colour. Each cell shows sample text with its contrast ratio and a
green or red mark for the selected WCAG level.

Examples:
  legible preview --output grid.png
  legible preview --config palettes.json --level AAA -o grid.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := root.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			texts, err := store.Texts()
			if err != nil {
				return err
			}
			backgrounds, err := store.Backgrounds()
			if err != nil {
				return err
			}

			grid := preview.NewGrid(texts, backgrounds, level)
			if err := grid.WriteFile(output); err != nil {
				return err
			}

			root.logger.Debug("rendered contrast grid", "path", output,
				"rows", len(grid.Texts), "columns", len(grid.Backgrounds))
			if !root.quiet {
				b := grid.Bounds()
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%dx%d)\n", output, b.Dx(), b.Dy())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "contrast-grid.png", "output PNG path")
	cmd.Flags().Var(&level, "level", "WCAG level for pass marks (AA, AAA)")
	return cmd
}
