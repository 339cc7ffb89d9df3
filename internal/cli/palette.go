package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/legible/internal/i18n"
	"github.com/jmylchreest/legible/internal/palette"
)

func newPaletteCmd(root *rootOptions) *cobra.Command {
	format := formatTable

	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Show the configured text and background palettes",
		Long: `Show the text and background palettes as the editor pickers receive them,
including the remove-colour entry.

Examples:
  legible palette
  legible palette --config palettes.json --format json`,
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

			out := cmd.OutOrStdout()
			if format == formatJSON {
				return writeJSON(out, struct {
					TextColours       palette.Palette `json:"textcolors"`
					BackgroundColours palette.Palette `json:"backgroundcolors"`
				}{texts, backgrounds})
			}

			fmt.Fprintln(out, i18n.T("textcolors", "Available text colours"))
			writePaletteTable(out, texts, nil)
			fmt.Fprintln(out)
			fmt.Fprintln(out, i18n.T("backgroundcolors", "Available background colours"))
			writePaletteTable(out, backgrounds, nil)
			return nil
		},
	}

	cmd.Flags().VarP(&format, "format", "f", "output format (table, json)")
	return cmd
}
