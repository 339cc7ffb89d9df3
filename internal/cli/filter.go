package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/legible/internal/accessibility"
	"github.com/jmylchreest/legible/internal/colour"
	"github.com/jmylchreest/legible/internal/i18n"
	"github.com/jmylchreest/legible/internal/palette"
)

// outputFormat is the --format flag shared by listing commands.
type outputFormat string

const (
	formatTable outputFormat = "table"
	formatJSON  outputFormat = "json"
)

var _ pflag.Value = (*outputFormat)(nil)

func (f *outputFormat) String() string { return string(*f) }

func (f *outputFormat) Set(s string) error {
	switch outputFormat(s) {
	case formatTable, formatJSON:
		*f = outputFormat(s)
		return nil
	default:
		return fmt.Errorf("invalid format %q (valid: table, json)", s)
	}
}

func (f *outputFormat) Type() string { return "format" }

func newFilterCmd(root *rootOptions) *cobra.Command {
	level := accessibility.LevelAA
	format := formatTable
	var text, background string

	cmd := &cobra.Command{
		Use:   "filter (--text <colour> | --background <colour>)",
		Short: "List the palette colours that are legible with a given colour",
		Long: `List the configured colours that meet the WCAG contrast level against a
reference colour.

With --text, lists the background colours text in that colour can be placed
on. With --background, lists the text colours readable on that background; a
white background lists every text colour.

Examples:
  legible filter --text '#000000'
  legible filter --background 'rgb(0, 0, 128)' --level AAA --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := root.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			filter := accessibility.NewFilter(store, level)

			var (
				kept      palette.Palette
				reference string
				ratio     func(value string) float64
			)
			if cmd.Flags().Changed("text") {
				reference = text
				kept, err = filter.BackgroundsForText(text)
				ratio = func(value string) float64 { return colour.ContrastRatio(text, value) }
			} else {
				reference = background
				kept, err = filter.TextsForBackground(background)
				ratio = func(value string) float64 { return colour.ContrastRatio(value, background) }
			}
			if err != nil {
				return err
			}

			root.logger.Debug("filtered palette", "reference", reference, "level", level, "kept", len(kept))

			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), kept)
			}
			writePaletteTable(cmd.OutOrStdout(), kept, ratio)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "text colour to find legible backgrounds for")
	cmd.Flags().StringVar(&background, "background", "", "background colour to find legible text colours for")
	cmd.Flags().Var(&level, "level", "WCAG level (AA, AAA)")
	cmd.Flags().VarP(&format, "format", "f", "output format (table, json)")
	cmd.MarkFlagsMutuallyExclusive("text", "background")
	cmd.MarkFlagsOneRequired("text", "background")

	return cmd
}

// writePaletteTable prints entries with their contrast against the reference.
// ratio may be nil when there is no reference colour.
func writePaletteTable(w io.Writer, p palette.Palette, ratio func(value string) float64) {
	headers := []string{"", "Name", "Value"}
	if ratio != nil {
		headers = append(headers, "Ratio")
	}
	table := NewTable(headers)
	table.AlignRight(3)

	for _, e := range p {
		if e.IsRemove() {
			table.AddRow([]string{"", i18n.T("removeColor", palette.RemoveName), e.Value})
			continue
		}
		row := []string{
			colour.ColourPreview(colour.ParseToTriple(e.Value), 4),
			e.Name,
			colour.NormalizeToHex(e.Value),
		}
		if ratio != nil {
			row = append(row, fmt.Sprintf("%.2f", ratio(e.Value)))
		}
		table.AddRow(row)
	}

	fmt.Fprint(w, table.Render())
	swatches := len(p)
	if p.HasRemove() {
		swatches--
	}
	fmt.Fprintln(w, i18n.Tn("colourCount", "{{.Count}} colour", "{{.Count}} colours", swatches))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
