package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/legible/internal/accessibility"
	"github.com/jmylchreest/legible/internal/colour"
	"github.com/jmylchreest/legible/internal/i18n"
)

// ErrInsufficientContrast is returned by contrast --check when the pair fails.
var ErrInsufficientContrast = errors.New("insufficient contrast")

var (
	passStyle = color.New(color.FgGreen, color.Bold)
	failStyle = color.New(color.FgRed, color.Bold)
)

// verdict renders a localized pass/fail mark.
func verdict(pass bool) string {
	if pass {
		return passStyle.Sprint(i18n.T("verdictPass", "pass"))
	}
	return failStyle.Sprint(i18n.T("verdictFail", "fail"))
}

func newContrastCmd(root *rootOptions) *cobra.Command {
	level := accessibility.LevelAA
	var (
		check  bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "contrast <foreground> <background>",
		Short: "Show the contrast ratio between two colours",
		Long: `Show the WCAG contrast ratio between a text colour and a background colour,
with the AA (4.5:1) and AAA (7:1) verdicts for normal-size text.

Colours may be hex (#RGB, #RRGGBB) or rgb()/rgba() strings. A fully
transparent rgba() colour is treated as white.

Examples:
  legible contrast '#333' '#FFF'
  legible contrast 'rgb(255, 0, 0)' '#FFFFFF' --level AAA --check`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fg, bg := args[0], args[1]
			report := accessibility.Check(fg, bg)
			accessible := report.Ratio >= accessibility.Threshold(level)
			out := cmd.OutOrStdout()

			if asJSON {
				if err := writeJSON(out, report); err != nil {
					return err
				}
			} else if !root.quiet {
				sample := colour.SampleText(colour.ParseToTriple(fg), colour.ParseToTriple(bg), "Sample", 12)
				fmt.Fprintf(out, "%s  %s on %s\n", sample, report.Foreground, report.Background)
				fmt.Fprintf(out, "%s: %.2f:1\n", i18n.T("contrastRatio", "Contrast ratio"), report.Ratio)
				fmt.Fprintf(out, "  AA   %s\n", verdict(report.AA))
				fmt.Fprintf(out, "  AAA  %s\n", verdict(report.AAA))
			}

			if check && !accessible {
				return fmt.Errorf("%w: %.2f:1 is below %s (%.1f:1)",
					ErrInsufficientContrast, report.Ratio, level, accessibility.Threshold(level))
			}
			return nil
		},
	}

	cmd.Flags().Var(&level, "level", "WCAG level for --check (AA, AAA)")
	cmd.Flags().BoolVar(&check, "check", false, "exit with an error if the pair fails --level")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output the report as JSON")

	return cmd
}
