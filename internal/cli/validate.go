package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/legible/internal/i18n"
	"github.com/jmylchreest/legible/internal/options"
	"github.com/jmylchreest/legible/internal/settings"
)

// ErrInvalidDocument is returned by validate when a list has invalid rows.
var ErrInvalidDocument = errors.New("invalid palette document")

func newValidateCmd(root *rootOptions) *cobra.Command {
	var mergeDefaults bool

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a palette document",
		Long: `Validate a palette document: every row needs a name and a 3- or 6-digit hex
colour code, and codes must be unique within a list.

With --merge-defaults the built-in colours whose value is not already in a
list are appended before validating, as the settings page does.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0]) // #nosec G304 - user-specified document
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			doc, err := settings.ParseDocument(data)
			if err != nil {
				return err
			}
			if mergeDefaults {
				defaults := settings.Defaults()
				doc.TextColours = settings.MergeDefaults(doc.TextColours, defaults)
				doc.BackgroundColours = settings.MergeDefaults(doc.BackgroundColours, defaults)
			}

			out := cmd.OutOrStdout()
			invalid := false
			lists := []struct {
				key  string
				list settings.List
			}{
				{options.TextColours, doc.TextColours},
				{options.BackgroundColours, doc.BackgroundColours},
			}
			for _, l := range lists {
				label := i18n.T(l.key, l.key)
				if l.list == nil {
					invalid = true
					fmt.Fprintf(out, "%s: %s\n  %q is missing\n", label, verdict(false), l.key)
					continue
				}

				err := l.list.Validate()
				var verr *settings.ValidationError
				if errors.As(err, &verr) {
					invalid = true
					fmt.Fprintf(out, "%s: %s\n", label, verdict(false))
					for _, msg := range verr.Messages() {
						fmt.Fprintf(out, "  %s\n", msg)
					}
					continue
				}
				if !root.quiet {
					fmt.Fprintf(out, "%s: %s (%s)\n", label, verdict(true),
						i18n.Tn("colourCount", "{{.Count}} colour", "{{.Count}} colours", len(l.list)))
				}
			}

			if invalid {
				return fmt.Errorf("%w: %s", ErrInvalidDocument, args[0])
			}
			if !root.quiet {
				fmt.Fprintln(out, i18n.T("listValid", "Colour list is valid"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&mergeDefaults, "merge-defaults", false, "append built-in colours before validating")
	return cmd
}
