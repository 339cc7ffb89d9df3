// Package cli provides the command-line interface for legible.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/legible/internal/colour"
	"github.com/jmylchreest/legible/internal/config"
	"github.com/jmylchreest/legible/internal/i18n"
	"github.com/jmylchreest/legible/internal/palette"
	"github.com/jmylchreest/legible/internal/security"
	"github.com/jmylchreest/legible/internal/settings"
	"github.com/jmylchreest/legible/internal/source"
	"github.com/jmylchreest/legible/internal/version"
)

// rootOptions holds the global flags and the state derived from them.
type rootOptions struct {
	verbose    bool
	quiet      bool
	lang       string
	configPath string
	remoteURL  string

	config config.Config
	logger hclog.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "legible",
		Short: "Accessible colour palettes for rich-text editors",
		Long: `Legible filters an editor's text and background colour pickers down to the
colours that keep text readable, using the WCAG 2.x contrast ratio.

Palettes come from a JSON document with "textcolors" and "backgroundcolors"
lists, a URL serving the same document, or the built-in colour scheme.`,
		Version:           version.Short(),
		SilenceUsage:      true,
		PersistentPreRunE: opts.setup,
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&opts.lang, "lang", "", "message language (default from LEGIBLE_LANG or LANG)")
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "palette document (JSON); defaults to the built-in scheme")
	rootCmd.PersistentFlags().StringVar(&opts.remoteURL, "remote", "", "URL of a palette document (overrides --config)")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newContrastCmd(opts))
	rootCmd.AddCommand(newFilterCmd(opts))
	rootCmd.AddCommand(newPaletteCmd(opts))
	rootCmd.AddCommand(newValidateCmd(opts))
	rootCmd.AddCommand(newPreviewCmd(opts))
	rootCmd.AddCommand(newServeCmd(opts))

	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration, then lets flags override it.
func (o *rootOptions) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewBuilder().WithDotEnv().WithEnvConfig().Build()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("config") {
		cfg.PalettesPath = o.configPath
	}
	if flags.Changed("remote") {
		cfg.RemoteURL = o.remoteURL
	}
	if flags.Changed("lang") {
		cfg.Lang = o.lang
	}
	if cfg.RemoteURL != "" {
		if err := security.ValidateRemoteURL(cfg.RemoteURL); err != nil {
			return fmt.Errorf("invalid remote palette URL: %w", err)
		}
	}
	switch {
	case o.verbose:
		cfg.LogLevel = "debug"
	case o.quiet:
		cfg.LogLevel = "error"
	}
	o.config = cfg

	o.logger = hclog.New(&hclog.LoggerOptions{
		Name:   "legible",
		Level:  cfg.HCLogLevel(),
		Output: cmd.ErrOrStderr(),
	})

	if flags.Changed("lang") {
		i18n.Init(o.lang)
	} else {
		i18n.Init(i18n.ResolveLocale(cfg.Lang))
	}

	colour.DisableColourOutput = !colour.SupportsANSIColours()
	return nil
}

// source picks where palettes are read from.
func (o *rootOptions) source() palette.Source {
	switch {
	case o.config.RemoteURL != "":
		return source.NewRemote(o.config.RemoteURL, o.config.InitTimeout)
	case o.config.PalettesPath != "":
		return source.NewFile(o.config.PalettesPath, o.logger)
	default:
		return source.NewStatic(settings.DefaultDocument())
	}
}

// loadStore captures the configured palettes. One-shot commands do not wait
// for a source that is not ready yet: a missing palette file is an error.
func (o *rootOptions) loadStore(ctx context.Context) (*palette.Store, error) {
	src := o.source()
	if _, _, ok, err := src.Palettes(ctx); err != nil {
		return nil, err
	} else if !ok {
		return nil, fmt.Errorf("palette configuration is not available (config %q, remote %q)",
			o.config.PalettesPath, o.config.RemoteURL)
	}

	store := palette.NewStore(palette.WithLogger(o.logger))
	if err := store.Init(ctx, src); err != nil {
		return nil, err
	}
	return store, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
