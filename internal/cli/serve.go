package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/legible/internal/accessibility"
	"github.com/jmylchreest/legible/internal/options"
	"github.com/jmylchreest/legible/internal/palette"
	"github.com/jmylchreest/legible/internal/server"
	"github.com/jmylchreest/legible/internal/source"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var (
		addr  string
		level accessibility.Level
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve accessible palettes over HTTP for a browser-side editor",
		Long: `Serve the HTTP bridge. The editor reports selection changes to
POST /api/v1/selection and reads the filtered pickers back from
/api/v1/palettes/text and /api/v1/palettes/background.

The server starts immediately. Until the palette configuration is available
(for example a --config file that has not been written yet) /healthz reports
"pending" and palette endpoints return 503. Waiting is bounded by
LEGIBLE_INIT_TIMEOUT.

Prometheus metrics are exposed at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.config
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("level") {
				cfg.Level = level
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			src := root.source()
			if f, ok := src.(*source.File); ok {
				if err := f.Watch(ctx); err != nil {
					root.logger.Warn("palette file changes will only be picked up by polling", "error", err)
				}
				defer f.Close()
			}

			store := palette.NewStore(
				palette.WithLogger(root.logger),
				palette.WithPollInterval(cfg.PollInterval),
				palette.WithTimeout(cfg.InitTimeout),
			)
			registry := options.NewRegistry()
			options.RegisterPluginOptions(registry)

			go initStore(ctx, root, store, source.NewSeeded(src, registry))

			srv := server.New(server.Config{Addr: cfg.Addr, Level: cfg.Level}, store, registry, root.logger)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from LEGIBLE_ADDR or 127.0.0.1:8787)")
	cmd.Flags().Var(&level, "level", "WCAG level (AA, AAA)")
	return cmd
}

func initStore(ctx context.Context, root *rootOptions, store *palette.Store, src palette.Source) {
	if err := store.Init(ctx, src); err != nil {
		root.logger.Error("palette configuration never became available", "error", err)
		return
	}
	texts, _ := store.Texts()
	backgrounds, _ := store.Backgrounds()
	root.logger.Info("palettes loaded", "texts", len(texts), "backgrounds", len(backgrounds))
}
