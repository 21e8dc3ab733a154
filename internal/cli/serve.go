package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rnadraw/pkg/api"
	"github.com/matzehuels/rnadraw/pkg/buildinfo"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the drawing API over HTTP",
		Long: `Serve the drawing pipeline over HTTP.

Drawings and rendered artifacts are stored in the configured cache backend
([cache] in the config file, or RNADRAW_CACHE). With several server
instances use the redis or mongo backend so every instance sees every
drawing. The server shuts down gracefully on SIGINT/SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, cfg, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			logger := loggerFromContext(ctx)
			logger.Info("starting rnadraw api",
				"version", buildinfo.Short(),
				"cache", cacheLabel(cfg))

			return api.NewServer(runner, cfg, logger).ListenAndServe(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching (drawings cannot be fetched afterwards)")

	return cmd
}
