package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rnadraw/pkg/cache"
	"github.com/matzehuels/rnadraw/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached artifact from the configured backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Cache.Backend == config.BackendNone {
				printInfo("Caching is disabled")
				return nil
			}

			count, err := clearCache(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached entries", count)
			printDetail("Backend: %s", cacheLabel(cfg))
			return nil
		},
	}
}

// clearCache empties the configured backend and returns the number of
// removed entries.
func clearCache(ctx context.Context, cfg config.Config) (int, error) {
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return 0, err
		}
		defer rc.Close()
		return rc.Clear(ctx, redisKeyPattern)
	case config.BackendMongo:
		mc, err := cache.NewMongoCache(ctx, cfg.Cache.MongoURI, cfg.Cache.MongoDatabase, cfg.Cache.MongoCollection)
		if err != nil {
			return 0, err
		}
		defer mc.Close()
		return mc.Clear(ctx)
	default:
		fc, err := cache.NewFileCache(cfg.Cache.Dir)
		if err != nil {
			return 0, err
		}
		return fc.Clear()
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache lives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, cacheLabel(cfg))
			return nil
		},
	}
}
