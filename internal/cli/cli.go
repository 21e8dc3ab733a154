package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rnadraw/pkg/cache"
	"github.com/matzehuels/rnadraw/pkg/config"
	"github.com/matzehuels/rnadraw/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "rnadraw"

	// redisKeyPattern matches every key the CLI and server write to Redis.
	redisKeyPattern = "rnadraw:*"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is the --config flag. Empty means the XDG default.
	ConfigPath string

	cfg *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig loads the configuration once per invocation.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.cfg != nil {
		return *c.cfg, nil
	}
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("loaded config", "path", c.ConfigPath, "cache", cfg.Cache.Backend)
	c.cfg = &cfg
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	store, err := c.openCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(store, nil, c.Logger)
	if cfg.Cache.TTL.Duration > 0 {
		runner.TTL = cfg.Cache.TTL.Duration
	}
	return runner, nil
}

// openCache opens the backend named in cfg. A file cache that cannot be
// created degrades to no caching; network backends must connect.
func (c *CLI) openCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return nil, err
		}
		return rc, nil
	case config.BackendMongo:
		mc, err := cache.NewMongoCache(ctx, cfg.Cache.MongoURI, cfg.Cache.MongoDatabase, cfg.Cache.MongoCollection)
		if err != nil {
			return nil, err
		}
		return mc, nil
	default:
		fc, err := cache.NewFileCache(cfg.Cache.Dir)
		if err != nil {
			c.Logger.Warn("file cache unavailable, caching disabled", "dir", cfg.Cache.Dir, "err", err)
			return cache.NewNullCache(), nil
		}
		return fc, nil
	}
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
// An empty string leaves the choice to the config file.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// cacheLabel names the backend for status output.
func cacheLabel(cfg config.Config) string {
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		return "redis " + cfg.Cache.RedisURL
	case config.BackendMongo:
		return fmt.Sprintf("mongo %s/%s", cfg.Cache.MongoDatabase, cfg.Cache.MongoCollection)
	case config.BackendNone:
		return "disabled"
	default:
		return cfg.Cache.Dir
	}
}
