// Package config loads rnadraw settings from a TOML file and the
// environment.
//
// Settings are resolved in three layers, later layers winning:
//
//  1. built-in defaults ([Default])
//  2. the TOML file ($XDG_CONFIG_HOME/rnadraw/config.toml unless a path is given)
//  3. RNADRAW_* environment variables
//
// Command-line flags are applied on top by the CLI.
//
// # File Format
//
//	[layout]
//	node_r = 10
//	primary_space = 25
//	pair_space = 45
//	cell_padding = 40
//
//	[render]
//	letters = false
//	dpi = 72
//	formats = ["svg"]
//
//	[colors]
//	default = "#cccccc"
//	palette = "deep"
//
//	[cache]
//	backend = "redis"
//	ttl = "168h"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/rnadraw/pkg/errors"
	"github.com/matzehuels/rnadraw/pkg/layout"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Environment variables that override the file.
const (
	EnvAddr     = "RNADRAW_ADDR"
	EnvCache    = "RNADRAW_CACHE"
	EnvCacheDir = "RNADRAW_CACHE_DIR"
	EnvRedisURL = "RNADRAW_REDIS_URL"
	EnvMongoURI = "RNADRAW_MONGO_URI"
)

// Config is the complete rnadraw configuration.
type Config struct {
	Layout layout.Spacing `toml:"layout"`
	Render Render         `toml:"render"`
	Colors Colors         `toml:"colors"`
	Cache  Cache          `toml:"cache"`
	Server Server         `toml:"server"`
}

// Render holds output settings.
type Render struct {
	Letters    bool     `toml:"letters"`
	Backbone   bool     `toml:"backbone"`
	DPI        float64  `toml:"dpi"`
	Background string   `toml:"background"`
	Formats    []string `toml:"formats"`
	// MinInches and MaxInches clamp the fitted figure size.
	MinInches float64 `toml:"min_inches"`
	MaxInches float64 `toml:"max_inches"`
}

// Colors holds colouring defaults.
type Colors struct {
	Default     string `toml:"default"`
	Palette     string `toml:"palette"`
	Scheme      string `toml:"scheme"`
	DataPalette string `toml:"data_palette"`
}

// Cache selects and configures the artifact cache.
type Cache struct {
	Backend         string   `toml:"backend"`
	TTL             Duration `toml:"ttl"`
	Dir             string   `toml:"dir"`
	RedisURL        string   `toml:"redis_url"`
	MongoURI        string   `toml:"mongo_uri"`
	MongoDatabase   string   `toml:"mongo_database"`
	MongoCollection string   `toml:"mongo_collection"`
}

// Server configures the HTTP API.
type Server struct {
	Addr         string   `toml:"addr"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// Duration is a time.Duration written as a Go duration string ("24h").
type Duration struct{ time.Duration }

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: layout.DefaultSpacing(),
		Render: Render{
			Backbone:  true,
			DPI:       72,
			Formats:   []string{"svg"},
			MinInches: 1,
			MaxInches: 200,
		},
		Colors: Colors{
			Palette:     "deep",
			DataPalette: "viridis",
		},
		Cache: Cache{
			Backend:         BackendFile,
			TTL:             Duration{7 * 24 * time.Hour},
			Dir:             DefaultCacheDir(),
			MongoDatabase:   "rnadraw",
			MongoCollection: "artifacts",
		},
		Server: Server{
			Addr:         ":8080",
			MaxBodyBytes: 1 << 20,
			ReadTimeout:  Duration{15 * time.Second},
			WriteTimeout: Duration{60 * time.Second},
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/rnadraw/config.toml.
func DefaultPath() string {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, "rnadraw", "config.toml")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "rnadraw", "config.toml")
	}
	return filepath.Join(".", ".rnadraw.toml")
}

// DefaultCacheDir returns the cache directory using the XDG standard
// (~/.cache/rnadraw/).
func DefaultCacheDir() string {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, "rnadraw")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cache", "rnadraw")
	}
	return filepath.Join(os.TempDir(), "rnadraw")
}

// Load reads the file at path over the defaults and applies environment
// overrides. An empty path reads [DefaultPath] and tolerates its absence;
// an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case err == nil:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return cfg, errors.New(errors.ErrCodeInvalidInput,
				"%s: unknown key %q", path, undecoded[0].String())
		}
	case os.IsNotExist(err) && !explicit:
	case os.IsNotExist(err):
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	default:
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}

	cfg.applyEnv()
	cfg.Layout = cfg.Layout.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults. It does not read the
// environment.
func Parse(text string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "unknown key %q", undecoded[0].String())
	}
	cfg.Layout = cfg.Layout.WithDefaults()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	c.Server.Addr = envOr(EnvAddr, c.Server.Addr)
	c.Cache.Backend = strings.ToLower(envOr(EnvCache, c.Cache.Backend))
	c.Cache.Dir = envOr(EnvCacheDir, c.Cache.Dir)
	c.Cache.RedisURL = envOr(EnvRedisURL, c.Cache.RedisURL)
	c.Cache.MongoURI = envOr(EnvMongoURI, c.Cache.MongoURI)
}

// Validate checks the configuration for contradictions.
func (c Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	if c.Render.DPI <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "render.dpi must be positive, got %g", c.Render.DPI)
	}
	if c.Render.MinInches <= 0 || c.Render.MaxInches < c.Render.MinInches {
		return errors.New(errors.ErrCodeInvalidInput,
			"render size bounds [%g, %g] are invalid", c.Render.MinInches, c.Render.MaxInches)
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache.redis_url is required for the redis backend")
		}
	case BackendMongo:
		if c.Cache.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache.mongo_uri is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput,
			"unknown cache backend %q (must be one of: file, redis, mongo, none)", c.Cache.Backend)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "server.max_body_bytes must be positive")
	}
	return nil
}

// String renders the configuration as TOML.
func (c Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return b.String()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
