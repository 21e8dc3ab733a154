package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rnadraw/pkg/cache"
	"github.com/matzehuels/rnadraw/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL is the lifetime of cached artifacts (default cache.TTLArtifact).
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLArtifact,
	}
}

// Execute runs the complete parse → layout → colour → size → render
// pipeline. Only rendering is cached.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result, err := r.Prepare(ctx, opts)
	if err != nil {
		return nil, err
	}

	// Stage 5: Render
	done := observability.Track(ctx, observability.StageRender)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result, opts)
	result.Stats.RenderTime = done(err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit
	observability.Pipeline().OnDrawn(ctx, result.Stats.Residues, result.Stats.Pairs, opts.Formats)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Prepare runs every stage except rendering: parse, layout, colour, size
// and scene construction.
func (r *Runner) Prepare(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Parse
	done := observability.Track(ctx, observability.StageParse)
	pm, err := Parse(opts)
	result.Stats.ParseTime = done(err)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Structure = pm
	result.Stats.Residues = pm.Len()
	result.Stats.Pairs = pm.PairCount()

	r.Logger.Debug("parsed structure",
		"residues", pm.Len(),
		"pairs", pm.PairCount(),
		"duration", result.Stats.ParseTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Layout
	done = observability.Track(ctx, observability.StageLayout)
	res, err := Layout(pm, opts)
	result.Stats.LayoutTime = done(err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = res
	for _, e := range res.Edges {
		if e.Pseudoknot {
			result.Stats.Pseudoknots++
		}
	}

	r.Logger.Info("computed layout",
		"residues", res.Len(),
		"pseudoknots", result.Stats.Pseudoknots,
		"width", res.Box.Width(),
		"height", res.Box.Height(),
		"duration", result.Stats.LayoutTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Colour
	done = observability.Track(ctx, observability.StageColor)
	colors, err := Colors(pm, opts)
	result.Stats.ColorTime = done(err)
	if err != nil {
		return nil, fmt.Errorf("colors: %w", err)
	}
	result.Colors = colors

	r.Logger.Debug("resolved colors", "duration", result.Stats.ColorTime)

	// Stage 4: Size and scene
	done = observability.Track(ctx, observability.StageScene)
	result.Size = CanvasSize(res, opts)
	scene, err := BuildScene(res, colors, result.Size, opts)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	result.Scene = scene

	r.Logger.Debug("sized canvas",
		"width", result.Size.Width,
		"height", result.Size.Height,
		"inches", fmt.Sprintf("%.1fx%.1f", result.Size.WidthInches, result.Size.HeightInches))

	if hash, err := opts.InputHash(); err == nil {
		result.InputHash = hash
	} else {
		r.Logger.Debug("inputs not hashable, caching disabled", "error", err)
	}

	return result, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, result *Result, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	hash := result.InputHash

	hooks := observability.Cache()

	// Try to get all formats from cache
	if hash != "" && !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				r.Logger.Warn("cache read failed", "format", format, "error", err)
				break
			}
			if !hit {
				hooks.OnCacheMiss(ctx, format)
				break
			}
			hooks.OnCacheHit(ctx, format)
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil // All artifacts from cache
		}
	}

	// Render all formats
	rendered, err := Render(result.Scene, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	if hash != "" {
		for format, data := range rendered {
			key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
			if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
				r.Logger.Warn("cache write failed", "format", format, "error", err)
				continue
			}
			hooks.OnCacheSet(ctx, format, len(data))
		}
	}

	return rendered, false, nil // Cache miss
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
