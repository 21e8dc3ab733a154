// Package observability provides hooks for metrics and tracing.
//
// Libraries in this module report what they do through three small hook
// interfaces; the defaults do nothing. A binary that wants metrics registers
// its own implementations once at startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// The pipeline then emits one event per stage:
//
//	observability.Pipeline().OnStageStart(ctx, observability.StageLayout)
//	// ... compute the layout ...
//	observability.Pipeline().OnStageComplete(ctx, observability.StageLayout, duration, err)
//
// Keeping the registry here, rather than in pipeline or api, lets any
// package report events without importing a metrics backend.
package observability

import (
	"context"
	"sync"
	"time"
)

// Stage names passed to PipelineHooks.
const (
	StageParse  = "parse"
	StageLayout = "layout"
	StageColor  = "color"
	StageScene  = "scene"
	StageRender = "render"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the drawing pipeline.
type PipelineHooks interface {
	OnStageStart(ctx context.Context, stage string)
	OnStageComplete(ctx context.Context, stage string, duration time.Duration, err error)

	// OnDrawn reports a finished drawing: its size and the formats produced.
	OnDrawn(ctx context.Context, residues, pairs int, formats []string)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from artifact cache lookups. format is the
// output format the artifact was rendered in.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, format string)
	OnCacheMiss(ctx context.Context, format string)
	OnCacheSet(ctx context.Context, format string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events for requests handled by the API server. On
// request the route is the raw path; on response it is the matched route
// pattern when one matched.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, status int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnStageStart(context.Context, string)                           {}
func (NoopPipelineHooks) OnStageComplete(context.Context, string, time.Duration, error) {}
func (NoopPipelineHooks) OnDrawn(context.Context, int, int, []string)                    {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                        {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks. nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks. nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}

// Track reports a stage start to the pipeline hooks and returns a function
// that reports its completion.
//
//	done := observability.Track(ctx, observability.StageParse)
//	pm, err := parse()
//	done(err)
func Track(ctx context.Context, stage string) func(error) time.Duration {
	h := Pipeline()
	h.OnStageStart(ctx, stage)
	start := time.Now()
	return func(err error) time.Duration {
		d := time.Since(start)
		h.OnStageComplete(ctx, stage, d, err)
		return d
	}
}
