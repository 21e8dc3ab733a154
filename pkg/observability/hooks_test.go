package observability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnStageStart(ctx, StageParse)
	p.OnStageComplete(ctx, StageParse, time.Millisecond, nil)
	p.OnDrawn(ctx, 12, 4, []string{"svg"})

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "svg")
	c.OnCacheMiss(ctx, "png")
	c.OnCacheSet(ctx, "pdf", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/api/v1/draw")
	h.OnResponse(ctx, "POST", "/api/v1/draw", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customPipeline := &recordingHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	custom := &recordingHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
}

func TestTrack(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	rec := &recordingHooks{}
	SetPipelineHooks(rec)

	boom := errors.New("boom")
	done := Track(context.Background(), StageLayout)
	if d := done(boom); d < 0 {
		t.Errorf("duration = %v, want >= 0", d)
	}

	want := []string{"start layout", "complete layout"}
	if len(rec.events) != len(want) {
		t.Fatalf("events = %v, want %v", rec.events, want)
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, rec.events[i], want[i])
		}
	}
	if rec.lastErr != boom {
		t.Errorf("lastErr = %v, want %v", rec.lastErr, boom)
	}
}

type recordingHooks struct {
	NoopPipelineHooks
	mu      sync.Mutex
	events  []string
	lastErr error
}

func (r *recordingHooks) OnStageStart(_ context.Context, stage string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "start "+stage)
}

func (r *recordingHooks) OnStageComplete(_ context.Context, stage string, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "complete "+stage)
	r.lastErr = err
}

type testCacheHooks struct {
	NoopCacheHooks
	hits int
}
type testHTTPHooks struct {
	NoopHTTPHooks
	requests int
}
