package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/rnadraw/pkg/cache"
	"github.com/matzehuels/rnadraw/pkg/config"
	"github.com/matzehuels/rnadraw/pkg/observability"
	"github.com/matzehuels/rnadraw/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(fc, nil, logger)
	cfg := config.Default()
	cfg.Server.MaxBodyBytes = 4096

	ts := httptest.NewServer(NewServer(runner, cfg, logger))
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body["status"] != "ok" {
		t.Errorf("body = %v, err = %v", body, err)
	}
	if resp.Header.Get("Content-Type") != "application/json" {
		t.Errorf("content type = %q", resp.Header.Get("Content-Type"))
	}
}

type routeHooks struct {
	observability.NoopHTTPHooks
	mu     sync.Mutex
	routes []string
	status []int
}

func (h *routeHooks) OnResponse(_ context.Context, _, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, route)
	h.status = append(h.status, status)
}

func TestRequestHooksSeeRoutePattern(t *testing.T) {
	hooks := &routeHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/v1/drawings/" + uuid.NewString() + "/svg")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.routes) != 1 {
		t.Fatalf("routes = %v", hooks.routes)
	}
	if hooks.routes[0] != "/api/v1/drawings/{id}/{format}" {
		t.Errorf("route = %q", hooks.routes[0])
	}
	if hooks.status[0] != http.StatusNotFound {
		t.Errorf("status = %d, want 404", hooks.status[0])
	}
}

func TestDrawAndDownload(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts, "/api/v1/draw", `{
		"name": "hairpin",
		"structure": "((((....))))",
		"sequence": "GGGGAAAACCCC",
		"scheme": "res_type",
		"formats": ["svg", "json"]
	}`)
	if resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d: %s", resp.StatusCode, b)
	}

	var draw drawResponse
	if err := json.NewDecoder(resp.Body).Decode(&draw); err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(draw.ID); err != nil {
		t.Errorf("id %q is not a uuid", draw.ID)
	}
	if draw.Residues != 12 || draw.Pairs != 4 {
		t.Errorf("draw = %+v", draw)
	}
	if len(draw.Formats) != 2 || draw.Formats[0] != "json" || draw.Formats[1] != "svg" {
		t.Errorf("formats = %v", draw.Formats)
	}
	if draw.Size.Width <= 0 || draw.Size.Height <= 0 {
		t.Errorf("size = %+v", draw.Size)
	}

	get, err := http.Get(ts.URL + draw.URLs["svg"])
	if err != nil {
		t.Fatal(err)
	}
	defer get.Body.Close()
	if get.StatusCode != http.StatusOK {
		t.Fatalf("download status = %d", get.StatusCode)
	}
	if ct := get.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
	body, _ := io.ReadAll(get.Body)
	if !bytes.Contains(body, []byte("<title>hairpin</title>")) {
		t.Error("svg should carry the drawing name as title")
	}
}

func TestDrawingNotFound(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		path   string
		status int
	}{
		{"/api/v1/drawings/" + uuid.NewString() + "/svg", http.StatusNotFound},
		{"/api/v1/drawings/not-a-uuid/svg", http.StatusBadRequest},
		{"/api/v1/drawings/" + uuid.NewString() + "/gif", http.StatusBadRequest},
	}
	for _, tt := range tests {
		resp, err := http.Get(ts.URL + tt.path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != tt.status {
			t.Errorf("GET %s = %d, want %d", tt.path, resp.StatusCode, tt.status)
		}
	}
}

func TestDrawErrors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed json", `{`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown field", `{"structure": "..", "colour": "red"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"syntax", `{"structure": "((#))"}`, http.StatusBadRequest, "STRUCTURE_SYNTAX"},
		{"unbalanced", `{"structure": "(("}`, http.StatusBadRequest, "UNBALANCED_STRUCTURE"},
		{"scheme", `{"structure": "..", "scheme": "rainbow"}`, http.StatusBadRequest, "UNKNOWN_SCHEME"},
		{"data length", `{"structure": "...", "data_str": "1;2"}`, http.StatusBadRequest, "DATA_LENGTH_MISMATCH"},
		{"too large", `{"structure": "` + strings.Repeat(".", 5000) + `"}`, http.StatusRequestEntityTooLarge, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts, "/api/v1/draw", tt.body)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var e errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
				t.Fatal(err)
			}
			if e.Error == "" {
				t.Error("error message missing")
			}
			if tt.code != "" && string(e.Code) != tt.code {
				t.Errorf("code = %q, want %q", e.Code, tt.code)
			}
		})
	}
}

// flakyCache fails the second write of a drawing artifact.
type flakyCache struct {
	cache.Cache
	mu     sync.Mutex
	writes []string
}

func (c *flakyCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if strings.Contains(key, "drawing:") {
		c.mu.Lock()
		c.writes = append(c.writes, key)
		n := len(c.writes)
		c.mu.Unlock()
		if n == 2 {
			return errors.New("disk full")
		}
	}
	return c.Cache.Set(ctx, key, data, ttl)
}

func TestDrawDropsPartialDrawing(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	flaky := &flakyCache{Cache: fc}
	logger := log.New(io.Discard)
	ts := httptest.NewServer(NewServer(pipeline.NewRunner(flaky, nil, logger), config.Default(), logger))
	t.Cleanup(ts.Close)

	resp := post(t, ts, "/api/v1/draw", `{"structure": "((..))", "formats": ["svg", "json"]}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	if len(flaky.writes) != 2 {
		t.Fatalf("drawing writes = %v, want 2", flaky.writes)
	}
	for _, key := range flaky.writes {
		if _, hit, err := fc.Get(context.Background(), key); err != nil || hit {
			t.Errorf("key %s left behind (hit=%v, err=%v)", key, hit, err)
		}
	}
}

func TestLayoutEndpoint(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts, "/api/v1/layout", `{"structure": "((..))..[[..]]", "spacing": {"node_r": 8}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var l layoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		t.Fatal(err)
	}
	if l.Residues != 14 || len(l.Points) != 14 || len(l.Edges) != 4 {
		t.Errorf("layout = %d residues, %d points, %d edges", l.Residues, len(l.Points), len(l.Edges))
	}
	if l.Spacing.NodeRadius != 8 {
		t.Errorf("node radius = %v, want 8", l.Spacing.NodeRadius)
	}
}

func TestColorsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts, "/api/v1/colors", `{
		"structure": "(..)",
		"color_str": "0:#ff0000",
		"default_color": "#cccccc"
	}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var c colorsResponse
	if err := json.NewDecoder(resp.Body).Decode(&c); err != nil {
		t.Fatal(err)
	}
	want := []string{"#ff0000", "#cccccc", "#cccccc", "#cccccc"}
	if strings.Join(c.Colors, " ") != strings.Join(want, " ") {
		t.Errorf("colors = %v, want %v", c.Colors, want)
	}
}

func TestPalettesEndpoint(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/v1/palettes")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var p palettesResponse
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		t.Fatal(err)
	}
	if len(p.Schemes) == 0 || len(p.Categorical) == 0 || len(p.Continuous) == 0 {
		t.Errorf("palettes = %+v", p)
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	runner := pipeline.NewRunner(nil, nil, log.New(io.Discard))
	s := NewServer(runner, config.Default(), log.New(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()
	if err := <-done; err != nil {
		t.Errorf("ListenAndServe after cancel = %v", err)
	}
}
