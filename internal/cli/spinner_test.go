package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerStopIsNotCancellation(t *testing.T) {
	s := newSpinner("Testing...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if s.Cancelled() {
		t.Error("Stop should not count as cancellation")
	}
}

func TestSpinnerContextCancellation(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx, cancel
		}},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 20*time.Millisecond)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()

			s := newSpinnerWithContext(ctx, "Testing with context...")
			s.Start()
			time.Sleep(100 * time.Millisecond)

			if !s.Cancelled() {
				t.Error("spinner should report cancellation")
			}
			s.Stop()
		})
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("Testing idempotent stop...")
	s.Start()
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerAnimatesOnTerminalOnly(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner("Drawing hairpin...")
	s.out = &buf
	s.animate = false
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()
	if buf.Len() != 0 {
		t.Errorf("non-terminal spinner wrote %q", buf.String())
	}

	buf.Reset()
	s = newSpinner("Drawing hairpin...")
	s.out = &buf
	s.animate = true
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()
	if !strings.Contains(buf.String(), "Drawing hairpin...") {
		t.Errorf("terminal spinner should show its message, got %q", buf.String())
	}
}

func TestSpinnerStopWithMessages(t *testing.T) {
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	defer func() { stdout = old }()

	s := newSpinner("Testing success...")
	s.Start()
	s.StopWithSuccess("Done!")

	s = newSpinner("Testing error...")
	s.Start()
	s.StopWithError("Failed!")

	out := buf.String()
	if !strings.Contains(out, "Done!") || !strings.Contains(out, "Failed!") {
		t.Errorf("unexpected output %q", out)
	}
}
