package ffmpeg

import (
	"context"
	"testing"
)

func TestProbe_EmptyPath(t *testing.T) {
	h := Probe(context.Background(), "")
	if h.Available {
		t.Error("probe with empty path should not be available")
	}
	if h.Error == "" {
		t.Error("probe with empty path should carry an error")
	}
}

func TestProbe_MissingBinary(t *testing.T) {
	h := Probe(context.Background(), "/nonexistent/ffmpeg")
	if h.Available {
		t.Error("probe of a missing binary should not be available")
	}
	if h.Path != "/nonexistent/ffmpeg" {
		t.Errorf("probe path = %q", h.Path)
	}
}
