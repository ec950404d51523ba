// Package ffmpeg checks the health of the external media tool the
// extraction engine shells out to for remuxing and cutting.
package ffmpeg

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// ProbeTimeout bounds how long a version check may take.
const ProbeTimeout = 10 * time.Second

// Health describes the outcome of a probe.
type Health struct {
	Available bool   `json:"available"`
	Path      string `json:"path,omitempty"`
	Version   string `json:"version,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Probe executes the binary at path with -version and reports the result.
// An empty path means the tool was never located.
func Probe(ctx context.Context, path string) Health {
	if path == "" {
		return Health{Available: false, Error: "ffmpeg not found"}
	}

	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, "-version").Output()
	if ctx.Err() == context.DeadlineExceeded {
		return Health{Available: false, Path: path, Error: "ffmpeg test timeout"}
	}
	if err != nil {
		return Health{Available: false, Path: path, Error: "ffmpeg test failed: " + err.Error()}
	}

	version := ""
	if lines := strings.SplitN(string(out), "\n", 2); len(lines) > 0 {
		version = strings.TrimSpace(lines[0])
	}
	return Health{Available: true, Path: path, Version: version}
}
