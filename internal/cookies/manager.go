// Package cookies bootstraps and inspects the on-disk cookie jar the
// extraction engine uses for authenticated platform access.
package cookies

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// Jar file constants
const (
	JarFileName   = "youtube_cookies.txt"
	jarPermission = 0o600
)

// jarHeader is the Netscape cookie file preamble written into a fresh jar.
const jarHeader = "# Netscape HTTP Cookie File\n# This is a generated file! Do not edit.\n\n"

// ProbeURL is a known-safe video used for the liveness check.
const ProbeURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

// Manager owns the cookie jar file at a fixed per-user location.
type Manager struct {
	file string
}

// NewManager creates a manager for the jar inside dir.
func NewManager(dir string) *Manager {
	return &Manager{file: filepath.Join(dir, JarFileName)}
}

// Path returns the jar file location.
func (m *Manager) Path() string {
	return m.file
}

// Ensure creates the jar with a Netscape header when it does not exist yet.
func (m *Manager) Ensure() error {
	if _, err := os.Stat(m.file); err == nil {
		return nil
	}
	return os.WriteFile(m.file, []byte(jarHeader), jarPermission)
}

// Valid reports whether the jar holds at least one non-comment line.
func (m *Manager) Valid() bool {
	content, err := os.ReadFile(m.file)
	if err != nil {
		return false
	}
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			return true
		}
	}
	return false
}

// Probe runs a liveness check through the given extraction function and
// reports whether the configured cookies actually work.
func (m *Manager) Probe(ctx context.Context, probe func(ctx context.Context, url string) error) bool {
	if !m.Valid() {
		return false
	}
	return probe(ctx, ProbeURL) == nil
}
