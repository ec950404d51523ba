// Package resolve locates the file a fetch actually produced. The engine
// picks the final container itself and never reports the resulting path, so
// resolution is inferred after the fact from the planned base name.
package resolve

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound means every resolution strategy came up empty.
var ErrNotFound = errors.New("no produced file found")

// Extensions of engine scratch files that are never a final result.
var scratchExtensions = []string{".part", ".ytdl"}

// File finds the produced file for base (the planned filename without
// extension) inside dir. hint is an optional unique id expected to appear
// in the name when the engine altered the base. Strategies run in order,
// first match wins:
//
//  1. exact base with any extension
//  2. base appearing anywhere in the name
//  3. hint appearing anywhere in the name
//  4. the most recently modified file in the directory
//
// The last strategy is only safe because each job owns a fresh directory or
// a uniquely disambiguated base name; callers must not share a directory
// between concurrently fetching jobs.
func File(dir, base, hint string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", dir, err)
	}

	candidates := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || isScratch(entry.Name()) {
			continue
		}
		candidates = append(candidates, entry.Name())
	}

	strategies := []func(string) bool{
		func(name string) bool { return strings.HasPrefix(name, base+".") },
		func(name string) bool { return strings.Contains(name, base) },
		func(name string) bool { return hint != "" && strings.Contains(name, hint) },
	}
	for _, match := range strategies {
		for _, name := range candidates {
			if match(name) {
				return filepath.Join(dir, name), nil
			}
		}
	}

	if name := newest(dir, candidates); name != "" {
		return filepath.Join(dir, name), nil
	}
	return "", fmt.Errorf("%w: base %q in %s", ErrNotFound, base, dir)
}

// newest returns the candidate with the latest modification time.
func newest(dir string, candidates []string) string {
	var best string
	var bestTime int64
	for _, name := range candidates {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); best == "" || mod > bestTime {
			best = name
			bestTime = mod
		}
	}
	return best
}

func isScratch(name string) bool {
	for _, ext := range scratchExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
