package resolve

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func write(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("media"), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestFile_ExactBase(t *testing.T) {
	dir := t.TempDir()
	want := write(t, dir, "clip_001.mp4")
	write(t, dir, "unrelated.mp4")

	got, err := File(dir, "clip_001", "")
	if err != nil {
		t.Fatalf("File returned error: %v", err)
	}
	if got != want {
		t.Errorf("File = %s, expected %s", got, want)
	}
}

func TestFile_AlteredBase(t *testing.T) {
	dir := t.TempDir()
	// The engine sanitized the name, so only a *base* match works
	want := write(t, dir, "clip_001_actual.mp4")

	got, err := File(dir, "clip_001", "")
	if err != nil {
		t.Fatalf("File returned error: %v", err)
	}
	if got != want {
		t.Errorf("File = %s, expected %s", got, want)
	}
}

func TestFile_HintMatch(t *testing.T) {
	dir := t.TempDir()
	want := write(t, dir, "completely-renamed-dQw4w9WgXcQ.webm")
	write(t, dir, "other-video-zzz.webm")

	got, err := File(dir, "clip_001", "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("File returned error: %v", err)
	}
	if got != want {
		t.Errorf("File = %s, expected %s", got, want)
	}
}

func TestFile_NewestFallback(t *testing.T) {
	dir := t.TempDir()
	older := write(t, dir, "first.mp4")
	newer := write(t, dir, "second.mp4")

	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older, past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	got, err := File(dir, "no-such-base", "no-such-hint")
	if err != nil {
		t.Fatalf("File returned error: %v", err)
	}
	if got != newer {
		t.Errorf("File = %s, expected newest file %s", got, newer)
	}
}

func TestFile_SkipsScratchFiles(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "clip_001.mp4.part")
	write(t, dir, "clip_001.ytdl")

	if _, err := File(dir, "clip_001", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("File over scratch files = %v, expected ErrNotFound", err)
	}
}

func TestFile_EmptyDir(t *testing.T) {
	dir := t.TempDir()

	if _, err := File(dir, "anything", "hint"); !errors.Is(err, ErrNotFound) {
		t.Errorf("File on empty dir = %v, expected ErrNotFound", err)
	}
}
