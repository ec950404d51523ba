// Package config loads server settings from the environment with sane
// defaults and post-load validation.
package config

import (
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/clipdl/clipd/internal/model"
)

// Defaults
const (
	DefaultAddr     = "127.0.0.1:8888"
	DefaultPoolSize = 4
)

// Config holds all server settings in their final types.
type Config struct {
	// Addr is the listen address. The server is meant to be reached only by
	// the local desktop client.
	Addr string

	// DownloadsDir is the root directory all outputs land under.
	DownloadsDir string

	// CookiesDir holds the platform cookie jar.
	CookiesDir string

	// FFmpegPath is the media tool handed to the engine. Empty when no
	// binary could be located.
	FFmpegPath string

	// PoolSize bounds concurrent engine invocations.
	PoolSize int

	// MaxSelection bounds entries per batch download.
	MaxSelection int

	// PlaylistScanLimit bounds how many playlist entries are resolved
	// before batch validation.
	PlaylistScanLimit int

	// DefaultPlaylistScan is the default entry cap for info requests.
	DefaultPlaylistScan int
}

// Load builds the configuration from the environment.
func Load(logger *slog.Logger) *Config {
	cfg := &Config{
		Addr:                getEnv("CLIPD_ADDR", DefaultAddr),
		DownloadsDir:        getEnv("CLIPD_DOWNLOADS_DIR", defaultDownloadsDir()),
		CookiesDir:          getEnv("CLIPD_COOKIES_DIR", defaultCookiesDir()),
		FFmpegPath:          getEnv("CLIPD_FFMPEG_PATH", ""),
		PoolSize:            getEnvAsInt("CLIPD_POOL_SIZE", DefaultPoolSize),
		MaxSelection:        getEnvAsInt("CLIPD_MAX_SELECTION", model.MaxBatchSelection),
		PlaylistScanLimit:   getEnvAsInt("CLIPD_PLAYLIST_SCAN_LIMIT", 100),
		DefaultPlaylistScan: getEnvAsInt("CLIPD_PLAYLIST_SCAN_DEFAULT", model.DefaultPlaylistScan),
	}

	if cfg.FFmpegPath == "" {
		cfg.FFmpegPath = detectFFmpeg()
	}

	validate(cfg, logger)
	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

// validate resets out-of-range values so a bad environment cannot take the
// server down.
func validate(cfg *Config, logger *slog.Logger) {
	if cfg.PoolSize < 1 {
		logger.Warn("pool size must be at least 1, resetting", "value", cfg.PoolSize, "default", DefaultPoolSize)
		cfg.PoolSize = DefaultPoolSize
	}
	if cfg.MaxSelection < 1 {
		logger.Warn("max selection must be at least 1, resetting", "value", cfg.MaxSelection, "default", model.MaxBatchSelection)
		cfg.MaxSelection = model.MaxBatchSelection
	}
	if cfg.PlaylistScanLimit < cfg.MaxSelection {
		logger.Warn("playlist scan limit below max selection, raising", "value", cfg.PlaylistScanLimit)
		cfg.PlaylistScanLimit = cfg.MaxSelection
	}
}

func defaultDownloadsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "clipd")
	}
	return filepath.Join(home, "Downloads", "clipd")
}

func defaultCookiesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "clipd-cookies")
	}
	return filepath.Join(home, ".config", "clipd", "cookies")
}

// detectFFmpeg looks for a bundled binary next to the executable, then
// falls back to PATH. The desktop app ships platform binaries in a sibling
// directory.
func detectFFmpeg() string {
	binary := "ffmpeg"
	if runtime.GOOS == "windows" {
		binary = "ffmpeg.exe"
	}

	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		for _, candidate := range []string{
			filepath.Join(dir, "binaries", binary),
			filepath.Join(dir, "binaries", runtime.GOOS, binary),
		} {
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() && info.Mode()&0o111 != 0 {
				return candidate
			}
		}
	}

	if path, err := exec.LookPath(binary); err == nil {
		return path
	}
	return ""
}
