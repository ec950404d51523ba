package config

import (
	"io"
	"log/slog"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoad_Defaults(t *testing.T) {
	cfg := Load(testLogger())

	if cfg.Addr != DefaultAddr {
		t.Errorf("addr = %s, expected %s", cfg.Addr, DefaultAddr)
	}
	if cfg.PoolSize != DefaultPoolSize {
		t.Errorf("pool size = %d, expected %d", cfg.PoolSize, DefaultPoolSize)
	}
	if cfg.DownloadsDir == "" || cfg.CookiesDir == "" {
		t.Error("directories must have defaults")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CLIPD_ADDR", ":9999")
	t.Setenv("CLIPD_POOL_SIZE", "2")
	t.Setenv("CLIPD_DOWNLOADS_DIR", "/data/downloads")

	cfg := Load(testLogger())

	if cfg.Addr != ":9999" {
		t.Errorf("addr = %s, expected :9999", cfg.Addr)
	}
	if cfg.PoolSize != 2 {
		t.Errorf("pool size = %d, expected 2", cfg.PoolSize)
	}
	if cfg.DownloadsDir != "/data/downloads" {
		t.Errorf("downloads dir = %s", cfg.DownloadsDir)
	}
}

func TestLoad_ValidationResets(t *testing.T) {
	t.Setenv("CLIPD_POOL_SIZE", "0")
	t.Setenv("CLIPD_MAX_SELECTION", "-5")
	t.Setenv("CLIPD_PLAYLIST_SCAN_LIMIT", "1")

	cfg := Load(testLogger())

	if cfg.PoolSize != DefaultPoolSize {
		t.Errorf("pool size = %d, expected reset to %d", cfg.PoolSize, DefaultPoolSize)
	}
	if cfg.MaxSelection < 1 {
		t.Errorf("max selection = %d, expected reset", cfg.MaxSelection)
	}
	if cfg.PlaylistScanLimit < cfg.MaxSelection {
		t.Errorf("scan limit %d below max selection %d", cfg.PlaylistScanLimit, cfg.MaxSelection)
	}
}
