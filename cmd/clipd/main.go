// clipd is a loopback HTTP server wrapping a media download engine for
// local desktop clients.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/clipdl/clipd/internal/api"
	"github.com/clipdl/clipd/internal/config"
	"github.com/clipdl/clipd/internal/cookies"
	"github.com/clipdl/clipd/internal/download"
	"github.com/clipdl/clipd/internal/extract"
	"github.com/clipdl/clipd/internal/jobs"
	"github.com/clipdl/clipd/internal/plan"
)

const (
	shutdownTimeout = 10 * time.Second
	probeTimeout    = 30 * time.Second
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional; the environment itself is enough.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg := config.Load(logger)

	if err := os.MkdirAll(cfg.DownloadsDir, 0o755); err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.CookiesDir, 0o755); err != nil {
		return err
	}

	jar := cookies.NewManager(cfg.CookiesDir)
	if err := jar.Ensure(); err != nil {
		return err
	}

	gateway := extract.New(extract.Config{
		PoolSize:     cfg.PoolSize,
		CookieFile:   jar.Path(),
		CookiesValid: jar.Valid,
		FFmpegPath:   cfg.FFmpegPath,
		Logger:       logger,
	})

	if jar.Valid() {
		probeCtx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		ok := jar.Probe(probeCtx, func(ctx context.Context, url string) error {
			_, err := gateway.Extract(ctx, url, extract.Options{})
			return err
		})
		cancel()
		if ok {
			logger.Info("cookie jar verified")
		} else {
			logger.Warn("cookie jar present but not working, downloads may hit bot detection")
		}
	} else {
		logger.Info("no cookies configured", "jar", jar.Path())
	}

	tracker := jobs.NewTracker()
	planner := plan.New(cfg.DownloadsDir)
	service := download.NewService(gateway, planner, tracker, download.Config{
		DownloadsDir: cfg.DownloadsDir,
		MaxSelection: cfg.MaxSelection,
		ScanLimit:    cfg.PlaylistScanLimit,
	}, logger)

	handler := api.NewHandler(gateway, service, tracker, jar, cfg, logger)
	router := api.NewRouter(handler)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr, "downloads", cfg.DownloadsDir)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	// Let in-flight engine invocations finish before exiting.
	gateway.Close()
	return nil
}
