// Package api exposes the server's HTTP surface: metadata, download and
// health endpoints consumed by the desktop client.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/clipdl/clipd/internal/config"
	"github.com/clipdl/clipd/internal/download"
	"github.com/clipdl/clipd/internal/extract"
	"github.com/clipdl/clipd/internal/ffmpeg"
	"github.com/clipdl/clipd/internal/jobs"
	"github.com/clipdl/clipd/internal/model"
	"github.com/clipdl/clipd/internal/resolve"
)

// ServerVersion is reported by the status endpoint.
const ServerVersion = "1.0.0"

// FailedEntriesHeader carries per-entry batch failures alongside a binary
// response body.
const FailedEntriesHeader = "X-Failed-Entries"

var (
	videoURLPattern    = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com/(watch\?v=|embed/|v/)|youtu\.be/)`)
	playlistURLPattern = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com/(playlist\?list=|channel/|user/|c/)|youtu\.be/|youtube\.com/watch\?.*list=)`)
)

// Downloader is the slice of the download service the handlers need.
type Downloader interface {
	Combined(ctx context.Context, req model.CombinedDownloadRequest) (*model.DownloadedFile, error)
	Audio(ctx context.Context, req model.AudioDownloadRequest) (*model.DownloadedFile, error)
	Playlist(ctx context.Context, req model.PlaylistDownloadRequest) (*download.Outcome, error)
}

// CookieJar is the slice of the cookie manager the handlers need.
type CookieJar interface {
	Valid() bool
}

// Handler holds the dependencies of all endpoints.
type Handler struct {
	engine    download.Engine
	downloads Downloader
	tracker   *jobs.Tracker
	jar       CookieJar
	cfg       *config.Config
	logger    *slog.Logger
}

// NewHandler wires the endpoint dependencies.
func NewHandler(engine download.Engine, downloads Downloader, tracker *jobs.Tracker, jar CookieJar, cfg *config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		engine:    engine,
		downloads: downloads,
		tracker:   tracker,
		jar:       jar,
		cfg:       cfg,
		logger:    logger,
	}
}

// Status reports liveness and the operator-relevant facts.
func (h *Handler) Status(c *gin.Context) {
	active, _ := h.tracker.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"message":             "clipd media server",
		"version":             ServerVersion,
		"status":              "running",
		"active_downloads":    active,
		"downloads_directory": h.cfg.DownloadsDir,
		"cookies":             h.jar.Valid(),
		"ffmpeg_available":    h.cfg.FFmpegPath != "",
		"ffmpeg_path":         h.cfg.FFmpegPath,
	})
}

// VideoInfo returns single-video metadata plus the format catalog.
func (h *Handler) VideoInfo(c *gin.Context) {
	var req model.VideoInfoRequest
	if !h.bind(c, &req) {
		return
	}
	if !videoURLPattern.MatchString(req.URL) {
		h.badRequest(c, "invalid YouTube URL")
		return
	}

	md, err := h.engine.Extract(c.Request.Context(), req.URL, extract.Options{})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, model.VideoInfoResponse{
		Title:          md.Title,
		Duration:       int(md.Duration),
		DurationString: model.FormatSeconds(md.Duration),
		Thumbnail:      md.Thumbnail,
		Uploader:       md.Uploader,
		VideoFormats:   model.VideoFormats,
		AudioFormats:   model.AudioFormats,
	})
}

// DownloadCombined downloads and merges video+audio for one video.
func (h *Handler) DownloadCombined(c *gin.Context) {
	var req model.CombinedDownloadRequest
	if !h.bind(c, &req) {
		return
	}
	if !videoURLPattern.MatchString(req.URL) {
		h.badRequest(c, "invalid YouTube URL")
		return
	}

	file, err := h.downloads.Combined(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, file)
}

// DownloadAudio downloads an audio-only stream for one video.
func (h *Handler) DownloadAudio(c *gin.Context) {
	var req model.AudioDownloadRequest
	if !h.bind(c, &req) {
		return
	}
	if !videoURLPattern.MatchString(req.URL) {
		h.badRequest(c, "invalid YouTube URL")
		return
	}

	file, err := h.downloads.Audio(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, file)
}

// PlaylistInfo returns the entry list of a playlist.
func (h *Handler) PlaylistInfo(c *gin.Context) {
	var req model.PlaylistInfoRequest
	if !h.bind(c, &req) {
		return
	}
	if !playlistURLPattern.MatchString(req.URL) {
		h.badRequest(c, "invalid YouTube playlist/channel URL")
		return
	}
	if req.MaxVideos <= 0 {
		req.MaxVideos = h.cfg.DefaultPlaylistScan
	}

	md, err := h.engine.Extract(c.Request.Context(), req.URL, extract.Options{
		FlatPlaylist:  !req.IncludeFormats,
		PlaylistItems: fmt.Sprintf("1:%d", req.MaxVideos),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	videos := make([]model.PlaylistVideoInfo, 0, len(md.Entries))
	for _, entry := range md.Entries {
		info := model.PlaylistVideoInfo{
			VideoID:        entry.VideoID,
			Title:          entry.Title,
			Duration:       int(entry.Duration),
			DurationString: model.FormatSeconds(entry.Duration),
			Uploader:       entry.Uploader,
			Index:          entry.Index,
			URL:            entry.URL(),
		}
		if req.IncludeFormats {
			info.VideoFormats = model.VideoFormats
			info.AudioFormats = model.AudioFormats
		}
		videos = append(videos, info)
	}

	c.JSON(http.StatusOK, model.PlaylistInfoResponse{
		PlaylistTitle:   md.Title,
		PlaylistID:      md.ID,
		Uploader:        md.Uploader,
		TotalVideos:     md.PlaylistCount,
		ExtractedVideos: len(videos),
		Videos:          videos,
	})
}

// DownloadPlaylist runs a batch download and streams back the deliverable.
// Cleanup runs only after the response body has been written.
func (h *Handler) DownloadPlaylist(c *gin.Context) {
	var req model.PlaylistDownloadRequest
	if !h.bind(c, &req) {
		return
	}
	if !playlistURLPattern.MatchString(req.URL) {
		h.badRequest(c, "invalid YouTube playlist/channel URL")
		return
	}
	if req.ArchiveName != "" {
		req.ArchiveName = model.SanitizeFilename(req.ArchiveName)
	}

	outcome, err := h.downloads.Playlist(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	if len(outcome.Result.Failed) > 0 {
		if failed, marshalErr := json.Marshal(outcome.Result.Failed); marshalErr == nil {
			c.Header(FailedEntriesHeader, string(failed))
		}
	}

	c.FileAttachment(outcome.Path, outcome.Filename)
	outcome.Cleanup()
}

// FFmpegHealth probes the configured media tool.
func (h *Handler) FFmpegHealth(c *gin.Context) {
	c.JSON(http.StatusOK, ffmpeg.Probe(c.Request.Context(), h.cfg.FFmpegPath))
}

// bind decodes the JSON body, answering 400 on any shape or validation
// failure. All request-level validation errors surface here before any
// extraction or fetch work starts.
func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.badRequest(c, err.Error())
		return false
	}
	return true
}

func (h *Handler) badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// fail maps the error taxonomy onto HTTP statuses.
func (h *Handler) fail(c *gin.Context, err error) {
	var indexErr *download.InvalidIndexError
	switch {
	case errors.As(err, &indexErr),
		errors.Is(err, download.ErrEmptySelection),
		errors.Is(err, download.ErrEmptyPlaylist),
		errors.Is(err, model.ErrInvalidTimeFormat),
		errors.Is(err, model.ErrInvalidTimeRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, extract.ErrAuthRequired):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":       "platform bot detection triggered",
			"message":     "server needs platform cookies to continue",
			"has_cookies": h.jar.Valid(),
			"solution":    "refresh the server cookie jar",
		})

	case errors.Is(err, resolve.ErrNotFound):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "download finished but no output file was found"})

	default:
		h.logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
