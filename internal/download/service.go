package download

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/clipdl/clipd/internal/extract"
	"github.com/clipdl/clipd/internal/jobs"
	"github.com/clipdl/clipd/internal/model"
	"github.com/clipdl/clipd/internal/plan"
	"github.com/clipdl/clipd/internal/resolve"
)

// Batch directory naming
const (
	BatchDirPrefix     = "playlist_"
	ArchiveNameSuffix  = "_videos"
	ArchiveExtension   = ".zip"
	BatchDirPermission = 0o755
)

// Config carries the service limits.
type Config struct {
	// DownloadsDir is the root all outputs land under.
	DownloadsDir string

	// MaxSelection bounds how many entries one batch may select.
	MaxSelection int

	// ScanLimit bounds how many playlist entries are resolved before
	// validation, e.g. "1:100".
	ScanLimit int
}

// Service runs download requests against the engine. Batch entries are
// processed strictly in selection order: sequential fetching keeps pool
// pressure bounded and output numbering deterministic.
type Service struct {
	engine  Engine
	planner *plan.Planner
	tracker *jobs.Tracker
	cfg     Config
	logger  *slog.Logger
}

// NewService creates a download service.
func NewService(engine Engine, planner *plan.Planner, tracker *jobs.Tracker, cfg Config, logger *slog.Logger) *Service {
	if cfg.MaxSelection <= 0 {
		cfg.MaxSelection = model.MaxBatchSelection
	}
	if cfg.ScanLimit <= 0 {
		cfg.ScanLimit = 100
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		engine:  engine,
		planner: planner,
		tracker: tracker,
		cfg:     cfg,
		logger:  logger,
	}
}

// Combined downloads and merges video+audio for one video. Failures abort
// the whole request.
func (s *Service) Combined(ctx context.Context, req model.CombinedDownloadRequest) (*model.DownloadedFile, error) {
	id := s.tracker.Register(jobs.KindCombined, req.URL)
	defer s.tracker.Unregister(id)

	md, err := s.engine.Extract(ctx, req.URL, extract.Options{})
	if err != nil {
		return nil, err
	}

	title := md.Title
	if title == "" {
		title = "video"
	}
	// A fetch that has started runs to completion even if the client
	// drops; only metadata extraction stays tied to the request.
	p := s.planner.Combined(title, req)
	if err := s.engine.Fetch(context.WithoutCancel(ctx), req.URL, p); err != nil {
		return nil, err
	}
	return s.resolved(id, p, md.ID)
}

// Audio downloads an audio-only stream for one video.
func (s *Service) Audio(ctx context.Context, req model.AudioDownloadRequest) (*model.DownloadedFile, error) {
	id := s.tracker.Register(jobs.KindAudio, req.URL)
	defer s.tracker.Unregister(id)

	md, err := s.engine.Extract(ctx, req.URL, extract.Options{})
	if err != nil {
		return nil, err
	}

	title := md.Title
	if title == "" {
		title = "audio"
	}
	p := s.planner.Audio(title, req)
	if err := s.engine.Fetch(context.WithoutCancel(ctx), req.URL, p); err != nil {
		return nil, err
	}
	return s.resolved(id, p, md.ID)
}

// resolved locates the produced file and describes it.
func (s *Service) resolved(downloadID string, p model.DownloadPlan, hint string) (*model.DownloadedFile, error) {
	path, err := resolve.File(filepath.Dir(p.OutputTemplate), p.BaseName, hint)
	if err != nil {
		return nil, err
	}

	var size int64
	if info, statErr := os.Stat(path); statErr == nil {
		size = info.Size()
	}
	return &model.DownloadedFile{
		Success:    true,
		Filename:   filepath.Base(path),
		FilePath:   path,
		FileSize:   size,
		DownloadID: downloadID,
	}, nil
}

// Outcome is the deliverable of a batch download: a single file or an
// archive, plus the per-entry result and a cleanup hook to run only after
// the response body has been fully handed off.
type Outcome struct {
	Path     string
	Filename string
	Archive  bool
	Result   model.BatchResult

	// Cleanup removes the batch directory, originals and archive. It
	// swallows its own failures; cleanup never fails a delivered response.
	Cleanup func()
}

// Playlist downloads the selected playlist entries sequentially and
// assembles them into a single deliverable. Per-entry failures are
// recorded and never abort sibling entries.
func (s *Service) Playlist(ctx context.Context, req model.PlaylistDownloadRequest) (*Outcome, error) {
	if len(req.SelectedVideos) == 0 {
		return nil, fmt.Errorf("%w: at least one video must be selected", ErrEmptySelection)
	}
	if len(req.SelectedVideos) > s.cfg.MaxSelection {
		return nil, fmt.Errorf("%w: at most %d videos can be downloaded at once", ErrEmptySelection, s.cfg.MaxSelection)
	}

	id := s.tracker.Register(jobs.KindPlaylist, req.URL)
	defer s.tracker.Unregister(id)

	md, err := s.engine.Extract(ctx, req.URL, extract.Options{
		FlatPlaylist:  true,
		PlaylistItems: fmt.Sprintf("1:%d", s.cfg.ScanLimit),
	})
	if err != nil {
		return nil, err
	}
	if len(md.Entries) == 0 {
		return nil, ErrEmptyPlaylist
	}

	if err := validateSelection(req.SelectedVideos, len(md.Entries)); err != nil {
		return nil, err
	}

	batchDir := filepath.Join(s.cfg.DownloadsDir, BatchDirPrefix+newBatchID())
	if err := os.MkdirAll(batchDir, BatchDirPermission); err != nil {
		return nil, fmt.Errorf("creating batch directory: %w", err)
	}

	result := s.fetchEntries(ctx, batchDir, md.Entries, req)
	if len(result.Succeeded) == 0 {
		// Best-effort removal of the now-empty directory; the primary error
		// is never masked by cleanup trouble.
		if rmErr := os.RemoveAll(batchDir); rmErr != nil {
			s.logger.Warn("removing empty batch directory", "dir", batchDir, "error", rmErr)
		}
		return nil, ErrNoSuccessfulDownloads
	}

	return s.assemble(batchDir, md.Title, result, req.ArchiveName)
}

// fetchEntries runs the per-entry plan/fetch/resolve loop in selection
// order, accumulating outcomes instead of letting errors cross entry
// boundaries.
func (s *Service) fetchEntries(ctx context.Context, batchDir string, entries []model.PlaylistEntryRef, req model.PlaylistDownloadRequest) model.BatchResult {
	var result model.BatchResult
	ctx = context.WithoutCancel(ctx)
	for _, index := range req.SelectedVideos {
		entry := entries[index]
		entry.Index = index
		p := s.planner.BatchEntry(batchDir, entry, req.VideoFormatID, req.AudioFormatID)

		if err := s.engine.Fetch(ctx, entry.URL(), p); err != nil {
			s.logger.Warn("batch entry failed", "index", index, "video", entry.VideoID, "error", err)
			result.AddFailure(index, err.Error())
			continue
		}

		path, err := resolve.File(batchDir, p.BaseName, entry.VideoID)
		if err != nil {
			s.logger.Warn("batch entry produced no file", "index", index, "video", entry.VideoID, "error", err)
			result.AddFailure(index, err.Error())
			continue
		}
		result.AddSuccess(index, path, filepath.Base(path))
	}
	return result
}

// assemble shapes the response: the lone file itself when exactly one entry
// succeeded, otherwise an archive holding every success in order.
func (s *Service) assemble(batchDir, playlistTitle string, result model.BatchResult, archiveName string) (*Outcome, error) {
	title := model.SanitizeFilename(playlistTitle)
	if title == "" {
		title = "playlist"
	}

	if len(result.Succeeded) == 1 {
		single := result.Succeeded[0]
		return &Outcome{
			Path:     single.Path,
			Filename: title + "_" + single.Name,
			Result:   result,
			Cleanup:  s.cleanupFunc(batchDir, ""),
		}, nil
	}

	if archiveName == "" {
		archiveName = title + ArchiveNameSuffix
	}
	archivePath := filepath.Join(s.cfg.DownloadsDir, newBatchID()+"_"+archiveName+ArchiveExtension)
	if err := buildArchive(archivePath, result.Succeeded); err != nil {
		if rmErr := os.RemoveAll(batchDir); rmErr != nil {
			s.logger.Warn("removing batch directory after archive failure", "dir", batchDir, "error", rmErr)
		}
		return nil, fmt.Errorf("packing archive: %w", err)
	}

	return &Outcome{
		Path:     archivePath,
		Filename: archiveName + ArchiveExtension,
		Archive:  true,
		Result:   result,
		Cleanup:  s.cleanupFunc(batchDir, archivePath),
	}, nil
}

// cleanupFunc builds the deferred cleanup closure. Errors are logged and
// swallowed: a delivered response must never be failed retroactively.
func (s *Service) cleanupFunc(batchDir, archivePath string) func() {
	return func() {
		if err := os.RemoveAll(batchDir); err != nil {
			s.logger.Warn("batch cleanup", "dir", batchDir, "error", err)
		}
		if archivePath != "" {
			if err := os.Remove(archivePath); err != nil && !os.IsNotExist(err) {
				s.logger.Warn("archive cleanup", "path", archivePath, "error", err)
			}
		}
	}
}

// validateSelection checks every index against the entry count, collecting
// all out-of-range values rather than stopping at the first.
func validateSelection(selected []int, entryCount int) error {
	var invalid []int
	for _, index := range selected {
		if index < 0 || index >= entryCount {
			invalid = append(invalid, index)
		}
	}
	if len(invalid) > 0 {
		return &InvalidIndexError{Indices: invalid, EntryCount: entryCount}
	}
	return nil
}

func newBatchID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
