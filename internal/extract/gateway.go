package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/lrstanley/go-ytdlp"

	"github.com/clipdl/clipd/internal/model"
)

// Engine retry budgets, passed straight down to yt-dlp's built-in retry
// mechanisms. The gateway adds no retry layer of its own on top, so
// backoffs never compound.
const (
	HTTPRetries       = "3"
	ExtractorRetries  = "2"
	FragmentRetries   = "3"
	FileAccessRetries = "2"
)

// BotDetectionMarker is the platform's access-denied phrasing when it wants
// a signed-in session.
const BotDetectionMarker = "Sign in to confirm"

var (
	// ErrAuthRequired means the platform refused access and no valid session
	// cookies are configured. The operator should refresh the cookie jar
	// rather than retry.
	ErrAuthRequired = errors.New("platform requires authentication cookies")

	// ErrExtraction wraps an opaque metadata extraction failure.
	ErrExtraction = errors.New("extraction failed")

	// ErrFetch wraps an opaque download failure.
	ErrFetch = errors.New("fetch failed")
)

// Options controls a metadata extraction.
type Options struct {
	// FlatPlaylist skips per-entry extraction, returning only the entry list.
	FlatPlaylist bool

	// PlaylistItems limits which entries are extracted, e.g. "1:50".
	PlaylistItems string
}

// Config wires a Gateway.
type Config struct {
	// PoolSize bounds how many engine invocations run at once.
	PoolSize int

	// CookieFile is the path to the Netscape cookie jar.
	CookieFile string

	// CookiesValid reports whether the jar currently holds usable cookies.
	CookiesValid func() bool

	// FFmpegPath, when set, is handed to the engine for remux/cut work.
	FFmpegPath string

	Logger *slog.Logger
}

// Gateway runs engine calls on a bounded worker pool.
type Gateway struct {
	sem          chan struct{}
	wg           sync.WaitGroup
	cookieFile   string
	cookiesValid func() bool
	ffmpegPath   string
	logger       *slog.Logger
}

// New creates a Gateway with the configured pool size.
func New(cfg Config) *Gateway {
	if cfg.PoolSize < 1 {
		cfg.PoolSize = 1
	}
	valid := cfg.CookiesValid
	if valid == nil {
		valid = func() bool { return false }
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		sem:          make(chan struct{}, cfg.PoolSize),
		cookieFile:   cfg.CookieFile,
		cookiesValid: valid,
		ffmpegPath:   cfg.FFmpegPath,
		logger:       logger,
	}
}

// Extract fetches metadata for a URL without downloading media. The call
// blocks until a pool slot is free or ctx is done.
func (g *Gateway) Extract(ctx context.Context, url string, opts Options) (*model.Metadata, error) {
	if err := g.acquire(ctx); err != nil {
		return nil, err
	}
	defer g.release()

	dl := g.baseCommand().
		SkipDownload().
		DumpSingleJSON()
	if opts.FlatPlaylist {
		dl = dl.FlatPlaylist()
	}
	if opts.PlaylistItems != "" {
		dl = dl.PlaylistItems(opts.PlaylistItems)
	}

	result, err := dl.Run(ctx, url)
	if err != nil {
		return nil, g.classify(ErrExtraction, err)
	}

	infos, err := result.GetExtractedInfo()
	if err != nil {
		return nil, fmt.Errorf("%w: parsing engine output: %v", ErrExtraction, err)
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("%w: engine returned no metadata", ErrExtraction)
	}
	return metadataFrom(infos[0]), nil
}

// Fetch downloads media according to a plan. The engine performs the merge
// and any cut itself; output lands on disk under the plan's template and
// nothing is returned beyond the error.
func (g *Gateway) Fetch(ctx context.Context, url string, plan model.DownloadPlan) error {
	if err := g.acquire(ctx); err != nil {
		return err
	}
	defer g.release()

	dl := g.baseCommand().
		Format(plan.FormatSelector).
		Output(plan.OutputTemplate)
	if plan.MergeContainer != "" {
		dl = dl.MergeOutputFormat(plan.MergeContainer)
	}
	if plan.RestrictFilenames {
		dl = dl.RestrictFilenames()
	}
	if plan.Range != nil {
		dl = dl.DownloadSections(sectionDirective(*plan.Range))
		if plan.PreciseCut {
			dl = dl.ForceKeyframesAtCuts()
		}
	} else if len(plan.PostProcessorArgs) > 0 {
		dl = dl.PostProcessorArgs(strings.Join(plan.PostProcessorArgs, " "))
	}

	g.logger.Info("fetch dispatched",
		"url", url,
		"format", plan.FormatSelector,
		"trimmed", plan.Range != nil)

	if _, err := dl.Run(ctx, url); err != nil {
		return g.classify(ErrFetch, err)
	}
	return nil
}

// Close waits for all in-flight engine work to drain. No new calls should
// be issued after Close.
func (g *Gateway) Close() {
	g.wg.Wait()
}

func (g *Gateway) acquire(ctx context.Context) error {
	select {
	case g.sem <- struct{}{}:
		g.wg.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *Gateway) release() {
	<-g.sem
	g.wg.Done()
}

// baseCommand applies the settings shared by every engine invocation.
func (g *Gateway) baseCommand() *ytdlp.Command {
	dl := ytdlp.New().
		Quiet().
		NoWarnings().
		Retries(HTTPRetries).
		ExtractorRetries(ExtractorRetries).
		FragmentRetries(FragmentRetries).
		FileAccessRetries(FileAccessRetries)
	if g.ffmpegPath != "" {
		dl = dl.FFmpegLocation(g.ffmpegPath)
	}
	if g.cookiesValid() {
		dl = dl.Cookies(g.cookieFile)
	}
	return dl
}

// classify surfaces engine failures unmodified except for one case: the
// platform's bot-detection refusal without usable cookies becomes
// ErrAuthRequired so callers can tell the operator to refresh credentials
// instead of retrying blindly.
func (g *Gateway) classify(base error, err error) error {
	if strings.Contains(err.Error(), BotDetectionMarker) && !g.cookiesValid() {
		return fmt.Errorf("%w: %v", ErrAuthRequired, err)
	}
	return fmt.Errorf("%w: %v", base, err)
}

// sectionDirective renders a time range as a yt-dlp download-sections
// expression bounded by [start, end].
func sectionDirective(tr model.TimeRange) string {
	return fmt.Sprintf("*%s-%s",
		strconv.FormatFloat(tr.Start, 'f', -1, 64),
		strconv.FormatFloat(tr.End, 'f', -1, 64))
}
