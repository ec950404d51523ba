// Package plan turns declarative download requests into fully resolved
// download plans: format selector, output template, merge container and
// cut directives.
package plan

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/clipdl/clipd/internal/model"
)

// Naming constants
const (
	// ExtensionPlaceholder defers the final extension to the engine, which
	// picks the container.
	ExtensionPlaceholder = ".%(ext)s"

	// TrimmedTag marks filenames of range-cut downloads.
	TrimmedTag = "trimmed"

	// BatchIndexWidth zero-pads batch entry prefixes so names sort by
	// selection index.
	BatchIndexWidth = 3

	// DisambiguatorModulo keeps the numeric filename disambiguator to its
	// last five digits.
	DisambiguatorModulo = 100000
)

// Container constants
const (
	VideoContainer = "mp4"
	AudioContainer = "m4a"
)

// Planner builds download plans. It is a pure transformation layer; input
// validation happens upstream.
type Planner struct {
	downloadsDir string
	now          func() time.Time
}

// New creates a Planner writing into the given downloads directory.
func New(downloadsDir string) *Planner {
	return &Planner{downloadsDir: downloadsDir, now: time.Now}
}

// Combined plans a merged video+audio download. When the chosen video
// format is already a combined stream the selector is its id alone;
// otherwise it is a "<video>+<audio>" composite.
func (p *Planner) Combined(title string, req model.CombinedDownloadRequest) model.DownloadPlan {
	selector := req.VideoFormatID + "+" + req.AudioFormatID
	quality := req.VideoFormatID
	if f, ok := model.VideoFormatByID(req.VideoFormatID); ok && f.Kind == model.FormatCombined {
		selector = req.VideoFormatID
		quality = strings.Fields(f.Label)[0]
	}

	base := p.baseName(model.SanitizeFilename(title), quality, req.TimeRange)
	plan := model.DownloadPlan{
		FormatSelector: selector,
		OutputTemplate: filepath.Join(p.downloadsDir, base+ExtensionPlaceholder),
		BaseName:       base,
		MergeContainer: VideoContainer,
	}
	applyRange(&plan, req.TimeRange, req.PreciseCut)
	return plan
}

// Audio plans an audio-only download.
func (p *Planner) Audio(title string, req model.AudioDownloadRequest) model.DownloadPlan {
	quality := strings.ReplaceAll(req.FormatID, "bestaudio", "high")
	quality = strings.ReplaceAll(quality, "worstaudio", "low")

	base := p.baseName(model.SanitizeFilename(title)+"_audio", quality, req.TimeRange)
	plan := model.DownloadPlan{
		FormatSelector: req.FormatID,
		OutputTemplate: filepath.Join(p.downloadsDir, base+ExtensionPlaceholder),
		BaseName:       base,
	}
	applyRange(&plan, req.TimeRange, req.PreciseCut)
	return plan
}

// BatchEntry plans one playlist entry into dir. The name carries a
// zero-padded selection index so batch contents sort stably regardless of
// completion order. An empty videoFormatID selects audio only; otherwise
// the selector is always a composite.
func (p *Planner) BatchEntry(dir string, entry model.PlaylistEntryRef, videoFormatID, audioFormatID string) model.DownloadPlan {
	selector := audioFormatID
	container := AudioContainer
	if videoFormatID != "" {
		selector = videoFormatID + "+" + audioFormatID
		container = VideoContainer
	}

	title := model.RestrictTitle(model.SanitizeFilename(entry.Title), model.MaxBatchTitleLength)
	base := fmt.Sprintf("%0*d_%s", BatchIndexWidth, entry.Index, title)

	return model.DownloadPlan{
		FormatSelector:    selector,
		OutputTemplate:    filepath.Join(dir, base+ExtensionPlaceholder),
		BaseName:          base,
		MergeContainer:    container,
		RestrictFilenames: true,
	}
}

// baseName assembles "<stem>_<quality>[_trimmed_<start>-<end>]_<n>" with
// colons replaced for path safety and a timestamp-derived disambiguator.
func (p *Planner) baseName(stem, quality string, tr *model.TimeRange) string {
	n := p.now().UnixMilli() % DisambiguatorModulo
	if tr != nil {
		window := fmt.Sprintf("%s-%s", model.FormatSeconds(tr.Start), model.FormatSeconds(tr.End))
		window = strings.ReplaceAll(window, ":", "-")
		return fmt.Sprintf("%s_%s_%s_%s_%d", stem, quality, TrimmedTag, window, n)
	}
	return fmt.Sprintf("%s_%s_%d", stem, quality, n)
}

// applyRange attaches the cut directive. The directive supersedes any
// generic post-processing arguments, which are dropped so the engine never
// receives conflicting post-processing commands.
func applyRange(plan *model.DownloadPlan, tr *model.TimeRange, precise bool) {
	if tr == nil {
		return
	}
	plan.Range = tr
	plan.PreciseCut = precise
	plan.PostProcessorArgs = nil
}
