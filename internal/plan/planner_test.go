package plan

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/clipdl/clipd/internal/model"
)

func testPlanner(dir string) *Planner {
	p := New(dir)
	p.now = func() time.Time { return time.UnixMilli(1712345678901) }
	return p
}

func TestCombined_CombinedStreamUsesSingleSelector(t *testing.T) {
	p := testPlanner("/downloads")

	plan := p.Combined("My Clip", model.CombinedDownloadRequest{
		URL:           "https://youtube.com/watch?v=abc",
		VideoFormatID: "18",
		AudioFormatID: "bestaudio",
	})

	// 18 already carries audio, no composite and no "+<audio>"
	if plan.FormatSelector != "18" {
		t.Errorf("selector = %q, expected %q", plan.FormatSelector, "18")
	}
	if !strings.Contains(plan.BaseName, "360p") {
		t.Errorf("base name %q should embed the combined quality label", plan.BaseName)
	}
}

func TestCombined_SeparateStreamsUseComposite(t *testing.T) {
	p := testPlanner("/downloads")

	plan := p.Combined("My Clip", model.CombinedDownloadRequest{
		URL:           "https://youtube.com/watch?v=abc",
		VideoFormatID: "137",
		AudioFormatID: "bestaudio",
	})

	if plan.FormatSelector != "137+bestaudio" {
		t.Errorf("selector = %q, expected %q", plan.FormatSelector, "137+bestaudio")
	}
	if plan.MergeContainer != VideoContainer {
		t.Errorf("merge container = %q, expected %q", plan.MergeContainer, VideoContainer)
	}
	if filepath.Dir(plan.OutputTemplate) != "/downloads" {
		t.Errorf("output template %q not under downloads dir", plan.OutputTemplate)
	}
	if !strings.HasSuffix(plan.OutputTemplate, ExtensionPlaceholder) {
		t.Errorf("output template %q missing extension placeholder", plan.OutputTemplate)
	}
}

func TestCombined_TimeRangeNaming(t *testing.T) {
	p := testPlanner("/downloads")
	tr, _ := model.NewTimeRange(5, 3723)

	plan := p.Combined("My Clip", model.CombinedDownloadRequest{
		VideoFormatID: "137",
		AudioFormatID: "bestaudio",
		TimeRange:     &tr,
		PreciseCut:    true,
	})

	if plan.Range == nil || plan.Range.Start != 5 || plan.Range.End != 3723 {
		t.Fatalf("plan range = %+v", plan.Range)
	}
	if !plan.PreciseCut {
		t.Error("precise cut flag not carried into plan")
	}
	if !strings.Contains(plan.BaseName, TrimmedTag) {
		t.Errorf("base name %q missing trimmed tag", plan.BaseName)
	}
	if strings.Contains(plan.BaseName, ":") {
		t.Errorf("base name %q contains colons", plan.BaseName)
	}
	if !strings.Contains(plan.BaseName, "00-05-01-02-03") {
		t.Errorf("base name %q missing hyphenated window", plan.BaseName)
	}
}

func TestApplyRange_DropsPostProcessorArgs(t *testing.T) {
	tr, _ := model.NewTimeRange(1, 2)
	plan := model.DownloadPlan{PostProcessorArgs: []string{"-metadata", "comment=x"}}

	applyRange(&plan, &tr, false)

	if plan.PostProcessorArgs != nil {
		t.Errorf("post-processor args should be dropped when a range is set, got %v", plan.PostProcessorArgs)
	}

	// No range leaves them untouched
	plan = model.DownloadPlan{PostProcessorArgs: []string{"-metadata", "comment=x"}}
	applyRange(&plan, nil, false)
	if len(plan.PostProcessorArgs) != 2 {
		t.Errorf("post-processor args should survive without a range, got %v", plan.PostProcessorArgs)
	}
}

func TestAudio_QualityRelabeling(t *testing.T) {
	p := testPlanner("/downloads")

	tests := []struct {
		formatID string
		expected string
	}{
		{"bestaudio", "high"},
		{"worstaudio", "low"},
		{"bestaudio[abr<=70]", "high[abr<=70]"},
	}

	for _, test := range tests {
		plan := p.Audio("Track", model.AudioDownloadRequest{FormatID: test.formatID})
		if plan.FormatSelector != test.formatID {
			t.Errorf("selector = %q, expected %q", plan.FormatSelector, test.formatID)
		}
		if !strings.Contains(plan.BaseName, "_audio_"+test.expected) {
			t.Errorf("base name %q missing relabeled quality %q", plan.BaseName, test.expected)
		}
	}
}

func TestBatchEntry_ZeroPaddedPrefix(t *testing.T) {
	p := testPlanner("/downloads")

	tests := []struct {
		index  int
		prefix string
	}{
		{0, "000_"},
		{7, "007_"},
		{42, "042_"},
	}

	for _, test := range tests {
		entry := model.PlaylistEntryRef{Index: test.index, VideoID: "vid", Title: "A Song (live)"}
		plan := p.BatchEntry("/downloads/playlist_x", entry, "137", "bestaudio")

		if !strings.HasPrefix(plan.BaseName, test.prefix) {
			t.Errorf("base name %q missing prefix %q", plan.BaseName, test.prefix)
		}
		if strings.ContainsAny(plan.BaseName, "()") {
			t.Errorf("base name %q not restricted", plan.BaseName)
		}
		if !plan.RestrictFilenames {
			t.Error("batch plans must restrict filenames")
		}
	}
}

func TestBatchEntry_Selectors(t *testing.T) {
	p := testPlanner("/downloads")
	entry := model.PlaylistEntryRef{Index: 1, VideoID: "vid", Title: "Song"}

	// With a video format the selector is always composite
	plan := p.BatchEntry("/d", entry, "135", "bestaudio")
	if plan.FormatSelector != "135+bestaudio" {
		t.Errorf("selector = %q, expected %q", plan.FormatSelector, "135+bestaudio")
	}
	if plan.MergeContainer != VideoContainer {
		t.Errorf("merge container = %q, expected %q", plan.MergeContainer, VideoContainer)
	}

	// Without one it falls back to audio only
	plan = p.BatchEntry("/d", entry, "", "bestaudio")
	if plan.FormatSelector != "bestaudio" {
		t.Errorf("selector = %q, expected %q", plan.FormatSelector, "bestaudio")
	}
	if plan.MergeContainer != AudioContainer {
		t.Errorf("merge container = %q, expected %q", plan.MergeContainer, AudioContainer)
	}
}
