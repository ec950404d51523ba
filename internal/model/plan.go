package model

// DownloadPlan is the fully resolved instruction set for one fetch call.
// It is built once by the planner, handed to the extraction gateway, and
// never mutated downstream.
type DownloadPlan struct {
	// FormatSelector identifies the stream(s) to retrieve: a single id for
	// combined streams, or a "<video>+<audio>" composite.
	FormatSelector string

	// OutputTemplate is the full output path with the engine's extension
	// placeholder still in place.
	OutputTemplate string

	// BaseName is the template's filename without directory or extension,
	// used to locate the produced file afterwards.
	BaseName string

	// MergeContainer forces the container when merging separate streams.
	// Empty means no merge directive.
	MergeContainer string

	// Range, when set, restricts the download to a cut interval.
	Range *TimeRange

	// PreciseCut aligns cut boundaries to keyframes. Slower but exact;
	// without it cuts may carry extra frames near the boundaries.
	PreciseCut bool

	// RestrictFilenames asks the engine to emit ASCII-safe filenames.
	RestrictFilenames bool

	// PostProcessorArgs are generic post-processing arguments. A range
	// directive supersedes them: setting Range clears this list so the
	// engine never receives conflicting post-processing commands.
	PostProcessorArgs []string
}

// Metadata is the parsed result of a metadata extraction.
type Metadata struct {
	ID            string
	Title         string
	Duration      float64
	Thumbnail     string
	Uploader      string
	PlaylistCount int
	Entries       []PlaylistEntryRef
}

// PlaylistEntryRef is one playlist item as resolved from upstream metadata
// before any fetch starts.
type PlaylistEntryRef struct {
	Index    int
	VideoID  string
	Title    string
	Duration float64
	Uploader string
}

// URL returns the watch URL for the entry.
func (e PlaylistEntryRef) URL() string {
	return WatchURL(e.VideoID)
}
