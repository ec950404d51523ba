package model

// FormatKind classifies a catalog entry by the streams it carries.
type FormatKind string

const (
	// FormatVideo is a video-only stream that needs an audio merge.
	FormatVideo FormatKind = "video"

	// FormatAudio is an audio-only stream.
	FormatAudio FormatKind = "audio"

	// FormatCombined already carries both video and audio and needs no merge.
	FormatCombined FormatKind = "combined"
)

// FormatDescriptor maps a user-facing quality label to a known stream id.
type FormatDescriptor struct {
	ID        string     `json:"format_id"`
	Label     string     `json:"quality"`
	Container string     `json:"ext"`
	Kind      FormatKind `json:"type"`
}

// The catalog is a curated, platform-specific table rather than a parse of
// the live format list, which is too noisy to present as user choices.
var (
	// VideoFormats lists the selectable video qualities, lowest first.
	VideoFormats = []FormatDescriptor{
		{ID: "160", Label: "144p", Container: "mp4", Kind: FormatVideo},
		{ID: "133", Label: "240p", Container: "mp4", Kind: FormatVideo},
		{ID: "134", Label: "360p", Container: "mp4", Kind: FormatVideo},
		{ID: "135", Label: "480p", Container: "mp4", Kind: FormatVideo},
		{ID: "136", Label: "720p HD", Container: "mp4", Kind: FormatVideo},
		{ID: "137", Label: "1080p Full HD", Container: "mp4", Kind: FormatVideo},
		{ID: "400", Label: "1440p 2K", Container: "mp4", Kind: FormatVideo},
		{ID: "401", Label: "2160p 4K", Container: "mp4", Kind: FormatVideo},
		{ID: "18", Label: "360p (Combined/Fast)", Container: "mp4", Kind: FormatCombined},
	}

	// AudioFormats lists the selectable audio qualities, lowest first.
	AudioFormats = []FormatDescriptor{
		{ID: "worstaudio", Label: "Low Quality", Container: "webm", Kind: FormatAudio},
		{ID: "bestaudio[abr<=70]", Label: "Medium Quality", Container: "webm", Kind: FormatAudio},
		{ID: "bestaudio", Label: "High Quality", Container: "webm", Kind: FormatAudio},
	}
)

// VideoFormatByID looks up a video catalog entry by stream id.
func VideoFormatByID(id string) (FormatDescriptor, bool) {
	for _, f := range VideoFormats {
		if f.ID == id {
			return f, true
		}
	}
	return FormatDescriptor{}, false
}

// AudioFormatByID looks up an audio catalog entry by stream id.
func AudioFormatByID(id string) (FormatDescriptor, bool) {
	for _, f := range AudioFormats {
		if f.ID == id {
			return f, true
		}
	}
	return FormatDescriptor{}, false
}
