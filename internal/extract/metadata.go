package extract

import (
	"github.com/lrstanley/go-ytdlp"

	"github.com/clipdl/clipd/internal/model"
)

// metadataFrom maps the engine's extracted info onto the domain metadata
// type. Engine fields are pointers; absent values fall back to zeroes so
// callers never see nils.
func metadataFrom(info *ytdlp.ExtractedInfo) *model.Metadata {
	md := &model.Metadata{
		ID:        info.ID,
		Title:     str(info.Title),
		Thumbnail: str(info.Thumbnail),
		Uploader:  uploaderFrom(info),
		Duration:  num(info.Duration),
	}

	for i, entry := range info.Entries {
		if entry == nil {
			continue
		}
		md.Entries = append(md.Entries, model.PlaylistEntryRef{
			Index:    i,
			VideoID:  entry.ID,
			Title:    str(entry.Title),
			Duration: num(entry.Duration),
			Uploader: uploaderFrom(entry),
		})
	}

	md.PlaylistCount = len(md.Entries)
	if info.PlaylistCount != nil && *info.PlaylistCount > 0 {
		md.PlaylistCount = *info.PlaylistCount
	}
	return md
}

// uploaderFrom prefers the uploader name, falling back to the channel.
func uploaderFrom(info *ytdlp.ExtractedInfo) string {
	if u := str(info.Uploader); u != "" {
		return u
	}
	return str(info.Channel)
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func num(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
