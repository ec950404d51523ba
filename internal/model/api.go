package model

// Playlist request limits
const (
	DefaultPlaylistScan = 50
	MaxBatchSelection   = 20
)

// VideoInfoRequest asks for single-video metadata.
type VideoInfoRequest struct {
	URL string `json:"url" binding:"required"`
}

// VideoInfoResponse carries the metadata and the format catalog.
type VideoInfoResponse struct {
	Title          string             `json:"title"`
	Duration       int                `json:"duration"`
	DurationString string             `json:"duration_string"`
	Thumbnail      string             `json:"thumbnail,omitempty"`
	Uploader       string             `json:"uploader"`
	VideoFormats   []FormatDescriptor `json:"video_formats"`
	AudioFormats   []FormatDescriptor `json:"audio_formats"`
}

// CombinedDownloadRequest asks for a merged video+audio download.
type CombinedDownloadRequest struct {
	URL           string     `json:"url" binding:"required"`
	VideoFormatID string     `json:"video_format_id" binding:"required"`
	AudioFormatID string     `json:"audio_format_id" binding:"required"`
	TimeRange     *TimeRange `json:"time_range,omitempty"`
	PreciseCut    bool       `json:"precise_cut"`
}

// AudioDownloadRequest asks for an audio-only download.
type AudioDownloadRequest struct {
	URL        string     `json:"url" binding:"required"`
	FormatID   string     `json:"format_id" binding:"required"`
	TimeRange  *TimeRange `json:"time_range,omitempty"`
	PreciseCut bool       `json:"precise_cut"`
}

// PlaylistInfoRequest asks for the entry list of a playlist.
type PlaylistInfoRequest struct {
	URL            string `json:"url" binding:"required"`
	MaxVideos      int    `json:"max_videos"`
	IncludeFormats bool   `json:"include_formats"`
}

// PlaylistVideoInfo is one playlist entry in an info response.
type PlaylistVideoInfo struct {
	VideoID        string             `json:"video_id"`
	Title          string             `json:"title"`
	Duration       int                `json:"duration"`
	DurationString string             `json:"duration_string"`
	Uploader       string             `json:"uploader"`
	Index          int                `json:"index"`
	URL            string             `json:"url"`
	VideoFormats   []FormatDescriptor `json:"video_formats,omitempty"`
	AudioFormats   []FormatDescriptor `json:"audio_formats,omitempty"`
}

// PlaylistInfoResponse carries playlist metadata and its entries.
type PlaylistInfoResponse struct {
	PlaylistTitle   string              `json:"playlist_title"`
	PlaylistID      string              `json:"playlist_id,omitempty"`
	Uploader        string              `json:"uploader"`
	TotalVideos     int                 `json:"total_videos"`
	ExtractedVideos int                 `json:"extracted_videos"`
	Videos          []PlaylistVideoInfo `json:"videos"`
}

// PlaylistDownloadRequest asks for a batch download of selected entries.
// An empty VideoFormatID means audio-only entries.
type PlaylistDownloadRequest struct {
	URL            string `json:"url" binding:"required"`
	SelectedVideos []int  `json:"selected_videos"`
	VideoFormatID  string `json:"video_format_id"`
	AudioFormatID  string `json:"audio_format_id" binding:"required"`
	ArchiveName    string `json:"archive_name"`
}

// DownloadedFile describes a completed single-file download on disk.
type DownloadedFile struct {
	Success    bool   `json:"success"`
	Filename   string `json:"filename"`
	FilePath   string `json:"file_path"`
	FileSize   int64  `json:"file_size"`
	DownloadID string `json:"download_id"`
}
