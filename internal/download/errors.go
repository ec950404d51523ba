package download

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySelection means the batch selection list is empty or exceeds
	// the configured maximum.
	ErrEmptySelection = errors.New("invalid selection")

	// ErrEmptyPlaylist means the playlist resolved to zero entries.
	ErrEmptyPlaylist = errors.New("no videos found in playlist")

	// ErrNoSuccessfulDownloads means every entry in a batch failed.
	ErrNoSuccessfulDownloads = errors.New("no videos were successfully downloaded")
)

// InvalidIndexError reports every out-of-range index in a selection, not
// just the first one found.
type InvalidIndexError struct {
	Indices    []int
	EntryCount int
}

func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("invalid video indices %v: playlist has %d videos (indices 0-%d)",
		e.Indices, e.EntryCount, e.EntryCount-1)
}
