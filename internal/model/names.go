package model

import (
	"regexp"
	"strings"
)

// Filename length limits
const (
	MaxSanitizedLength  = 200
	MaxBatchTitleLength = 100
)

var (
	forbiddenPathChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	repeatedWhitespace = regexp.MustCompile(`\s+`)
	nonRestrictedChars = regexp.MustCompile(`[^\w\s-]`)
)

// SanitizeFilename strips path-hostile characters from a title so it can be
// embedded in an output filename.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "..", "")
	name = forbiddenPathChars.ReplaceAllString(name, "")
	name = strings.TrimSpace(repeatedWhitespace.ReplaceAllString(name, " "))
	if len(name) > MaxSanitizedLength {
		name = name[:MaxSanitizedLength]
	}
	return name
}

// RestrictTitle reduces a title to word characters, spaces and hyphens for
// batch entry names, capped at max runes.
func RestrictTitle(name string, max int) string {
	name = nonRestrictedChars.ReplaceAllString(name, "")
	if max > 0 && len(name) > max {
		name = name[:max]
	}
	return name
}

// WatchURL builds the canonical watch URL for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
