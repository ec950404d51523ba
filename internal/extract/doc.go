// Package extract wraps the yt-dlp engine behind a bounded worker pool.
// Every metadata extraction and media fetch in the server funnels through
// one Gateway, whose pool is the single concurrency limit protecting both
// the host machine and the upstream platform.
package extract
