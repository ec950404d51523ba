// Package jobs tracks in-flight download jobs. The registry is in-memory
// only and is lost on restart.
package jobs

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a tracked download job.
type Kind string

const (
	KindCombined Kind = "combined"
	KindAudio    Kind = "audio"
	KindPlaylist Kind = "playlist"
)

// Job is one in-flight download.
type Job struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"type"`
	SourceURL string    `json:"url"`
	StartedAt time.Time `json:"started_at"`
}

// Tracker is a mutex-guarded registry of in-flight jobs. It is safe for
// concurrent use from multiple request handlers.
type Tracker struct {
	mu   sync.Mutex
	jobs map[string]Job
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{jobs: make(map[string]Job)}
}

// Register inserts a new job and returns its generated id.
func (t *Tracker) Register(kind Kind, sourceURL string) string {
	id := newJobID()
	t.mu.Lock()
	t.jobs[id] = Job{
		ID:        id,
		Kind:      kind,
		SourceURL: sourceURL,
		StartedAt: time.Now(),
	}
	t.mu.Unlock()
	return id
}

// Unregister removes a job. Removing an unknown id is a no-op.
func (t *Tracker) Unregister(id string) {
	t.mu.Lock()
	delete(t.jobs, id)
	t.mu.Unlock()
}

// Snapshot returns the current job count and a copy of the jobs ordered by
// start time.
func (t *Tracker) Snapshot() (int, []Job) {
	t.mu.Lock()
	jobs := make([]Job, 0, len(t.jobs))
	for _, job := range t.jobs {
		jobs = append(jobs, job)
	}
	t.mu.Unlock()

	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].StartedAt.Before(jobs[j].StartedAt)
	})
	return len(jobs), jobs
}

// newJobID generates a time-ordered unique id. UUID v7 keeps snapshots in
// chronological order when start times collide.
func newJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("job-%d", time.Now().UnixNano())
	}
	return id.String()
}
