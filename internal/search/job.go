package search

import (
	"context"
	"sync"
	"time"

	"fastmatcher.dev/internal/models"
)

// Job is one search run. Progress fields are guarded by mu; the cancel
// func belongs to the job's scan context.
type Job struct {
	ID        string
	CreatedAt time.Time
	Params    models.SearchRequest

	cancel context.CancelFunc

	mu        sync.RWMutex
	processed int
	total     int
	completed bool
	errText   string
	matches   []models.FileMatch
}

func (j *Job) setProgress(processed, total int) {
	j.mu.Lock()
	j.processed = processed
	j.total = total
	j.mu.Unlock()
}

func (j *Job) finish(matches []models.FileMatch, errText string) {
	j.mu.Lock()
	j.completed = true
	j.errText = errText
	j.matches = matches
	j.mu.Unlock()
}

// Done reports whether the job has finished, successfully or not.
func (j *Job) Done() bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.completed
}

// Status returns a progress snapshot.
func (j *Job) Status() models.SearchStatus {
	j.mu.RLock()
	defer j.mu.RUnlock()

	progress := 0.0
	if j.total > 0 {
		progress = float64(j.processed) / float64(j.total)
	}
	if j.completed && j.errText == "" {
		progress = 1.0
	}

	return models.SearchStatus{
		SearchID:   j.ID,
		Progress:   progress,
		Processed:  j.processed,
		Total:      j.total,
		MatchCount: len(j.matches),
		Completed:  j.completed,
		Error:      j.errText,
	}
}

// Result returns the full result document for the job.
func (j *Job) Result() models.SearchResult {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return models.SearchResult{
		SearchID:     j.ID,
		CreateTime:   j.CreatedAt,
		Params:       j.Params,
		TotalFiles:   j.total,
		MatchedCount: len(j.matches),
		Matches:      j.matches,
		Completed:    j.completed,
		Error:        j.errText,
	}
}
