package search

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"fastmatcher.dev/internal/logging"
	"fastmatcher.dev/internal/matcher"
	"fastmatcher.dev/internal/models"
	"fastmatcher.dev/internal/scanner"
	"fastmatcher.dev/searchdb"
)

var (
	// ErrSearchNotFound is returned for unknown or expired search IDs.
	ErrSearchNotFound = errors.New("search not found")
	// ErrSearchRunning is returned when results are requested before completion.
	ErrSearchRunning = errors.New("search has not completed")
	// ErrSearchFinished is returned when cancelling a finished search.
	ErrSearchFinished = errors.New("search already finished")
)

// Config holds the manager's tunables.
type Config struct {
	// Workers bounds per-batch scan concurrency. Zero means NumCPU.
	Workers int
	// ResultTTL is how long finished jobs are kept in memory.
	ResultTTL time.Duration
	// CleanupInterval is how often expired jobs are swept.
	CleanupInterval time.Duration
}

const (
	defaultResultTTL       = time.Hour
	defaultCleanupInterval = 10 * time.Minute
	persistTimeout         = 30 * time.Second
)

// Manager owns the lifecycle of search jobs: it starts them in background
// goroutines, tracks progress, persists finished jobs to the history store,
// and expires old in-memory results.
type Manager struct {
	config Config
	logger *slog.Logger
	store  *searchdb.Client

	mu   sync.RWMutex
	jobs map[string]*Job

	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// NewManager creates a Manager and starts its cleanup loop. store may be
// nil, in which case finished searches are not persisted.
func NewManager(config Config, store *searchdb.Client, logger *slog.Logger) *Manager {
	if config.ResultTTL <= 0 {
		config.ResultTTL = defaultResultTTL
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = defaultCleanupInterval
	}

	manager := &Manager{
		config:       config,
		logger:       logger,
		store:        store,
		jobs:         make(map[string]*Job),
		shutdownChan: make(chan struct{}),
	}

	manager.wg.Add(1)
	go manager.cleanupExpiredJobs()

	return manager
}

// Shutdown cancels running jobs and stops background goroutines.
func (m *Manager) Shutdown() {
	m.shutdownOnce.Do(func() {
		m.mu.RLock()
		for _, job := range m.jobs {
			job.cancel()
		}
		m.mu.RUnlock()

		close(m.shutdownChan)
		m.wg.Wait()
	})
}

// Start launches a search in the background and returns its ID. The
// request must already be validated.
func (m *Manager) Start(req models.SearchRequest) (string, error) {
	eng, err := matcher.New(req.Keywords, matcher.Options{
		IgnoreCase: true,
		Context:    req.Context,
	})
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithCancel(context.Background())
	job := &Job{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Params:    req,
		cancel:    cancel,
	}

	m.mu.Lock()
	m.jobs[job.ID] = job
	m.mu.Unlock()

	m.wg.Add(1)
	go m.run(ctx, job, scanner.New(eng, m.config.Workers, m.logger))

	logging.LogOperation(m.logger, "search_started",
		slog.String("search_id", job.ID),
		slog.String("directory", req.Directory),
		slog.Int("keywords", len(req.Keywords)))

	return job.ID, nil
}

func (m *Manager) run(ctx context.Context, job *Job, s *scanner.Scanner) {
	defer m.wg.Done()
	defer job.cancel()

	matches, err := s.ScanDir(ctx, job.Params.Directory, job.Params.BatchSize, job.setProgress)

	switch {
	case errors.Is(err, context.Canceled):
		job.finish(nil, "search cancelled")
	case err != nil:
		logging.LogError(m.logger, "search failed", err,
			slog.String("search_id", job.ID),
			slog.String("component", "search_manager"))
		job.finish(nil, err.Error())
	default:
		job.finish(matches, "")
	}

	m.persist(job)
}

func (m *Manager) persist(job *Job) {
	if m.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := m.store.SaveSearch(ctx, job.Result()); err != nil {
		logging.LogError(m.logger, "failed to persist search", err,
			slog.String("search_id", job.ID),
			slog.String("component", "search_manager"))
	}
}

// Status returns the progress snapshot for a search.
func (m *Manager) Status(id string) (models.SearchStatus, error) {
	job, ok := m.job(id)
	if !ok {
		return models.SearchStatus{}, ErrSearchNotFound
	}

	return job.Status(), nil
}

// Results returns the full result document for a completed search. When
// the in-memory job has expired, the history store is consulted.
func (m *Manager) Results(id string) (models.SearchResult, error) {
	job, ok := m.job(id)
	if ok {
		if !job.Done() {
			return models.SearchResult{}, ErrSearchRunning
		}
		return job.Result(), nil
	}

	if m.store != nil {
		result, err := m.store.GetSearch(context.Background(), id)
		if errors.Is(err, searchdb.ErrSearchNotFound) {
			return models.SearchResult{}, ErrSearchNotFound
		}
		return result, err
	}

	return models.SearchResult{}, ErrSearchNotFound
}

// Cancel requests cooperative cancellation of a running search.
func (m *Manager) Cancel(id string) error {
	job, ok := m.job(id)
	if !ok {
		return ErrSearchNotFound
	}

	if job.Done() {
		return ErrSearchFinished
	}

	job.cancel()

	logging.LogOperation(m.logger, "search_cancelled",
		slog.String("search_id", id))

	return nil
}

// Jobs returns a snapshot of the live jobs, newest first is not guaranteed.
func (m *Manager) Jobs() []models.SearchStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	statuses := make([]models.SearchStatus, 0, len(m.jobs))
	for _, job := range m.jobs {
		statuses = append(statuses, job.Status())
	}

	return statuses
}

func (m *Manager) job(id string) (*Job, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, ok := m.jobs[id]
	return job, ok
}

func (m *Manager) cleanupExpiredJobs() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.shutdownChan:
			return
		case <-ticker.C:
			m.sweepExpired()
		}
	}
}

func (m *Manager) sweepExpired() {
	cutoff := time.Now().Add(-m.config.ResultTTL)

	m.mu.Lock()
	defer m.mu.Unlock()

	for id, job := range m.jobs {
		if job.Done() && job.CreatedAt.Before(cutoff) {
			delete(m.jobs, id)
			logging.LogOperation(m.logger, "search_expired",
				slog.String("search_id", id))
		}
	}
}
