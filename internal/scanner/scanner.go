package scanner

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"fastmatcher.dev/internal/logging"
	"fastmatcher.dev/internal/matcher"
	"fastmatcher.dev/internal/models"
)

// Scanner runs a Matcher over batches of files with a bounded worker pool.
type Scanner struct {
	matcher *matcher.Matcher
	workers int
	logger  *slog.Logger
}

// New creates a Scanner. A non-positive worker count falls back to the
// number of CPUs.
func New(m *matcher.Matcher, workers int, logger *slog.Logger) *Scanner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Scanner{
		matcher: m,
		workers: workers,
		logger:  logger,
	}
}

// CollectFiles walks root recursively and returns every regular file.
// Unreadable entries are skipped rather than failing the walk.
func CollectFiles(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			// Permission errors and races with deletions are expected
			// when scanning arbitrary directories.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// Batch splits files into batches of at most size entries.
func Batch(files []string, size int) [][]string {
	if size <= 0 {
		size = models.DefaultBatchSize
	}

	var batches [][]string
	for start := 0; start < len(files); start += size {
		end := start + size
		if end > len(files) {
			end = len(files)
		}
		batches = append(batches, files[start:end])
	}

	return batches
}

// ScanBatch scans a batch of files concurrently. Per-file read errors are
// logged and skipped. Results keep the batch's file order.
func (s *Scanner) ScanBatch(ctx context.Context, files []string) ([]models.FileMatch, error) {
	perFile := make([][]models.FileMatch, len(files))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			matches, err := s.matcher.SearchFile(path)
			if err != nil {
				logging.LogError(s.logger, "failed to scan file", err,
					slog.String("file", path),
					slog.String("component", "scanner"))
				return nil
			}

			mu.Lock()
			perFile[i] = matches
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []models.FileMatch
	for _, matches := range perFile {
		out = append(out, matches...)
	}

	return out, nil
}

// ScanDir collects the files under root and scans them batch by batch.
// progress, when non-nil, is called after every batch with the number of
// files processed so far and the total.
func (s *Scanner) ScanDir(ctx context.Context, root string, batchSize int, progress func(processed, total int)) ([]models.FileMatch, error) {
	files, err := CollectFiles(ctx, root)
	if err != nil {
		return nil, err
	}

	var all []models.FileMatch
	processed := 0

	for _, batch := range Batch(files, batchSize) {
		matches, err := s.ScanBatch(ctx, batch)
		if err != nil {
			return nil, err
		}

		all = append(all, matches...)
		processed += len(batch)
		if progress != nil {
			progress(processed, len(files))
		}
	}

	return all, nil
}
