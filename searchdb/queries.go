package searchdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fastmatcher.dev/internal/logging"
	"fastmatcher.dev/internal/models"
)

// ErrSearchNotFound is returned when a search ID has no stored row.
var ErrSearchNotFound = errors.New("search not found")

// SaveSearch stores a completed search and its matches in one transaction.
// An existing row with the same ID is replaced.
func (c *Client) SaveSearch(ctx context.Context, result models.SearchResult) error {
	keywords, err := json.Marshal(result.Params.Keywords)
	if err != nil {
		return fmt.Errorf("error encoding keywords: %w", err)
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, c.logger, "save_search")

	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO searches
			(id, created_at, directory, keywords, context_lines, batch_size,
			 total_files, matched_count, completed, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.SearchID,
		result.CreateTime.UnixMilli(),
		result.Params.Directory,
		string(keywords),
		result.Params.Context,
		result.Params.BatchSize,
		result.TotalFiles,
		result.MatchedCount,
		result.Completed,
		result.Error,
	)
	if err != nil {
		return fmt.Errorf("error inserting search: %w", err)
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM matches WHERE search_id = ?`, result.SearchID)
	if err != nil {
		return fmt.Errorf("error clearing old matches: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO matches (search_id, file, line_no, keywords, lines)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("error preparing match insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range result.Matches {
		kw, err := json.Marshal(m.Keywords)
		if err != nil {
			return fmt.Errorf("error encoding match keywords: %w", err)
		}
		lines, err := json.Marshal(m.Lines)
		if err != nil {
			return fmt.Errorf("error encoding match lines: %w", err)
		}

		if _, err := stmt.ExecContext(ctx, result.SearchID, m.File, m.LineNo, string(kw), string(lines)); err != nil {
			return fmt.Errorf("error inserting match: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}

// GetSearch loads a stored search with all of its matches.
func (c *Client) GetSearch(ctx context.Context, id string) (models.SearchResult, error) {
	var (
		result    models.SearchResult
		createdAt int64
		keywords  string
	)

	row := c.DB.QueryRowContext(ctx, `
		SELECT id, created_at, directory, keywords, context_lines, batch_size,
		       total_files, matched_count, completed, error
		FROM searches WHERE id = ?`, id)

	err := row.Scan(
		&result.SearchID,
		&createdAt,
		&result.Params.Directory,
		&keywords,
		&result.Params.Context,
		&result.Params.BatchSize,
		&result.TotalFiles,
		&result.MatchedCount,
		&result.Completed,
		&result.Error,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SearchResult{}, ErrSearchNotFound
	}
	if err != nil {
		return models.SearchResult{}, fmt.Errorf("error loading search: %w", err)
	}

	result.CreateTime = time.UnixMilli(createdAt)
	if err := json.Unmarshal([]byte(keywords), &result.Params.Keywords); err != nil {
		return models.SearchResult{}, fmt.Errorf("error decoding keywords: %w", err)
	}

	matches, err := c.getMatches(ctx, id)
	if err != nil {
		return models.SearchResult{}, err
	}
	result.Matches = matches

	return result, nil
}

func (c *Client) getMatches(ctx context.Context, searchID string) ([]models.FileMatch, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT file, line_no, keywords, lines
		FROM matches WHERE search_id = ? ORDER BY id`, searchID)
	if err != nil {
		return nil, fmt.Errorf("error loading matches: %w", err)
	}
	defer logging.SafeCloseWithLogging(rows, c.logger, "get_matches")

	var matches []models.FileMatch
	for rows.Next() {
		var (
			m        models.FileMatch
			keywords string
			lines    string
		)
		if err := rows.Scan(&m.File, &m.LineNo, &keywords, &lines); err != nil {
			return nil, fmt.Errorf("error scanning match: %w", err)
		}
		if err := json.Unmarshal([]byte(keywords), &m.Keywords); err != nil {
			return nil, fmt.Errorf("error decoding match keywords: %w", err)
		}
		if err := json.Unmarshal([]byte(lines), &m.Lines); err != nil {
			return nil, fmt.Errorf("error decoding match lines: %w", err)
		}
		matches = append(matches, m)
	}

	return matches, rows.Err()
}

// ListRecentSearches returns history rows ordered newest first.
func (c *Client) ListRecentSearches(ctx context.Context, limit int) ([]models.SearchSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := c.DB.QueryContext(ctx, `
		SELECT id, created_at, directory, keywords, total_files, matched_count, completed, error
		FROM searches ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing searches: %w", err)
	}
	defer logging.SafeCloseWithLogging(rows, c.logger, "list_recent_searches")

	var summaries []models.SearchSummary
	for rows.Next() {
		var (
			s         models.SearchSummary
			createdAt int64
			keywords  string
		)
		if err := rows.Scan(&s.SearchID, &createdAt, &s.Directory, &keywords, &s.TotalFiles, &s.MatchedCount, &s.Completed, &s.Error); err != nil {
			return nil, fmt.Errorf("error scanning search row: %w", err)
		}
		s.CreateTime = time.UnixMilli(createdAt)
		if err := json.Unmarshal([]byte(keywords), &s.Keywords); err != nil {
			return nil, fmt.Errorf("error decoding keywords: %w", err)
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// DeleteSearchesBefore removes stored searches created before the cutoff
// and returns the number of searches deleted.
func (c *Client) DeleteSearchesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := c.DB.ExecContext(ctx, `DELETE FROM searches WHERE created_at < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("error deleting expired searches: %w", err)
	}

	return res.RowsAffected()
}
