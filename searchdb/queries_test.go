package searchdb

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fastmatcher.dev/internal/appconf"
	"fastmatcher.dev/internal/models"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	client, err := NewClient(NewConfig(":memory:", appconf.Test, false), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func sampleResult(id string, createdAt time.Time) models.SearchResult {
	return models.SearchResult{
		SearchID:   id,
		CreateTime: createdAt,
		Params: models.SearchRequest{
			Directory: "/var/log",
			Keywords:  []string{"ERROR", "FATAL"},
			Context:   1,
			BatchSize: 2000,
		},
		TotalFiles:   12,
		MatchedCount: 2,
		Matches: []models.FileMatch{
			{
				File:     "/var/log/app.log",
				LineNo:   3,
				Keywords: []string{"ERROR"},
				Lines:    []string{"before", "ERROR here", "after"},
			},
			{
				File:     "/var/log/worker.log",
				LineNo:   7,
				Keywords: []string{"ERROR", "FATAL"},
				Lines:    []string{"FATAL ERROR"},
			},
		},
		Completed: true,
	}
}

func TestSaveAndGetSearch(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	created := time.Now().Add(-time.Minute)
	want := sampleResult("search-1", created)
	require.NoError(t, client.SaveSearch(ctx, want))

	got, err := client.GetSearch(ctx, "search-1")
	require.NoError(t, err)

	assert.Equal(t, want.SearchID, got.SearchID)
	assert.Equal(t, created.UnixMilli(), got.CreateTime.UnixMilli())
	assert.Equal(t, want.Params, got.Params)
	assert.Equal(t, want.TotalFiles, got.TotalFiles)
	assert.Equal(t, want.MatchedCount, got.MatchedCount)
	assert.Equal(t, want.Matches, got.Matches)
	assert.True(t, got.Completed)
	assert.Empty(t, got.Error)
}

func TestGetSearchNotFound(t *testing.T) {
	client := newTestClient(t)

	_, err := client.GetSearch(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSearchNotFound)
}

func TestSaveSearchReplacesExistingRow(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	first := sampleResult("search-1", time.Now())
	require.NoError(t, client.SaveSearch(ctx, first))

	second := first
	second.Matches = first.Matches[:1]
	second.MatchedCount = 1
	require.NoError(t, client.SaveSearch(ctx, second))

	got, err := client.GetSearch(ctx, "search-1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.MatchedCount)
	assert.Len(t, got.Matches, 1)
}

func TestListRecentSearches(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, client.SaveSearch(ctx, sampleResult("old", now.Add(-2*time.Hour))))
	require.NoError(t, client.SaveSearch(ctx, sampleResult("mid", now.Add(-time.Hour))))
	require.NoError(t, client.SaveSearch(ctx, sampleResult("new", now)))

	summaries, err := client.ListRecentSearches(ctx, 2)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "new", summaries[0].SearchID)
	assert.Equal(t, "mid", summaries[1].SearchID)
	assert.Equal(t, []string{"ERROR", "FATAL"}, summaries[0].Keywords)
	assert.Equal(t, "/var/log", summaries[0].Directory)
}

func TestDeleteSearchesBefore(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, client.SaveSearch(ctx, sampleResult("old", now.Add(-2*time.Hour))))
	require.NoError(t, client.SaveSearch(ctx, sampleResult("new", now)))

	deleted, err := client.DeleteSearchesBefore(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	_, err = client.GetSearch(ctx, "old")
	assert.ErrorIs(t, err, ErrSearchNotFound)

	// Match rows cascade with the parent search.
	var count int
	require.NoError(t, client.DB.QueryRow(`SELECT COUNT(*) FROM matches WHERE search_id = 'old'`).Scan(&count))
	assert.Zero(t, count)

	_, err = client.GetSearch(ctx, "new")
	assert.NoError(t, err)
}
