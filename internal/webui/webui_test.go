package webui

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fastmatcher.dev/internal/app"
	"fastmatcher.dev/internal/models"
	"fastmatcher.dev/internal/search"
)

func createTestWebUI(t *testing.T) (*WebUI, *search.Manager, string) {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	manager := search.NewManager(search.Config{Workers: 2}, nil, logger)
	t.Cleanup(manager.Shutdown)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.log"),
		[]byte("INFO started\nERROR disk full"), 0o644))

	webUI := NewWebUI(&app.Application{
		Logger:        logger,
		SearchManager: manager,
	})

	return webUI, manager, dir
}

func serveWebUI(t *testing.T, webUI *WebUI, path string) (*http.Response, string) {
	t.Helper()

	router := httprouter.New()
	webUI.SetRoutes(router)
	server := httptest.NewServer(router)
	defer server.Close()

	resp, err := http.Get(server.URL + path)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func TestIndexPage(t *testing.T) {
	webUI, _, _ := createTestWebUI(t)

	resp, body := serveWebUI(t, webUI, "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, "<form")
}

func TestResultsPage(t *testing.T) {
	webUI, manager, dir := createTestWebUI(t)

	id, err := manager.Start(models.SearchRequest{
		Directory: dir,
		Keywords:  []string{"error"},
		BatchSize: models.DefaultBatchSize,
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		status, err := manager.Status(id)
		return err == nil && status.Completed
	}, 5*time.Second, 10*time.Millisecond)

	resp, body := serveWebUI(t, webUI, "/results/"+id)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "app.log")
}

func TestResultsPageUnknownSearch(t *testing.T) {
	webUI, _, _ := createTestWebUI(t)

	resp, _ := serveWebUI(t, webUI, "/results/00000000-0000-0000-0000-000000000000")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestResultsPageRejectsMalformedID(t *testing.T) {
	webUI, _, _ := createTestWebUI(t)

	resp, _ := serveWebUI(t, webUI, "/results/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDebugPage(t *testing.T) {
	webUI, _, _ := createTestWebUI(t)

	resp, body := serveWebUI(t, webUI, "/debug")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Live Search Jobs")
}
