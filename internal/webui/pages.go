package webui

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"fastmatcher.dev/internal/search"
	"fastmatcher.dev/internal/utils"
)

//go:embed index.html results.html debug_index.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "index.html", "results.html"))

// indexHandler serves the search form page.
func (webUI *WebUI) indexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, "index.html", nil); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// resultsPageHandler serves the results page for a finished search. A
// search that is still running gets the index page back in polling mode.
func (webUI *WebUI) resultsPageHandler(w http.ResponseWriter, r *http.Request) {
	searchID := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateSearchID(searchID); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := webUI.SearchManager.Results(searchID)
	if errors.Is(err, search.ErrSearchNotFound) {
		http.Error(w, "search result not found or expired", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if errors.Is(err, search.ErrSearchRunning) {
		data := map[string]interface{}{
			"SearchID":  searchID,
			"Searching": true,
		}
		if err := pageTemplates.ExecuteTemplate(w, "index.html", data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := pageTemplates.ExecuteTemplate(w, "results.html", result); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
