package restapi

import (
	"net/http"
	"strconv"

	"fastmatcher.dev/internal/models"
)

// recentSearchesHandler lists stored search history, newest first.
func (api *RestAPI) recentSearchesHandler(w http.ResponseWriter, r *http.Request) {
	if api.SearchDB == nil {
		api.sendResponse(w, r, models.NewListResponse([]models.SearchSummary{}, false))
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 500 {
			api.validationErrorResponse(w, r, map[string][]string{
				"limit": {"limit must be an integer between 1 and 500"},
			})
			return
		}
		limit = parsed
	}

	summaries, err := api.SearchDB.ListRecentSearches(r.Context(), limit)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	if summaries == nil {
		summaries = []models.SearchSummary{}
	}

	api.sendResponse(w, r, models.NewListResponse(summaries, false))
}
