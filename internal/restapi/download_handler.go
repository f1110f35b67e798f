package restapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"fastmatcher.dev/internal/search"
	"fastmatcher.dev/internal/utils"
)

// downloadJSONHandler serves a completed search's full result document as a
// file attachment.
func (api *RestAPI) downloadJSONHandler(w http.ResponseWriter, r *http.Request) {
	searchID := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateSearchID(searchID); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"id": {err.Error()},
		})
		return
	}

	result, err := api.SearchManager.Results(searchID)
	switch {
	case errors.Is(err, search.ErrSearchNotFound):
		api.sendNotFound(w, r)
		return
	case errors.Is(err, search.ErrSearchRunning):
		api.badRequestResponse(w, r, "search has not completed")
		return
	case err != nil:
		api.serverErrorResponse(w, r, err)
		return
	}

	filename := fmt.Sprintf("search_result_%s.json", searchID)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		api.Logger.Error("failed to encode download", "error", err, "search_id", searchID)
	}
}
