package restapi

import (
	"errors"
	"net/http"

	"fastmatcher.dev/internal/models"
	"fastmatcher.dev/internal/search"
	"fastmatcher.dev/internal/utils"
)

func (api *RestAPI) searchResultsHandler(w http.ResponseWriter, r *http.Request) {
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

	api.sendResponse(w, r, models.NewEntryResponse(result))
}
