package restapi

import (
	"errors"
	"net/http"

	"fastmatcher.dev/internal/models"
	"fastmatcher.dev/internal/search"
	"fastmatcher.dev/internal/utils"
)

func (api *RestAPI) cancelSearchHandler(w http.ResponseWriter, r *http.Request) {
	searchID := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateSearchID(searchID); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"id": {err.Error()},
		})
		return
	}

	err := api.SearchManager.Cancel(searchID)
	switch {
	case errors.Is(err, search.ErrSearchNotFound):
		api.sendNotFound(w, r)
		return
	case errors.Is(err, search.ErrSearchFinished):
		api.badRequestResponse(w, r, "search already finished")
		return
	case err != nil:
		api.serverErrorResponse(w, r, err)
		return
	}

	entry := map[string]string{
		"searchId": searchID,
		"status":   "cancelled",
	}
	api.sendResponse(w, r, models.NewEntryResponse(entry))
}
