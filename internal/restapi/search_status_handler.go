package restapi

import (
	"errors"
	"net/http"

	"fastmatcher.dev/internal/models"
	"fastmatcher.dev/internal/search"
	"fastmatcher.dev/internal/utils"
)

func (api *RestAPI) searchStatusHandler(w http.ResponseWriter, r *http.Request) {
	searchID := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateSearchID(searchID); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"id": {err.Error()},
		})
		return
	}

	status, err := api.SearchManager.Status(searchID)
	if errors.Is(err, search.ErrSearchNotFound) {
		api.sendNotFound(w, r)
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(status))
}
