package restapi

import (
	"encoding/json"
	"net/http"

	"fastmatcher.dev/internal/models"
	"fastmatcher.dev/internal/utils"
)

func (api *RestAPI) startSearchHandler(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		api.badRequestResponse(w, r, "invalid request body")
		return
	}

	if fieldErrors := utils.ValidateSearchRequest(&req); len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	searchID, err := api.SearchManager.Start(req)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entry := map[string]string{
		"searchId": searchID,
		"status":   "started",
	}
	api.sendResponse(w, r, models.NewEntryResponse(entry))
}
