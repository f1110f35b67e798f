package restapi

import (
	"net/http"
	"time"

	"fastmatcher.dev/internal/models"
)

func (api *RestAPI) currentTimeHandler(w http.ResponseWriter, r *http.Request) {
	currentTime := models.NewCurrentTimeData(time.Now())
	api.sendResponse(w, r, models.NewEntryResponse(currentTime))
}
