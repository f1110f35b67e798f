package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// NewRouter builds a router with all API routes registered.
func NewRouter(api *RestAPI) *httprouter.Router {
	router := httprouter.New()
	api.SetRoutes(router)
	return router
}

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.Handler(http.MethodPost, "/api/start-search", validateAPIKey(api, api.startSearchHandler))
	router.Handler(http.MethodGet, "/api/search-status/:id", validateAPIKey(api, api.searchStatusHandler))
	router.Handler(http.MethodGet, "/api/search-results/:id", validateAPIKey(api, api.searchResultsHandler))
	router.Handler(http.MethodPost, "/api/cancel-search/:id", validateAPIKey(api, api.cancelSearchHandler))
	router.Handler(http.MethodGet, "/api/download-json/:id", validateAPIKey(api, api.downloadJSONHandler))
	router.Handler(http.MethodGet, "/api/searches.json", validateAPIKey(api, api.recentSearchesHandler))
	router.Handler(http.MethodGet, "/api/current-time.json", validateAPIKey(api, api.currentTimeHandler))
}
