package webui

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"fastmatcher.dev/internal/app"
)

// WebUI serves the embedded search pages and the debug dump.
type WebUI struct {
	*app.Application
}

func NewWebUI(app *app.Application) *WebUI {
	return &WebUI{Application: app}
}

func (webUI *WebUI) SetRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/", webUI.indexHandler)
	router.HandlerFunc(http.MethodGet, "/results/:id", webUI.resultsPageHandler)
	router.HandlerFunc(http.MethodGet, "/debug", webUI.debugIndexHandler)
}
