package restapi

import (
	"net/http"
	"time"

	"fastmatcher.dev/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter func(http.Handler) http.Handler
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second),
	}
}

// Middleware wraps a handler in the full chain: security headers, request
// logging, gzip compression, and per-key rate limiting.
func (api *RestAPI) Middleware(handler http.Handler) http.Handler {
	if api.rateLimiter != nil {
		handler = api.rateLimiter(handler)
	}
	handler = CompressionMiddleware(handler)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	handler = securityHeaders(handler)

	return handler
}

// Handler builds the routed API wrapped in the full middleware chain.
func (api *RestAPI) Handler() http.Handler {
	return api.Middleware(NewRouter(api))
}
