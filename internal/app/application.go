package app

import (
	"log/slog"

	"fastmatcher.dev/internal/appconf"
	"fastmatcher.dev/internal/search"
	"fastmatcher.dev/searchdb"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config        Config
	Logger        *slog.Logger
	SearchManager *search.Manager
	SearchDB      *searchdb.Client
}

// Config holds all the configuration settings for our Application. We read
// these in from command-line flags when the Application starts.
type Config struct {
	Port      int
	Env       appconf.Environment
	ApiKeys   []string
	RateLimit int
}
