package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fastmatcher.dev/internal/app"
	"fastmatcher.dev/internal/appconf"
	"fastmatcher.dev/internal/logging"
	"fastmatcher.dev/internal/restapi"
	"fastmatcher.dev/internal/search"
	"fastmatcher.dev/internal/webui"
	"fastmatcher.dev/searchdb"
)

func main() {
	var (
		port        int
		envFlag     string
		apiKeysFlag string
		rateLimit   int
		dbPath      string
		workers     int
		resultTTL   time.Duration
		verbose     bool
	)

	flag.IntVar(&port, "port", 4000, "API server port")
	flag.StringVar(&envFlag, "env", "development", "Environment (development|test|production)")
	flag.StringVar(&apiKeysFlag, "api-keys", "test", "Comma Separated API Keys (test, etc)")
	flag.IntVar(&rateLimit, "rate-limit", 100, "Requests per second per API key (negative disables)")
	flag.StringVar(&dbPath, "db-path", "fastmatcher.db", "Path to the search history SQLite database")
	flag.IntVar(&workers, "workers", 0, "Scan worker count (0 = NumCPU)")
	flag.DurationVar(&resultTTL, "result-ttl", time.Hour, "How long finished searches stay in memory")
	flag.BoolVar(&verbose, "verbose", false, "Verbose logging")
	flag.Parse()

	logger := logging.NewStructuredLogger(os.Stdout, slog.LevelInfo)

	cfg := app.Config{
		Port:      port,
		Env:       appconf.EnvFlagToEnvironment(envFlag),
		RateLimit: rateLimit,
	}
	if apiKeysFlag != "" {
		cfg.ApiKeys = strings.Split(apiKeysFlag, ",")
		for i := range cfg.ApiKeys {
			cfg.ApiKeys[i] = strings.TrimSpace(cfg.ApiKeys[i])
		}
	}

	store, err := searchdb.NewClient(searchdb.NewConfig(dbPath, cfg.Env, verbose), logger)
	if err != nil {
		logger.Error("failed to open search database", "error", err)
		os.Exit(1)
	}
	defer logging.SafeCloseWithLogging(store, logger, "search_database")

	manager := search.NewManager(search.Config{
		Workers:   workers,
		ResultTTL: resultTTL,
	}, store, logger)
	defer manager.Shutdown()

	application := &app.Application{
		Config:        cfg,
		Logger:        logger,
		SearchManager: manager,
		SearchDB:      store,
	}

	api := restapi.NewRestAPI(application)
	router := restapi.NewRouter(api)
	webui.NewWebUI(application).SetRoutes(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      api.Middleware(router),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env.String())
	err = srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error(err.Error())
		os.Exit(1)
	}

	logger.Info("server stopped")
}
