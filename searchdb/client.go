package searchdb

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Client is the main entry point for the search history store
type Client struct {
	config Config
	logger *slog.Logger
	DB     *sql.DB
}

// NewClient creates a new Client with the provided configuration
func NewClient(config Config, logger *slog.Logger) (*Client, error) {
	db, err := InitDB(config)
	if err != nil {
		return nil, fmt.Errorf("error creating search database: %w", err)
	}

	if config.verbose {
		logger.Info("created search history tables", slog.String("path", config.DBPath))
	}

	client := &Client{
		config: config,
		logger: logger,
		DB:     db,
	}
	return client, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}
