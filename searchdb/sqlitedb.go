package searchdb

import (
	"database/sql"
	"fmt"
	"log"

	"fastmatcher.dev/internal/appconf"
)

// InitDB creates a new SQLite database with the search history tables
func InitDB(config Config) (*sql.DB, error) {
	if config.Env == appconf.Test && config.DBPath != ":memory:" {
		log.Fatal("DB is being created in a file.", config.DBPath)
	}

	db, err := sql.Open("sqlite", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Enable foreign keys
	_, err = db.Exec("PRAGMA foreign_keys = ON;")
	if err != nil {
		return nil, fmt.Errorf("error enabling foreign keys: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}

	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS searches (
			id TEXT PRIMARY KEY,
			created_at INTEGER NOT NULL,
			directory TEXT NOT NULL,
			keywords TEXT NOT NULL,
			context_lines INTEGER NOT NULL,
			batch_size INTEGER NOT NULL,
			total_files INTEGER NOT NULL,
			matched_count INTEGER NOT NULL,
			completed INTEGER NOT NULL,
			error TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			search_id TEXT NOT NULL REFERENCES searches(id) ON DELETE CASCADE,
			file TEXT NOT NULL,
			line_no INTEGER NOT NULL,
			keywords TEXT NOT NULL,
			lines TEXT NOT NULL
		);
	`)
	if err != nil {
		tx.Rollback() // nolint:errcheck
		return nil, fmt.Errorf("error creating tables: %w", err)
	}

	// Create indexes for better performance
	_, err = tx.Exec(`
		CREATE INDEX IF NOT EXISTS idx_matches_search_id ON matches(search_id);
		CREATE INDEX IF NOT EXISTS idx_searches_created_at ON searches(created_at);
	`)
	if err != nil {
		tx.Rollback() // nolint:errcheck
		return nil, fmt.Errorf("error creating indexes: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing transaction: %w", err)
	}

	return db, nil
}
