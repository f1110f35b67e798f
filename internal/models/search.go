package models

import "time"

// SearchRequest carries the parameters for starting a directory search.
type SearchRequest struct {
	Directory string   `json:"directory"`
	Keywords  []string `json:"keywords"`
	Context   int      `json:"context"`
	BatchSize int      `json:"batchSize"`
}

// Defaults and bounds for search parameters.
const (
	DefaultContextLines = 1
	MaxContextLines     = 10
	MinBatchSize        = 100
	MaxBatchSize        = 10000
	DefaultBatchSize    = 2000
)

// SearchStatus is the progress snapshot of a running or finished search.
type SearchStatus struct {
	SearchID   string  `json:"searchId"`
	Progress   float64 `json:"progress"`
	Processed  int     `json:"processed"`
	Total      int     `json:"total"`
	MatchCount int     `json:"count"`
	Completed  bool    `json:"completed"`
	Error      string  `json:"error,omitempty"`
}

// SearchResult is the full result document for a completed search. It is
// also what the download endpoint serves as an attachment.
type SearchResult struct {
	SearchID     string        `json:"searchId"`
	CreateTime   time.Time     `json:"createTime"`
	Params       SearchRequest `json:"searchParams"`
	TotalFiles   int           `json:"totalFiles"`
	MatchedCount int           `json:"matchedCount"`
	Matches      []FileMatch   `json:"results"`
	Completed    bool          `json:"completed"`
	Error        string        `json:"error,omitempty"`
}

// SearchSummary is a history row for the recent-searches listing.
type SearchSummary struct {
	SearchID     string    `json:"searchId"`
	CreateTime   time.Time `json:"createTime"`
	Directory    string    `json:"directory"`
	Keywords     []string  `json:"keywords"`
	TotalFiles   int       `json:"totalFiles"`
	MatchedCount int       `json:"matchedCount"`
	Completed    bool      `json:"completed"`
	Error        string    `json:"error,omitempty"`
}
