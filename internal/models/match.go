package models

// Match is a single keyword hit in line mode.
type Match struct {
	Keyword  string `json:"keyword"`
	LineNo   int    `json:"lineNo"`
	LineText string `json:"lineText"`
}

// FileMatch is one matching line of a scanned file, with the keywords that
// hit on that line and the line plus its surrounding context.
type FileMatch struct {
	File     string   `json:"file"`
	LineNo   int      `json:"lineNo"`
	Keywords []string `json:"keywords"`
	Lines    []string `json:"lines"`
}
