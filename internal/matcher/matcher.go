package matcher

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"

	"fastmatcher.dev/internal/models"
)

// Binary detection only looks at the head of the file.
const binarySniffLen = 8192

// Options control how a Matcher scans text.
type Options struct {
	// IgnoreCase enables ASCII case-insensitive matching.
	IgnoreCase bool
	// Context is the number of lines captured either side of a matching
	// line in file mode. Zero captures the matching line only.
	Context int
}

// Matcher matches a fixed set of keywords against text using an
// Aho-Corasick automaton. A Matcher is immutable after construction and
// safe for concurrent use.
type Matcher struct {
	ac       ahocorasick.AhoCorasick
	patterns []string
	opts     Options
}

// New compiles the given patterns into a Matcher. Patterns are trimmed and
// blank entries dropped; an effectively empty pattern set is an error.
func New(patterns []string, opts Options) (*Matcher, error) {
	trimmed := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p != "" {
			trimmed = append(trimmed, p)
		}
	}
	if len(trimmed) == 0 {
		return nil, errors.New("matcher: pattern set is empty")
	}

	if opts.Context < 0 || opts.Context > models.MaxContextLines {
		return nil, fmt.Errorf("matcher: context must be between 0 and %d", models.MaxContextLines)
	}

	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: opts.IgnoreCase,
		MatchKind:            ahocorasick.StandardMatch,
		DFA:                  true,
	})
	ac := builder.Build(trimmed)

	return &Matcher{
		ac:       ac,
		patterns: trimmed,
		opts:     opts,
	}, nil
}

// Patterns returns the compiled pattern set.
func (m *Matcher) Patterns() []string {
	return m.patterns
}

// FindKeywords is the fast mode: it returns the keyword for every match in
// the text, in match order, with no line accounting.
func (m *Matcher) FindKeywords(text string) []string {
	var out []string
	for _, hit := range m.ac.FindAll(text) {
		out = append(out, m.patterns[hit.Pattern()])
	}
	return out
}

// SearchText is the line mode: it scans the text line by line and returns
// one Match per keyword hit, with 1-based line numbers.
func (m *Matcher) SearchText(text string) []models.Match {
	var results []models.Match

	for i, line := range splitLines(text) {
		for _, hit := range m.ac.FindAll(line) {
			results = append(results, models.Match{
				Keyword:  m.patterns[hit.Pattern()],
				LineNo:   i + 1,
				LineText: line,
			})
		}
	}

	return results
}

// SearchFile scans a file in context mode. Binary files yield no matches.
func (m *Matcher) SearchFile(path string) ([]models.FileMatch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return m.SearchReader(path, f)
}

// SearchReader scans the reader's content in context mode: one FileMatch
// per matching line, with keywords deduplicated per line and Lines holding
// the matching line plus up to Context lines either side.
func (m *Matcher) SearchReader(path string, r io.Reader) ([]models.FileMatch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if isBinary(data) {
		return nil, nil
	}

	lines := splitLines(string(data))
	var out []models.FileMatch

	for i, line := range lines {
		hits := m.ac.FindAll(line)
		if len(hits) == 0 {
			continue
		}

		seen := make(map[int]bool, len(hits))
		keywords := make([]string, 0, len(hits))
		for _, hit := range hits {
			if seen[hit.Pattern()] {
				continue
			}
			seen[hit.Pattern()] = true
			keywords = append(keywords, m.patterns[hit.Pattern()])
		}

		start := i - m.opts.Context
		if start < 0 {
			start = 0
		}
		end := i + m.opts.Context + 1
		if end > len(lines) {
			end = len(lines)
		}

		out = append(out, models.FileMatch{
			File:     path,
			LineNo:   i + 1,
			Keywords: keywords,
			Lines:    append([]string(nil), lines[start:end]...),
		})
	}

	return out, nil
}

// splitLines splits text the way the matcher counts lines: a trailing
// newline does not produce a final empty line, and CR line endings are
// stripped.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}

func isBinary(data []byte) bool {
	sniff := data
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	return bytes.IndexByte(sniff, 0) >= 0
}
