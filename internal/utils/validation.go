package utils

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"fastmatcher.dev/internal/models"
)

// Compiled regular expressions for validation
var (
	// Search IDs are UUIDs
	validSearchIDPattern = regexp.MustCompile(`^[a-fA-F0-9]{8}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{12}$`)

	// Detect HTML/script tags
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

// ValidateSearchID validates that a search ID is a well-formed UUID
func ValidateSearchID(id string) error {
	if id == "" {
		return errors.New("search id cannot be empty")
	}

	if !validSearchIDPattern.MatchString(id) {
		return errors.New("search id is not a valid UUID")
	}

	return nil
}

// ValidateDirectory validates that a directory exists and is readable
func ValidateDirectory(dir string) error {
	if dir == "" {
		return errors.New("directory cannot be empty")
	}

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("directory does not exist: %s", dir)
	}

	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}

	f, err := os.Open(dir)
	if err != nil {
		return fmt.Errorf("directory is not readable: %s", dir)
	}
	_ = f.Close()

	return nil
}

// CleanKeywords trims keywords and drops empty entries
func CleanKeywords(keywords []string) []string {
	cleaned := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw != "" {
			cleaned = append(cleaned, kw)
		}
	}
	return cleaned
}

// ValidateKeywords validates the keyword list after cleaning
func ValidateKeywords(keywords []string) error {
	if len(keywords) == 0 {
		return errors.New("keywords cannot be empty")
	}

	if len(keywords) > 1000 {
		return errors.New("too many keywords (max 1000)")
	}

	for _, kw := range keywords {
		if len(kw) > 200 {
			return errors.New("keyword too long (max 200 characters)")
		}
	}

	return nil
}

// ValidateContext validates the context line count
func ValidateContext(context int) error {
	if context < 0 || context > models.MaxContextLines {
		return fmt.Errorf("context must be between 0 and %d", models.MaxContextLines)
	}
	return nil
}

// ValidateBatchSize validates the per-batch file count
func ValidateBatchSize(batchSize int) error {
	if batchSize < models.MinBatchSize || batchSize > models.MaxBatchSize {
		return fmt.Errorf("batch size must be between %d and %d", models.MinBatchSize, models.MaxBatchSize)
	}
	return nil
}

// SanitizeInput removes HTML tags and other potentially dangerous content
func SanitizeInput(input string) string {
	sanitized := htmlTagPattern.ReplaceAllString(input, "")
	sanitized = strings.TrimSpace(sanitized)

	return sanitized
}

// ValidateSearchRequest validates a complete search request, applying
// defaults for unset optional fields. The returned map is empty when the
// request is valid.
func ValidateSearchRequest(req *models.SearchRequest) map[string][]string {
	fieldErrors := make(map[string][]string)

	if err := ValidateDirectory(req.Directory); err != nil {
		fieldErrors["directory"] = append(fieldErrors["directory"], err.Error())
	}

	req.Keywords = CleanKeywords(req.Keywords)
	if err := ValidateKeywords(req.Keywords); err != nil {
		fieldErrors["keywords"] = append(fieldErrors["keywords"], err.Error())
	}

	if err := ValidateContext(req.Context); err != nil {
		fieldErrors["context"] = append(fieldErrors["context"], err.Error())
	}

	if req.BatchSize == 0 {
		req.BatchSize = models.DefaultBatchSize
	}
	if err := ValidateBatchSize(req.BatchSize); err != nil {
		fieldErrors["batchSize"] = append(fieldErrors["batchSize"], err.Error())
	}

	return fieldErrors
}
