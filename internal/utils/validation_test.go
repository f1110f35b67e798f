package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fastmatcher.dev/internal/models"
)

func TestValidateSearchID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid UUID", "123e4567-e89b-12d3-a456-426614174000", false},
		{"valid uppercase UUID", "123E4567-E89B-12D3-A456-426614174000", false},
		{"empty", "", true},
		{"not a UUID", "not-a-uuid", true},
		{"too short", "123e4567-e89b-12d3-a456", true},
		{"path traversal", "../../../etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSearchID(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDirectory(t *testing.T) {
	t.Run("existing directory", func(t *testing.T) {
		assert.NoError(t, ValidateDirectory(t.TempDir()))
	})

	t.Run("empty path", func(t *testing.T) {
		assert.Error(t, ValidateDirectory(""))
	})

	t.Run("missing directory", func(t *testing.T) {
		assert.Error(t, ValidateDirectory(filepath.Join(t.TempDir(), "missing")))
	})

	t.Run("regular file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file.txt")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
		assert.Error(t, ValidateDirectory(path))
	})
}

func TestCleanKeywords(t *testing.T) {
	cleaned := CleanKeywords([]string{" ERROR ", "", "  ", "FATAL"})
	assert.Equal(t, []string{"ERROR", "FATAL"}, cleaned)
}

func TestValidateKeywords(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateKeywords([]string{"ERROR"}))
	})

	t.Run("empty list", func(t *testing.T) {
		assert.Error(t, ValidateKeywords(nil))
	})

	t.Run("too many keywords", func(t *testing.T) {
		keywords := make([]string, 1001)
		for i := range keywords {
			keywords[i] = "kw"
		}
		assert.Error(t, ValidateKeywords(keywords))
	})

	t.Run("keyword too long", func(t *testing.T) {
		assert.Error(t, ValidateKeywords([]string{strings.Repeat("a", 201)}))
	})
}

func TestValidateContext(t *testing.T) {
	assert.NoError(t, ValidateContext(0))
	assert.NoError(t, ValidateContext(models.MaxContextLines))
	assert.Error(t, ValidateContext(-1))
	assert.Error(t, ValidateContext(models.MaxContextLines+1))
}

func TestValidateBatchSize(t *testing.T) {
	assert.NoError(t, ValidateBatchSize(models.MinBatchSize))
	assert.NoError(t, ValidateBatchSize(models.MaxBatchSize))
	assert.Error(t, ValidateBatchSize(models.MinBatchSize-1))
	assert.Error(t, ValidateBatchSize(models.MaxBatchSize+1))
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "alert(1)", SanitizeInput("<script>alert(1)</script>"))
	assert.Equal(t, "plain text", SanitizeInput("  plain text  "))
}

func TestValidateSearchRequest(t *testing.T) {
	t.Run("valid request applies batch size default", func(t *testing.T) {
		req := models.SearchRequest{
			Directory: t.TempDir(),
			Keywords:  []string{" ERROR ", ""},
			Context:   1,
		}

		fieldErrors := ValidateSearchRequest(&req)
		assert.Empty(t, fieldErrors)
		assert.Equal(t, []string{"ERROR"}, req.Keywords)
		assert.Equal(t, models.DefaultBatchSize, req.BatchSize)
	})

	t.Run("collects errors per field", func(t *testing.T) {
		req := models.SearchRequest{
			Directory: "",
			Keywords:  nil,
			Context:   99,
			BatchSize: 5,
		}

		fieldErrors := ValidateSearchRequest(&req)
		assert.Contains(t, fieldErrors, "directory")
		assert.Contains(t, fieldErrors, "keywords")
		assert.Contains(t, fieldErrors, "context")
		assert.Contains(t, fieldErrors, "batchSize")
	})
}
