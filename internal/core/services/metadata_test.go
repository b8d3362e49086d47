package services

import (
	"bytes"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/archivelabs/ragdex/internal/core/domain"
	"github.com/archivelabs/ragdex/internal/logger"
)

func TestMetadataCacheCachesByPath(t *testing.T) {
	var calls int
	cache := NewMetadataCache(func(doc *domain.Document) (map[string]any, error) {
		calls++
		return map[string]any{"title": doc.Title}, nil
	})

	doc := &domain.Document{Path: "/docs/a.md", Title: "first"}
	first := cache.Extract(doc)
	assert.Equal(t, "first", first["title"])

	// Same path, different content: the cached value wins. The cache
	// is keyed by path only and not invalidated on content change.
	doc.Title = "second"
	second := cache.Extract(doc)
	assert.Equal(t, "first", second["title"])
	assert.Equal(t, 1, calls)
}

func TestMetadataCacheSkipsPathlessDocuments(t *testing.T) {
	var calls int
	cache := NewMetadataCache(func(doc *domain.Document) (map[string]any, error) {
		calls++
		return map[string]any{}, nil
	})

	doc := &domain.Document{Title: "injected"}
	cache.Extract(doc)
	cache.Extract(doc)

	assert.Equal(t, 2, calls)
	assert.Zero(t, cache.Len())
}

func TestMetadataCacheExtractionFailureFallback(t *testing.T) {
	cache := NewMetadataCache(func(doc *domain.Document) (map[string]any, error) {
		return nil, fmt.Errorf("corrupt header")
	})

	meta := cache.Extract(&domain.Document{Path: "/docs/broken.pdf"})
	assert.Equal(t, "broken.pdf", meta["source_name"])
}

func TestMetadataCacheClassifiesExtractionFailure(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetVerbose(true)
	t.Cleanup(func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	})

	cache := NewMetadataCache(func(doc *domain.Document) (map[string]any, error) {
		return nil, fmt.Errorf("corrupt header")
	})

	cache.Extract(&domain.Document{Path: "/docs/broken.pdf"})

	// The failure is reported under the domain's extraction sentinel.
	assert.Contains(t, buf.String(), domain.ErrExtractionFailed.Error())
	assert.Contains(t, buf.String(), "corrupt header")
}

func TestMetadataCacheClear(t *testing.T) {
	cache := NewMetadataCache(nil)
	cache.Extract(&domain.Document{Path: "/docs/a.md", Title: "a"})
	assert.Equal(t, 1, cache.Len())

	cache.Clear()
	assert.Zero(t, cache.Len())
}

func TestDefaultExtractor(t *testing.T) {
	doc := &domain.Document{
		Path:     "/docs/a.md",
		Title:    "Alpha",
		Metadata: map[string]any{"format": "markdown"},
	}

	meta, err := defaultExtractor(doc)
	assert.NoError(t, err)
	assert.Equal(t, "Alpha", meta["title"])
	assert.Equal(t, "/docs/a.md", meta["source_path"])
	assert.Equal(t, "markdown", meta["format"])
}
