package services

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/archivelabs/ragdex/internal/core/domain"
	"github.com/archivelabs/ragdex/internal/logger"
)

// MetadataExtractor derives document-level metadata for chunk
// enrichment. Implementations may inspect format-specific fields.
type MetadataExtractor func(doc *domain.Document) (map[string]any, error)

// MetadataCache memoises extraction results per document path.
// The cache is keyed by path only and is not invalidated when a
// document's content hash changes; re-extraction requires an explicit
// Clear (the lifecycle manager's Reload does this).
type MetadataCache struct {
	mu      sync.Mutex
	extract MetadataExtractor
	byPath  map[string]map[string]any
}

// NewMetadataCache creates a cache around extract. A nil extractor
// uses the default, which reads the reader-populated document fields.
func NewMetadataCache(extract MetadataExtractor) *MetadataCache {
	if extract == nil {
		extract = defaultExtractor
	}
	return &MetadataCache{
		extract: extract,
		byPath:  make(map[string]map[string]any),
	}
}

// Extract returns the metadata for doc, computing and caching it on
// first sight of the path. Extraction failure falls back to
// file-name-only metadata and never aborts indexing.
func (c *MetadataCache) Extract(doc *domain.Document) map[string]any {
	cacheable := doc.Path != ""

	if cacheable {
		c.mu.Lock()
		if meta, ok := c.byPath[doc.Path]; ok {
			c.mu.Unlock()
			return meta
		}
		c.mu.Unlock()
	}

	meta, err := c.extract(doc)
	if err != nil {
		err = fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
		logger.Warn("%v (%s), falling back to file-name metadata", err, doc.Path)
		meta = minimalMetadata(doc)
	}

	if cacheable {
		c.mu.Lock()
		c.byPath[doc.Path] = meta
		c.mu.Unlock()
	}
	return meta
}

// Clear drops all cached entries.
func (c *MetadataCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byPath = make(map[string]map[string]any)
}

// Len returns the number of cached paths.
func (c *MetadataCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.byPath)
}

// defaultExtractor lifts the reader-populated fields into chunk
// metadata.
func defaultExtractor(doc *domain.Document) (map[string]any, error) {
	meta := make(map[string]any, len(doc.Metadata)+2)
	for k, v := range doc.Metadata {
		meta[k] = v
	}
	if doc.Title != "" {
		meta["title"] = doc.Title
	}
	if doc.Path != "" {
		meta["source_path"] = doc.Path
	}
	return meta, nil
}

// minimalMetadata is the extraction-failure fallback: file name only.
func minimalMetadata(doc *domain.Document) map[string]any {
	name := doc.Title
	if doc.Path != "" {
		name = filepath.Base(doc.Path)
	}
	return map[string]any{"source_name": name}
}
