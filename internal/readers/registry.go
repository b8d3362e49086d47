package readers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/archivelabs/ragdex/internal/core/domain"
	"github.com/archivelabs/ragdex/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ReaderRegistry = (*Registry)(nil)

// Registry dispatches raw documents to the reader registered for
// their format key.
type Registry struct {
	mu      sync.RWMutex
	bydoc   map[string]driven.Reader
	formats []string
}

// NewRegistry creates an empty reader registry.
func NewRegistry() *Registry {
	return &Registry{
		bydoc: make(map[string]driven.Reader),
	}
}

// Register adds a reader for all of its format keys.
// Later registrations win for duplicate keys.
func (r *Registry) Register(reader driven.Reader) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, format := range reader.Formats() {
		format = strings.ToLower(format)
		if _, exists := r.bydoc[format]; !exists {
			r.formats = append(r.formats, format)
		}
		r.bydoc[format] = reader
	}
	sort.Strings(r.formats)
}

// Read converts a raw document using the reader registered for its
// format. Returns domain.ErrUnsupportedFormat for unknown formats.
func (r *Registry) Read(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	format := strings.ToLower(raw.Format)
	if format == "" && raw.Path != "" {
		format = FormatForPath(raw.Path)
	}

	r.mu.RLock()
	reader, ok := r.bydoc[format]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}

	return reader.Read(ctx, raw)
}

// ReadFile loads the file at path and converts it with the matching
// reader.
func (r *Registry) ReadFile(ctx context.Context, path string) (*domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingFile, path)
	}

	return r.Read(ctx, &domain.RawDocument{
		Path:   path,
		Format: FormatForPath(path),
		Data:   data,
	})
}

// SupportedFormats returns all registered format keys, sorted.
func (r *Registry) SupportedFormats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.formats))
	copy(out, r.formats)
	return out
}

// FormatForPath derives the format key from a file path's extension.
func FormatForPath(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
