package plaintext

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/archivelabs/ragdex/internal/core/domain"
	"github.com/archivelabs/ragdex/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.Reader = (*Reader)(nil)

// Reader handles plain text documents.
type Reader struct{}

// New creates a new plain text reader.
func New() *Reader {
	return &Reader{}
}

// Formats returns the format keys this reader handles.
func (r *Reader) Formats() []string {
	return []string{"txt", "text", "log", "csv", "rst"}
}

// Read passes text content through unchanged apart from whitespace
// normalisation.
func (r *Reader) Read(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content := strings.TrimSpace(string(raw.Data))

	name := raw.SourceName()
	title := name
	if ext := filepath.Ext(title); ext != "" {
		title = strings.TrimSuffix(title, ext)
	}

	return &domain.Document{
		Path:    raw.Path,
		Title:   title,
		Content: content,
		Metadata: map[string]any{
			"source_name": name,
			"format":      "plaintext",
		},
		ReadAt: time.Now(),
	}, nil
}
