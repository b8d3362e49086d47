// Package sourcemeta stamps chunks with their source document fields.
package sourcemeta

import (
	"context"

	"github.com/archivelabs/ragdex/internal/core/domain"
)

// Processor copies source-level fields (path, name, title and any
// reader-extracted metadata) onto every chunk, so a chunk remains
// attributable after it leaves its document's index.
// It implements the PostProcessor interface and runs after chunking.
type Processor struct{}

// New creates a new source metadata processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "source_meta"
}

// Process stamps source fields onto each chunk's metadata.
// Chunk-level keys win over document-level ones.
func (p *Processor) Process(_ context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	if doc == nil {
		return chunks, nil
	}

	for i := range chunks {
		if chunks[i].Metadata == nil {
			chunks[i].Metadata = make(map[string]any)
		}
		for k, v := range doc.Metadata {
			if _, ok := chunks[i].Metadata[k]; !ok {
				chunks[i].Metadata[k] = v
			}
		}
		if doc.Path != "" {
			chunks[i].Metadata["source_path"] = doc.Path
		}
		if doc.Title != "" {
			chunks[i].Metadata["title"] = doc.Title
		}
	}

	return chunks, nil
}
