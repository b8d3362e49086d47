package driven

import (
	"context"

	"github.com/archivelabs/ragdex/internal/core/domain"
)

// Reader converts raw document bytes of a specific format into a
// Document with text content. Each reader handles one or more format
// keys (file extensions without the dot).
type Reader interface {
	// Formats returns the format keys this reader handles.
	Formats() []string

	// Read converts raw bytes into a document. The Content field is
	// the full text; chunking is handled by the post-processor
	// pipeline.
	Read(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error)
}

// ReaderRegistry dispatches raw documents to the reader registered
// for their format.
type ReaderRegistry interface {
	// Read converts a raw document using the matching reader.
	// Returns domain.ErrUnsupportedFormat for unknown formats.
	Read(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error)

	// ReadFile loads the file at path and converts it.
	// Returns domain.ErrMissingFile if the file cannot be read.
	ReadFile(ctx context.Context, path string) (*domain.Document, error)

	// Register adds a reader to the registry.
	Register(reader Reader)

	// SupportedFormats returns all registered format keys.
	SupportedFormats() []string
}
