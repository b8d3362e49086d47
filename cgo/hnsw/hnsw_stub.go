//go:build !cgo

package hnsw

import (
	"context"

	"github.com/archivelabs/ragdex/internal/core/domain"
	"github.com/archivelabs/ragdex/internal/core/ports/driven"
)

// Ensure the interfaces are implemented.
var (
	_ driven.VectorIndex        = (*Index)(nil)
	_ driven.VectorIndexFactory = (*Factory)(nil)
)

// Factory creates and opens HNSW indexes.
// This is a stub for builds without CGO.
type Factory struct{}

// NewFactory returns a factory for HNSW-backed vector indexes.
// This is a stub for builds without CGO.
func NewFactory() *Factory {
	return &Factory{}
}

// Create makes a fresh index persisted under dir.
func (f *Factory) Create(dir string, dimensions int) (driven.VectorIndex, error) {
	return &Index{dir: dir, dimension: dimensions}, nil
}

// Open loads an existing index from dir.
func (f *Factory) Open(dir string, dimensions int) (driven.VectorIndex, error) {
	return &Index{dir: dir, dimension: dimensions}, nil
}

// Index provides vector similarity search using HNSWlib.
// This is a stub for builds without CGO.
type Index struct {
	dir       string
	dimension int
}

// Insert adds a vector for the given chunk ID.
func (idx *Index) Insert(_ context.Context, _ string, _ []float32) error {
	return domain.ErrNotImplemented
}

// Search finds the k nearest neighbours to the query vector.
func (idx *Index) Search(_ context.Context, _ []float32, _ int) ([]driven.VectorHit, error) {
	return nil, domain.ErrNotImplemented
}

// Save persists the index to its artifact file.
func (idx *Index) Save(_ context.Context) error {
	return domain.ErrNotImplemented
}

// Close releases resources.
func (idx *Index) Close() error {
	return nil
}
