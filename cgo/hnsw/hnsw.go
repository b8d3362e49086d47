//go:build cgo

package hnsw

/*
#cgo CXXFLAGS: -std=c++17 -O3 -I${SRCDIR}/../../clib/build/_deps/hnswlib-src
#cgo LDFLAGS: -lstdc++

#include "hnsw_wrapper.h"
#include <stdlib.h>
*/
import "C"

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"unsafe"

	"github.com/archivelabs/ragdex/internal/core/domain"
	"github.com/archivelabs/ragdex/internal/core/ports/driven"
)

// Ensure the interfaces are implemented.
var (
	_ driven.VectorIndex        = (*Index)(nil)
	_ driven.VectorIndexFactory = (*Factory)(nil)
)

// Default configuration values
const (
	DefaultMaxElements = 100000

	// IndexFileName is the artifact file within an index directory.
	IndexFileName = "vectors.hnsw"
)

// Factory creates and opens HNSW indexes persisted one per directory.
type Factory struct{}

// NewFactory returns a factory for HNSW-backed vector indexes.
func NewFactory() *Factory {
	return &Factory{}
}

// Create makes a fresh index persisted under dir. Any previous
// artifact in dir is replaced, which keeps per-document reindexing
// idempotent.
func (f *Factory) Create(dir string, dimensions int) (driven.VectorIndex, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, IndexFileName)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return newIndex(path, dimensions, false)
}

// Open loads an existing index from dir.
func (f *Factory) Open(dir string, dimensions int) (driven.VectorIndex, error) {
	return newIndex(filepath.Join(dir, IndexFileName), dimensions, true)
}

// Index provides vector similarity search using HNSWlib.
type Index struct {
	mu        sync.RWMutex
	idx       *C.HnswIndex
	path      string
	dimension int
}

func newIndex(path string, dimension int, mustExist bool) (*Index, error) {
	if path == "" {
		return nil, errors.New("hnsw: path cannot be empty")
	}
	if dimension <= 0 {
		return nil, errors.New("hnsw: dimension must be positive")
	}

	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	// Try to open an existing artifact first
	idx := C.hnsw_open(cpath, C.int(dimension))
	if idx == nil {
		if mustExist {
			return nil, domain.ErrNotFound
		}
		idx = C.hnsw_create(cpath, C.int(dimension), C.int(DefaultMaxElements), C.HnswPrecision(0))
		if idx == nil {
			return nil, errors.New("hnsw: failed to create index")
		}
	}

	return &Index{
		idx:       idx,
		path:      path,
		dimension: dimension,
	}, nil
}

// Insert adds a vector for the given chunk ID.
func (idx *Index) Insert(_ context.Context, chunkID string, embedding []float32) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.idx == nil {
		return domain.ErrIndexClosed
	}

	if len(embedding) != idx.dimension {
		return errors.New("hnsw: embedding dimension mismatch")
	}

	cChunkID := C.CString(chunkID)
	defer C.free(unsafe.Pointer(cChunkID))

	result := C.hnsw_add(
		idx.idx,
		cChunkID,
		(*C.float)(unsafe.Pointer(&embedding[0])),
		C.int(idx.dimension),
	)

	if result != 0 {
		return errors.New("hnsw: failed to add vector")
	}

	return nil
}

// Search finds the k nearest neighbours to the query vector.
func (idx *Index) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.idx == nil {
		return nil, domain.ErrIndexClosed
	}

	if len(query) != idx.dimension {
		return nil, errors.New("hnsw: query dimension mismatch")
	}

	if k <= 0 {
		return nil, nil
	}

	var results *C.HnswSearchResult
	count := C.hnsw_search(
		idx.idx,
		(*C.float)(unsafe.Pointer(&query[0])),
		C.int(idx.dimension),
		C.int(k),
		&results,
	)

	if count < 0 {
		return nil, errors.New("hnsw: search failed")
	}

	if count == 0 || results == nil {
		return nil, nil
	}

	defer C.hnsw_free_results(results, count)

	// Convert C results to Go slice
	hits := make([]driven.VectorHit, int(count))
	cResults := unsafe.Slice(results, int(count))

	for i := 0; i < int(count); i++ {
		hits[i] = driven.VectorHit{
			ChunkID:    C.GoString(cResults[i].chunk_id),
			Similarity: float64(cResults[i].similarity),
		}
	}

	return hits, nil
}

// Save persists the index to its artifact file.
func (idx *Index) Save(_ context.Context) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.idx == nil {
		return domain.ErrIndexClosed
	}

	if C.hnsw_save(idx.idx) != 0 {
		return domain.ErrPersistFailed
	}
	return nil
}

// Close releases resources without saving.
func (idx *Index) Close() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.idx != nil {
		C.hnsw_close(idx.idx)
		idx.idx = nil
	}

	return nil
}
