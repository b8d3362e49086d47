package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/archivelabs/ragdex/internal/core/domain"
	"github.com/archivelabs/ragdex/internal/core/ports/driven"
	"github.com/archivelabs/ragdex/internal/logger"
)

// EmbedderFactory constructs the configured embedding service.
// Called at most once per loaded lifetime; Unload releases the result
// and a later call constructs a fresh one.
type EmbedderFactory func(ctx context.Context) (driven.EmbeddingService, error)

// indexHandle pairs an open vector index with the chunk sidecar
// loaded from the same directory, so hits can be resolved to text
// without another disk read.
type indexHandle struct {
	index  driven.VectorIndex
	chunks map[string]domain.Chunk
}

func (h *indexHandle) close() {
	if h != nil && h.index != nil {
		h.index.Close()
	}
}

// LifecycleManager owns the embedding provider's load state and the
// caches shared by indexing and retrieval: the metadata cache, open
// per-document index handles, the unified index handle, and the
// active document set.
//
// Everything is lazy. Construction allocates nothing; the embedder
// loads on first use, index handles open on first search touching
// them, the active set resolves on first retrieval.
type LifecycleManager struct {
	mu       sync.Mutex
	factory  EmbedderFactory
	embedder driven.EmbeddingService
	metadata *MetadataCache
	vectors  driven.VectorIndexFactory
	catalog  driven.DocumentCatalog
	layout   domain.Layout

	dimensions int

	handles   map[string]*indexHandle // keyed by document ID
	unified   *indexHandle
	activeIDs map[string]struct{} // nil until first resolved
}

// NewLifecycleManager creates the manager. dimensions is the vector
// size shared by the embedder and every index.
func NewLifecycleManager(
	factory EmbedderFactory,
	metadata *MetadataCache,
	vectors driven.VectorIndexFactory,
	catalog driven.DocumentCatalog,
	layout domain.Layout,
	dimensions int,
) *LifecycleManager {
	return &LifecycleManager{
		factory:    factory,
		metadata:   metadata,
		vectors:    vectors,
		catalog:    catalog,
		layout:     layout,
		dimensions: dimensions,
		handles:    make(map[string]*indexHandle),
	}
}

// Setup prepares the embedding provider. Idempotent; safe to call
// before every operation that might need embeddings.
func (lm *LifecycleManager) Setup(ctx context.Context) error {
	_, err := lm.Embedder(ctx)
	return err
}

// Embedder returns the shared embedding service, constructing and
// ping-checking it on first use.
func (lm *LifecycleManager) Embedder(ctx context.Context) (driven.EmbeddingService, error) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if lm.embedder != nil {
		return lm.embedder, nil
	}

	embedder, err := lm.factory(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, err)
	}
	if err := embedder.Ping(ctx); err != nil {
		embedder.Close()
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, err)
	}

	logger.Debug("Embedding provider loaded: %s (%d dimensions)", embedder.ModelName(), embedder.Dimensions())
	lm.embedder = embedder
	return embedder, nil
}

// DocumentHandle opens (or returns the cached handle for) one
// per-document index described by a registry entry.
func (lm *LifecycleManager) DocumentHandle(ctx context.Context, entry domain.RegistryEntry) (driven.VectorIndex, map[string]domain.Chunk, error) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if h, ok := lm.handles[entry.DocumentID]; ok {
		return h.index, h.chunks, nil
	}

	h, err := lm.openHandle(entry.IndexDir)
	if err != nil {
		return nil, nil, err
	}
	lm.handles[entry.DocumentID] = h
	return h.index, h.chunks, nil
}

// UnifiedHandle opens (or returns the cached handle for) the unified
// index, creating an empty one on first use.
func (lm *LifecycleManager) UnifiedHandle(ctx context.Context) (driven.VectorIndex, map[string]domain.Chunk, error) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if lm.unified != nil {
		return lm.unified.index, lm.unified.chunks, nil
	}

	dir := lm.layout.UnifiedDir()
	h, err := lm.openHandle(dir)
	if errors.Is(err, domain.ErrNotFound) {
		index, cerr := lm.vectors.Create(dir, lm.dimensions)
		if cerr != nil {
			return nil, nil, cerr
		}
		h = &indexHandle{index: index, chunks: make(map[string]domain.Chunk)}
		err = nil
	}
	if err != nil {
		return nil, nil, err
	}

	lm.unified = h
	return h.index, h.chunks, nil
}

// openHandle loads the index and chunk sidecar from dir.
func (lm *LifecycleManager) openHandle(dir string) (*indexHandle, error) {
	index, err := lm.vectors.Open(dir, lm.dimensions)
	if err != nil {
		return nil, err
	}

	chunks, err := readChunkFile(dir)
	if err != nil {
		index.Close()
		return nil, err
	}

	byID := make(map[string]domain.Chunk, len(chunks))
	for _, c := range chunks {
		byID[c.ID] = c
	}
	return &indexHandle{index: index, chunks: byID}, nil
}

// InvalidateDocument drops the cached handle for one document, so the
// next search reopens the freshly persisted artifact. Called after
// reindexing a document that was already open.
func (lm *LifecycleManager) InvalidateDocument(documentID string) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if h, ok := lm.handles[documentID]; ok {
		h.close()
		delete(lm.handles, documentID)
	}
}

// InvalidateUnified drops the cached unified handle. Called after
// injection persists new unified content.
func (lm *LifecycleManager) InvalidateUnified() {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if lm.unified != nil {
		lm.unified.close()
		lm.unified = nil
	}
}

// ActiveDocumentIDs resolves which document IDs participate in
// retrieval: the IDs of active catalog entries. Resolved once and
// cached until Clear or Reload.
func (lm *LifecycleManager) ActiveDocumentIDs(ctx context.Context) (map[string]struct{}, error) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if lm.activeIDs != nil {
		return lm.activeIDs, nil
	}

	entries, err := lm.catalog.ListCandidates(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("resolve active documents: %w", err)
	}

	ids := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		ids[domain.DocumentID(e.Path)] = struct{}{}
	}
	lm.activeIDs = ids
	return ids, nil
}

// Reload drops all caches without releasing the embedding provider.
func (lm *LifecycleManager) Reload() {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	lm.dropCaches()
	logger.Debug("Lifecycle caches dropped")
}

// Unload drops caches and releases the embedding provider.
func (lm *LifecycleManager) Unload() error {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	lm.dropCaches()

	if lm.embedder == nil {
		return nil
	}
	err := lm.embedder.Close()
	lm.embedder = nil
	if err != nil {
		return fmt.Errorf("release embedding provider: %w", err)
	}
	return nil
}

// Clear resets the active document set so the next retrieval
// re-resolves it from the catalog. Persisted artifacts are untouched.
func (lm *LifecycleManager) Clear() {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	lm.activeIDs = nil
}

// dropCaches closes open handles and empties every cache.
// Caller holds the lock.
func (lm *LifecycleManager) dropCaches() {
	for id, h := range lm.handles {
		h.close()
		delete(lm.handles, id)
	}
	if lm.unified != nil {
		lm.unified.close()
		lm.unified = nil
	}
	lm.activeIDs = nil
	if lm.metadata != nil {
		lm.metadata.Clear()
	}
}
