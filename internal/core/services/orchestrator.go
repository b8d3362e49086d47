package services

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/archivelabs/ragdex/internal/core/domain"
	"github.com/archivelabs/ragdex/internal/core/ports/driven"
	"github.com/archivelabs/ragdex/internal/core/ports/driving"
	"github.com/archivelabs/ragdex/internal/logger"
)

// Ensure the interface is implemented.
var _ driving.IndexManager = (*IndexOrchestrator)(nil)

// IndexOrchestrator runs bulk indexing over the catalog and merged
// retrieval over the persisted indexes. One bulk run at a time;
// cancellation is cooperative and honoured at document boundaries so
// no document is ever left half-indexed.
type IndexOrchestrator struct {
	scanner   *Scanner
	indexer   *DocumentIndexer
	lifecycle *LifecycleManager
	registry  driven.RegistryStore

	onProgress driving.ProgressFunc
	onComplete driving.CompleteFunc

	running   atomic.Bool
	cancelled atomic.Bool
	state     atomic.Int32
}

// NewIndexOrchestrator wires the orchestrator. Progress and complete
// callbacks may be nil.
func NewIndexOrchestrator(
	scanner *Scanner,
	indexer *DocumentIndexer,
	lifecycle *LifecycleManager,
	registry driven.RegistryStore,
	onProgress driving.ProgressFunc,
	onComplete driving.CompleteFunc,
) *IndexOrchestrator {
	o := &IndexOrchestrator{
		scanner:    scanner,
		indexer:    indexer,
		lifecycle:  lifecycle,
		registry:   registry,
		onProgress: onProgress,
		onComplete: onComplete,
	}
	o.state.Store(int32(domain.BatchIdle))
	return o
}

// ScanForWork returns the catalog entries needing (re)indexing.
func (o *IndexOrchestrator) ScanForWork(ctx context.Context) ([]domain.CatalogEntry, error) {
	return o.scanner.ScanForWork(ctx)
}

// IndexAll runs the bulk indexing loop. Per-document failures are
// counted and logged, never escalated; only a scanning failure
// returns a non-nil error. A second call while a run is active
// returns domain.ErrIndexingInProgress.
func (o *IndexOrchestrator) IndexAll(ctx context.Context) (*domain.BatchResult, error) {
	if !o.running.CompareAndSwap(false, true) {
		return nil, domain.ErrIndexingInProgress
	}
	defer o.running.Store(false)
	o.cancelled.Store(false)

	o.setState(domain.BatchScanning)
	work, err := o.scanner.ScanForWork(ctx)
	if err != nil {
		o.setState(domain.BatchFailed)
		result := domain.BatchResult{
			State:   domain.BatchFailed,
			Message: fmt.Sprintf("scan failed: %v", err),
		}
		o.complete(result)
		return nil, err
	}

	if len(work) == 0 {
		o.setState(domain.BatchCompleted)
		result := domain.BatchResult{
			State:   domain.BatchCompleted,
			Message: "all documents up to date",
		}
		o.complete(result)
		return &result, nil
	}

	o.setState(domain.BatchIndexing)

	var succeeded, failed int
	for i, entry := range work {
		// Cancellation is only honoured here, between documents.
		if o.cancelled.Load() {
			break
		}

		o.progress(domain.IndexingProgress{
			Current:      i + 1,
			Total:        len(work),
			DocumentName: entry.Name(),
		})

		if err := o.indexer.IndexOne(ctx, entry); err != nil {
			failed++
			logger.Warn("Indexing failed for %s: %v", entry.Name(), err)
			continue
		}
		succeeded++
		o.lifecycle.InvalidateDocument(domain.DocumentID(entry.Path))
	}

	state := domain.BatchCompleted
	if o.cancelled.Load() {
		state = domain.BatchCancelled
	}
	o.setState(state)

	result := domain.BatchResult{
		State:     state,
		Total:     len(work),
		Succeeded: succeeded,
		Failed:    failed,
		Message:   fmt.Sprintf("%d indexed, %d failed of %d", succeeded, failed, len(work)),
	}
	o.complete(result)
	return &result, nil
}

// IndexOne (re)indexes a single catalog entry end to end.
func (o *IndexOrchestrator) IndexOne(ctx context.Context, entry domain.CatalogEntry) error {
	if err := o.indexer.IndexOne(ctx, entry); err != nil {
		return err
	}
	o.lifecycle.InvalidateDocument(domain.DocumentID(entry.Path))
	return nil
}

// Cancel requests cooperative cancellation of the active bulk run.
// No-op when no run is active.
func (o *IndexOrchestrator) Cancel() {
	if o.running.Load() {
		o.cancelled.Store(true)
	}
}

// Status returns the current batch state.
func (o *IndexOrchestrator) Status() domain.BatchState {
	return domain.BatchState(o.state.Load())
}

// Search retrieves the k most similar chunks across the active
// per-document indexes and the unified index. A single unreadable
// index degrades the result set instead of failing the whole query.
func (o *IndexOrchestrator) Search(ctx context.Context, query string, k int) ([]domain.SearchResult, error) {
	if query == "" || k <= 0 {
		return nil, fmt.Errorf("%w: empty query or non-positive k", domain.ErrInvalidInput)
	}

	embedder, err := o.lifecycle.Embedder(ctx)
	if err != nil {
		return nil, err
	}
	queryVec, err := embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	activeIDs, err := o.lifecycle.ActiveDocumentIDs(ctx)
	if err != nil {
		return nil, err
	}

	if err := o.registry.Load(ctx); err != nil {
		return nil, err
	}
	entries, err := o.registry.Entries(ctx)
	if err != nil {
		return nil, err
	}

	var results []domain.SearchResult
	for _, entry := range entries {
		if _, active := activeIDs[entry.DocumentID]; !active {
			continue
		}

		index, chunks, err := o.lifecycle.DocumentHandle(ctx, entry)
		if err != nil {
			logger.Warn("Skipping unreadable index for %s: %v", entry.SourcePath, err)
			continue
		}
		results = append(results, searchHandle(ctx, index, chunks, queryVec, k, false)...)
	}

	unifiedIndex, unifiedChunks, err := o.lifecycle.UnifiedHandle(ctx)
	if err != nil {
		logger.Warn("Skipping unreadable unified index: %v", err)
	} else {
		results = append(results, searchHandle(ctx, unifiedIndex, unifiedChunks, queryVec, k, true)...)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// searchHandle queries one open index and resolves hits to chunks.
func searchHandle(ctx context.Context, index driven.VectorIndex, chunks map[string]domain.Chunk, query []float32, k int, unified bool) []domain.SearchResult {
	hits, err := index.Search(ctx, query, k)
	if err != nil {
		logger.Warn("Vector search failed: %v", err)
		return nil
	}

	results := make([]domain.SearchResult, 0, len(hits))
	for _, hit := range hits {
		chunk, ok := chunks[hit.ChunkID]
		if !ok {
			// Sidecar and vectors drifted; drop the orphan hit.
			continue
		}
		results = append(results, domain.SearchResult{
			Chunk:   chunk,
			Score:   hit.Similarity,
			Unified: unified,
		})
	}
	return results
}

func (o *IndexOrchestrator) setState(s domain.BatchState) {
	o.state.Store(int32(s))
}

func (o *IndexOrchestrator) progress(p domain.IndexingProgress) {
	if o.onProgress != nil {
		o.onProgress(p)
	}
}

func (o *IndexOrchestrator) complete(r domain.BatchResult) {
	if o.onComplete != nil {
		o.onComplete(r)
	}
}
