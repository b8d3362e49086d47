package driving

import (
	"context"

	"github.com/archivelabs/ragdex/internal/core/domain"
)

// IndexManager drives incremental indexing over the document catalog.
type IndexManager interface {
	// ScanForWork returns the catalog entries that need (re)indexing:
	// never-indexed entries plus indexed entries whose content hash
	// changed. Missing files are skipped with a warning.
	ScanForWork(ctx context.Context) ([]domain.CatalogEntry, error)

	// IndexAll runs the bulk indexing loop over the current work
	// list. Per-document failures are counted, not escalated; only a
	// scanning error yields a non-nil error. Returns
	// domain.ErrIndexingInProgress if a run is already active.
	IndexAll(ctx context.Context) (*domain.BatchResult, error)

	// IndexOne (re)indexes a single catalog entry end to end.
	IndexOne(ctx context.Context, entry domain.CatalogEntry) error

	// Cancel requests cooperative cancellation of the active bulk
	// run. Honoured at the next document boundary; a no-op when no
	// run is active.
	Cancel()

	// Status returns the current batch state.
	Status() domain.BatchState

	// Search retrieves the k most similar chunks across the active
	// per-document indexes and the unified index.
	Search(ctx context.Context, query string, k int) ([]domain.SearchResult, error)
}

// ProgressFunc receives a progress event before each document of a
// bulk run. Implementations must not block.
type ProgressFunc func(domain.IndexingProgress)

// CompleteFunc receives the batch result when a bulk run ends.
type CompleteFunc func(domain.BatchResult)
