package driven

import (
	"context"

	"github.com/archivelabs/ragdex/internal/core/domain"
)

// DocumentCatalog is the external record of which documents exist and
// whether each is indexed. Backed by SQLite in production and by an
// in-memory store in tests. The core never creates or deletes entries;
// it only marks them indexed.
type DocumentCatalog interface {
	// ListCandidates returns catalog entries, optionally restricted
	// to active ones.
	ListCandidates(ctx context.Context, activeOnly bool) ([]domain.CatalogEntry, error)

	// Get retrieves an entry by path. Returns domain.ErrNotFound if
	// the path is not catalogued.
	Get(ctx context.Context, path string) (*domain.CatalogEntry, error)

	// SetIndexed marks an entry indexed with the given content hash.
	SetIndexed(ctx context.Context, path, contentHash string) error
}
