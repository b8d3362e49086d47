package driven

import (
	"context"

	"github.com/archivelabs/ragdex/internal/core/domain"
)

// RegistryStore persists the index-of-indexes: one entry per
// successfully indexed document. Backed by a single structured file,
// loaded lazily and cached for the process lifetime.
//
// Upsert followed by Persist is the only mutation path, called once
// per indexed document. Persistence is single-writer; concurrent
// indexing runs must be serialized by the caller.
type RegistryStore interface {
	// Load reads the registry file into the cache. Idempotent; a
	// missing file yields an empty registry.
	Load(ctx context.Context) error

	// Entry returns the entry for a document ID, or
	// domain.ErrNotFound.
	Entry(ctx context.Context, documentID string) (*domain.RegistryEntry, error)

	// Entries returns all registry entries.
	Entries(ctx context.Context) ([]domain.RegistryEntry, error)

	// Upsert adds or replaces an entry in the cache.
	Upsert(ctx context.Context, entry domain.RegistryEntry) error

	// Persist writes the cache to disk atomically.
	Persist(ctx context.Context) error
}
