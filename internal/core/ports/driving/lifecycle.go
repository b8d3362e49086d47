package driving

import "context"

// Lifecycle owns the embedding provider's load state and the caches
// shared by indexing and retrieval.
type Lifecycle interface {
	// Setup prepares the embedding provider. Lazy and idempotent:
	// nothing is allocated until an indexing or embedding operation
	// first needs it.
	Setup(ctx context.Context) error

	// Reload drops all caches (metadata cache, per-document index
	// handles, retriever) without releasing the embedding provider.
	Reload()

	// Unload drops caches and releases the embedding provider's
	// memory. Used when switching application modes.
	Unload() error

	// Clear resets the active document set pointer without touching
	// persisted artifacts.
	Clear()
}
