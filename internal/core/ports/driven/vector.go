package driven

import "context"

// VectorIndex is a handle to one persisted similarity index: either a
// per-document index or the shared unified index. Backed by HNSWlib.
type VectorIndex interface {
	// Insert adds a vector for the given chunk ID.
	Insert(ctx context.Context, chunkID string, embedding []float32) error

	// Search finds the k nearest neighbours to the query vector.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Save persists the index to its directory.
	Save(ctx context.Context) error

	// Close releases resources without saving.
	Close() error
}

// VectorIndexFactory creates and opens persisted vector indexes.
// Directories are owned by the caller; Create starts fresh even if
// the directory already holds an older artifact.
type VectorIndexFactory interface {
	// Create makes a new empty index persisted under dir.
	Create(dir string, dimensions int) (VectorIndex, error)

	// Open loads an existing index from dir.
	Open(dir string, dimensions int) (VectorIndex, error)
}

// VectorHit is a similarity search result.
type VectorHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Similarity is the cosine similarity score (0-1).
	Similarity float64
}
