package domain

// SearchResult is a retrieval hit across the active per-document
// indexes and the unified index.
type SearchResult struct {
	// Chunk is the matched chunk with its metadata.
	Chunk Chunk

	// Score is the similarity score reported by the vector index.
	Score float64

	// Unified is true when the hit came from the unified index.
	Unified bool
}
