package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// The lifecycle manager owns its load/unload state; the indexer and
// injector consume it as a black box.
//
// Implementations may include:
//   - Ollama (nomic-embed-text, all-minilm)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts.
	// More efficient than calling Embed in a loop for large batches.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g. 384, 768).
	// Must match the vector index configuration.
	Dimensions() int

	// ModelName returns the embedding model in use.
	ModelName() string

	// Ping validates the service is reachable with a lightweight
	// request. Used by lazy setup before committing to semantic
	// indexing.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
