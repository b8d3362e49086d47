package domain

import "time"

// Default settings values.
const (
	DefaultEmbeddingProvider   = "ollama"
	DefaultEmbeddingDimensions = 768
	DefaultChunkSize           = 1000
	DefaultChunkOverlap        = 200
	DefaultScanWorkers         = 4
	DefaultWatchDebounce       = 2 * time.Second
)

// Settings holds user-configurable behaviour, loaded from the TOML
// config store and overridable by CLI flags.
type Settings struct {
	// RootDir is the index root: one subdirectory per document ID,
	// the registry file, and the unified index directory.
	RootDir string

	// CatalogPath is the SQLite catalog database path.
	CatalogPath string

	// EmbeddingProvider selects the embedding adapter ("ollama" or
	// "openai").
	EmbeddingProvider string

	// EmbeddingBaseURL overrides the provider's API base URL.
	EmbeddingBaseURL string

	// EmbeddingModel overrides the provider's default model.
	EmbeddingModel string

	// EmbeddingAPIKey authenticates against cloud providers. Unused
	// by the ollama adapter.
	EmbeddingAPIKey string

	// EmbeddingDimensions is the vector size; must match the model.
	EmbeddingDimensions int

	// ChunkSize is the chunk length in characters.
	ChunkSize int

	// ChunkOverlap is the overlap between consecutive chunks.
	ChunkOverlap int

	// ScanWorkers bounds concurrent content hashing during scans.
	ScanWorkers int

	// WatchDebounce is how long the watcher waits after the last
	// filesystem event before triggering a rescan.
	WatchDebounce time.Duration
}

// WithDefaults fills unset fields with default values.
func (s Settings) WithDefaults() Settings {
	if s.EmbeddingProvider == "" {
		s.EmbeddingProvider = DefaultEmbeddingProvider
	}
	if s.EmbeddingDimensions <= 0 {
		s.EmbeddingDimensions = DefaultEmbeddingDimensions
	}
	if s.ChunkSize <= 0 {
		s.ChunkSize = DefaultChunkSize
	}
	if s.ChunkOverlap <= 0 {
		s.ChunkOverlap = DefaultChunkOverlap
	}
	if s.ScanWorkers <= 0 {
		s.ScanWorkers = DefaultScanWorkers
	}
	if s.WatchDebounce <= 0 {
		s.WatchDebounce = DefaultWatchDebounce
	}
	return s
}
