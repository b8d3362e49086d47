package domain

import "time"

// RegistryEntry records where a document's persisted index lives.
// The registry is the inventory of artifacts on disk; the catalog is
// the record of intent. Staleness decisions always come from the
// catalog's content hash, never from the registry.
type RegistryEntry struct {
	// DocumentID is the stable path-derived identifier.
	DocumentID string `json:"document_id"`

	// SourcePath is the document path at index time, for diagnostics.
	SourcePath string `json:"source_path"`

	// ChunkCount is the number of chunks in the persisted index.
	ChunkCount int `json:"chunk_count"`

	// IndexDir is the directory holding the index artifact.
	IndexDir string `json:"index_dir"`

	// IndexedAt is when the artifact was registered.
	IndexedAt time.Time `json:"indexed_at"`
}
