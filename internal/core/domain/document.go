package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// CatalogEntry is the catalog's record for a single source document.
// The catalog owns creation and deletion; the index core only flips
// Indexed and ContentHash after a successful index run.
type CatalogEntry struct {
	// Path is the absolute filesystem path and the entry's key.
	Path string

	// Indexed is true once a per-document index exists for the
	// current content.
	Indexed bool

	// ContentHash is the hash of the file bytes at last index time.
	// Empty for never-indexed entries.
	ContentHash string

	// Active entries participate in retrieval; inactive ones are
	// kept in the catalog but excluded from the active document set.
	Active bool
}

// Name returns the entry's file name for progress reporting.
func (e CatalogEntry) Name() string {
	return filepath.Base(e.Path)
}

// Document represents a source document after reading, with its full
// text content. Chunking happens in the post-processor pipeline.
type Document struct {
	// ID is the stable document identifier derived from the path.
	ID string

	// Path is the original location (file path, URL, or injected name).
	Path string

	// Title is the human-readable title extracted by the reader.
	Title string

	// Content is the full text after format conversion.
	Content string

	// Metadata contains format-specific key-value pairs (author,
	// format, member names for archives, and so on).
	Metadata map[string]any

	// ReadAt is when the reader produced this document.
	ReadAt time.Time
}

// Chunk is a searchable unit within a document.
type Chunk struct {
	// ID is the unique chunk identifier.
	ID string

	// DocumentID links to the parent document. Empty for chunks
	// injected into the unified index.
	DocumentID string

	// Content is the chunk text.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// Embedding is the vector representation for semantic search.
	Embedding []float32

	// Metadata carries source_path, source_name and any
	// format-specific fields extracted for the parent document.
	Metadata map[string]any
}

// RawDocument is opaque file bytes plus enough context to pick a
// reader. It is the input to the reader registry.
type RawDocument struct {
	// Path is the on-disk location, when the bytes came from a file.
	Path string

	// Name is a display name for content without a path.
	Name string

	// Format is the lower-case format key (file extension without
	// the dot, e.g. "md", "pdf"). Readers dispatch on it.
	Format string

	// Data is the raw bytes.
	Data []byte
}

// SourceName returns the best available display name.
func (r RawDocument) SourceName() string {
	if r.Name != "" {
		return r.Name
	}
	return filepath.Base(r.Path)
}

// documentIDLength is the number of hex characters kept from the path
// hash. 64 bits of digest is plenty for directory naming.
const documentIDLength = 16

// DocumentID derives a stable identifier from a document path.
// The same path always yields the same ID across process restarts,
// which keeps registry keys and index directory names valid between
// runs. Content changes do not affect it.
func DocumentID(path string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(path)))
	return hex.EncodeToString(sum[:])[:documentIDLength]
}

// HashFile computes the content hash of the file at path.
// Used to detect modification independently of DocumentID.
// Unreadable files are reported as missing; the catalog owner decides
// whether to prune them.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrMissingFile, path)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("%w: %s", ErrMissingFile, path)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashBytes computes the content hash over a byte slice.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
