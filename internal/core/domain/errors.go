package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrMissingFile indicates a catalog entry's file no longer exists
	// (or cannot be read for hashing). Scans skip such entries with a
	// warning; the catalog owner decides whether to prune them.
	ErrMissingFile = errors.New("source file missing")

	// ErrEmptyDocument indicates the reader produced no chunks.
	// Counted as a per-document failure, never fatal for a batch.
	ErrEmptyDocument = errors.New("document produced no content")

	// ErrUnsupportedFormat indicates no reader is registered for the
	// document's format.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrExtractionFailed indicates metadata extraction failed.
	// Indexing continues with file-name-only metadata.
	ErrExtractionFailed = errors.New("metadata extraction failed")

	// ErrPersistFailed indicates an index artifact could not be
	// written. The document stays unindexed in the catalog and is
	// retried on the next scan.
	ErrPersistFailed = errors.New("index persist failed")

	// ErrIndexingInProgress indicates a bulk indexing run is already
	// active.
	ErrIndexingInProgress = errors.New("indexing in progress")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or failed to load. Semantic indexing is disabled.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrIndexClosed indicates an operation on a closed vector index.
	ErrIndexClosed = errors.New("vector index closed")
)
