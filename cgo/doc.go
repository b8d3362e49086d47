// Package cgo collects the bindings to native libraries so the rest
// of the tree stays pure Go. The hnsw sub-package wraps HNSWlib for
// approximate nearest-neighbour search over chunk embeddings; builds
// without cgo fall back to the in-memory vector adapter instead.
package cgo
