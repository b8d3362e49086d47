// Package hnsw provides CGO bindings for HNSWlib.
// It implements the driven.VectorIndex and driven.VectorIndexFactory
// interfaces, persisting one index artifact per directory.
//
// Build requires:
//   - HNSWlib header (fetched via CMake FetchContent)
//   - C++17 compiler
package hnsw
