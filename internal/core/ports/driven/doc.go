// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): the document catalog, chunk readers,
// the embedding service, the vector index, and the registry store.
package driven
