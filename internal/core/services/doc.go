// Package services implements the core behaviour of the index
// manager: catalog scanning with change detection, per-document
// indexing, the bulk orchestrator, unified-index injection, and
// lifecycle management of the embedding provider and caches.
//
// Each concern is a separate type with a narrow interface; the
// orchestrator composes them rather than flattening their state.
package services
