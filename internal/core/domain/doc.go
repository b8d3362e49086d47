// Package domain contains the core entities of the index manager:
// catalog entries, documents, chunks, registry entries, batch state,
// and the domain error taxonomy. It has no dependencies on adapters.
package domain
