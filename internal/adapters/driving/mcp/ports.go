package mcp

import (
	"github.com/archivelabs/ragdex/internal/core/ports/driven"
	"github.com/archivelabs/ragdex/internal/core/ports/driving"
)

// Ports aggregates all ports required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Index drives bulk indexing and retrieval.
	Index driving.IndexManager

	// Injector adds ad-hoc content to the unified index.
	Injector driving.Injector

	// Registry exposes the persisted index inventory for resources.
	Registry driven.RegistryStore
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Index == nil {
		return ErrMissingIndexManager
	}
	// Injector and Registry are optional
	return nil
}
