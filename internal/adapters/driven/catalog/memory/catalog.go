// Package memory implements an in-memory document catalog for tests
// and ephemeral runs.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/archivelabs/ragdex/internal/core/domain"
	"github.com/archivelabs/ragdex/internal/core/ports/driven"
)

// Ensure the interface is implemented.
var _ driven.DocumentCatalog = (*Catalog)(nil)

// Catalog is an in-memory document catalog. Entries keep insertion
// order, matching the SQLite adapter's listing order.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]*domain.CatalogEntry
	order   []string
}

// NewCatalog creates an empty in-memory catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		entries: make(map[string]*domain.CatalogEntry),
	}
}

// Add registers a path as active and unindexed. Re-adding an
// existing path reactivates it without clearing indexed state.
func (c *Catalog) Add(ctx context.Context, path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[path]; ok {
		entry.Active = true
		return nil
	}
	c.entries[path] = &domain.CatalogEntry{Path: path, Active: true}
	c.order = append(c.order, path)
	return nil
}

// ListCandidates returns entries in insertion order, optionally
// restricted to active ones.
func (c *Catalog) ListCandidates(ctx context.Context, activeOnly bool) ([]domain.CatalogEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var result []domain.CatalogEntry
	for _, path := range c.order {
		entry := c.entries[path]
		if activeOnly && !entry.Active {
			continue
		}
		result = append(result, *entry)
	}
	return result, nil
}

// Get retrieves an entry by path.
func (c *Catalog) Get(ctx context.Context, path string) (*domain.CatalogEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	copied := *entry
	return &copied, nil
}

// SetIndexed marks an entry indexed with the given content hash.
func (c *Catalog) SetIndexed(ctx context.Context, path, contentHash string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[path]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	entry.Indexed = true
	entry.ContentHash = contentHash
	return nil
}

// SetActive flips an entry's participation in retrieval.
func (c *Catalog) SetActive(ctx context.Context, path string, active bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[path]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	entry.Active = active
	return nil
}
