// Package file implements the index registry as a single JSON file in
// the index root. The registry is the index-of-indexes: one entry per
// successfully indexed document, updated after each successful index
// run and read at retrieval time.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/archivelabs/ragdex/internal/core/domain"
	"github.com/archivelabs/ragdex/internal/core/ports/driven"
)

// Ensure RegistryStore implements the interface.
var _ driven.RegistryStore = (*RegistryStore)(nil)

// registryFile is the persisted shape: a version for future format
// changes and entries keyed by document ID.
type registryFile struct {
	Version int                             `json:"version"`
	Entries map[string]domain.RegistryEntry `json:"entries"`
}

// registryVersion is the current file format version.
const registryVersion = 1

// RegistryStore is a file-backed registry with an in-process cache.
// Load is lazy and idempotent; Persist rewrites the whole file
// atomically via a temp file and rename.
type RegistryStore struct {
	mu       sync.RWMutex
	filePath string
	entries  map[string]domain.RegistryEntry
	loaded   bool
}

// NewRegistryStore creates a store persisting to filePath.
func NewRegistryStore(filePath string) *RegistryStore {
	return &RegistryStore{
		filePath: filePath,
		entries:  make(map[string]domain.RegistryEntry),
	}
}

// Load reads the registry file into the cache. A missing file yields
// an empty registry. Subsequent calls are no-ops until Persist.
func (s *RegistryStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return nil
	}

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.loaded = true
			return nil
		}
		return fmt.Errorf("reading registry: %w", err)
	}

	var file registryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing registry: %w", err)
	}

	s.entries = file.Entries
	if s.entries == nil {
		s.entries = make(map[string]domain.RegistryEntry)
	}
	s.loaded = true
	return nil
}

// Entry returns the entry for a document ID.
func (s *RegistryStore) Entry(ctx context.Context, documentID string) (*domain.RegistryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[documentID]
	if !ok {
		return nil, fmt.Errorf("%w: registry entry %s", domain.ErrNotFound, documentID)
	}
	return &entry, nil
}

// Entries returns all registry entries sorted by document ID, so
// iteration order is stable across runs.
func (s *RegistryStore) Entries(ctx context.Context) ([]domain.RegistryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]domain.RegistryEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].DocumentID < entries[j].DocumentID
	})
	return entries, nil
}

// Upsert adds or replaces an entry in the cache.
func (s *RegistryStore) Upsert(ctx context.Context, entry domain.RegistryEntry) error {
	if entry.DocumentID == "" {
		return fmt.Errorf("%w: registry entry needs a document ID", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.DocumentID] = entry
	return nil
}

// Persist writes the cache to disk atomically.
func (s *RegistryStore) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file := registryFile{
		Version: registryVersion,
		Entries: s.entries,
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal registry: %v", domain.ErrPersistFailed, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0700); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistFailed, err)
	}

	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistFailed, err)
	}
	if err := os.Rename(tmp, s.filePath); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistFailed, err)
	}
	return nil
}
