package domain

import "path/filepath"

// Layout maps the index root directory: one subdirectory per document
// ID under docs/, a single registry file, and the unified index
// directory.
type Layout struct {
	// Root is the index root directory.
	Root string
}

// DocumentDir returns the per-document index directory for an ID.
func (l Layout) DocumentDir(documentID string) string {
	return filepath.Join(l.Root, "docs", documentID)
}

// UnifiedDir returns the shared unified index directory.
func (l Layout) UnifiedDir() string {
	return filepath.Join(l.Root, "unified")
}

// RegistryPath returns the registry file location.
func (l Layout) RegistryPath() string {
	return filepath.Join(l.Root, "registry.json")
}
