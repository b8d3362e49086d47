package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/archivelabs/ragdex/internal/adapters/driven/catalog/sqlite/migrations"
	"github.com/archivelabs/ragdex/internal/core/domain"
	"github.com/archivelabs/ragdex/internal/core/ports/driven"
)

// Ensure the interface is implemented.
var _ driven.DocumentCatalog = (*Catalog)(nil)

// Catalog is the SQLite-backed document catalog. The indexing core
// only reads entries and flips indexed state; entry creation and
// activation are management operations exposed on the concrete type
// for the CLI.
type Catalog struct {
	db   *sql.DB
	path string
}

// NewCatalog opens (or creates) the catalog database at dbPath.
// An empty dbPath defaults to ~/.ragdex/data/catalog.db.
func NewCatalog(dbPath string) (*Catalog, error) {
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".ragdex", "data", "catalog.db")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	c := &Catalog{db: db, path: dbPath}
	if err := c.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return c, nil
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Path returns the database file path.
func (c *Catalog) Path() string {
	return c.path
}

// ListCandidates returns catalog entries in insertion order,
// optionally restricted to active ones.
func (c *Catalog) ListCandidates(ctx context.Context, activeOnly bool) ([]domain.CatalogEntry, error) {
	query := `SELECT path, indexed, content_hash, active FROM documents`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY created_at, path`

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var entries []domain.CatalogEntry
	for rows.Next() {
		var entry domain.CatalogEntry
		if err := rows.Scan(&entry.Path, &entry.Indexed, &entry.ContentHash, &entry.Active); err != nil {
			return nil, fmt.Errorf("scanning document row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating document rows: %w", err)
	}
	return entries, nil
}

// Get retrieves an entry by path.
func (c *Catalog) Get(ctx context.Context, path string) (*domain.CatalogEntry, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT path, indexed, content_hash, active FROM documents WHERE path = ?
	`, path)

	var entry domain.CatalogEntry
	if err := row.Scan(&entry.Path, &entry.Indexed, &entry.ContentHash, &entry.Active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("getting document: %w", err)
	}
	return &entry, nil
}

// SetIndexed marks an entry indexed with the given content hash.
func (c *Catalog) SetIndexed(ctx context.Context, path, contentHash string) error {
	result, err := c.db.ExecContext(ctx, `
		UPDATE documents SET indexed = 1, content_hash = ?, updated_at = CURRENT_TIMESTAMP
		WHERE path = ?
	`, contentHash, path)
	if err != nil {
		return fmt.Errorf("marking indexed: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("marking indexed: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	return nil
}

// Add registers a path in the catalog as active and unindexed.
// Re-adding an existing path reactivates it without clearing its
// indexed state.
func (c *Catalog) Add(ctx context.Context, path string) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO documents (path, indexed, content_hash, active)
		VALUES (?, 0, '', 1)
		ON CONFLICT(path) DO UPDATE SET
			active = 1,
			updated_at = CURRENT_TIMESTAMP
	`, path)
	if err != nil {
		return fmt.Errorf("adding document: %w", err)
	}
	return nil
}

// SetActive flips an entry's participation in retrieval.
func (c *Catalog) SetActive(ctx context.Context, path string, active bool) error {
	result, err := c.db.ExecContext(ctx, `
		UPDATE documents SET active = ?, updated_at = CURRENT_TIMESTAMP WHERE path = ?
	`, active, path)
	if err != nil {
		return fmt.Errorf("setting active: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("setting active: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	return nil
}

// migrate runs all pending migrations.
func (c *Catalog) migrate(fsys embed.FS) error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := c.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}
		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := c.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := c.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
