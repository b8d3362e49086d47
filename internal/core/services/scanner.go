package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/archivelabs/ragdex/internal/core/domain"
	"github.com/archivelabs/ragdex/internal/core/ports/driven"
	"github.com/archivelabs/ragdex/internal/logger"
)

// Scanner combines the catalog scan with change detection.
// A document needs work iff it was never indexed, or it was indexed
// and its content hash no longer matches the catalog's record.
type Scanner struct {
	catalog driven.DocumentCatalog
	workers int
}

// NewScanner creates a scanner. workers bounds concurrent content
// hashing; values below 1 fall back to the default.
func NewScanner(catalog driven.DocumentCatalog, workers int) *Scanner {
	if workers < 1 {
		workers = domain.DefaultScanWorkers
	}
	return &Scanner{catalog: catalog, workers: workers}
}

// ScanForWork returns the catalog entries needing (re)indexing, in
// catalog order. Entries whose file is missing are skipped with a
// warning; the catalog owner decides whether to prune them. Scanning
// twice without filesystem or catalog changes yields the same list.
func (s *Scanner) ScanForWork(ctx context.Context) ([]domain.CatalogEntry, error) {
	entries, err := s.catalog.ListCandidates(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}

	// Hashing dominates scan time, so it runs over a bounded worker
	// group. The needed flags keep catalog order for the result.
	needed := make([]bool, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			need, err := s.needsIndexing(entries[i])
			if err != nil {
				if errors.Is(err, domain.ErrMissingFile) {
					logger.Warn("Skipping missing file: %s", entries[i].Path)
					return nil
				}
				return err
			}
			needed[i] = need
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	var work []domain.CatalogEntry
	for i, entry := range entries {
		if needed[i] {
			work = append(work, entry)
		}
	}

	logger.Debug("Scan found %d of %d documents needing indexing", len(work), len(entries))
	return work, nil
}

// needsIndexing decides whether one entry belongs on the work list.
func (s *Scanner) needsIndexing(entry domain.CatalogEntry) (bool, error) {
	if !entry.Indexed {
		// Never indexed. Still verify the file exists so the work
		// list only contains indexable documents.
		if _, err := os.Stat(entry.Path); err != nil {
			return false, fmt.Errorf("%w: %s", domain.ErrMissingFile, entry.Path)
		}
		return true, nil
	}

	hash, err := domain.HashFile(entry.Path)
	if err != nil {
		return false, err
	}
	return hash != entry.ContentHash, nil
}
