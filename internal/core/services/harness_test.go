package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	catalogmem "github.com/archivelabs/ragdex/internal/adapters/driven/catalog/memory"
	registryfile "github.com/archivelabs/ragdex/internal/adapters/driven/registry/file"
	vectormem "github.com/archivelabs/ragdex/internal/adapters/driven/vector/memory"
	"github.com/archivelabs/ragdex/internal/core/domain"
	"github.com/archivelabs/ragdex/internal/core/ports/driven"
	"github.com/archivelabs/ragdex/internal/postprocessors"
	"github.com/archivelabs/ragdex/internal/readers"
)

// harness wires the full indexing stack over in-memory adapters and
// a temp directory index root.
type harness struct {
	corpusDir string
	layout    domain.Layout
	catalog   *catalogmem.Catalog
	registry  *registryfile.RegistryStore
	embedder  *fakeEmbedder
	lifecycle *LifecycleManager
	scanner   *Scanner
	indexer   *DocumentIndexer
	injector  *UnifiedInjector
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	root := t.TempDir()
	layout := domain.Layout{Root: filepath.Join(root, "index")}
	catalog := catalogmem.NewCatalog()
	registry := registryfile.NewRegistryStore(layout.RegistryPath())
	embedder := newFakeEmbedder()
	metadata := NewMetadataCache(nil)
	vectors := vectormem.NewFactory()

	lifecycle := NewLifecycleManager(
		func(ctx context.Context) (driven.EmbeddingService, error) {
			return embedder, nil
		},
		metadata,
		vectors,
		catalog,
		layout,
		embedder.Dimensions(),
	)

	registryReaders := readers.DefaultRegistry()
	pipeline := postprocessors.Default(domain.Settings{ChunkSize: 200, ChunkOverlap: 20})

	indexer := NewDocumentIndexer(
		registryReaders, pipeline, metadata, lifecycle,
		vectors, registry, catalog, layout,
	)
	injector := NewUnifiedInjector(registryReaders, pipeline, metadata, lifecycle, layout)

	return &harness{
		corpusDir: filepath.Join(root, "corpus"),
		layout:    layout,
		catalog:   catalog,
		registry:  registry,
		embedder:  embedder,
		lifecycle: lifecycle,
		scanner:   NewScanner(catalog, 2),
		indexer:   indexer,
		injector:  injector,
	}
}

// orchestrator builds an IndexOrchestrator over the harness stack.
func (h *harness) orchestrator(onProgress func(domain.IndexingProgress), onComplete func(domain.BatchResult)) *IndexOrchestrator {
	return NewIndexOrchestrator(h.scanner, h.indexer, h.lifecycle, h.registry, onProgress, onComplete)
}

// mustGet fetches a catalog entry by path.
func mustGet(t *testing.T, h *harness, path string) domain.CatalogEntry {
	t.Helper()

	entry, err := h.catalog.Get(context.Background(), path)
	require.NoError(t, err)
	return *entry
}

// addDocument writes a corpus file and registers it in the catalog.
func (h *harness) addDocument(t *testing.T, name, content string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(h.corpusDir, 0o700))
	path := filepath.Join(h.corpusDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	require.NoError(t, h.catalog.Add(context.Background(), path))
	return path
}
