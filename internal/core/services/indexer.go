package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/archivelabs/ragdex/internal/core/domain"
	"github.com/archivelabs/ragdex/internal/core/ports/driven"
	"github.com/archivelabs/ragdex/internal/logger"
)

// EmbedderSource hands out the shared embedding service, loading it
// lazily on first use. The lifecycle manager implements this.
type EmbedderSource interface {
	Embedder(ctx context.Context) (driven.EmbeddingService, error)
}

// DocumentIndexer builds one persisted index per document. It owns
// the full read-chunk-embed-persist pipeline for a single catalog
// entry; orchestration across entries lives in IndexOrchestrator.
type DocumentIndexer struct {
	readers  driven.ReaderRegistry
	pipeline driven.PostProcessorPipeline
	metadata *MetadataCache
	source   EmbedderSource
	vectors  driven.VectorIndexFactory
	registry driven.RegistryStore
	catalog  driven.DocumentCatalog
	layout   domain.Layout
}

// NewDocumentIndexer wires the per-document pipeline.
func NewDocumentIndexer(
	readers driven.ReaderRegistry,
	pipeline driven.PostProcessorPipeline,
	metadata *MetadataCache,
	source EmbedderSource,
	vectors driven.VectorIndexFactory,
	registry driven.RegistryStore,
	catalog driven.DocumentCatalog,
	layout domain.Layout,
) *DocumentIndexer {
	return &DocumentIndexer{
		readers:  readers,
		pipeline: pipeline,
		metadata: metadata,
		source:   source,
		vectors:  vectors,
		registry: registry,
		catalog:  catalog,
		layout:   layout,
	}
}

// IndexOne (re)indexes a single catalog entry end to end: read,
// chunk, enrich, embed, persist, register, mark indexed. The index is
// built in a staging directory and swapped into place only after a
// successful save, so a failure mid-run leaves any previous index
// intact.
func (di *DocumentIndexer) IndexOne(ctx context.Context, entry domain.CatalogEntry) error {
	documentID := domain.DocumentID(entry.Path)

	contentHash, err := domain.HashFile(entry.Path)
	if err != nil {
		return err
	}

	doc, err := di.readers.ReadFile(ctx, entry.Path)
	if err != nil {
		return fmt.Errorf("read %s: %w", entry.Name(), err)
	}
	doc.ID = documentID

	chunks, err := di.pipeline.Process(ctx, doc)
	if err != nil {
		return fmt.Errorf("process %s: %w", entry.Name(), err)
	}
	if len(chunks) == 0 {
		return fmt.Errorf("%w: %s", domain.ErrEmptyDocument, entry.Name())
	}

	meta := di.metadata.Extract(doc)
	for i := range chunks {
		if chunks[i].ID == "" {
			chunks[i].ID = uuid.New().String()
		}
		chunks[i].DocumentID = documentID
		chunks[i].Metadata = mergeMetadata(meta, chunks[i].Metadata)
	}

	embedder, err := di.source.Embedder(ctx)
	if err != nil {
		return err
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	embeddings, err := embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed %s: %w", entry.Name(), err)
	}
	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embed %s: got %d embeddings for %d chunks", entry.Name(), len(embeddings), len(chunks))
	}
	for i := range chunks {
		chunks[i].Embedding = embeddings[i]
	}

	indexDir := di.layout.DocumentDir(documentID)
	if err := di.persistIndex(ctx, indexDir, chunks, embedder.Dimensions()); err != nil {
		return fmt.Errorf("persist %s: %w", entry.Name(), err)
	}

	regEntry := domain.RegistryEntry{
		DocumentID: documentID,
		SourcePath: entry.Path,
		ChunkCount: len(chunks),
		IndexDir:   indexDir,
		IndexedAt:  time.Now(),
	}
	if err := di.registry.Upsert(ctx, regEntry); err != nil {
		return fmt.Errorf("register %s: %w", entry.Name(), err)
	}
	if err := di.registry.Persist(ctx); err != nil {
		return fmt.Errorf("register %s: %w", entry.Name(), err)
	}

	if err := di.catalog.SetIndexed(ctx, entry.Path, contentHash); err != nil {
		return fmt.Errorf("mark indexed %s: %w", entry.Name(), err)
	}

	logger.Debug("Indexed %s (%d chunks) -> %s", entry.Name(), len(chunks), indexDir)
	return nil
}

// persistIndex builds a fresh index under a staging directory, saves
// vectors and the chunk sidecar, then renames it over the final
// location. Re-indexing therefore replaces the previous artifact
// atomically at the directory level.
func (di *DocumentIndexer) persistIndex(ctx context.Context, finalDir string, chunks []domain.Chunk, dimensions int) error {
	stagingDir := finalDir + ".tmp"
	if err := os.RemoveAll(stagingDir); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistFailed, err)
	}

	index, err := di.vectors.Create(stagingDir, dimensions)
	if err != nil {
		return err
	}
	defer index.Close()

	for _, c := range chunks {
		if err := index.Insert(ctx, c.ID, c.Embedding); err != nil {
			return fmt.Errorf("insert chunk %s: %w", c.ID, err)
		}
	}

	if err := index.Save(ctx); err != nil {
		return err
	}
	if err := writeChunkFile(stagingDir, chunks); err != nil {
		return err
	}

	if err := os.RemoveAll(finalDir); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistFailed, err)
	}
	if err := os.Rename(stagingDir, finalDir); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistFailed, err)
	}
	return nil
}

// mergeMetadata overlays chunk-level metadata on document-level
// metadata. Chunk keys win.
func mergeMetadata(docMeta, chunkMeta map[string]any) map[string]any {
	merged := make(map[string]any, len(docMeta)+len(chunkMeta))
	for k, v := range docMeta {
		merged[k] = v
	}
	for k, v := range chunkMeta {
		merged[k] = v
	}
	return merged
}
