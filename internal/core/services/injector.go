package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/archivelabs/ragdex/internal/core/domain"
	"github.com/archivelabs/ragdex/internal/core/ports/driven"
	"github.com/archivelabs/ragdex/internal/core/ports/driving"
	"github.com/archivelabs/ragdex/internal/logger"
)

// Ensure the interface is implemented.
var _ driving.Injector = (*UnifiedInjector)(nil)

// UnifiedInjector adds catalog-independent content to the unified
// index: no registry entry, no content-hash tracking, no catalog
// mutation. Injected chunks carry an empty DocumentID, which is what
// distinguishes them from catalogued content at retrieval time.
type UnifiedInjector struct {
	readers   driven.ReaderRegistry
	pipeline  driven.PostProcessorPipeline
	metadata  *MetadataCache
	lifecycle *LifecycleManager
	layout    domain.Layout
}

// NewUnifiedInjector wires the injection pipeline.
func NewUnifiedInjector(
	readers driven.ReaderRegistry,
	pipeline driven.PostProcessorPipeline,
	metadata *MetadataCache,
	lifecycle *LifecycleManager,
	layout domain.Layout,
) *UnifiedInjector {
	return &UnifiedInjector{
		readers:   readers,
		pipeline:  pipeline,
		metadata:  metadata,
		lifecycle: lifecycle,
		layout:    layout,
	}
}

// InjectText chunks and indexes plain text under sourceName.
func (inj *UnifiedInjector) InjectText(ctx context.Context, content, sourceName string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: %s", domain.ErrEmptyDocument, sourceName)
	}
	doc := &domain.Document{
		Title:   sourceName,
		Content: content,
		Metadata: map[string]any{
			"source_name": sourceName,
		},
		ReadAt: time.Now(),
	}
	return inj.inject(ctx, doc)
}

// InjectFile reads the file at path with the matching reader and
// indexes its content into the unified index.
func (inj *UnifiedInjector) InjectFile(ctx context.Context, path string) error {
	doc, err := inj.readers.ReadFile(ctx, path)
	if err != nil {
		return err
	}
	return inj.inject(ctx, doc)
}

// InjectBytes indexes raw bytes using the reader for formatHint.
func (inj *UnifiedInjector) InjectBytes(ctx context.Context, data []byte, sourceName, formatHint string) error {
	doc, err := inj.readers.Read(ctx, &domain.RawDocument{
		Name:   sourceName,
		Format: strings.ToLower(strings.TrimPrefix(formatHint, ".")),
		Data:   data,
	})
	if err != nil {
		return err
	}
	return inj.inject(ctx, doc)
}

// inject runs the shared chunk-embed-persist path into the unified
// index. The sidecar is appended, not rewritten wholesale, so earlier
// injected content survives.
func (inj *UnifiedInjector) inject(ctx context.Context, doc *domain.Document) error {
	chunks, err := inj.pipeline.Process(ctx, doc)
	if err != nil {
		return fmt.Errorf("process injected content: %w", err)
	}
	if len(chunks) == 0 {
		return fmt.Errorf("%w: injected content produced no chunks", domain.ErrEmptyDocument)
	}

	meta := inj.metadata.Extract(doc)
	for i := range chunks {
		if chunks[i].ID == "" {
			chunks[i].ID = uuid.New().String()
		}
		chunks[i].DocumentID = ""
		chunks[i].Metadata = mergeMetadata(meta, chunks[i].Metadata)
	}

	embedder, err := inj.lifecycle.Embedder(ctx)
	if err != nil {
		return err
	}
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	embeddings, err := embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed injected content: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embed injected content: got %d embeddings for %d chunks", len(embeddings), len(chunks))
	}
	for i := range chunks {
		chunks[i].Embedding = embeddings[i]
	}

	index, _, err := inj.lifecycle.UnifiedHandle(ctx)
	if err != nil {
		return err
	}
	for _, c := range chunks {
		if err := index.Insert(ctx, c.ID, c.Embedding); err != nil {
			return fmt.Errorf("insert injected chunk: %w", err)
		}
	}
	if err := index.Save(ctx); err != nil {
		return err
	}
	if err := appendChunkFile(inj.layout.UnifiedDir(), chunks); err != nil {
		return err
	}

	// The cached unified handle no longer matches the sidecar on
	// disk; drop it so the next search reloads.
	inj.lifecycle.InvalidateUnified()

	logger.Debug("Injected %d chunks into unified index", len(chunks))
	return nil
}
