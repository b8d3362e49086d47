package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archivelabs/ragdex/internal/core/domain"
	"github.com/archivelabs/ragdex/internal/core/ports/driven"
)

func TestLifecycleLazyLoad(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	// Nothing loads at construction.
	assert.Zero(t, h.embedder.embedCalls)

	require.NoError(t, h.lifecycle.Setup(ctx))
	first, err := h.lifecycle.Embedder(ctx)
	require.NoError(t, err)
	second, err := h.lifecycle.Embedder(ctx)
	require.NoError(t, err)

	// Same instance both times.
	assert.Same(t, first, second)
}

func TestLifecycleSetupFailsOnUnreachableProvider(t *testing.T) {
	h := newHarness(t)
	h.embedder.pingErr = fmt.Errorf("connection refused")

	err := h.lifecycle.Setup(context.Background())
	assert.True(t, errors.Is(err, domain.ErrEmbeddingUnavailable))
}

func TestLifecycleFactoryFailure(t *testing.T) {
	lifecycle := NewLifecycleManager(
		func(ctx context.Context) (driven.EmbeddingService, error) {
			return nil, fmt.Errorf("no provider configured")
		},
		NewMetadataCache(nil), nil, nil, domain.Layout{}, 4,
	)

	err := lifecycle.Setup(context.Background())
	assert.True(t, errors.Is(err, domain.ErrEmbeddingUnavailable))
}

func TestLifecycleUnloadReleasesEmbedder(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.NoError(t, h.lifecycle.Setup(ctx))
	require.NoError(t, h.lifecycle.Unload())
	assert.True(t, h.embedder.closed)
}

func TestLifecycleReloadKeepsEmbedder(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.NoError(t, h.lifecycle.Setup(ctx))
	h.lifecycle.Reload()
	assert.False(t, h.embedder.closed)
}

func TestLifecycleReloadClearsMetadataCache(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	path := h.addDocument(t, "a.txt", "alpha content")
	require.NoError(t, h.indexer.IndexOne(ctx, mustGet(t, h, path)))
	require.NotZero(t, h.indexer.metadata.Len())

	h.lifecycle.Reload()
	assert.Zero(t, h.indexer.metadata.Len())
}

func TestLifecycleClearRefreshesActiveSet(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	path := h.addDocument(t, "a.txt", "alpha content")

	ids, err := h.lifecycle.ActiveDocumentIDs(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, domain.DocumentID(path))

	// Deactivation is invisible until Clear.
	require.NoError(t, h.catalog.SetActive(ctx, path, false))
	ids, err = h.lifecycle.ActiveDocumentIDs(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, domain.DocumentID(path))

	h.lifecycle.Clear()
	ids, err = h.lifecycle.ActiveDocumentIDs(ctx)
	require.NoError(t, err)
	assert.NotContains(t, ids, domain.DocumentID(path))
}

func TestLifecycleUnifiedHandleCreatedOnFirstUse(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	index, chunks, err := h.lifecycle.UnifiedHandle(ctx)
	require.NoError(t, err)
	require.NotNil(t, index)
	assert.Empty(t, chunks)
}
