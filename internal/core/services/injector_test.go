package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archivelabs/ragdex/internal/core/domain"
)

func TestInjectText(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.NoError(t, h.injector.InjectText(ctx, "some pasted conversation content", "scratch"))

	chunks, err := readChunkFile(h.layout.UnifiedDir())
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.Empty(t, c.DocumentID)
		assert.Equal(t, "scratch", c.Metadata["source_name"])
	}
}

func TestInjectTextEmpty(t *testing.T) {
	h := newHarness(t)

	err := h.injector.InjectText(context.Background(), "   ", "scratch")
	assert.True(t, errors.Is(err, domain.ErrEmptyDocument))
}

func TestInjectAccumulates(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.NoError(t, h.injector.InjectText(ctx, "first injected note", "one"))
	require.NoError(t, h.injector.InjectText(ctx, "second injected note", "two"))

	chunks, err := readChunkFile(h.layout.UnifiedDir())
	require.NoError(t, err)
	assert.Len(t, chunks, 2)
}

func TestInjectFile(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	path := h.addDocument(t, "page.md", "# Saved Page\n\nBody of the saved page.")
	require.NoError(t, h.injector.InjectFile(ctx, path))

	chunks, err := readChunkFile(h.layout.UnifiedDir())
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	assert.Empty(t, chunks[0].DocumentID)
	assert.Equal(t, path, chunks[0].Metadata["source_path"])

	// Injection never touches the catalog's indexed state.
	assert.False(t, mustGet(t, h, path).Indexed)
}

func TestInjectBytes(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	err := h.injector.InjectBytes(ctx, []byte("<html><body><p>fetched page</p></body></html>"), "example.com", ".html")
	require.NoError(t, err)

	chunks, err := readChunkFile(h.layout.UnifiedDir())
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	assert.Contains(t, chunks[0].Content, "fetched page")
}

func TestInjectBytesUnsupportedFormat(t *testing.T) {
	h := newHarness(t)

	err := h.injector.InjectBytes(context.Background(), []byte("data"), "blob", "xyz")
	assert.True(t, errors.Is(err, domain.ErrUnsupportedFormat))
}

func TestInjectedContentSearchable(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.NoError(t, h.injector.InjectText(ctx, "ephemeral note about connection pooling", "note"))

	orch := h.orchestrator(nil, nil)
	results, err := orch.Search(ctx, "connection pooling", 5)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.True(t, results[0].Unified)
}
