package chunker

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archivelabs/ragdex/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		p := New()
		assert.Equal(t, DefaultChunkSize, p.chunkSize)
		assert.Equal(t, DefaultChunkOverlap, p.overlap)
	})

	t.Run("custom size and overlap", func(t *testing.T) {
		p := New(WithChunkSize(500), WithOverlap(100))
		assert.Equal(t, 500, p.chunkSize)
		assert.Equal(t, 100, p.overlap)
	})

	t.Run("overlap exceeding chunk size is reduced", func(t *testing.T) {
		p := New(WithChunkSize(100), WithOverlap(150))
		assert.Less(t, p.overlap, p.chunkSize)
	})

	t.Run("zero values ignored", func(t *testing.T) {
		p := New(WithChunkSize(0), WithOverlap(-1))
		assert.Equal(t, DefaultChunkSize, p.chunkSize)
		assert.Equal(t, DefaultChunkOverlap, p.overlap)
	})
}

func TestName(t *testing.T) {
	assert.Equal(t, "chunker", New().Name())
}

func TestProcess_EmptyContent(t *testing.T) {
	p := New()

	chunks, err := p.Process(context.Background(), &domain.Document{ID: "doc"}, nil)

	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestProcess_SmallContent(t *testing.T) {
	p := New(WithChunkSize(100), WithOverlap(20))
	doc := &domain.Document{
		ID:      "doc",
		Content: "This is a small piece of content.",
	}

	chunks, err := p.Process(context.Background(), doc, nil)

	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, doc.Content, chunks[0].Content)
	assert.Equal(t, "doc", chunks[0].DocumentID)
	assert.Equal(t, 0, chunks[0].Position)
	assert.NotNil(t, chunks[0].Metadata)
}

func TestProcess_LargeContent(t *testing.T) {
	p := New(WithChunkSize(100), WithOverlap(20))
	doc := &domain.Document{
		ID:      "doc",
		Content: strings.Repeat("x", 250),
	}

	chunks, err := p.Process(context.Background(), doc, nil)

	require.NoError(t, err)
	require.GreaterOrEqual(t, len(chunks), 2)

	// No whitespace: boundaries stay at the configured size
	assert.Len(t, chunks[0].Content, 100)

	seen := make(map[string]bool)
	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.Position)
		assert.Equal(t, "doc", chunk.DocumentID)
		assert.False(t, seen[chunk.ID], "chunk IDs must be unique")
		seen[chunk.ID] = true
	}
}

func TestProcess_ExactChunkSize(t *testing.T) {
	p := New(WithChunkSize(50), WithOverlap(0))
	doc := &domain.Document{
		ID:      "doc",
		Content: strings.Repeat("a", 100),
	}

	chunks, err := p.Process(context.Background(), doc, nil)

	require.NoError(t, err)
	assert.Len(t, chunks, 2)
}

func TestProcess_OverlapCarriesBoundaryText(t *testing.T) {
	p := New(WithChunkSize(10), WithOverlap(3))
	doc := &domain.Document{
		ID:      "doc",
		Content: "0123456789ABCDEFGHIJ",
	}

	chunks, err := p.Process(context.Background(), doc, nil)

	require.NoError(t, err)
	require.GreaterOrEqual(t, len(chunks), 2)
	assert.Len(t, chunks[0].Content, 10)
	// Step is size-overlap, so the next chunk re-covers the tail
	assert.Equal(t, "789ABCDEFG", chunks[1].Content)
}

func TestProcess_SnapsToWordBoundary(t *testing.T) {
	p := New(WithChunkSize(20), WithOverlap(0))
	doc := &domain.Document{
		ID:      "doc",
		Content: "alpha beta gamma delta epsilon",
	}

	chunks, err := p.Process(context.Background(), doc, nil)

	require.NoError(t, err)
	require.GreaterOrEqual(t, len(chunks), 2)
	// A naive cut at 20 would split "delta"; the boundary snaps back
	assert.Equal(t, "alpha beta gamma ", chunks[0].Content)
}

func TestProcess_IgnoresInputChunks(t *testing.T) {
	p := New(WithChunkSize(100))
	existing := []domain.Chunk{{ID: "existing", Content: "ignored"}}
	doc := &domain.Document{ID: "doc", Content: "New content to chunk"}

	chunks, err := p.Process(context.Background(), doc, existing)

	require.NoError(t, err)
	for _, chunk := range chunks {
		assert.NotEqual(t, "existing", chunk.ID)
	}
}
