package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archivelabs/ragdex/internal/core/domain"
)

func TestIndexOnePersistsArtifacts(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	path := h.addDocument(t, "a.txt", "alpha content for the index")
	require.NoError(t, h.indexer.IndexOne(ctx, mustGet(t, h, path)))

	documentID := domain.DocumentID(path)
	indexDir := h.layout.DocumentDir(documentID)

	// Index directory holds the vectors and the chunk sidecar.
	_, err := os.Stat(filepath.Join(indexDir, ChunkFileName))
	require.NoError(t, err)

	chunks, err := readChunkFile(indexDir)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.Equal(t, documentID, c.DocumentID)
		assert.NotEmpty(t, c.ID)
		assert.Equal(t, path, c.Metadata["source_path"])
	}

	// Registry records the artifact.
	entry, err := h.registry.Entry(ctx, documentID)
	require.NoError(t, err)
	assert.Equal(t, path, entry.SourcePath)
	assert.Equal(t, len(chunks), entry.ChunkCount)
	assert.Equal(t, indexDir, entry.IndexDir)

	// Catalog is marked indexed with the content hash.
	catEntry := mustGet(t, h, path)
	assert.True(t, catEntry.Indexed)
	hash, err := domain.HashFile(path)
	require.NoError(t, err)
	assert.Equal(t, hash, catEntry.ContentHash)
}

func TestIndexOneReindexReplacesArtifact(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	path := h.addDocument(t, "a.txt", "first version")
	require.NoError(t, h.indexer.IndexOne(ctx, mustGet(t, h, path)))

	require.NoError(t, os.WriteFile(path, []byte("second version with different text"), 0o600))
	require.NoError(t, h.indexer.IndexOne(ctx, mustGet(t, h, path)))

	chunks, err := readChunkFile(h.layout.DocumentDir(domain.DocumentID(path)))
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.Contains(t, c.Content, "second version")
	}
}

func TestIndexOneMissingFile(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	path := h.addDocument(t, "a.txt", "content")
	entry := mustGet(t, h, path)
	require.NoError(t, os.Remove(path))

	err := h.indexer.IndexOne(ctx, entry)
	assert.True(t, errors.Is(err, domain.ErrMissingFile))

	// Catalog state is untouched on failure.
	assert.False(t, mustGet(t, h, path).Indexed)
}

func TestIndexOneUnsupportedFormat(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	path := h.addDocument(t, "binary.xyz", "not indexable")

	err := h.indexer.IndexOne(ctx, mustGet(t, h, path))
	assert.True(t, errors.Is(err, domain.ErrUnsupportedFormat))
}

func TestIndexOneEmptyDocument(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	path := h.addDocument(t, "empty.txt", "   \n\t  ")

	err := h.indexer.IndexOne(ctx, mustGet(t, h, path))
	assert.True(t, errors.Is(err, domain.ErrEmptyDocument))
	assert.False(t, mustGet(t, h, path).Indexed)
}

func TestIndexOneEmbeddingFailureLeavesStateIntact(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	path := h.addDocument(t, "a.txt", "first version")
	require.NoError(t, h.indexer.IndexOne(ctx, mustGet(t, h, path)))
	previousHash := mustGet(t, h, path).ContentHash

	require.NoError(t, os.WriteFile(path, []byte("poisoned content"), 0o600))
	h.embedder.failTexts["poisoned"] = true

	err := h.indexer.IndexOne(ctx, mustGet(t, h, path))
	require.Error(t, err)

	// The previous artifact and catalog hash survive the failure.
	assert.Equal(t, previousHash, mustGet(t, h, path).ContentHash)
	chunks, err := readChunkFile(h.layout.DocumentDir(domain.DocumentID(path)))
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	assert.Contains(t, chunks[0].Content, "first version")
}
