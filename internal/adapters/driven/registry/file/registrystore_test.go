package file

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archivelabs/ragdex/internal/core/domain"
)

func testEntry(id string) domain.RegistryEntry {
	return domain.RegistryEntry{
		DocumentID: id,
		SourcePath: "/docs/" + id + ".md",
		ChunkCount: 3,
		IndexDir:   "/index/docs/" + id,
		IndexedAt:  time.Now().UTC().Truncate(time.Second),
	}
}

func TestRegistryLoadMissingFile(t *testing.T) {
	store := NewRegistryStore(filepath.Join(t.TempDir(), "registry.json"))

	err := store.Load(context.Background())
	require.NoError(t, err)

	entries, err := store.Entries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRegistryUpsertAndEntry(t *testing.T) {
	store := NewRegistryStore(filepath.Join(t.TempDir(), "registry.json"))
	ctx := context.Background()
	require.NoError(t, store.Load(ctx))

	entry := testEntry("doc1")
	require.NoError(t, store.Upsert(ctx, entry))

	got, err := store.Entry(ctx, "doc1")
	require.NoError(t, err)
	assert.Equal(t, entry, *got)

	_, err = store.Entry(ctx, "doc2")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRegistryUpsertRejectsEmptyID(t *testing.T) {
	store := NewRegistryStore(filepath.Join(t.TempDir(), "registry.json"))

	err := store.Upsert(context.Background(), domain.RegistryEntry{SourcePath: "/docs/a.md"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestRegistryUpsertReplaces(t *testing.T) {
	store := NewRegistryStore(filepath.Join(t.TempDir(), "registry.json"))
	ctx := context.Background()
	require.NoError(t, store.Load(ctx))

	first := testEntry("doc1")
	require.NoError(t, store.Upsert(ctx, first))

	second := first
	second.ChunkCount = 9
	require.NoError(t, store.Upsert(ctx, second))

	got, err := store.Entry(ctx, "doc1")
	require.NoError(t, err)
	assert.Equal(t, 9, got.ChunkCount)

	entries, err := store.Entries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRegistryPersistAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	ctx := context.Background()

	store := NewRegistryStore(path)
	require.NoError(t, store.Load(ctx))
	require.NoError(t, store.Upsert(ctx, testEntry("doc1")))
	require.NoError(t, store.Upsert(ctx, testEntry("doc2")))
	require.NoError(t, store.Persist(ctx))

	reloaded := NewRegistryStore(path)
	require.NoError(t, reloaded.Load(ctx))

	entries, err := reloaded.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "doc1", entries[0].DocumentID)
	assert.Equal(t, "doc2", entries[1].DocumentID)
}

func TestRegistryEntriesSorted(t *testing.T) {
	store := NewRegistryStore(filepath.Join(t.TempDir(), "registry.json"))
	ctx := context.Background()
	require.NoError(t, store.Load(ctx))

	require.NoError(t, store.Upsert(ctx, testEntry("zeta")))
	require.NoError(t, store.Upsert(ctx, testEntry("alpha")))
	require.NoError(t, store.Upsert(ctx, testEntry("mike")))

	entries, err := store.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "alpha", entries[0].DocumentID)
	assert.Equal(t, "mike", entries[1].DocumentID)
	assert.Equal(t, "zeta", entries[2].DocumentID)
}
