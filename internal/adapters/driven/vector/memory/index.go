// Package memory implements the vector index ports with brute-force
// cosine similarity and JSON persistence. It serves small corpora and
// builds without cgo; the HNSW adapter replaces it when the native
// library is available.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/archivelabs/ragdex/internal/core/domain"
	"github.com/archivelabs/ragdex/internal/core/ports/driven"
)

// Ensure the interfaces are implemented.
var (
	_ driven.VectorIndex        = (*Index)(nil)
	_ driven.VectorIndexFactory = (*Factory)(nil)
)

// VectorFileName is the artifact file within an index directory.
const VectorFileName = "vectors.json"

// Factory creates and opens brute-force indexes persisted one per
// directory.
type Factory struct{}

// NewFactory returns a factory for brute-force vector indexes.
func NewFactory() *Factory {
	return &Factory{}
}

// Create makes a fresh index persisted under dir. Any previous
// artifact in dir is replaced.
func (f *Factory) Create(dir string, dimensions int) (driven.VectorIndex, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, VectorFileName)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return &Index{
		path:      path,
		dimension: dimensions,
		vectors:   make(map[string][]float32),
	}, nil
}

// Open loads an existing index from dir. Returns domain.ErrNotFound
// when no artifact exists there.
func (f *Factory) Open(dir string, dimensions int) (driven.VectorIndex, error) {
	path := filepath.Join(dir, VectorFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, err
	}

	var vectors map[string][]float32
	if err := json.Unmarshal(data, &vectors); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", VectorFileName, err)
	}

	return &Index{
		path:      path,
		dimension: dimensions,
		vectors:   vectors,
	}, nil
}

// Index is a brute-force cosine similarity index.
type Index struct {
	mu        sync.RWMutex
	path      string
	dimension int
	vectors   map[string][]float32
	closed    bool
}

// Insert adds a vector for the given chunk ID.
func (idx *Index) Insert(_ context.Context, chunkID string, embedding []float32) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.closed {
		return domain.ErrIndexClosed
	}
	if len(embedding) != idx.dimension {
		return fmt.Errorf("%w: embedding has %d dimensions, index expects %d",
			domain.ErrInvalidInput, len(embedding), idx.dimension)
	}

	copied := make([]float32, len(embedding))
	copy(copied, embedding)
	idx.vectors[chunkID] = copied
	return nil
}

// Search finds the k nearest neighbours by cosine similarity.
func (idx *Index) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.closed {
		return nil, domain.ErrIndexClosed
	}
	if len(query) != idx.dimension {
		return nil, fmt.Errorf("%w: query has %d dimensions, index expects %d",
			domain.ErrInvalidInput, len(query), idx.dimension)
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive", domain.ErrInvalidInput)
	}

	hits := make([]driven.VectorHit, 0, len(idx.vectors))
	for chunkID, vec := range idx.vectors {
		hits = append(hits, driven.VectorHit{
			ChunkID:    chunkID,
			Similarity: cosineSimilarity(query, vec),
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Similarity != hits[j].Similarity {
			return hits[i].Similarity > hits[j].Similarity
		}
		return hits[i].ChunkID < hits[j].ChunkID
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Save persists the index to its directory atomically.
func (idx *Index) Save(_ context.Context) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.closed {
		return domain.ErrIndexClosed
	}

	data, err := json.Marshal(idx.vectors)
	if err != nil {
		return fmt.Errorf("%w: marshal vectors: %v", domain.ErrPersistFailed, err)
	}

	tmp := idx.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistFailed, err)
	}
	if err := os.Rename(tmp, idx.path); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistFailed, err)
	}
	return nil
}

// Close releases the in-memory vectors without saving.
func (idx *Index) Close() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.closed = true
	idx.vectors = nil
	return nil
}

// Len returns the number of stored vectors.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.vectors)
}

// cosineSimilarity computes the cosine of the angle between a and b,
// mapped into 0-1 to match the HNSW adapter's score range.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return (cos + 1) / 2
}
