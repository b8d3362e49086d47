package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/archivelabs/ragdex/internal/core/domain"
	"github.com/archivelabs/ragdex/internal/core/ports/driven"
)

// fakeEmbedder produces deterministic embeddings from text so tests
// can assert similarity ordering without a real provider.
type fakeEmbedder struct {
	mu         sync.Mutex
	dimensions int
	pingErr    error
	failTexts  map[string]bool
	embedCalls int
	closed     bool
}

var _ driven.EmbeddingService = (*fakeEmbedder)(nil)

func newFakeEmbedder() *fakeEmbedder {
	return &fakeEmbedder{dimensions: 4, failTexts: make(map[string]bool)}
}

// vectorFor maps text onto the unit sphere from simple byte stats:
// identical text yields identical vectors, similar prefixes yield
// nearby vectors.
func (f *fakeEmbedder) vectorFor(text string) []float32 {
	var sum, alpha, digit, space float64
	for _, r := range text {
		sum += float64(r % 31)
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			alpha++
		case r >= '0' && r <= '9':
			digit++
		case r == ' ':
			space++
		}
	}
	vec := []float32{float32(sum), float32(alpha), float32(digit), float32(space + 1)}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embedCalls++
	for marker := range f.failTexts {
		if strings.Contains(text, marker) {
			return nil, fmt.Errorf("embedding rejected")
		}
	}
	return f.vectorFor(text), nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := f.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (f *fakeEmbedder) Dimensions() int { return f.dimensions }

func (f *fakeEmbedder) ModelName() string { return "fake-embed" }

func (f *fakeEmbedder) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeEmbedder) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// failingCatalog wraps another catalog and fails listing.
type failingCatalog struct {
	driven.DocumentCatalog
}

func (c *failingCatalog) ListCandidates(ctx context.Context, activeOnly bool) ([]domain.CatalogEntry, error) {
	return nil, errListFailed
}

var errListFailed = errors.New("catalog unavailable")
