// Package chunker splits document text into overlapping chunks sized
// for embedding.
package chunker

import (
	"context"

	"github.com/google/uuid"

	"github.com/archivelabs/ragdex/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// Processor splits document content into overlapping chunks. Chunk
// boundaries snap back to the nearest whitespace so words are not cut
// mid-way, which keeps embeddings of boundary text meaningful.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Overlap must leave room to advance
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the document content into chunks. Input chunks are
// ignored; this processor creates new chunks from document content.
// Empty content produces no chunks.
func (p *Processor) Process(_ context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	content := doc.Content
	if content == "" {
		return nil, nil
	}

	chunks := make([]domain.Chunk, 0, len(content)/p.chunkSize+1)

	position := 0
	start := 0
	for start < len(content) {
		end := start + p.chunkSize
		last := false
		if end >= len(content) {
			end = len(content)
			last = true
		} else {
			end = snapToBoundary(content, start, end, p.chunkSize/4)
		}

		chunks = append(chunks, domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Content:    content[start:end],
			Position:   position,
			Metadata:   make(map[string]any),
		})
		position++

		if last {
			break
		}
		next := end - p.overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks, nil
}

// snapToBoundary walks back from end to the nearest whitespace within
// window, so a chunk ends between words. Returns end unchanged when
// the window holds no whitespace.
func snapToBoundary(content string, start, end, window int) int {
	limit := end - window
	if limit <= start {
		limit = start + 1
	}
	for i := end; i > limit; i-- {
		switch content[i-1] {
		case ' ', '\n', '\t':
			return i
		}
	}
	return end
}
