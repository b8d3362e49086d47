package driven

import (
	"context"

	"github.com/archivelabs/ragdex/internal/core/domain"
)

// PostProcessor is one stage of the chunking pipeline. The first stage
// sees nil chunks and is expected to create them from the document;
// later stages (metadata stamping and the like) refine what they get.
type PostProcessor interface {
	// Name identifies the processor in errors and configuration.
	Name() string

	// Process transforms the chunk set for the given document.
	Process(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error)
}

// PostProcessorPipeline turns a document into its final chunk set by
// running every configured stage in order.
type PostProcessorPipeline interface {
	Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error)
}
