// Package postprocessors turns extracted document text into embeddable chunks.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/archivelabs/ragdex/internal/core/domain"
	"github.com/archivelabs/ragdex/internal/core/ports/driven"
)

// Pipeline runs a fixed sequence of post-processors over a document.
// The first stage is expected to produce chunks from the raw content;
// later stages refine or annotate what they receive.
type Pipeline struct {
	stages []driven.PostProcessor
}

// NewPipeline builds a pipeline that runs the given processors in order.
func NewPipeline(stages ...driven.PostProcessor) *Pipeline {
	return &Pipeline{stages: stages}
}

// Process feeds the document through every stage and returns the final
// chunk set. A stage failure aborts the run and names the stage.
func (p *Pipeline) Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", domain.ErrInvalidInput)
	}

	var chunks []domain.Chunk
	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var err error
		chunks, err = stage.Process(ctx, doc, chunks)
		if err != nil {
			return nil, fmt.Errorf("processor %s: %w", stage.Name(), err)
		}
	}

	return chunks, nil
}

// Add appends a stage to the end of the pipeline.
func (p *Pipeline) Add(stage driven.PostProcessor) {
	p.stages = append(p.stages, stage)
}

// Len reports how many stages the pipeline holds.
func (p *Pipeline) Len() int {
	return len(p.stages)
}
