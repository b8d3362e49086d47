package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/archivelabs/ragdex/internal/core/domain"
)

// ChunkFileName is the sidecar within each index directory that keeps
// chunk text and metadata alongside the vectors, so results can be
// resolved back to passages at retrieval time.
const ChunkFileName = "chunks.json"

// chunkRecord is the persisted chunk shape. Embeddings live in the
// vector index artifact and are not duplicated here.
type chunkRecord struct {
	ID         string         `json:"id"`
	DocumentID string         `json:"document_id,omitempty"`
	Content    string         `json:"content"`
	Position   int            `json:"position"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// writeChunkFile persists chunks to dir atomically (temp + rename).
func writeChunkFile(dir string, chunks []domain.Chunk) error {
	records := make([]chunkRecord, len(chunks))
	for i, c := range chunks {
		records[i] = chunkRecord{
			ID:         c.ID,
			DocumentID: c.DocumentID,
			Content:    c.Content,
			Position:   c.Position,
			Metadata:   c.Metadata,
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal chunks: %v", domain.ErrPersistFailed, err)
	}

	path := filepath.Join(dir, ChunkFileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistFailed, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistFailed, err)
	}
	return nil
}

// readChunkFile loads the sidecar from dir. A missing file yields an
// empty slice.
func readChunkFile(dir string) ([]domain.Chunk, error) {
	data, err := os.ReadFile(filepath.Join(dir, ChunkFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var records []chunkRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ChunkFileName, err)
	}

	chunks := make([]domain.Chunk, len(records))
	for i, r := range records {
		chunks[i] = domain.Chunk{
			ID:         r.ID,
			DocumentID: r.DocumentID,
			Content:    r.Content,
			Position:   r.Position,
			Metadata:   r.Metadata,
		}
	}
	return chunks, nil
}

// appendChunkFile extends the sidecar in dir with more chunks.
func appendChunkFile(dir string, chunks []domain.Chunk) error {
	existing, err := readChunkFile(dir)
	if err != nil {
		return err
	}
	return writeChunkFile(dir, append(existing, chunks...))
}
