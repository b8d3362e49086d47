// Package archive extracts text from ZIP packages of documents.
// Each readable member is converted with the registry's own readers
// and the results are concatenated in member order.
package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/archivelabs/ragdex/internal/core/domain"
	"github.com/archivelabs/ragdex/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.Reader = (*Reader)(nil)

// Reader handles ZIP archives of text documents. It needs the parent
// registry to convert individual members.
type Reader struct {
	registry driven.ReaderRegistry
}

// New creates an archive reader dispatching members through registry.
func New(registry driven.ReaderRegistry) *Reader {
	return &Reader{registry: registry}
}

// Formats returns the format keys this reader handles.
func (r *Reader) Formats() []string {
	return []string{"zip"}
}

// Read extracts every supported member and concatenates their text.
// Unsupported members are skipped; an archive with no readable member
// yields empty content, which the indexer reports as an empty
// document.
func (r *Reader) Read(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	zr, err := zip.NewReader(bytes.NewReader(raw.Data), int64(len(raw.Data)))
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	var (
		sb      strings.Builder
		members []string
	)
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		// No recursion into nested archives
		if strings.EqualFold(filepath.Ext(f.Name), ".zip") {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			continue
		}

		doc, err := r.registry.Read(ctx, &domain.RawDocument{
			Name:   f.Name,
			Format: strings.ToLower(strings.TrimPrefix(filepath.Ext(f.Name), ".")),
			Data:   data,
		})
		if err != nil {
			if errors.Is(err, domain.ErrUnsupportedFormat) {
				continue
			}
			continue
		}
		if doc.Content == "" {
			continue
		}

		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(doc.Content)
		members = append(members, f.Name)
	}

	return &domain.Document{
		Path:    raw.Path,
		Title:   titleFromName(raw.SourceName()),
		Content: strings.TrimSpace(sb.String()),
		Metadata: map[string]any{
			"source_name": raw.SourceName(),
			"format":      "archive",
			"members":     members,
		},
		ReadAt: time.Now(),
	}, nil
}

// titleFromName turns a file name into a readable title.
func titleFromName(name string) string {
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return name
}
