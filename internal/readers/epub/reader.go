// Package epub extracts text from EPUB e-books. An EPUB is a ZIP
// container of XHTML spine documents plus OPF metadata.
package epub

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/archivelabs/ragdex/internal/core/domain"
	"github.com/archivelabs/ragdex/internal/core/ports/driven"
	"github.com/archivelabs/ragdex/internal/readers/html"
)

// Ensure Reader implements the interface.
var _ driven.Reader = (*Reader)(nil)

// Reader handles EPUB documents.
type Reader struct{}

// New creates a new EPUB reader.
func New() *Reader {
	return &Reader{}
}

// Formats returns the format keys this reader handles.
func (r *Reader) Formats() []string {
	return []string{"epub"}
}

// Read extracts text from every XHTML member in archive order, and
// title/author from the OPF package metadata when present.
func (r *Reader) Read(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	zr, err := zip.NewReader(bytes.NewReader(raw.Data), int64(len(raw.Data)))
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	title, author := extractOPFMetadata(zr)
	if title == "" {
		title = titleFromName(raw.SourceName())
	}

	content := extractSpineText(zr)

	meta := map[string]any{
		"source_name": raw.SourceName(),
		"format":      "epub",
	}
	if author != "" {
		meta["author"] = author
	}

	return &domain.Document{
		Path:     raw.Path,
		Title:    title,
		Content:  content,
		Metadata: meta,
		ReadAt:   time.Now(),
	}, nil
}

// opfPackage is the subset of the OPF package document we care about.
type opfPackage struct {
	Metadata struct {
		Title   string `xml:"title"`
		Creator string `xml:"creator"`
	} `xml:"metadata"`
}

// extractOPFMetadata reads title and author from the first .opf member.
func extractOPFMetadata(zr *zip.Reader) (title, author string) {
	for _, f := range zr.File {
		if !strings.HasSuffix(strings.ToLower(f.Name), ".opf") {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return "", ""
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", ""
		}

		var pkg opfPackage
		if err := xml.Unmarshal(data, &pkg); err != nil {
			return "", ""
		}
		return strings.TrimSpace(pkg.Metadata.Title), strings.TrimSpace(pkg.Metadata.Creator)
	}
	return "", ""
}

// extractSpineText concatenates the text of all XHTML members in
// name order, which matches spine order for the common layouts.
func extractSpineText(zr *zip.Reader) string {
	var members []*zip.File
	for _, f := range zr.File {
		name := strings.ToLower(f.Name)
		if strings.HasSuffix(name, ".xhtml") || strings.HasSuffix(name, ".html") || strings.HasSuffix(name, ".htm") {
			members = append(members, f)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })

	var sb strings.Builder
	for _, f := range members {
		rc, err := f.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			continue
		}

		text := html.StripHTML(string(data))
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(text)
	}

	return strings.TrimSpace(sb.String())
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
