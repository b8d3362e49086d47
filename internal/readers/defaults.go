package readers

import (
	"github.com/archivelabs/ragdex/internal/readers/archive"
	"github.com/archivelabs/ragdex/internal/readers/epub"
	htmlreader "github.com/archivelabs/ragdex/internal/readers/html"
	"github.com/archivelabs/ragdex/internal/readers/markdown"
	"github.com/archivelabs/ragdex/internal/readers/pdf"
	"github.com/archivelabs/ragdex/internal/readers/plaintext"
)

// DefaultRegistry builds a registry with all built-in readers:
// Markdown, HTML, plain text, PDF, EPUB, and ZIP archives.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(markdown.New())
	r.Register(htmlreader.New())
	r.Register(plaintext.New())
	r.Register(pdf.New())
	r.Register(epub.New())
	// The archive reader re-enters the registry for its members.
	r.Register(archive.New(r))
	return r
}
