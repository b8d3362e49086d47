package readers

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archivelabs/ragdex/internal/core/domain"
)

// stubReader answers for fixed formats and records the last raw
// document it received.
type stubReader struct {
	formats []string
	lastRaw *domain.RawDocument
}

func (s *stubReader) Formats() []string {
	return s.formats
}

func (s *stubReader) Read(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	s.lastRaw = raw
	return &domain.Document{
		Path:    raw.Path,
		Content: string(raw.Data),
		ReadAt:  time.Now(),
	}, nil
}

func TestRegistryDispatchesByFormat(t *testing.T) {
	registry := NewRegistry()
	reader := &stubReader{formats: []string{"md"}}
	registry.Register(reader)

	doc, err := registry.Read(context.Background(), &domain.RawDocument{
		Format: "md",
		Data:   []byte("# hi"),
	})

	require.NoError(t, err)
	assert.Equal(t, "# hi", doc.Content)
	assert.NotNil(t, reader.lastRaw)
}

func TestRegistryFormatIsCaseInsensitive(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&stubReader{formats: []string{"md"}})

	_, err := registry.Read(context.Background(), &domain.RawDocument{
		Format: "MD",
		Data:   []byte("x"),
	})

	assert.NoError(t, err)
}

func TestRegistryDerivesFormatFromPath(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&stubReader{formats: []string{"txt"}})

	_, err := registry.Read(context.Background(), &domain.RawDocument{
		Path: "/docs/notes.TXT",
		Data: []byte("x"),
	})

	assert.NoError(t, err)
}

func TestRegistryUnsupportedFormat(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Read(context.Background(), &domain.RawDocument{Format: "xyz"})

	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestRegistryNilDocument(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Read(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistryLaterRegistrationWins(t *testing.T) {
	registry := NewRegistry()
	first := &stubReader{formats: []string{"md"}}
	second := &stubReader{formats: []string{"md"}}
	registry.Register(first)
	registry.Register(second)

	_, err := registry.Read(context.Background(), &domain.RawDocument{Format: "md", Data: []byte("x")})

	require.NoError(t, err)
	assert.Nil(t, first.lastRaw)
	assert.NotNil(t, second.lastRaw)
}

func TestReadFile(t *testing.T) {
	registry := NewRegistry()
	reader := &stubReader{formats: []string{"txt"}}
	registry.Register(reader)

	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	doc, err := registry.ReadFile(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, path, doc.Path)
	assert.Equal(t, "hello", doc.Content)
	assert.Equal(t, "txt", reader.lastRaw.Format)
}

func TestReadFileMissing(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))

	assert.ErrorIs(t, err, domain.ErrMissingFile)
}

func TestSupportedFormatsSorted(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&stubReader{formats: []string{"txt", "md"}})
	registry.Register(&stubReader{formats: []string{"html"}})

	assert.Equal(t, []string{"html", "md", "txt"}, registry.SupportedFormats())
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, "md", FormatForPath("/docs/readme.md"))
	assert.Equal(t, "pdf", FormatForPath("Report.PDF"))
	assert.Equal(t, "", FormatForPath("/docs/LICENSE"))
}

func TestDefaultRegistryCoversBuiltinFormats(t *testing.T) {
	registry := DefaultRegistry()

	formats := registry.SupportedFormats()
	for _, format := range []string{"md", "html", "txt", "pdf", "epub", "zip"} {
		assert.Contains(t, formats, format)
	}
}
