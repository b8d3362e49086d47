package epub

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archivelabs/ragdex/internal/core/domain"
)

// buildEPUB assembles a minimal EPUB container from name/content
// pairs.
func buildEPUB(t *testing.T, members map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range members {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

const testOPF = `<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>The Go Workbook</dc:title>
    <dc:creator>A. Gopher</dc:creator>
  </metadata>
</package>`

func TestFormats(t *testing.T) {
	reader := New()
	assert.Equal(t, []string{"epub"}, reader.Formats())
}

func TestRead_Success(t *testing.T) {
	data := buildEPUB(t, map[string]string{
		"content.opf":            testOPF,
		"OEBPS/ch001.xhtml":      "<html><body><p>Chapter one text.</p></body></html>",
		"OEBPS/ch002.xhtml":      "<html><body><p>Chapter two text.</p></body></html>",
		"META-INF/container.xml": "<container/>",
	})

	reader := New()
	doc, err := reader.Read(context.Background(), &domain.RawDocument{
		Path: "/books/workbook.epub",
		Data: data,
	})

	require.NoError(t, err)
	assert.Equal(t, "The Go Workbook", doc.Title)
	assert.Equal(t, "A. Gopher", doc.Metadata["author"])
	assert.Contains(t, doc.Content, "Chapter one text.")
	assert.Contains(t, doc.Content, "Chapter two text.")
	assert.Equal(t, "epub", doc.Metadata["format"])
}

func TestRead_ChaptersInNameOrder(t *testing.T) {
	data := buildEPUB(t, map[string]string{
		"b.xhtml": "<p>Second</p>",
		"a.xhtml": "<p>First</p>",
	})

	reader := New()
	doc, err := reader.Read(context.Background(), &domain.RawDocument{
		Name: "book.epub",
		Data: data,
	})

	require.NoError(t, err)
	assert.Equal(t, "First\n\nSecond", doc.Content)
}

func TestRead_NoOPFFallsBackToFileName(t *testing.T) {
	data := buildEPUB(t, map[string]string{
		"ch1.xhtml": "<p>Text</p>",
	})

	reader := New()
	doc, err := reader.Read(context.Background(), &domain.RawDocument{
		Name: "my-favourite_book.epub",
		Data: data,
	})

	require.NoError(t, err)
	assert.Equal(t, "my favourite book", doc.Title)
	_, hasAuthor := doc.Metadata["author"]
	assert.False(t, hasAuthor)
}

func TestRead_NilDocument(t *testing.T) {
	reader := New()

	doc, err := reader.Read(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, doc)
}

func TestRead_NotAZip(t *testing.T) {
	reader := New()

	doc, err := reader.Read(context.Background(), &domain.RawDocument{
		Name: "broken.epub",
		Data: []byte("definitely not a zip"),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, doc)
}
