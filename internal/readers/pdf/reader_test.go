package pdf

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archivelabs/ragdex/internal/core/domain"
)

// fakeRunner returns canned output and records the invocation.
type fakeRunner struct {
	output []byte
	err    error

	name string
	args []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.name = name
	f.args = args
	return f.output, f.err
}

func TestFormats(t *testing.T) {
	reader := New()
	assert.Equal(t, []string{"pdf"}, reader.Formats())
}

func TestRead_Success(t *testing.T) {
	runner := &fakeRunner{output: []byte("Extracted page text\n\n")}
	reader := NewWithRunner(runner)

	doc, err := reader.Read(context.Background(), &domain.RawDocument{
		Path: "/docs/annual_report.pdf",
		Data: []byte("%PDF-1.4 ..."),
	})

	require.NoError(t, err)
	assert.Equal(t, "Extracted page text", doc.Content)
	assert.Equal(t, "annual report", doc.Title)
	assert.Equal(t, "annual_report.pdf", doc.Metadata["source_name"])
	assert.Equal(t, "pdf", doc.Metadata["format"])

	assert.Equal(t, "pdftotext", runner.name)
	assert.Equal(t, []string{"-layout", "/docs/annual_report.pdf", "-"}, runner.args)
}

func TestRead_NilDocument(t *testing.T) {
	reader := NewWithRunner(&fakeRunner{})

	doc, err := reader.Read(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, doc)
}

func TestRead_CommandFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("exit status 1")}
	reader := NewWithRunner(runner)

	doc, err := reader.Read(context.Background(), &domain.RawDocument{
		Path: "/docs/broken.pdf",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "pdftotext")
	assert.Nil(t, doc)
}

func TestRead_PathlessBytesAreStaged(t *testing.T) {
	runner := &fakeRunner{output: []byte("injected pdf text")}
	reader := NewWithRunner(runner)

	doc, err := reader.Read(context.Background(), &domain.RawDocument{
		Name: "scan.pdf",
		Data: []byte("%PDF-1.4 ..."),
	})

	require.NoError(t, err)
	assert.Equal(t, "injected pdf text", doc.Content)
	assert.Empty(t, doc.Path)

	// pdftotext must have been pointed at the staged temp file
	require.Len(t, runner.args, 3)
	assert.NotEmpty(t, runner.args[1])
	assert.NotEqual(t, "/docs/scan.pdf", runner.args[1])
}
