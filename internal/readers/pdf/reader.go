// Package pdf extracts text from PDF documents by shelling out to
// the poppler pdftotext tool. The command runner is an interface so
// tests can substitute canned output.
package pdf

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/archivelabs/ragdex/internal/core/domain"
	"github.com/archivelabs/ragdex/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.Reader = (*Reader)(nil)

// CommandRunner executes an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Reader handles PDF documents via pdftotext.
type Reader struct {
	runner CommandRunner
}

// New creates a PDF reader using the system pdftotext binary.
func New() *Reader {
	return &Reader{runner: execRunner{}}
}

// NewWithRunner creates a PDF reader with a custom command runner.
func NewWithRunner(runner CommandRunner) *Reader {
	return &Reader{runner: runner}
}

// Formats returns the format keys this reader handles.
func (r *Reader) Formats() []string {
	return []string{"pdf"}
}

// Read extracts the PDF's text layer. When the raw document has no
// on-disk path (injected bytes), the data is staged in a temp file
// first, since pdftotext reads from a path.
func (r *Reader) Read(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	path := raw.Path
	if path == "" {
		tmp, err := os.CreateTemp("", "ragdex-*.pdf")
		if err != nil {
			return nil, fmt.Errorf("stage pdf bytes: %w", err)
		}
		defer os.Remove(tmp.Name())

		if _, err := tmp.Write(raw.Data); err != nil {
			tmp.Close()
			return nil, fmt.Errorf("stage pdf bytes: %w", err)
		}
		tmp.Close()
		path = tmp.Name()
	}

	// -layout keeps column text in reading order; "-" writes to stdout
	out, err := r.runner.Run(ctx, "pdftotext", "-layout", path, "-")
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}

	content := strings.TrimSpace(string(out))

	name := raw.SourceName()
	title := name
	if ext := filepath.Ext(title); ext != "" {
		title = strings.TrimSuffix(title, ext)
	}
	title = strings.ReplaceAll(title, "_", " ")
	title = strings.ReplaceAll(title, "-", " ")

	return &domain.Document{
		Path:    raw.Path,
		Title:   title,
		Content: content,
		Metadata: map[string]any{
			"source_name": name,
			"format":      "pdf",
		},
		ReadAt: time.Now(),
	}, nil
}
