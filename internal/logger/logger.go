// Package logger provides opt-in diagnostic logging for the ragdex CLI.
// With --verbose set, indexing and retrieval stages report what they
// are doing on stderr; otherwise every call is a cheap no-op.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

var (
	verbose atomic.Bool

	outMu  sync.Mutex
	output io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	verbose.Store(v)
}

// IsVerbose reports whether verbose mode is enabled.
func IsVerbose() bool {
	return verbose.Load()
}

// SetOutput redirects verbose logs away from stderr. Used in tests.
func SetOutput(w io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	output = w
}

// emit writes one tagged line when verbose mode is on.
func emit(tag, format string, args ...any) {
	if !verbose.Load() {
		return
	}
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(output, tag+format+"\n", args...)
}

// Debug prints a debug message in verbose mode.
func Debug(format string, args ...any) {
	emit("[DEBUG] ", format, args...)
}

// Section prints a visual divider in verbose mode, marking the start
// of a pipeline stage.
func Section(name string) {
	emit("\n=== ", "%s ===", name)
}

// Info prints an informational message in verbose mode.
func Info(format string, args ...any) {
	emit("[INFO] ", format, args...)
}

// Warn prints a warning in verbose mode.
func Warn(format string, args ...any) {
	emit("[WARN] ", format, args...)
}
