package driving

import "context"

// Injector adds catalog-independent content to the unified index.
// No registry entry, no content-hash tracking, no catalog mutation:
// this path is for transient or externally-supplied content such as a
// web page visited during a conversation.
type Injector interface {
	// InjectText chunks and indexes plain text under sourceName.
	InjectText(ctx context.Context, content, sourceName string) error

	// InjectFile reads the file at path with the matching reader and
	// indexes its content.
	InjectFile(ctx context.Context, path string) error

	// InjectBytes indexes raw bytes using the reader for formatHint
	// (a file extension without the dot).
	InjectBytes(ctx context.Context, data []byte, sourceName, formatHint string) error
}
