// Package mcp provides an MCP (Model Context Protocol) server adapter for ragdex.
// It lets AI assistants drive indexing and retrieval over the local corpus.
package mcp

import "errors"

// ErrMissingIndexManager is returned when the index manager is not provided.
var ErrMissingIndexManager = errors.New("mcp: index manager is required")
