package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for ragdex resources.
const uriScheme = "ragdex://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource listing the persisted per-document indexes.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "registry",
		Name:        "registry",
		Description: "Inventory of persisted per-document indexes",
		MIMEType:    "application/json",
	}, s.handleRegistryResource)
}

// handleRegistryResource returns the registry entries as JSON.
func (s *Server) handleRegistryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Registry == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	if err := s.ports.Registry.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading registry: %w", err)
	}
	entries, err := s.ports.Registry.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing registry: %w", err)
	}

	// Build simplified entry list.
	type entryInfo struct {
		DocumentID string `json:"document_id"`
		SourcePath string `json:"source_path"`
		ChunkCount int    `json:"chunk_count"`
		IndexedAt  string `json:"indexed_at"`
	}

	infos := make([]entryInfo, len(entries))
	for i, e := range entries {
		infos[i] = entryInfo{
			DocumentID: e.DocumentID,
			SourcePath: e.SourcePath,
			ChunkCount: e.ChunkCount,
			IndexedAt:  e.IndexedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling registry: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
