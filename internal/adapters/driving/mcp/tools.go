package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/archivelabs/ragdex/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query to find relevant passages"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID string  `json:"document_id,omitempty"`
	SourcePath string  `json:"source_path,omitempty"`
	Score      float64 `json:"score"`
	Unified    bool    `json:"unified"`
	Content    string  `json:"content"`
}

// IndexAllInput is the input schema for the index_all tool.
type IndexAllInput struct{}

// IndexAllOutput is the output schema for the index_all tool.
type IndexAllOutput struct {
	State     string `json:"state"`
	Total     int    `json:"total"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	Message   string `json:"message"`
}

// IndexStatusInput is the input schema for the index_status tool.
type IndexStatusInput struct{}

// IndexStatusOutput is the output schema for the index_status tool.
type IndexStatusOutput struct {
	State   string `json:"state"`
	Pending int    `json:"pending"`
}

// InjectTextInput is the input schema for the inject_text tool.
type InjectTextInput struct {
	Content    string `json:"content" jsonschema:"the text content to add to the unified index"`
	SourceName string `json:"source_name" jsonschema:"a display name identifying where the content came from"`
}

// InjectTextOutput is the output schema for the inject_text tool.
type InjectTextOutput struct {
	Injected bool `json:"injected"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search indexed documents and injected content",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "index_all",
		Description: "Index every catalogued document that is new or changed",
	}, s.handleIndexAll)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "index_status",
		Description: "Report the indexing state and how many documents await indexing",
	}, s.handleIndexStatus)

	if s.ports.Injector != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "inject_text",
			Description: "Add ad-hoc text (a web page, a note) to the searchable unified index",
		}, s.handleInjectText)
	}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	results, err := s.ports.Index.Search(ctx, input.Query, limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		sourcePath, _ := results[i].Chunk.Metadata["source_path"].(string)
		output.Results[i] = SearchResultOutput{
			DocumentID: results[i].Chunk.DocumentID,
			SourcePath: sourcePath,
			Score:      results[i].Score,
			Unified:    results[i].Unified,
			Content:    results[i].Chunk.Content,
		}
	}

	return nil, output, nil
}

// handleIndexAll handles the index_all tool invocation.
func (s *Server) handleIndexAll(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ IndexAllInput,
) (*mcp.CallToolResult, IndexAllOutput, error) {
	result, err := s.ports.Index.IndexAll(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrIndexingInProgress) {
			return nil, IndexAllOutput{
				State:   s.ports.Index.Status().String(),
				Message: "an indexing run is already active",
			}, nil
		}
		return nil, IndexAllOutput{}, err
	}

	return nil, IndexAllOutput{
		State:     result.State.String(),
		Total:     result.Total,
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
		Message:   result.Message,
	}, nil
}

// handleIndexStatus handles the index_status tool invocation.
func (s *Server) handleIndexStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ IndexStatusInput,
) (*mcp.CallToolResult, IndexStatusOutput, error) {
	output := IndexStatusOutput{
		State: s.ports.Index.Status().String(),
	}

	// Pending count is best effort; a busy run skips it.
	if output.State != domain.BatchScanning.String() && output.State != domain.BatchIndexing.String() {
		work, err := s.ports.Index.ScanForWork(ctx)
		if err != nil {
			return nil, IndexStatusOutput{}, fmt.Errorf("scanning for work: %w", err)
		}
		output.Pending = len(work)
	}

	return nil, output, nil
}

// handleInjectText handles the inject_text tool invocation.
func (s *Server) handleInjectText(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input InjectTextInput,
) (*mcp.CallToolResult, InjectTextOutput, error) {
	if input.SourceName == "" {
		return nil, InjectTextOutput{}, fmt.Errorf("%w: source_name is required", domain.ErrInvalidInput)
	}

	if err := s.ports.Injector.InjectText(ctx, input.Content, input.SourceName); err != nil {
		return nil, InjectTextOutput{}, err
	}
	return nil, InjectTextOutput{Injected: true}, nil
}
