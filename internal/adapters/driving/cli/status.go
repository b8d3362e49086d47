package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show indexing state and the index inventory",
	Long: `Prints the current indexing state, how many documents await
indexing, and the inventory of persisted per-document indexes.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Index == nil {
		return errors.New("index service not configured")
	}

	ctx := cmd.Context()

	work, err := services.Index.ScanForWork(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	type indexInfo struct {
		DocumentID string `json:"document_id"`
		SourcePath string `json:"source_path"`
		ChunkCount int    `json:"chunk_count"`
	}
	var indexes []indexInfo

	if services.Registry != nil {
		if err := services.Registry.Load(ctx); err != nil {
			return fmt.Errorf("loading registry: %w", err)
		}
		entries, err := services.Registry.Entries(ctx)
		if err != nil {
			return fmt.Errorf("listing registry: %w", err)
		}
		for _, e := range entries {
			indexes = append(indexes, indexInfo{
				DocumentID: e.DocumentID,
				SourcePath: e.SourcePath,
				ChunkCount: e.ChunkCount,
			})
		}
	}

	if statusJSON {
		out := struct {
			State   string      `json:"state"`
			Pending int         `json:"pending"`
			Indexes []indexInfo `json:"indexes"`
		}{
			State:   services.Index.Status().String(),
			Pending: len(work),
			Indexes: indexes,
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("State:   %s\n", services.Index.Status())
	cmd.Printf("Pending: %d document(s)\n", len(work))
	cmd.Printf("Indexed: %d document(s)\n", len(indexes))
	if len(indexes) > 0 {
		cmd.Println()
		for _, info := range indexes {
			cmd.Printf("  %s  %4d chunks  %s\n", info.DocumentID, info.ChunkCount, info.SourcePath)
		}
	}
	return nil
}
