package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/archivelabs/ragdex/internal/adapters/driving/tui"
	"github.com/archivelabs/ragdex/internal/core/domain"
)

var (
	indexScanOnly bool
	indexPlain    bool
)

var indexCmd = &cobra.Command{
	Use:   "index [paths...]",
	Short: "Index new and changed documents",
	Long: `Scans the document catalogue and (re)indexes every document that is
new or whose content changed since its last index. Paths given as
arguments are added to the catalogue first.

Each document gets its own persisted index; a failure on one document
never blocks the others.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexScanOnly, "scan-only", false, "list documents needing indexing without indexing them")
	indexCmd.Flags().BoolVar(&indexPlain, "plain", false, "plain line output instead of the interactive progress view")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if services == nil || services.Index == nil {
		return errors.New("index service not configured")
	}

	ctx := cmd.Context()

	// Register argument paths in the catalogue first.
	for _, arg := range args {
		path, err := filepath.Abs(arg)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", arg, err)
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("%w: %s", domain.ErrMissingFile, path)
		}
		if err := services.Catalog.Add(ctx, path); err != nil {
			return fmt.Errorf("adding %s to catalogue: %w", path, err)
		}
	}

	if indexScanOnly {
		work, err := services.Index.ScanForWork(ctx)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
		if len(work) == 0 {
			cmd.Println("All documents are up to date.")
			return nil
		}
		cmd.Printf("%d document(s) need indexing:\n", len(work))
		for _, entry := range work {
			cmd.Printf("  %s\n", entry.Path)
		}
		return nil
	}

	interactive := !indexPlain && term.IsTerminal(int(os.Stdout.Fd()))
	if interactive {
		return runIndexInteractive(cmd)
	}
	return runIndexPlain(cmd)
}

// runIndexInteractive renders the run with the Bubble Tea progress
// view.
func runIndexInteractive(cmd *cobra.Command) error {
	if services.NewIndexRun == nil {
		return runIndexPlain(cmd)
	}

	events, onProgress, onComplete := tui.ProgressChannel()
	manager := services.NewIndexRun(onProgress, onComplete)

	go func() {
		// Errors surface through the completion event.
		manager.IndexAll(cmd.Context()) //nolint:errcheck
	}()

	result, err := tui.RunIndexing(manager, events)
	if err != nil {
		return err
	}
	return checkResult(result)
}

// runIndexPlain prints one line per document.
func runIndexPlain(cmd *cobra.Command) error {
	manager := services.Index
	if services.NewIndexRun != nil {
		manager = services.NewIndexRun(func(p domain.IndexingProgress) {
			cmd.Printf("[%d/%d] %s\n", p.Current, p.Total, p.DocumentName)
		}, nil)
	}

	result, err := manager.IndexAll(cmd.Context())
	if err != nil {
		if errors.Is(err, domain.ErrIndexingInProgress) {
			return errors.New("an indexing run is already active")
		}
		return fmt.Errorf("indexing failed: %w", err)
	}

	cmd.Printf("%s: %s\n", result.State, result.Message)
	return checkResult(result)
}

// checkResult maps a partial or cancelled run onto the exit status.
func checkResult(result *domain.BatchResult) error {
	if result == nil {
		return nil
	}
	if result.Failed > 0 {
		return fmt.Errorf("%d document(s) failed to index", result.Failed)
	}
	return nil
}
