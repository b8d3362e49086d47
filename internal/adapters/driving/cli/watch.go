package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/archivelabs/ragdex/internal/core/domain"
	"github.com/archivelabs/ragdex/internal/logger"
	"github.com/archivelabs/ragdex/internal/watcher"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [directories...]",
	Short: "Watch directories and index on change",
	Long: `Watches the given directories recursively and triggers an indexing
run whenever files settle after a burst of changes. Runs until
interrupted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", domain.DefaultWatchDebounce, "quiet period before reindexing")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if services == nil || services.Index == nil {
		return errors.New("index service not configured")
	}

	ctx := cmd.Context()

	w, err := watcher.New(watchDebounce, func() {
		result, err := services.Index.IndexAll(ctx)
		switch {
		case errors.Is(err, domain.ErrIndexingInProgress):
			logger.Debug("Skipping trigger: indexing already active")
		case err != nil:
			logger.Warn("Indexing run failed: %v", err)
		default:
			cmd.Printf("%s: %s\n", result.State, result.Message)
		}
	})
	if err != nil {
		return err
	}
	defer w.Close()

	for _, dir := range args {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	cmd.Printf("Watching %d directories (debounce %s). Ctrl+C to stop.\n", len(args), watchDebounce)

	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
