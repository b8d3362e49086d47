// Package cli provides the cobra command tree for ragdex.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/archivelabs/ragdex/internal/core/ports/driven"
	"github.com/archivelabs/ragdex/internal/core/ports/driving"
	"github.com/archivelabs/ragdex/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// CatalogAdmin manages catalog membership. The indexing core only
// reads the catalog; entry creation belongs to the CLI surface.
type CatalogAdmin interface {
	Add(ctx context.Context, path string) error
	SetActive(ctx context.Context, path string, active bool) error
}

// Services holds the wired application services the commands run
// against. main populates it before Execute.
type Services struct {
	Index     driving.IndexManager
	Injector  driving.Injector
	Lifecycle driving.Lifecycle
	Catalog   CatalogAdmin
	Registry  driven.RegistryStore

	// NewIndexRun builds a run-scoped index manager with the given
	// event listeners, over the same underlying services as Index.
	NewIndexRun func(driving.ProgressFunc, driving.CompleteFunc) driving.IndexManager
}

var services *Services

// SetServices injects the application services into the command tree.
func SetServices(s *Services) {
	services = s
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "ragdex",
	Short: "Incremental per-document RAG indexing",
	Long: `ragdex maintains one persisted vector index per catalogued document,
plus a unified index for ad-hoc content. Documents are re-indexed only
when their content changes; retrieval merges results across all active
indexes.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, letting signal
// handlers cancel long-running commands.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
