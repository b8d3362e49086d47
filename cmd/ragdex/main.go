package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	catalogsqlite "github.com/archivelabs/ragdex/internal/adapters/driven/catalog/sqlite"
	configfile "github.com/archivelabs/ragdex/internal/adapters/driven/config/file"
	"github.com/archivelabs/ragdex/internal/adapters/driven/embedding/ollama"
	"github.com/archivelabs/ragdex/internal/adapters/driven/embedding/openai"
	registryfile "github.com/archivelabs/ragdex/internal/adapters/driven/registry/file"
	"github.com/archivelabs/ragdex/internal/adapters/driving/cli"
	"github.com/archivelabs/ragdex/internal/core/domain"
	"github.com/archivelabs/ragdex/internal/core/ports/driven"
	"github.com/archivelabs/ragdex/internal/core/ports/driving"
	"github.com/archivelabs/ragdex/internal/core/services"
	"github.com/archivelabs/ragdex/internal/postprocessors"
	"github.com/archivelabs/ragdex/internal/readers"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settings := services.NewSettingsService(configStore).Get()

	rootDir := settings.RootDir
	if rootDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolving home directory: %w", err)
		}
		rootDir = filepath.Join(home, ".ragdex", "index")
	}
	layout := domain.Layout{Root: rootDir}

	catalog, err := catalogsqlite.NewCatalog(settings.CatalogPath)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer catalog.Close()

	registry := registryfile.NewRegistryStore(layout.RegistryPath())
	vectors := newVectorFactory()
	metadata := services.NewMetadataCache(nil)

	lifecycle := services.NewLifecycleManager(
		newEmbedderFactory(settings),
		metadata,
		vectors,
		catalog,
		layout,
		settings.EmbeddingDimensions,
	)
	defer lifecycle.Unload() //nolint:errcheck

	readerRegistry := readers.DefaultRegistry()
	pipeline := postprocessors.Default(settings)
	scanner := services.NewScanner(catalog, settings.ScanWorkers)
	indexer := services.NewDocumentIndexer(
		readerRegistry, pipeline, metadata, lifecycle, vectors, registry, catalog, layout,
	)
	injector := services.NewUnifiedInjector(readerRegistry, pipeline, metadata, lifecycle, layout)

	cli.SetServices(&cli.Services{
		Index:     services.NewIndexOrchestrator(scanner, indexer, lifecycle, registry, nil, nil),
		Injector:  injector,
		Lifecycle: lifecycle,
		Catalog:   catalog,
		Registry:  registry,
		NewIndexRun: func(onProgress driving.ProgressFunc, onComplete driving.CompleteFunc) driving.IndexManager {
			return services.NewIndexOrchestrator(scanner, indexer, lifecycle, registry, onProgress, onComplete)
		},
	})

	return cli.ExecuteContext(ctx)
}

// newEmbedderFactory picks the embedding adapter for the configured
// provider. Construction is deferred to first use so commands that
// never embed pay nothing.
func newEmbedderFactory(settings domain.Settings) services.EmbedderFactory {
	switch settings.EmbeddingProvider {
	case "openai":
		return func(_ context.Context) (driven.EmbeddingService, error) {
			apiKey := settings.EmbeddingAPIKey
			if apiKey == "" {
				apiKey = os.Getenv("OPENAI_API_KEY")
			}
			return openai.NewEmbeddingService(openai.Config{
				APIKey:     apiKey,
				BaseURL:    settings.EmbeddingBaseURL,
				Model:      settings.EmbeddingModel,
				Dimensions: settings.EmbeddingDimensions,
			})
		}
	default:
		return func(_ context.Context) (driven.EmbeddingService, error) {
			return ollama.NewEmbeddingService(ollama.Config{
				BaseURL:    settings.EmbeddingBaseURL,
				Model:      settings.EmbeddingModel,
				Dimensions: settings.EmbeddingDimensions,
			}), nil
		}
	}
}
