package services

import (
	"fmt"
	"time"

	"github.com/archivelabs/ragdex/internal/core/domain"
	"github.com/archivelabs/ragdex/internal/core/ports/driven"
)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyRootDir       = "index.root_dir"
	keyCatalogPath   = "catalog.path"
	keyEmbedProvider = "embedding.provider"
	keyEmbedModel    = "embedding.model"
	keyEmbedBaseURL  = "embedding.base_url"
	keyEmbedAPIKey   = "embedding.api_key"
	keyEmbedDims     = "embedding.dimensions"
	keyChunkSize     = "chunking.size"
	keyChunkOverlap  = "chunking.overlap"
	keyScanWorkers   = "scan.workers"
	keyWatchDebounce = "watch.debounce"
)

// SettingsService reads and writes application settings through the
// config store.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns the stored settings with defaults applied to every
// unset field.
func (s *SettingsService) Get() domain.Settings {
	settings := domain.Settings{
		RootDir:             s.configStore.GetString(keyRootDir),
		CatalogPath:         s.configStore.GetString(keyCatalogPath),
		EmbeddingProvider:   s.configStore.GetString(keyEmbedProvider),
		EmbeddingModel:      s.configStore.GetString(keyEmbedModel),
		EmbeddingBaseURL:    s.configStore.GetString(keyEmbedBaseURL),
		EmbeddingAPIKey:     s.configStore.GetString(keyEmbedAPIKey),
		EmbeddingDimensions: s.configStore.GetInt(keyEmbedDims),
		ChunkSize:           s.configStore.GetInt(keyChunkSize),
		ChunkOverlap:        s.configStore.GetInt(keyChunkOverlap),
		ScanWorkers:         s.configStore.GetInt(keyScanWorkers),
	}
	if raw := s.configStore.GetString(keyWatchDebounce); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			settings.WatchDebounce = d
		}
	}
	return settings.WithDefaults()
}

// Save persists the given settings. Zero-valued fields are written as
// is; defaults are reapplied on the next Get.
func (s *SettingsService) Save(settings domain.Settings) error {
	stringKeys := map[string]string{
		keyRootDir:       settings.RootDir,
		keyCatalogPath:   settings.CatalogPath,
		keyEmbedProvider: settings.EmbeddingProvider,
		keyEmbedModel:    settings.EmbeddingModel,
		keyEmbedBaseURL:  settings.EmbeddingBaseURL,
	}
	for key, value := range stringKeys {
		if value == "" {
			continue
		}
		if err := s.configStore.Set(key, value); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}

	if settings.EmbeddingAPIKey != "" {
		if err := s.configStore.Set(keyEmbedAPIKey, settings.EmbeddingAPIKey); err != nil {
			return fmt.Errorf("save %s: %w", keyEmbedAPIKey, err)
		}
	}

	intKeys := map[string]int{
		keyEmbedDims:    settings.EmbeddingDimensions,
		keyChunkSize:    settings.ChunkSize,
		keyChunkOverlap: settings.ChunkOverlap,
		keyScanWorkers:  settings.ScanWorkers,
	}
	for key, value := range intKeys {
		if value <= 0 {
			continue
		}
		if err := s.configStore.Set(key, value); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}

	if settings.WatchDebounce > 0 {
		if err := s.configStore.Set(keyWatchDebounce, settings.WatchDebounce.String()); err != nil {
			return fmt.Errorf("save %s: %w", keyWatchDebounce, err)
		}
	}

	return s.configStore.Save()
}
