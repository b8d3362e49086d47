package cli

import (
	"context"
	"errors"

	"github.com/archivelabs/ragdex/internal/core/domain"
)

// mockIndexManager implements driving.IndexManager with canned data.
type mockIndexManager struct {
	scanEntries   []domain.CatalogEntry
	scanErr       error
	batchResult   *domain.BatchResult
	batchErr      error
	searchResults []domain.SearchResult
	searchErr     error
	state         domain.BatchState

	cancelled  bool
	indexedOne []string
}

func (m *mockIndexManager) ScanForWork(_ context.Context) ([]domain.CatalogEntry, error) {
	return m.scanEntries, m.scanErr
}

func (m *mockIndexManager) IndexAll(_ context.Context) (*domain.BatchResult, error) {
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	if m.batchResult != nil {
		return m.batchResult, nil
	}
	return &domain.BatchResult{State: domain.BatchCompleted, Message: "nothing to do"}, nil
}

func (m *mockIndexManager) IndexOne(_ context.Context, entry domain.CatalogEntry) error {
	m.indexedOne = append(m.indexedOne, entry.Path)
	return nil
}

func (m *mockIndexManager) Cancel() {
	m.cancelled = true
}

func (m *mockIndexManager) Status() domain.BatchState {
	return m.state
}

func (m *mockIndexManager) Search(_ context.Context, _ string, _ int) ([]domain.SearchResult, error) {
	return m.searchResults, m.searchErr
}

// mockInjector implements driving.Injector and records calls.
type mockInjector struct {
	injectErr error

	texts []string
	files []string
	names []string
}

func (m *mockInjector) InjectText(_ context.Context, content, _ string) error {
	if m.injectErr != nil {
		return m.injectErr
	}
	m.texts = append(m.texts, content)
	return nil
}

func (m *mockInjector) InjectFile(_ context.Context, path string) error {
	if m.injectErr != nil {
		return m.injectErr
	}
	m.files = append(m.files, path)
	return nil
}

func (m *mockInjector) InjectBytes(_ context.Context, _ []byte, sourceName, _ string) error {
	if m.injectErr != nil {
		return m.injectErr
	}
	m.names = append(m.names, sourceName)
	return nil
}

// mockRegistry implements driven.RegistryStore over a fixed entry
// list.
type mockRegistry struct {
	entries []domain.RegistryEntry
	loadErr error
}

func (m *mockRegistry) Load(_ context.Context) error {
	return m.loadErr
}

func (m *mockRegistry) Entry(_ context.Context, documentID string) (*domain.RegistryEntry, error) {
	for _, e := range m.entries {
		if e.DocumentID == documentID {
			entry := e
			return &entry, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockRegistry) Entries(_ context.Context) ([]domain.RegistryEntry, error) {
	return m.entries, nil
}

func (m *mockRegistry) Upsert(_ context.Context, entry domain.RegistryEntry) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockRegistry) Persist(_ context.Context) error {
	return nil
}

// mockCatalogAdmin implements CatalogAdmin and records added paths.
type mockCatalogAdmin struct {
	addErr error
	added  []string
}

func (m *mockCatalogAdmin) Add(_ context.Context, path string) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.added = append(m.added, path)
	return nil
}

func (m *mockCatalogAdmin) SetActive(_ context.Context, _ string, _ bool) error {
	return nil
}

var errMockFailure = errors.New("mock failure")

// setupTestServices installs mock-backed services and returns a
// cleanup restoring the previous ones.
func setupTestServices() func() {
	old := services
	services = &Services{
		Index: &mockIndexManager{
			searchResults: []domain.SearchResult{
				{
					Chunk: domain.Chunk{
						ID:      "chunk-1",
						Content: "relevant chunk content",
						Metadata: map[string]any{
							"source_path": "/docs/guide.md",
						},
					},
					Score: 0.93,
				},
			},
		},
		Injector: &mockInjector{},
		Catalog:  &mockCatalogAdmin{},
		Registry: &mockRegistry{},
	}
	return func() {
		services = old
	}
}
