package mcp

import (
	"context"

	"github.com/archivelabs/ragdex/internal/core/domain"
	"github.com/archivelabs/ragdex/internal/core/ports/driving"
)

// mockIndexManager is a mock implementation of driving.IndexManager.
type mockIndexManager struct {
	work       []domain.CatalogEntry
	result     *domain.BatchResult
	results    []domain.SearchResult
	state      domain.BatchState
	err        error
	cancelled  bool
	indexCalls int
}

var _ driving.IndexManager = (*mockIndexManager)(nil)

func (m *mockIndexManager) ScanForWork(_ context.Context) ([]domain.CatalogEntry, error) {
	return m.work, m.err
}

func (m *mockIndexManager) IndexAll(_ context.Context) (*domain.BatchResult, error) {
	m.indexCalls++
	return m.result, m.err
}

func (m *mockIndexManager) IndexOne(_ context.Context, _ domain.CatalogEntry) error {
	return m.err
}

func (m *mockIndexManager) Cancel() {
	m.cancelled = true
}

func (m *mockIndexManager) Status() domain.BatchState {
	return m.state
}

func (m *mockIndexManager) Search(_ context.Context, _ string, _ int) ([]domain.SearchResult, error) {
	return m.results, m.err
}

// mockInjector is a mock implementation of driving.Injector.
type mockInjector struct {
	err      error
	injected []string
}

var _ driving.Injector = (*mockInjector)(nil)

func (m *mockInjector) InjectText(_ context.Context, content, sourceName string) error {
	if m.err == nil {
		m.injected = append(m.injected, sourceName)
	}
	return m.err
}

func (m *mockInjector) InjectFile(_ context.Context, path string) error {
	if m.err == nil {
		m.injected = append(m.injected, path)
	}
	return m.err
}

func (m *mockInjector) InjectBytes(_ context.Context, _ []byte, sourceName, _ string) error {
	if m.err == nil {
		m.injected = append(m.injected, sourceName)
	}
	return m.err
}
