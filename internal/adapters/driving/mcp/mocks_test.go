package mcp

import (
	"context"

	"github.com/custodia-labs/kgtool/internal/adapters/driven/render/markdown"
	"github.com/custodia-labs/kgtool/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/kgtool/internal/core/domain"
)

// mockGraphService is a mock implementation of driving.GraphService.
type mockGraphService struct {
	graph    *domain.Graph
	err      error
	lastText string
	lastOpts domain.BuildOptions
}

func (m *mockGraphService) Build(_ context.Context, text string, opts domain.BuildOptions) (*domain.Graph, error) {
	m.lastText = text
	m.lastOpts = opts
	return m.graph, m.err
}

// mockTopicService is a mock implementation of driving.TopicService.
type mockTopicService struct {
	topics   domain.TopicTerms
	err      error
	lastOpts domain.DiscoverOptions
}

func (m *mockTopicService) Discover(_ context.Context, _ string, opts domain.DiscoverOptions) (domain.TopicTerms, error) {
	m.lastOpts = opts
	return m.topics, m.err
}

// mockContextService is a mock implementation of driving.ContextService.
type mockContextService struct {
	result   *domain.ContextResult
	err      error
	lastOpts domain.ExtractOptions
}

func (m *mockContextService) Extract(
	_ context.Context,
	_ *domain.Graph,
	topic string,
	opts domain.ExtractOptions,
) (*domain.ContextResult, error) {
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.result == nil {
		return &domain.ContextResult{Topic: topic}, nil
	}
	return m.result, nil
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.AppSettings
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Set(_, _ string) error { return nil }

func (m *mockSettingsService) Keys() []string { return nil }

func (m *mockSettingsService) Value(_ string) (string, error) { return "", nil }

func (m *mockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

func testGraph() *domain.Graph {
	return domain.NewGraph(
		[]domain.Node{
			{ID: 0, Title: "Frontend", Body: "React components.", Keywords: []string{"react"}, Keyphrases: []string{}, Tags: []string{"frontend"}},
			{ID: 1, Title: "Backend", Body: "Go services.", Keywords: []string{"go"}, Keyphrases: []string{}, Tags: []string{"backend"}},
		},
		[]domain.Edge{{Source: 0, Target: 1, Weight: 0.5}},
	)
}

// newTestPorts returns ports with every optional service wired.
func newTestPorts() *Ports {
	return &Ports{
		Graph:      &mockGraphService{graph: testGraph()},
		Topics:     &mockTopicService{},
		Context:    &mockContextService{},
		GraphStore: memory.NewGraphStore(),
		TopicStore: memory.NewTopicStore(),
		Renderer:   markdown.New(),
	}
}
