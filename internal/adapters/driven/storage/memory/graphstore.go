package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/kgtool/internal/core/domain"
	"github.com/custodia-labs/kgtool/internal/core/ports/driven"
)

// Ensure the stores implement the interfaces.
var (
	_ driven.GraphStore = (*GraphStore)(nil)
	_ driven.TopicStore = (*TopicStore)(nil)
)

// GraphStore keeps the most recently saved graph in memory.
type GraphStore struct {
	mu    sync.RWMutex
	graph *domain.Graph
}

// NewGraphStore creates an empty in-memory graph store.
func NewGraphStore() *GraphStore {
	return &GraphStore{}
}

// Save stores a copy of g.
func (s *GraphStore) Save(ctx context.Context, g *domain.Graph) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if g == nil {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph = g.Clone()
	return nil
}

// Load returns a copy of the saved graph.
func (s *GraphStore) Load(ctx context.Context) (*domain.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.graph == nil {
		return nil, domain.ErrNotFound
	}
	return s.graph.Clone(), nil
}

// TopicStore keeps the most recently saved topics in memory.
type TopicStore struct {
	mu     sync.RWMutex
	topics domain.TopicTerms
	saved  bool
}

// NewTopicStore creates an empty in-memory topic store.
func NewTopicStore() *TopicStore {
	return &TopicStore{}
}

// Save stores a copy of topics.
func (s *TopicStore) Save(ctx context.Context, topics domain.TopicTerms) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics = topics.Clone()
	s.saved = true
	return nil
}

// Load returns a copy of the saved topics.
func (s *TopicStore) Load(ctx context.Context) (domain.TopicTerms, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.saved {
		return nil, domain.ErrNotFound
	}
	return s.topics.Clone(), nil
}
