package driven

import (
	"context"

	"github.com/custodia-labs/kgtool/internal/core/domain"
)

// GraphStore persists built graphs.
type GraphStore interface {
	// Save stores the graph, replacing any previously saved graph.
	Save(ctx context.Context, g *domain.Graph) error

	// Load retrieves the saved graph.
	// Returns domain.ErrNotFound if nothing has been saved.
	Load(ctx context.Context) (*domain.Graph, error)
}

// TopicStore persists topic descriptors.
type TopicStore interface {
	// Save stores the topics, preserving order.
	Save(ctx context.Context, topics domain.TopicTerms) error

	// Load retrieves the topics in stored order.
	// Returns domain.ErrNotFound if nothing has been saved.
	Load(ctx context.Context) (domain.TopicTerms, error)
}
