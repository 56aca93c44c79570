package driving

import (
	"context"

	"github.com/custodia-labs/kgtool/internal/core/domain"
)

// GraphService builds knowledge graphs from documents.
type GraphService interface {
	// Build chunks, vectorises, tags and links the document's sections.
	Build(ctx context.Context, text string, opts domain.BuildOptions) (*domain.Graph, error)
}

// ContextService selects graph nodes relevant to a topic.
type ContextService interface {
	// Extract returns the nodes whose tags match topic, optionally with
	// their direct neighbours. No match is an empty result, not an error.
	Extract(ctx context.Context, g *domain.Graph, topic string, opts domain.ExtractOptions) (*domain.ContextResult, error)
}
