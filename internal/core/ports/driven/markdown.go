package driven

import (
	"context"

	"github.com/custodia-labs/kgtool/internal/core/domain"
)

// MarkdownWriter renders graph nodes and topic contexts as markdown files.
type MarkdownWriter interface {
	// WriteNodes writes one file per node into dir and returns the paths written.
	WriteNodes(ctx context.Context, dir string, nodes []domain.Node) ([]string, error)

	// WriteContext writes the topic context document to path.
	WriteContext(ctx context.Context, path string, result *domain.ContextResult) error
}

// NodeRenderer formats nodes and topic contexts as markdown text.
type NodeRenderer interface {
	// RenderNode returns the markdown document for a single node.
	RenderNode(node domain.Node) string

	// RenderContext returns the concatenated topic context document.
	RenderContext(result *domain.ContextResult) string
}
