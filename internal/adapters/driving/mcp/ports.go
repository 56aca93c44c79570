package mcp

import (
	"github.com/custodia-labs/kgtool/internal/core/ports/driven"
	"github.com/custodia-labs/kgtool/internal/core/ports/driving"
)

// Ports aggregates the services and stores required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Graph builds knowledge graphs.
	Graph driving.GraphService

	// Topics discovers topics. The discover_topics tool is only offered when set.
	Topics driving.TopicService

	// Context extracts topic context. The extract_context tool is only
	// offered when set.
	Context driving.ContextService

	// Settings supplies defaults for options a caller leaves out.
	Settings driving.SettingsService

	// GraphStore keeps the last built graph between tool calls.
	GraphStore driven.GraphStore

	// TopicStore keeps the last discovered topics between tool calls.
	TopicStore driven.TopicStore

	// Renderer formats node resources. Node resources are only offered when set.
	Renderer driven.NodeRenderer
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Graph == nil {
		return ErrMissingGraphService
	}
	if p.GraphStore == nil {
		return ErrMissingGraphStore
	}
	return nil
}
