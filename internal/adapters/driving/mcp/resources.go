package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/kgtool/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/kgtool/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for kgtool resources.
	uriScheme = "kgtool://"

	graphURI      = uriScheme + "graph"
	nodeURIPrefix = uriScheme + "graph/nodes/"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the whole graph.
	s.server.AddResource(&mcp.Resource{
		URI:         graphURI,
		Name:        "graph",
		Description: "The last built knowledge graph in node-link JSON",
		MIMEType:    "application/json",
	}, s.handleGraphResource)

	if s.ports.Renderer != nil {
		s.server.AddResourceTemplate(&mcp.ResourceTemplate{
			URITemplate: nodeURIPrefix + "{nodeId}",
			Name:        "graph-node",
			Description: "A single section of the last built graph as markdown",
			MIMEType:    "text/markdown",
		}, s.handleNodeResource)
	}
}

// handleGraphResource returns the last built graph.
func (s *Server) handleGraphResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	g, err := s.ports.GraphStore.Load(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("loading graph: %w", err)
	}

	var buf bytes.Buffer
	if err := jsonfile.EncodeGraph(&buf, g); err != nil {
		return nil, fmt.Errorf("encoding graph: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     buf.String(),
		}},
	}, nil
}

// handleNodeResource returns one node of the last built graph.
func (s *Server) handleNodeResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id, ok := extractNodeID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	g, err := s.ports.GraphStore.Load(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("loading graph: %w", err)
	}

	node, ok := g.Node(id)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     s.ports.Renderer.RenderNode(*node),
		}},
	}, nil
}

// nodeURI returns the resource URI of a node.
func nodeURI(id int) string {
	return nodeURIPrefix + strconv.Itoa(id)
}

// extractNodeID extracts the node id from a URI like kgtool://graph/nodes/{nodeId}.
func extractNodeID(uri string) (int, bool) {
	if !strings.HasPrefix(uri, nodeURIPrefix) {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimPrefix(uri, nodeURIPrefix))
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
