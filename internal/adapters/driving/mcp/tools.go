package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/kgtool/internal/core/domain"
)

// TopicInput is one named topic supplied to build_graph.
type TopicInput struct {
	Name  string   `json:"name" jsonschema:"topic name used as a node tag"`
	Terms []string `json:"terms" jsonschema:"representative terms of the topic"`
}

// DiscoverInput is the input schema for the discover_topics tool.
type DiscoverInput struct {
	Text          string `json:"text" jsonschema:"markdown document to analyse"`
	NumTopics     int    `json:"num_topics,omitempty" jsonschema:"number of topics to discover (default 5)"`
	TermsPerTopic int    `json:"terms_per_topic,omitempty" jsonschema:"terms listed per topic (default 10)"`
}

// DiscoverOutput is the output schema for the discover_topics tool.
type DiscoverOutput struct {
	Topics []TopicInput `json:"topics"`
}

// BuildInput is the input schema for the build_graph tool.
type BuildInput struct {
	Text          string       `json:"text" jsonschema:"markdown document to build the graph from"`
	MinSimilarity *float64     `json:"min_similarity,omitempty" jsonschema:"cosine similarity needed for an edge (default 0.3)"`
	TopKeywords   *int         `json:"top_keywords,omitempty" jsonschema:"keywords per node (default 5)"`
	TopKeyphrases *int         `json:"top_keyphrases,omitempty" jsonschema:"keyphrases per node (default 5)"`
	Topics        []TopicInput `json:"topics,omitempty" jsonschema:"topics used to tag nodes, in priority order"`
	UseLastTopics bool         `json:"use_last_topics,omitempty" jsonschema:"tag nodes with the topics from the last discover_topics call"`
}

// NodeSummary describes one node of a built graph.
type NodeSummary struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Tags     []string `json:"tags"`
	Keywords []string `json:"keywords"`
	URI      string   `json:"uri"`
}

// BuildOutput is the output schema for the build_graph tool.
type BuildOutput struct {
	NodeCount int           `json:"node_count"`
	EdgeCount int           `json:"edge_count"`
	Nodes     []NodeSummary `json:"nodes"`
}

// ExtractInput is the input schema for the extract_context tool.
type ExtractInput struct {
	Topic            string `json:"topic" jsonschema:"topic matched case-insensitively against node tags"`
	IncludeNeighbors *bool  `json:"include_neighbors,omitempty" jsonschema:"add directly connected nodes (default true)"`
}

// ExtractOutput is the output schema for the extract_context tool.
type ExtractOutput struct {
	Topic    string `json:"topic"`
	Count    int    `json:"count"`
	NodeIDs  []int  `json:"node_ids"`
	Markdown string `json:"markdown,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "build_graph",
		Description: "Build a knowledge graph from a markdown document; one node per heading",
	}, s.handleBuildGraph)

	if s.ports.Topics != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "discover_topics",
			Description: "Cluster the sections of a markdown document into topics",
		}, s.handleDiscoverTopics)
	}

	if s.ports.Context != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "extract_context",
			Description: "Extract the sections of the last built graph that relate to a topic",
		}, s.handleExtractContext)
	}
}

// handleDiscoverTopics handles the discover_topics tool invocation.
func (s *Server) handleDiscoverTopics(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DiscoverInput,
) (*mcp.CallToolResult, DiscoverOutput, error) {
	opts := s.settings().DiscoverOptions()
	if input.NumTopics > 0 {
		opts.NumTopics = input.NumTopics
	}
	if input.TermsPerTopic > 0 {
		opts.TermsPerTopic = input.TermsPerTopic
	}

	topics, err := s.ports.Topics.Discover(ctx, input.Text, opts)
	if err != nil {
		return nil, DiscoverOutput{}, err
	}

	if s.ports.TopicStore != nil {
		if err := s.ports.TopicStore.Save(ctx, topics); err != nil {
			return nil, DiscoverOutput{}, fmt.Errorf("saving topics: %w", err)
		}
	}

	output := DiscoverOutput{Topics: make([]TopicInput, len(topics))}
	for i := range topics {
		output.Topics[i] = TopicInput{Name: topics[i].Name, Terms: topics[i].Terms}
	}
	return nil, output, nil
}

// handleBuildGraph handles the build_graph tool invocation.
func (s *Server) handleBuildGraph(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BuildInput,
) (*mcp.CallToolResult, BuildOutput, error) {
	opts := s.settings().BuildOptions()
	if input.MinSimilarity != nil {
		opts.MinSimilarity = *input.MinSimilarity
	}
	if input.TopKeywords != nil {
		opts.TopKeywords = *input.TopKeywords
	}
	if input.TopKeyphrases != nil {
		opts.TopKeyphrases = *input.TopKeyphrases
	}

	topics, err := s.topicsFor(ctx, input)
	if err != nil {
		return nil, BuildOutput{}, err
	}
	opts.Topics = topics

	g, err := s.ports.Graph.Build(ctx, input.Text, opts)
	if err != nil {
		return nil, BuildOutput{}, err
	}
	if err := s.ports.GraphStore.Save(ctx, g); err != nil {
		return nil, BuildOutput{}, fmt.Errorf("saving graph: %w", err)
	}

	output := BuildOutput{
		NodeCount: g.NodeCount(),
		EdgeCount: g.EdgeCount(),
		Nodes:     make([]NodeSummary, len(g.Nodes)),
	}
	for i := range g.Nodes {
		output.Nodes[i] = NodeSummary{
			ID:       g.Nodes[i].ID,
			Title:    g.Nodes[i].Title,
			Tags:     g.Nodes[i].Tags,
			Keywords: g.Nodes[i].Keywords,
			URI:      nodeURI(g.Nodes[i].ID),
		}
	}
	return nil, output, nil
}

// topicsFor resolves the topics a build should tag with. Explicit topics
// win over the last discovered ones.
func (s *Server) topicsFor(ctx context.Context, input BuildInput) (domain.TopicTerms, error) {
	if len(input.Topics) > 0 {
		topics := make(domain.TopicTerms, len(input.Topics))
		for i, t := range input.Topics {
			topics[i] = domain.TopicDescriptor{Name: t.Name, Terms: t.Terms}
		}
		return topics, nil
	}
	if !input.UseLastTopics {
		return nil, nil
	}
	if s.ports.TopicStore == nil {
		return nil, fmt.Errorf("%w: no topic store configured", domain.ErrInvalidInput)
	}
	topics, err := s.ports.TopicStore.Load(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: no topics discovered yet: call discover_topics first", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("loading topics: %w", err)
	}
	return topics, nil
}

// handleExtractContext handles the extract_context tool invocation.
func (s *Server) handleExtractContext(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractInput,
) (*mcp.CallToolResult, ExtractOutput, error) {
	g, err := s.ports.GraphStore.Load(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ExtractOutput{}, ErrNoGraph
	}
	if err != nil {
		return nil, ExtractOutput{}, fmt.Errorf("loading graph: %w", err)
	}

	opts := s.settings().ExtractOptions()
	if input.IncludeNeighbors != nil {
		opts.IncludeNeighbors = *input.IncludeNeighbors
	}

	result, err := s.ports.Context.Extract(ctx, g, input.Topic, opts)
	if err != nil {
		return nil, ExtractOutput{}, err
	}

	output := ExtractOutput{
		Topic:   result.Topic,
		Count:   len(result.Selected),
		NodeIDs: result.IDs(),
	}
	if output.NodeIDs == nil {
		output.NodeIDs = []int{}
	}
	if !result.Empty() && s.ports.Renderer != nil {
		output.Markdown = s.ports.Renderer.RenderContext(result)
	}
	return nil, output, nil
}
