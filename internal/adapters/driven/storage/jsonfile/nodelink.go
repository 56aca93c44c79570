package jsonfile

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/custodia-labs/kgtool/internal/core/domain"
)

type nodeLinkGraph struct {
	Directed   bool           `json:"directed"`
	Multigraph bool           `json:"multigraph"`
	Graph      map[string]any `json:"graph"`
	Nodes      []nodeLinkNode `json:"nodes"`
	Links      []nodeLinkEdge `json:"links"`

	// Edges is accepted on read for files written with edges="edges".
	Edges []nodeLinkEdge `json:"edges,omitempty"`
}

type nodeLinkNode struct {
	ID         int      `json:"id"`
	Title      string   `json:"title"`
	Body       string   `json:"body"`
	Keywords   []string `json:"keywords"`
	Keyphrases []string `json:"keyphrases"`
	Tags       []string `json:"tags"`
}

type nodeLinkEdge struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Weight float64 `json:"weight"`
}

// EncodeGraph writes g in node-link form with two-space indentation.
// Non-ASCII text is written as-is.
func EncodeGraph(w io.Writer, g *domain.Graph) error {
	if g == nil {
		return fmt.Errorf("%w: graph is required", domain.ErrInvalidInput)
	}
	doc := nodeLinkGraph{
		Graph: map[string]any{},
		Nodes: make([]nodeLinkNode, len(g.Nodes)),
		Links: make([]nodeLinkEdge, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		doc.Nodes[i] = nodeLinkNode{
			ID:         n.ID,
			Title:      n.Title,
			Body:       n.Body,
			Keywords:   nonNil(n.Keywords),
			Keyphrases: nonNil(n.Keyphrases),
			Tags:       nonNil(n.Tags),
		}
	}
	for i, e := range g.Edges {
		doc.Links[i] = nodeLinkEdge(e)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

// DecodeGraph reads a node-link graph. Edges are read from "links", or from
// "edges" when "links" is absent. Nodes may appear in any order but their
// ids must be exactly 0..N-1.
func DecodeGraph(r io.Reader) (*domain.Graph, error) {
	var doc nodeLinkGraph
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decoding graph: %v", domain.ErrInvalidGraph, err)
	}
	if doc.Directed {
		return nil, fmt.Errorf("%w: directed graphs are not supported", domain.ErrInvalidGraph)
	}

	nodes := make([]domain.Node, len(doc.Nodes))
	for i, n := range doc.Nodes {
		nodes[i] = domain.Node{
			ID:         n.ID,
			Title:      n.Title,
			Body:       n.Body,
			Keywords:   nonNil(n.Keywords),
			Keyphrases: nonNil(n.Keyphrases),
			Tags:       nonNil(n.Tags),
		}
	}
	sort.SliceStable(nodes, func(a, b int) bool { return nodes[a].ID < nodes[b].ID })

	links := doc.Links
	if links == nil {
		links = doc.Edges
	}
	edges := make([]domain.Edge, len(links))
	for i, e := range links {
		edges[i] = domain.Edge(e)
	}

	g := domain.NewGraph(nodes, edges)
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
