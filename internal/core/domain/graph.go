package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Node is one section in the knowledge graph.
type Node struct {
	ID         int      `json:"id"`
	Title      string   `json:"title"`
	Body       string   `json:"body"`
	Keywords   []string `json:"keywords"`
	Keyphrases []string `json:"keyphrases"`
	Tags       []string `json:"tags"`
}

// HasTagMatching reports whether any tag contains topic, ignoring case.
func (n *Node) HasTagMatching(topic string) bool {
	needle := strings.ToLower(topic)
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Edge is an undirected similarity edge. Source is always less than Target.
type Edge struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Weight float64 `json:"weight"`
}

// Graph is an undirected weighted graph over document sections.
// Node ids are exactly 0..N-1 and Nodes[i].ID == i.
type Graph struct {
	Nodes []Node
	Edges []Edge

	adjacency map[int][]int
}

// NewGraph creates a graph and indexes its adjacency.
// Edges are normalised so that Source < Target.
func NewGraph(nodes []Node, edges []Edge) *Graph {
	g := &Graph{Nodes: nodes, Edges: make([]Edge, len(edges))}
	for i, e := range edges {
		if e.Source > e.Target {
			e.Source, e.Target = e.Target, e.Source
		}
		g.Edges[i] = e
	}
	g.index()
	return g
}

func (g *Graph) index() {
	g.adjacency = make(map[int][]int, len(g.Nodes))
	for _, e := range g.Edges {
		g.adjacency[e.Source] = append(g.adjacency[e.Source], e.Target)
		g.adjacency[e.Target] = append(g.adjacency[e.Target], e.Source)
	}
	for id := range g.adjacency {
		sort.Ints(g.adjacency[id])
	}
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.Nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return len(g.Edges)
}

// Node returns the node with the given id.
func (g *Graph) Node(id int) (*Node, bool) {
	if id < 0 || id >= len(g.Nodes) {
		return nil, false
	}
	return &g.Nodes[id], true
}

// Neighbors returns the ids adjacent to id in ascending order.
func (g *Graph) Neighbors(id int) []int {
	if g.adjacency == nil {
		g.index()
	}
	return g.adjacency[id]
}

// EdgeWeight returns the weight of the edge between a and b.
func (g *Graph) EdgeWeight(a, b int) (float64, bool) {
	if a > b {
		a, b = b, a
	}
	for _, e := range g.Edges {
		if e.Source == a && e.Target == b {
			return e.Weight, true
		}
	}
	return 0, false
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	nodes := make([]Node, len(g.Nodes))
	for i, n := range g.Nodes {
		n.Keywords = append([]string(nil), n.Keywords...)
		n.Keyphrases = append([]string(nil), n.Keyphrases...)
		n.Tags = append([]string(nil), n.Tags...)
		nodes[i] = n
	}
	return NewGraph(nodes, g.Edges)
}

// Validate checks the node id and edge invariants.
func (g *Graph) Validate() error {
	for i := range g.Nodes {
		if g.Nodes[i].ID != i {
			return fmt.Errorf("%w: node at position %d has id %d", ErrInvalidGraph, i, g.Nodes[i].ID)
		}
	}
	seen := make(map[[2]int]bool, len(g.Edges))
	for _, e := range g.Edges {
		if e.Source == e.Target {
			return fmt.Errorf("%w: self loop on node %d", ErrInvalidGraph, e.Source)
		}
		if e.Source < 0 || e.Target >= len(g.Nodes) {
			return fmt.Errorf("%w: edge %d-%d references a missing node", ErrInvalidGraph, e.Source, e.Target)
		}
		key := [2]int{e.Source, e.Target}
		if seen[key] {
			return fmt.Errorf("%w: duplicate edge %d-%d", ErrInvalidGraph, e.Source, e.Target)
		}
		seen[key] = true
	}
	return nil
}

// ContextResult holds the nodes selected for a topic.
// Selected is ordered by ascending node id and holds no duplicates.
type ContextResult struct {
	Topic    string
	Matched  []int
	Selected []Node
}

// Empty reports whether no node matched the topic.
func (r *ContextResult) Empty() bool {
	return r == nil || len(r.Selected) == 0
}

// IDs returns the selected node ids.
func (r *ContextResult) IDs() []int {
	if r == nil {
		return nil
	}
	ids := make([]int, len(r.Selected))
	for i := range r.Selected {
		ids[i] = r.Selected[i].ID
	}
	return ids
}
