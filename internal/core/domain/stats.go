package domain

import "sort"

// TopicCount is the number of nodes carrying a tag.
type TopicCount struct {
	Tag   string `json:"tag"`
	Nodes int    `json:"nodes"`
}

// GraphStats summarises a graph's size, topic spread and connectivity.
type GraphStats struct {
	Nodes     int          `json:"nodes"`
	Edges     int          `json:"edges"`
	AvgDegree float64      `json:"avg_degree"`
	Isolated  int          `json:"isolated"`
	MaxDegree int          `json:"max_degree"`
	Topics    []TopicCount `json:"topics"`
}

// Stats computes summary statistics for g. Topics are ordered by node
// count descending, then by tag.
func (g *Graph) Stats() GraphStats {
	s := GraphStats{
		Nodes:  len(g.Nodes),
		Edges:  len(g.Edges),
		Topics: []TopicCount{},
	}
	if s.Nodes == 0 {
		return s
	}
	s.AvgDegree = float64(2*s.Edges) / float64(s.Nodes)

	degree := make(map[int]int, s.Nodes)
	for _, e := range g.Edges {
		degree[e.Source]++
		degree[e.Target]++
	}
	counts := make(map[string]int)
	for i := range g.Nodes {
		d := degree[g.Nodes[i].ID]
		if d == 0 {
			s.Isolated++
		}
		s.MaxDegree = max(s.MaxDegree, d)
		for _, tag := range g.Nodes[i].Tags {
			counts[tag]++
		}
	}

	for tag, n := range counts {
		s.Topics = append(s.Topics, TopicCount{Tag: tag, Nodes: n})
	}
	sort.Slice(s.Topics, func(i, j int) bool {
		if s.Topics[i].Nodes != s.Topics[j].Nodes {
			return s.Topics[i].Nodes > s.Topics[j].Nodes
		}
		return s.Topics[i].Tag < s.Topics[j].Tag
	})
	return s
}
