package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/kgtool/internal/core/domain"
	"github.com/custodia-labs/kgtool/internal/core/ports/driving"
	"github.com/custodia-labs/kgtool/internal/logger"
)

// Ensure ContextService implements the interface.
var _ driving.ContextService = (*ContextService)(nil)

// ContextService selects the graph nodes relevant to a topic.
type ContextService struct{}

// NewContextService creates a new context extraction service.
func NewContextService() *ContextService {
	return &ContextService{}
}

// Extract selects every node with a tag containing topic, ignoring case.
// The topic is matched as given, so surrounding spaces are significant.
// With opts.IncludeNeighbors the direct neighbours of each match are added
// (one hop). The selection is ordered by ascending node id. No match yields
// an empty result and no error.
func (s *ContextService) Extract(
	ctx context.Context,
	g *domain.Graph,
	topic string,
	opts domain.ExtractOptions,
) (*domain.ContextResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("%w: graph is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("%w: topic is required", domain.ErrInvalidInput)
	}

	logger.Section("Context Extraction")

	result := &domain.ContextResult{Topic: topic}
	selected := make(map[int]struct{})
	for i := range g.Nodes {
		if g.Nodes[i].HasTagMatching(topic) {
			result.Matched = append(result.Matched, g.Nodes[i].ID)
			selected[g.Nodes[i].ID] = struct{}{}
		}
	}
	logger.Debug("topic %q matched %d nodes", topic, len(result.Matched))

	if len(result.Matched) == 0 {
		return result, nil
	}

	if opts.IncludeNeighbors {
		for _, id := range result.Matched {
			for _, n := range g.Neighbors(id) {
				selected[n] = struct{}{}
			}
		}
		logger.Debug("neighbour expansion selected %d nodes", len(selected))
	}

	ids := make([]int, 0, len(selected))
	for id := range selected {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	result.Selected = make([]domain.Node, 0, len(ids))
	for _, id := range ids {
		node, ok := g.Node(id)
		if !ok {
			return nil, fmt.Errorf("%w: edge references missing node %d", domain.ErrInvalidGraph, id)
		}
		result.Selected = append(result.Selected, *node)
	}
	return result, nil
}
