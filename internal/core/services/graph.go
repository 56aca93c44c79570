package services

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/kgtool/internal/core/domain"
	"github.com/custodia-labs/kgtool/internal/core/ports/driven"
	"github.com/custodia-labs/kgtool/internal/core/ports/driving"
	"github.com/custodia-labs/kgtool/internal/logger"
)

// Ensure GraphService implements the interface.
var _ driving.GraphService = (*GraphService)(nil)

// GraphService builds section similarity graphs.
type GraphService struct {
	chunker    driven.Chunker
	features   driven.FeatureExtractor
	keyphrases driven.KeyphraseExtractor
	workers    int
}

// NewGraphService creates a new graph build service.
func NewGraphService(
	chunker driven.Chunker,
	features driven.FeatureExtractor,
	keyphrases driven.KeyphraseExtractor,
) *GraphService {
	return &GraphService{
		chunker:    chunker,
		features:   features,
		keyphrases: keyphrases,
		workers:    runtime.GOMAXPROCS(0),
	}
}

// Build chunks the document and creates one node per section, tagged by
// topic or by title, with an edge for every section pair whose cosine
// similarity is at least opts.MinSimilarity.
func (s *GraphService) Build(ctx context.Context, text string, opts domain.BuildOptions) (*domain.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateBuildOptions(&opts); err != nil {
		return nil, err
	}

	logger.Section("Graph Build")

	sections, err := s.chunker.Chunk(text)
	if err != nil {
		return nil, fmt.Errorf("chunking document: %w", err)
	}
	logger.Debug("chunker %s found %d sections", s.chunker.Name(), len(sections))

	model, err := s.features.Fit(domain.Bodies(sections), opts.MaxFeatures)
	if err != nil {
		return nil, fmt.Errorf("building feature vectors: %w", err)
	}
	vectors := model.Vectors()
	vocab := model.Vocabulary()
	logger.Debug("vocabulary size: %d", vocab.Len())

	keyphrases, err := s.extractKeyphrases(ctx, sections, opts.TopKeyphrases)
	if err != nil {
		return nil, err
	}

	var (
		classifier *TopicClassifier
		index      *TopicIndex
	)
	if len(opts.Topics) > 0 {
		classifier = NewTopicClassifier(opts.Classifier)
		index = classifier.Index(model, opts.Topics)
		logger.Debug("classifying against %d topics", len(opts.Topics))
	}

	nodes := make([]domain.Node, len(sections))
	for i, sec := range sections {
		var tags []string
		if classifier != nil {
			res := classifier.Classify(index, vectors[i])
			tags = res.Tags
			if res.Fallback {
				logger.Debug("node %d: lexical fallback best=%q score=%.1f assigned=%v",
					i, res.FallbackTopic, res.FallbackScore, len(tags) > 0)
			}
		}
		if len(tags) == 0 {
			tags = []string{TitleTag(sec.Title, opts.TagJoiner)}
		}

		nodes[i] = domain.Node{
			ID:         sec.Index,
			Title:      sec.Title,
			Body:       sec.Body,
			Keywords:   keywords(vectors[i], vocab, opts.TopKeywords),
			Keyphrases: keyphrases[i],
			Tags:       dedupe(tags),
		}
	}

	edges := similarityEdges(vectors, opts.MinSimilarity)
	g := domain.NewGraph(nodes, edges)
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("building graph: %w", err)
	}

	logger.Info("graph built: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	return g, nil
}

func validateBuildOptions(opts *domain.BuildOptions) error {
	if opts.MinSimilarity < 0 || opts.MinSimilarity > 1 {
		return fmt.Errorf("%w: min_similarity must be within [0, 1], got %g", domain.ErrInvalidInput, opts.MinSimilarity)
	}
	if opts.TopKeywords < 0 {
		return fmt.Errorf("%w: top_keywords must not be negative, got %d", domain.ErrInvalidInput, opts.TopKeywords)
	}
	if opts.TopKeyphrases < 0 {
		return fmt.Errorf("%w: top_keyphrases must not be negative, got %d", domain.ErrInvalidInput, opts.TopKeyphrases)
	}
	if opts.MaxFeatures <= 0 {
		opts.MaxFeatures = domain.DefaultBuildVocabulary
	}
	if opts.TagJoiner == "" {
		opts.TagJoiner = domain.DefaultTagJoiner
	}
	return nil
}

// extractKeyphrases scores every section independently. Results keep
// section order regardless of completion order.
func (s *GraphService) extractKeyphrases(ctx context.Context, sections []domain.Section, k int) ([][]string, error) {
	defer logger.Timed("keyphrase extraction")()

	out := make([][]string, len(sections))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range sections {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			phrases := s.keyphrases.Extract(sections[i].Body, k)
			if phrases == nil {
				phrases = []string{}
			}
			out[i] = phrases
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("extracting keyphrases: %w", err)
	}
	return out, nil
}

// keywords returns the n highest weighted terms of v, ties in vocabulary order.
func keywords(v domain.SparseVector, vocab *domain.Vocabulary, n int) []string {
	idx := v.TopIndices(n)
	out := make([]string, len(idx))
	for k, i := range idx {
		out[k] = vocab.Term(i)
	}
	return out
}

// similarityEdges links every pair i<j whose cosine similarity is at least minSim.
func similarityEdges(vectors []domain.SparseVector, minSim float64) []domain.Edge {
	var edges []domain.Edge
	for i := range vectors {
		for j := i + 1; j < len(vectors); j++ {
			sim := domain.Cosine(vectors[i], vectors[j])
			if sim >= minSim {
				edges = append(edges, domain.Edge{Source: i, Target: j, Weight: sim})
			}
		}
	}
	logger.Debug("compared %d section pairs, kept %d edges", len(vectors)*(len(vectors)-1)/2, len(edges))
	return edges
}

// TitleTag derives the fallback tag for a section: the lower-cased title
// with spaces replaced by joiner.
func TitleTag(title, joiner string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", joiner)
}

func dedupe(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
