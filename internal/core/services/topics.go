package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/custodia-labs/kgtool/internal/core/domain"
	"github.com/custodia-labs/kgtool/internal/core/ports/driven"
	"github.com/custodia-labs/kgtool/internal/core/ports/driving"
	"github.com/custodia-labs/kgtool/internal/logger"
)

// Ensure TopicService implements the interface.
var _ driving.TopicService = (*TopicService)(nil)

// TopicService discovers topics by clustering section vectors.
type TopicService struct {
	chunker   driven.Chunker
	features  driven.FeatureExtractor
	clusterer driven.Clusterer
}

// NewTopicService creates a new topic discovery service.
func NewTopicService(
	chunker driven.Chunker,
	features driven.FeatureExtractor,
	clusterer driven.Clusterer,
) *TopicService {
	return &TopicService{
		chunker:   chunker,
		features:  features,
		clusterer: clusterer,
	}
}

// Discover clusters the document's sections into opts.NumTopics groups and
// describes each group by the highest weighted terms of its centroid.
func (s *TopicService) Discover(ctx context.Context, text string, opts domain.DiscoverOptions) (domain.TopicTerms, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.NumTopics <= 0 {
		return nil, fmt.Errorf("%w: num_topics must be positive, got %d", domain.ErrInvalidInput, opts.NumTopics)
	}
	if opts.TermsPerTopic <= 0 {
		return nil, fmt.Errorf("%w: terms_per_topic must be positive, got %d", domain.ErrInvalidInput, opts.TermsPerTopic)
	}
	if opts.MaxFeatures <= 0 {
		opts.MaxFeatures = domain.DefaultDiscoverVocabulary
	}

	logger.Section("Topic Discovery")

	sections, err := s.chunker.Chunk(text)
	if err != nil {
		return nil, fmt.Errorf("chunking document: %w", err)
	}
	logger.Debug("chunker %s found %d sections", s.chunker.Name(), len(sections))

	if len(sections) < opts.NumTopics {
		return nil, &domain.TooFewSectionsError{Requested: opts.NumTopics, Available: len(sections)}
	}

	model, err := s.features.Fit(domain.Bodies(sections), opts.MaxFeatures)
	if err != nil {
		return nil, fmt.Errorf("building feature vectors: %w", err)
	}
	vocab := model.Vocabulary()
	logger.Debug("vocabulary size: %d", vocab.Len())

	points := make([][]float64, len(sections))
	for i, v := range model.Vectors() {
		points[i] = v.Dense()
	}

	done := logger.Timed("clustering")
	clustering, err := s.clusterer.Cluster(points, opts.NumTopics, driven.ClusterOptions{
		Seed:     opts.Seed,
		Restarts: opts.Restarts,
	})
	if err != nil {
		return nil, fmt.Errorf("clustering sections: %w", err)
	}
	done()
	logger.Debug("clustering inertia: %.4f", clustering.Inertia)

	topics := make(domain.TopicTerms, opts.NumTopics)
	for i := range topics {
		terms := topTerms(clustering.Centroids[i], vocab, opts.TermsPerTopic)
		topics[i] = domain.TopicDescriptor{Name: domain.DiscoveredTopicName(i), Terms: terms}
		logger.Info("%s: %v", topics[i].Name, terms)
	}
	return topics, nil
}

// topTerms returns the n vocabulary terms with the largest centroid weight.
// Ties keep vocabulary order. Fewer are returned only if the vocabulary is smaller.
func topTerms(centroid []float64, vocab *domain.Vocabulary, n int) []string {
	order := make([]int, vocab.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return centroid[order[a]] > centroid[order[b]]
	})
	if n > len(order) {
		n = len(order)
	}
	terms := make([]string, n)
	for i := 0; i < n; i++ {
		terms[i] = vocab.Term(order[i])
	}
	return terms
}
