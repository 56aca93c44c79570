package services

import (
	"strings"

	"github.com/custodia-labs/kgtool/internal/analysis/fuzzy"
	"github.com/custodia-labs/kgtool/internal/core/domain"
	"github.com/custodia-labs/kgtool/internal/core/ports/driven"
	"github.com/custodia-labs/kgtool/internal/logger"
)

// TopicIndex holds topic pseudo-document vectors projected into one
// document's vocabulary.
type TopicIndex struct {
	topics  domain.TopicTerms
	vectors []domain.SparseVector
	vocab   *domain.Vocabulary
}

// Topics returns the indexed topics in order.
func (i *TopicIndex) Topics() domain.TopicTerms {
	return i.topics
}

// Vector returns the pseudo-document vector of the n-th topic.
func (i *TopicIndex) Vector(n int) domain.SparseVector {
	return i.vectors[n]
}

// Classification is the outcome of tagging one section.
type Classification struct {
	// Tags are the assigned topic names in topic order.
	Tags []string

	// Similarities holds the cosine similarity to each topic, in topic order.
	Similarities []float64

	// Fallback reports whether the lexical fallback ran.
	Fallback bool

	// FallbackTopic is the best lexical match, if the fallback ran.
	FallbackTopic string

	// FallbackScore is the summed fuzzy score of FallbackTopic.
	FallbackScore float64
}

// TopicClassifier assigns topics to section vectors in two tiers: cosine
// similarity against each topic's pseudo-document, then fuzzy lexical
// overlap between the section's top terms and the topic terms.
type TopicClassifier struct {
	opts domain.ClassifierOptions
}

// NewTopicClassifier creates a classifier. Zero-valued options fall back to
// the defaults as a coupled set.
func NewTopicClassifier(opts domain.ClassifierOptions) *TopicClassifier {
	if opts == (domain.ClassifierOptions{}) {
		opts = domain.DefaultClassifierOptions()
	}
	if opts.FallbackTopTerms <= 0 || opts.FallbackMinScore <= 0 {
		def := domain.DefaultClassifierOptions()
		opts.FallbackTopTerms = def.FallbackTopTerms
		opts.FallbackMinScore = def.FallbackMinScore
	}
	return &TopicClassifier{opts: opts}
}

// Options returns the classification constants in use.
func (c *TopicClassifier) Options() domain.ClassifierOptions {
	return c.opts
}

// Index re-weights each topic's term list through the model's vocabulary.
func (c *TopicClassifier) Index(model driven.FeatureModel, topics domain.TopicTerms) *TopicIndex {
	idx := &TopicIndex{
		topics:  topics,
		vectors: make([]domain.SparseVector, len(topics)),
		vocab:   model.Vocabulary(),
	}
	for n, topic := range topics {
		idx.vectors[n] = model.Transform(strings.Join(topic.Terms, " "))
		if idx.vectors[n].IsZero() {
			logger.Debug("topic %q shares no terms with the document vocabulary", topic.Name)
		}
	}
	return idx
}

// Classify tags a section vector. Every topic whose similarity strictly
// exceeds the threshold is assigned. When none is, the fallback compares the
// section's top terms to each topic's terms and assigns the best topic only
// if its summed score strictly exceeds FallbackMinScore.
func (c *TopicClassifier) Classify(idx *TopicIndex, vec domain.SparseVector) Classification {
	var res Classification
	res.Similarities = make([]float64, len(idx.topics))
	for n, topic := range idx.topics {
		sim := domain.Cosine(vec, idx.vectors[n])
		res.Similarities[n] = sim
		if sim > c.opts.Threshold {
			res.Tags = append(res.Tags, topic.Name)
		}
	}
	if len(res.Tags) > 0 {
		return res
	}

	res.Fallback = true
	topTerms := make([]string, 0, c.opts.FallbackTopTerms)
	for _, i := range vec.TopIndices(c.opts.FallbackTopTerms) {
		topTerms = append(topTerms, idx.vocab.Term(i))
	}

	for _, topic := range idx.topics {
		var score float64
		for _, term := range topTerms {
			score += fuzzy.BestRatio(term, topic.Terms)
		}
		if score > res.FallbackScore {
			res.FallbackScore = score
			res.FallbackTopic = topic.Name
		}
	}
	if res.FallbackTopic != "" && res.FallbackScore > c.opts.FallbackMinScore {
		res.Tags = []string{res.FallbackTopic}
	}
	return res
}
