// Package tfidf builds a TF-IDF vector space over unigrams and bigrams.
//
// Terms are tokenised with textutil, English stopwords are removed before
// n-grams are formed, and the vocabulary keeps the maxFeatures terms with the
// highest corpus frequency. Feature indices follow alphabetical term order.
// Weights use raw term counts, smoothed IDF ln((1+n)/(1+df))+1 and L2
// normalisation, so cosine similarity between two vectors is their dot product.
package tfidf

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/custodia-labs/kgtool/internal/analysis/textutil"
	"github.com/custodia-labs/kgtool/internal/core/domain"
	"github.com/custodia-labs/kgtool/internal/core/ports/driven"
)

// Ensure Extractor and Model implement the interfaces.
var (
	_ driven.FeatureExtractor = (*Extractor)(nil)
	_ driven.FeatureModel     = (*Model)(nil)
)

// Default n-gram range.
const (
	DefaultMinN = 1
	DefaultMaxN = 2
)

// Extractor fits TF-IDF models.
type Extractor struct {
	minN int
	maxN int
}

// Option configures the extractor.
type Option func(*Extractor)

// WithNgramRange sets the n-gram range. Invalid ranges are ignored.
func WithNgramRange(minN, maxN int) Option {
	return func(e *Extractor) {
		if minN >= 1 && maxN >= minN {
			e.minN = minN
			e.maxN = maxN
		}
	}
}

// New creates an extractor for unigrams and bigrams unless overridden.
func New(opts ...Option) *Extractor {
	e := &Extractor{minN: DefaultMinN, maxN: DefaultMaxN}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Fit builds the vocabulary and weights every document.
func (e *Extractor) Fit(docs []string, maxFeatures int) (driven.FeatureModel, error) {
	if maxFeatures <= 0 {
		return nil, fmt.Errorf("%w: max features must be positive, got %d", domain.ErrInvalidInput, maxFeatures)
	}

	counts := make([]map[string]int, len(docs))
	corpusFreq := make(map[string]int)
	docFreq := make(map[string]int)
	for i, doc := range docs {
		counts[i] = e.countTerms(doc)
		for term, c := range counts[i] {
			corpusFreq[term] += c
			docFreq[term]++
		}
	}

	vocab := domain.NewVocabulary(selectTerms(corpusFreq, maxFeatures))

	n := float64(len(docs))
	idf := make([]float64, vocab.Len())
	for i, term := range vocab.Terms() {
		idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	m := &Model{
		extractor: e,
		vocab:     vocab,
		idf:       idf,
		vectors:   make([]domain.SparseVector, len(docs)),
	}
	for i := range counts {
		m.vectors[i] = m.weigh(counts[i])
	}
	return m, nil
}

func (e *Extractor) countTerms(text string) map[string]int {
	tokens := textutil.RemoveStopwords(textutil.Tokenize(text))
	counts := make(map[string]int)
	for _, term := range textutil.Ngrams(tokens, e.minN, e.maxN) {
		counts[term]++
	}
	return counts
}

// selectTerms keeps the limit most frequent terms, breaking frequency ties
// alphabetically, and returns them in alphabetical order.
func selectTerms(freq map[string]int, limit int) []string {
	terms := make([]string, 0, len(freq))
	for term := range freq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if freq[terms[i]] != freq[terms[j]] {
			return freq[terms[i]] > freq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > limit {
		terms = terms[:limit]
	}
	sort.Strings(terms)
	return terms
}

// Model is a fitted TF-IDF vector space. It is immutable after Fit.
type Model struct {
	extractor *Extractor
	vocab     *domain.Vocabulary
	idf       []float64
	vectors   []domain.SparseVector
}

// Vocabulary returns the shared term index.
func (m *Model) Vocabulary() *domain.Vocabulary {
	return m.vocab
}

// Vectors returns the fitted document vectors in input order.
func (m *Model) Vectors() []domain.SparseVector {
	return m.vectors
}

// Transform weighs text against the fitted vocabulary and IDF.
// Terms outside the vocabulary are ignored.
func (m *Model) Transform(text string) domain.SparseVector {
	return m.weigh(m.extractor.countTerms(text))
}

// IDF returns the inverse document frequency of a vocabulary term.
func (m *Model) IDF(term string) (float64, bool) {
	i, ok := m.vocab.Index(term)
	if !ok {
		return 0, false
	}
	return m.idf[i], true
}

func (m *Model) weigh(counts map[string]int) domain.SparseVector {
	weights := make(map[int]float64, len(counts))
	for term, c := range counts {
		if i, ok := m.vocab.Index(term); ok {
			weights[i] = float64(c) * m.idf[i]
		}
	}
	// Normalise in index order so results are bit-for-bit reproducible.
	v := domain.NewSparseVector(m.vocab.Len(), weights)
	if norm := v.Norm(); norm > 0 {
		for k := range v.Values {
			v.Values[k] /= norm
		}
	}
	return v
}

// String describes the model for logging.
func (m *Model) String() string {
	return fmt.Sprintf("tfidf(docs=%d, vocabulary=%d, ngrams=%s)",
		len(m.vectors), m.vocab.Len(), ngramLabel(m.extractor.minN, m.extractor.maxN))
}

func ngramLabel(minN, maxN int) string {
	parts := make([]string, 0, maxN-minN+1)
	for n := minN; n <= maxN; n++ {
		parts = append(parts, fmt.Sprint(n))
	}
	return strings.Join(parts, ",")
}
