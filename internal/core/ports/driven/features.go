package driven

import "github.com/custodia-labs/kgtool/internal/core/domain"

// FeatureExtractor builds a vector-space model over section bodies.
type FeatureExtractor interface {
	// Fit builds a vocabulary capped at maxFeatures terms and returns the
	// fitted model. Fitting is deterministic for the same input.
	Fit(docs []string, maxFeatures int) (FeatureModel, error)
}

// FeatureModel is a fitted vector space for one document.
// It is immutable and safe for concurrent reads.
type FeatureModel interface {
	// Vocabulary returns the shared term index.
	Vocabulary() *domain.Vocabulary

	// Vectors returns one vector per fitted document, in input order.
	Vectors() []domain.SparseVector

	// Transform projects new text into the fitted vocabulary.
	Transform(text string) domain.SparseVector
}
