package domain

// Defaults for the pipeline entry points.
const (
	DefaultMinSimilarity       = 0.3
	DefaultTopKeywords         = 5
	DefaultTopKeyphrases       = 5
	DefaultNumTopics           = 5
	DefaultTermsPerTopic       = 10
	DefaultDiscoverVocabulary  = 200
	DefaultBuildVocabulary     = 500
	DefaultClassifierThreshold = 0.15
	DefaultFallbackTopTerms    = 10
	DefaultFallbackMinScore    = 200
	DefaultTagJoiner           = "_"
	DefaultClusterSeed         = 42
	DefaultClusterRestarts     = 10
)

// ClassifierOptions holds the two-tier classification constants.
// FallbackTopTerms and FallbackMinScore are coupled: the cutoff is a sum of
// per-term scores, so changing one without the other changes its strictness.
type ClassifierOptions struct {
	// Threshold is the cosine similarity a topic must strictly exceed.
	Threshold float64

	// FallbackTopTerms is how many top section terms the lexical fallback compares.
	FallbackTopTerms int

	// FallbackMinScore is the summed fuzzy score the best topic must strictly exceed.
	FallbackMinScore float64
}

// DefaultClassifierOptions returns the standard classification constants.
func DefaultClassifierOptions() ClassifierOptions {
	return ClassifierOptions{
		Threshold:        DefaultClassifierThreshold,
		FallbackTopTerms: DefaultFallbackTopTerms,
		FallbackMinScore: DefaultFallbackMinScore,
	}
}

// BuildOptions configures graph construction.
type BuildOptions struct {
	// MinSimilarity is the inclusive cosine threshold for creating an edge.
	MinSimilarity float64

	// TopKeywords is the number of TF-IDF keywords per node.
	TopKeywords int

	// TopKeyphrases is the number of keyphrases per node.
	TopKeyphrases int

	// MaxFeatures caps the vocabulary size.
	MaxFeatures int

	// Topics are optional topic descriptors used for tagging.
	Topics TopicTerms

	// Classifier holds the classification constants.
	Classifier ClassifierOptions

	// TagJoiner replaces spaces in title-derived fallback tags.
	TagJoiner string
}

// DefaultBuildOptions returns the standard graph build options.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		MinSimilarity: DefaultMinSimilarity,
		TopKeywords:   DefaultTopKeywords,
		TopKeyphrases: DefaultTopKeyphrases,
		MaxFeatures:   DefaultBuildVocabulary,
		Classifier:    DefaultClassifierOptions(),
		TagJoiner:     DefaultTagJoiner,
	}
}

// DiscoverOptions configures topic discovery.
type DiscoverOptions struct {
	NumTopics     int
	TermsPerTopic int
	MaxFeatures   int
	Seed          uint64
	Restarts      int
}

// DefaultDiscoverOptions returns the standard discovery options.
func DefaultDiscoverOptions() DiscoverOptions {
	return DiscoverOptions{
		NumTopics:     DefaultNumTopics,
		TermsPerTopic: DefaultTermsPerTopic,
		MaxFeatures:   DefaultDiscoverVocabulary,
		Seed:          DefaultClusterSeed,
		Restarts:      DefaultClusterRestarts,
	}
}

// ExtractOptions configures topic context extraction.
type ExtractOptions struct {
	// IncludeNeighbors adds one-hop graph neighbours of matched nodes.
	IncludeNeighbors bool
}

// DefaultExtractOptions returns the standard extraction options.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{IncludeNeighbors: true}
}
