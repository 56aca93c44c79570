package domain

// AppSettings holds user defaults for the pipeline entry points.
// Command-line flags override these values per invocation.
type AppSettings struct {
	Build    BuildSettings
	Discover DiscoverSettings
	Extract  ExtractSettings
}

// BuildSettings holds graph build defaults.
type BuildSettings struct {
	MinSimilarity float64
	TopKeywords   int
	TopKeyphrases int
	MaxFeatures   int
}

// DiscoverSettings holds topic discovery defaults.
type DiscoverSettings struct {
	NumTopics     int
	TermsPerTopic int
	MaxFeatures   int
}

// ExtractSettings holds context extraction defaults.
type ExtractSettings struct {
	IncludeNeighbors bool
}

// DefaultAppSettings returns settings matching the built-in defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Build: BuildSettings{
			MinSimilarity: DefaultMinSimilarity,
			TopKeywords:   DefaultTopKeywords,
			TopKeyphrases: DefaultTopKeyphrases,
			MaxFeatures:   DefaultBuildVocabulary,
		},
		Discover: DiscoverSettings{
			NumTopics:     DefaultNumTopics,
			TermsPerTopic: DefaultTermsPerTopic,
			MaxFeatures:   DefaultDiscoverVocabulary,
		},
		Extract: ExtractSettings{
			IncludeNeighbors: true,
		},
	}
}

// BuildOptions converts build settings into options with default classifier constants.
func (s AppSettings) BuildOptions() BuildOptions {
	opts := DefaultBuildOptions()
	opts.MinSimilarity = s.Build.MinSimilarity
	opts.TopKeywords = s.Build.TopKeywords
	opts.TopKeyphrases = s.Build.TopKeyphrases
	if s.Build.MaxFeatures > 0 {
		opts.MaxFeatures = s.Build.MaxFeatures
	}
	return opts
}

// DiscoverOptions converts discovery settings into options.
func (s AppSettings) DiscoverOptions() DiscoverOptions {
	opts := DefaultDiscoverOptions()
	opts.NumTopics = s.Discover.NumTopics
	opts.TermsPerTopic = s.Discover.TermsPerTopic
	if s.Discover.MaxFeatures > 0 {
		opts.MaxFeatures = s.Discover.MaxFeatures
	}
	return opts
}

// ExtractOptions converts extraction settings into options.
func (s AppSettings) ExtractOptions() ExtractOptions {
	return ExtractOptions{IncludeNeighbors: s.Extract.IncludeNeighbors}
}
