package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, DefaultMinSimilarity, s.Build.MinSimilarity)
	assert.Equal(t, DefaultTopKeywords, s.Build.TopKeywords)
	assert.Equal(t, DefaultTopKeyphrases, s.Build.TopKeyphrases)
	assert.Equal(t, DefaultBuildVocabulary, s.Build.MaxFeatures)
	assert.Equal(t, DefaultNumTopics, s.Discover.NumTopics)
	assert.Equal(t, DefaultTermsPerTopic, s.Discover.TermsPerTopic)
	assert.Equal(t, DefaultDiscoverVocabulary, s.Discover.MaxFeatures)
	assert.True(t, s.Extract.IncludeNeighbors)
}

func TestAppSettings_BuildOptions(t *testing.T) {
	s := DefaultAppSettings()
	s.Build.MinSimilarity = 0.2
	s.Build.TopKeywords = 8
	s.Build.MaxFeatures = 0

	opts := s.BuildOptions()

	assert.Equal(t, 0.2, opts.MinSimilarity)
	assert.Equal(t, 8, opts.TopKeywords)
	assert.Equal(t, DefaultBuildVocabulary, opts.MaxFeatures)
	assert.Equal(t, DefaultClassifierOptions(), opts.Classifier)
	assert.Equal(t, DefaultTagJoiner, opts.TagJoiner)
	assert.Nil(t, opts.Topics)
}

func TestAppSettings_DiscoverOptions(t *testing.T) {
	s := DefaultAppSettings()
	s.Discover.NumTopics = 3
	s.Discover.MaxFeatures = 50

	opts := s.DiscoverOptions()

	assert.Equal(t, 3, opts.NumTopics)
	assert.Equal(t, 50, opts.MaxFeatures)
	assert.Equal(t, uint64(DefaultClusterSeed), opts.Seed)
	assert.Equal(t, DefaultClusterRestarts, opts.Restarts)
}

func TestAppSettings_ExtractOptions(t *testing.T) {
	s := DefaultAppSettings()
	s.Extract.IncludeNeighbors = false

	assert.Equal(t, ExtractOptions{IncludeNeighbors: false}, s.ExtractOptions())
	assert.Equal(t, ExtractOptions{IncludeNeighbors: true}, DefaultExtractOptions())
}

func TestBodies(t *testing.T) {
	sections := []Section{{Index: 0, Body: "a"}, {Index: 1, Body: "b"}}
	assert.Equal(t, []string{"a", "b"}, Bodies(sections))
	assert.Empty(t, Bodies(nil))
}
