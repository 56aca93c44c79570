package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kgtool/internal/analysis/fuzzy"
	"github.com/custodia-labs/kgtool/internal/analysis/tfidf"
	"github.com/custodia-labs/kgtool/internal/core/domain"
	"github.com/custodia-labs/kgtool/internal/core/ports/driven"
)

var classifierTopics = domain.TopicTerms{
	{Name: "frontend", Terms: []string{"react", "component", "frontend"}},
	{Name: "backend", Terms: []string{"api", "database", "backend"}},
}

func fitClassifierModel(t *testing.T) driven.FeatureModel {
	t.Helper()
	model, err := tfidf.New().Fit([]string{
		"react component frontend react",
		"api database backend api",
		"components frontends reacting",
		"zebra xylophone",
	}, 100)
	require.NoError(t, err)
	return model
}

func TestNewTopicClassifier_Defaults(t *testing.T) {
	tests := []struct {
		name string
		opts domain.ClassifierOptions
		want domain.ClassifierOptions
	}{
		{
			name: "zero value",
			opts: domain.ClassifierOptions{},
			want: domain.DefaultClassifierOptions(),
		},
		{
			name: "custom threshold keeps fallback defaults",
			opts: domain.ClassifierOptions{Threshold: 0.4},
			want: domain.ClassifierOptions{
				Threshold:        0.4,
				FallbackTopTerms: domain.DefaultFallbackTopTerms,
				FallbackMinScore: domain.DefaultFallbackMinScore,
			},
		},
		{
			name: "fully custom",
			opts: domain.ClassifierOptions{Threshold: 0.3, FallbackTopTerms: 5, FallbackMinScore: 100},
			want: domain.ClassifierOptions{Threshold: 0.3, FallbackTopTerms: 5, FallbackMinScore: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewTopicClassifier(tt.opts).Options())
		})
	}
}

func TestTopicClassifier_Index(t *testing.T) {
	model := fitClassifierModel(t)
	c := NewTopicClassifier(domain.ClassifierOptions{})

	idx := c.Index(model, classifierTopics)

	assert.Equal(t, classifierTopics, idx.Topics())
	assert.False(t, idx.Vector(0).IsZero())
	assert.Equal(t, model.Vocabulary().Len(), idx.Vector(1).Dim)
}

func TestTopicClassifier_Index_UnknownTerms(t *testing.T) {
	model := fitClassifierModel(t)
	c := NewTopicClassifier(domain.ClassifierOptions{})

	idx := c.Index(model, domain.TopicTerms{{Name: "ops", Terms: []string{"kubernetes"}}})

	assert.True(t, idx.Vector(0).IsZero())
}

func TestTopicClassifier_Classify_Cosine(t *testing.T) {
	model := fitClassifierModel(t)
	c := NewTopicClassifier(domain.ClassifierOptions{})
	idx := c.Index(model, classifierTopics)
	vectors := model.Vectors()

	front := c.Classify(idx, vectors[0])
	assert.Equal(t, []string{"frontend"}, front.Tags)
	assert.False(t, front.Fallback)
	require.Len(t, front.Similarities, 2)
	assert.Greater(t, front.Similarities[0], domain.DefaultClassifierThreshold)
	assert.InDelta(t, 0, front.Similarities[1], 1e-12)

	back := c.Classify(idx, vectors[1])
	assert.Equal(t, []string{"backend"}, back.Tags)
}

func TestTopicClassifier_Classify_AllTopicsAboveThreshold(t *testing.T) {
	model, err := tfidf.New().Fit([]string{"react api", "react", "api"}, 10)
	require.NoError(t, err)
	c := NewTopicClassifier(domain.ClassifierOptions{})
	idx := c.Index(model, domain.TopicTerms{
		{Name: "ui", Terms: []string{"react"}},
		{Name: "server", Terms: []string{"api"}},
	})

	res := c.Classify(idx, model.Vectors()[0])

	assert.Equal(t, []string{"ui", "server"}, res.Tags)
}

func TestTopicClassifier_Classify_LexicalFallback(t *testing.T) {
	model := fitClassifierModel(t)
	c := NewTopicClassifier(domain.ClassifierOptions{})
	idx := c.Index(model, classifierTopics)

	res := c.Classify(idx, model.Vectors()[2])

	assert.True(t, res.Fallback)
	assert.Equal(t, "frontend", res.FallbackTopic)
	assert.Greater(t, res.FallbackScore, float64(domain.DefaultFallbackMinScore))
	assert.Equal(t, []string{"frontend"}, res.Tags)
	for _, sim := range res.Similarities {
		assert.InDelta(t, 0, sim, 1e-12)
	}
}

func TestTopicClassifier_Classify_FallbackBelowMinimum(t *testing.T) {
	model := fitClassifierModel(t)
	c := NewTopicClassifier(domain.ClassifierOptions{})
	idx := c.Index(model, classifierTopics)

	res := c.Classify(idx, model.Vectors()[3])

	assert.True(t, res.Fallback)
	assert.LessOrEqual(t, res.FallbackScore, float64(domain.DefaultFallbackMinScore))
	assert.Empty(t, res.Tags)
}

func TestTopicClassifier_Classify_ZeroVector(t *testing.T) {
	model := fitClassifierModel(t)
	c := NewTopicClassifier(domain.ClassifierOptions{})
	idx := c.Index(model, classifierTopics)

	res := c.Classify(idx, model.Transform("nothing known here"))

	assert.True(t, res.Fallback)
	assert.Empty(t, res.Tags)
	assert.Empty(t, res.FallbackTopic)
	assert.Zero(t, res.FallbackScore)
}

func TestTopicClassifier_Classify_FallbackUsesOnlyNonzeroTerms(t *testing.T) {
	model := fitClassifierModel(t)
	c := NewTopicClassifier(domain.ClassifierOptions{})
	idx := c.Index(model, classifierTopics)

	// One nonzero term out of a vocabulary of more than ten.
	vec := model.Transform("zebra")
	require.Len(t, vec.TopIndices(domain.DefaultFallbackTopTerms), 1)
	require.Greater(t, model.Vocabulary().Len(), domain.DefaultFallbackTopTerms)

	res := c.Classify(idx, vec)

	want := 0.0
	for _, topic := range classifierTopics {
		want = max(want, fuzzy.BestRatio("zebra", topic.Terms))
	}
	assert.True(t, res.Fallback)
	assert.InDelta(t, want, res.FallbackScore, 1e-9)
	assert.LessOrEqual(t, res.FallbackScore, float64(fuzzy.MaxScore))
	assert.Empty(t, res.Tags)
}
