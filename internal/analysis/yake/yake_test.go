package yake

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kgtool/internal/analysis/fuzzy"
	"github.com/custodia-labs/kgtool/internal/analysis/textutil"
)

const frontendText = `The frontend is built with React components. React components render
the user dashboard and the settings pages. Each React component is tested with Jest.
State management uses Redux, and the design system provides shared styling.`

func TestExtract_ReturnsAtMostK(t *testing.T) {
	got := New().Extract(frontendText, 3)

	assert.LessOrEqual(t, len(got), 3)
	assert.NotEmpty(t, got)
}

func TestExtract_FindsDominantPhrase(t *testing.T) {
	got := New().Extract(frontendText, 5)

	found := false
	for _, p := range got {
		if strings.Contains(p, "react") {
			found = true
		}
	}
	assert.True(t, found, "expected a react phrase in %v", got)
}

func TestExtract_PhrasesAreWellFormed(t *testing.T) {
	got := New().Extract(frontendText, 20)
	require.NotEmpty(t, got)

	seen := make(map[string]bool)
	for _, p := range got {
		assert.False(t, seen[p], "duplicate phrase %q", p)
		seen[p] = true

		assert.Equal(t, strings.ToLower(p), p)
		words := strings.Fields(p)
		assert.LessOrEqual(t, len(words), DefaultMaxNgram)
		assert.False(t, textutil.IsStopword(words[0]), "phrase %q starts with a stopword", p)
		assert.False(t, textutil.IsStopword(words[len(words)-1]), "phrase %q ends with a stopword", p)
	}
}

func TestExtract_Deterministic(t *testing.T) {
	e := New()
	assert.Equal(t, e.Extract(frontendText, 10), e.Extract(frontendText, 10))
}

func TestExtract_ShortAndEmptyInput(t *testing.T) {
	e := New()

	assert.Empty(t, e.Extract("", 5))
	assert.Empty(t, e.Extract("   \n\n  ", 5))
	assert.Empty(t, e.Extract("the and of it", 5))
	assert.Empty(t, e.Extract("--- ***", 5))
	assert.Empty(t, e.Extract(frontendText, 0))
}

func TestExtract_SkipsNumbersAndMixedTokens(t *testing.T) {
	got := New().Extract("Kubernetes 1.29 runs on node v2beta nodes. Kubernetes schedules pods.", 10)

	for _, p := range got {
		assert.NotContains(t, p, "1.29")
		assert.NotContains(t, p, "v2beta")
	}
}

func TestExtract_DeduplicatesNearIdenticalPhrases(t *testing.T) {
	got := New(WithDedupLimit(0.5)).Extract(frontendText, 20)

	for i := range got {
		for j := i + 1; j < len(got); j++ {
			assert.LessOrEqual(t, fuzzy.Ratio(got[i], got[j]), 50.0,
				"%q and %q should have been deduplicated", got[i], got[j])
		}
	}
}

func TestTagWord(t *testing.T) {
	tests := []struct {
		word string
		idx  int
		want wordTag
	}{
		{"frontend", 0, tagPlain},
		{"Frontend", 0, tagPlain},
		{"Frontend", 3, tagProper},
		{"API", 2, tagAcronym},
		{"2024", 1, tagDigit},
		{"1,000.5", 1, tagDigit},
		{"v2", 1, tagUnusual},
		{"a-b-c", 1, tagUnusual},
		{"state-of", 1, tagPlain},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, tagWord(tt.word, tt.idx))
		})
	}
}

func TestSplitSentences(t *testing.T) {
	s := splitSentences("First sentence here. Second one!\nThird line\n\n")

	require.Len(t, s, 3)
	assert.Equal(t, "First", s[0][0].text)
	assert.Equal(t, "Second", s[1][0].text)
	assert.Equal(t, "Third", s[2][0].text)
}

func TestTokenize_KeepsJoinedWords(t *testing.T) {
	toks := tokenize("end-to-end test, don't (stop)")

	var words []string
	for _, tok := range toks {
		if !tok.punct {
			words = append(words, tok.text)
		}
	}
	assert.Equal(t, []string{"end-to-end", "test", "don't", "stop"}, words)
}
