package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"lowercases", "React Components", []string{"react", "components"}},
		{"drops single runes", "a b cd e", []string{"cd"}},
		{"splits on punctuation", "state-management, (redux)!", []string{"state", "management", "redux"}},
		{"keeps digits and underscores", "http2 max_conns", []string{"http2", "max_conns"}},
		{"normalises full width", "ＡＰＩ", []string{"api"}},
		{"unicode letters", "Größe café", []string{"grösse", "café"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.text))
		})
	}
}

func TestRemoveStopwords(t *testing.T) {
	got := RemoveStopwords([]string{"the", "frontend", "is", "built", "with", "react"})
	assert.Equal(t, []string{"frontend", "built", "react"}, got)
}

func TestRemoveStopwords_DoesNotMutateInput(t *testing.T) {
	in := []string{"the", "api"}
	_ = RemoveStopwords(in)
	assert.Equal(t, []string{"the", "api"}, in)
}

func TestIsStopword(t *testing.T) {
	assert.True(t, IsStopword("The"))
	assert.True(t, IsStopword("system"))
	assert.False(t, IsStopword("kubernetes"))
}

func TestNgrams(t *testing.T) {
	tokens := []string{"api", "gateway", "routes"}

	assert.Equal(t, []string{"api", "gateway", "routes"}, Ngrams(tokens, 1, 1))
	assert.Equal(t,
		[]string{"api", "gateway", "routes", "api gateway", "gateway routes"},
		Ngrams(tokens, 1, 2))
	assert.Nil(t, Ngrams(nil, 1, 2))
}
