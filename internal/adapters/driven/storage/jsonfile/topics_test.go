package jsonfile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kgtool/internal/core/domain"
)

func TestEncodeTopics(t *testing.T) {
	tests := []struct {
		name   string
		topics domain.TopicTerms
		want   string
	}{
		{
			name: "ordered object",
			topics: domain.TopicTerms{
				{Name: "topic_1", Terms: []string{"api", "données"}},
				{Name: "topic_0", Terms: []string{"react & vue"}},
			},
			want: "{\n  \"topic_1\": [\n    \"api\",\n    \"données\"\n  ],\n  \"topic_0\": [\n    \"react & vue\"\n  ]\n}\n",
		},
		{
			name:   "empty terms",
			topics: domain.TopicTerms{{Name: "ops"}},
			want:   "{\n  \"ops\": []\n}\n",
		},
		{
			name:   "no topics",
			topics: nil,
			want:   "{}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, EncodeTopics(&buf, tt.topics))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestDecodeTopics_KeepsFileOrder(t *testing.T) {
	input := `{"zeta": ["z1", "z2"], "alpha": ["a1"], "mid": []}`

	topics, err := DecodeTopics(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, topics.Names())
	assert.Equal(t, []string{"z1", "z2"}, topics[0].Terms)
	assert.Equal(t, []string{}, topics[2].Terms)
}

func TestDecodeTopics_RoundTrip(t *testing.T) {
	topics := domain.TopicTerms{
		{Name: "frontend", Terms: []string{"react", "component"}},
		{Name: "backend", Terms: []string{"api"}},
	}
	var buf bytes.Buffer
	require.NoError(t, EncodeTopics(&buf, topics))

	got, err := DecodeTopics(&buf)

	require.NoError(t, err)
	assert.Equal(t, topics, got)
}

func TestDecodeTopics_Duplicates(t *testing.T) {
	topics, err := DecodeTopics(strings.NewReader(`{"a": ["x"], "b": ["y"], "a": ["z"]}`))

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, topics.Names())
	assert.Equal(t, []string{"z"}, topics[0].Terms)
}

func TestDecodeTopics_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"array", `["a", "b"]`},
		{"terms not list", `{"a": "react"}`},
		{"terms not strings", `{"a": [1, 2]}`},
		{"truncated", `{"a": ["x"]`},
		{"empty input", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTopics(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestDecodeTopics_EmptyObject(t *testing.T) {
	topics, err := DecodeTopics(strings.NewReader(`{}`))

	require.NoError(t, err)
	assert.Empty(t, topics)
	assert.NotNil(t, topics)
}
