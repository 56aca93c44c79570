package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kgtool/internal/core/domain"
)

func TestGraphStore_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "graph.json")
	store := NewGraphStore(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleGraph()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	g, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, path, store.Path())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestGraphStore_LoadMissing(t *testing.T) {
	store := NewGraphStore(filepath.Join(t.TempDir(), "graph.json"))

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGraphStore_LoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"nodes": [{"id": 3}]}`), 0644))

	_, err := NewGraphStore(path).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidGraph)
	assert.Contains(t, err.Error(), path)
}

func TestTopicStore_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topic_terms.json")
	store := NewTopicStore(path)
	ctx := context.Background()
	topics := domain.TopicTerms{
		{Name: "topic_0", Terms: []string{"react", "frontend"}},
		{Name: "topic_1", Terms: []string{"api"}},
	}

	require.NoError(t, store.Save(ctx, topics))
	got, err := store.Load(ctx)

	require.NoError(t, err)
	assert.Equal(t, topics, got)
}

func TestTopicStore_LoadMissing(t *testing.T) {
	_, err := NewTopicStore(filepath.Join(t.TempDir(), "none.json")).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStores_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dir := t.TempDir()

	assert.ErrorIs(t, NewGraphStore(filepath.Join(dir, "g.json")).Save(ctx, sampleGraph()), context.Canceled)
	assert.ErrorIs(t, NewTopicStore(filepath.Join(dir, "t.json")).Save(ctx, nil), context.Canceled)
	_, err := NewGraphStore(filepath.Join(dir, "g.json")).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
