package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kgtool/internal/core/domain"
)

func sampleGraph() *domain.Graph {
	return domain.NewGraph(
		[]domain.Node{
			{ID: 0, Title: "Frontend", Tags: []string{"frontend"}, Keywords: []string{"react"}},
			{ID: 1, Title: "Backend", Tags: []string{"backend"}, Keywords: []string{"api"}},
		},
		[]domain.Edge{{Source: 0, Target: 1, Weight: 0.42}},
	)
}

func TestGraphStore_LoadEmpty(t *testing.T) {
	store := NewGraphStore()

	g, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, g)
}

func TestGraphStore_SaveLoad(t *testing.T) {
	store := NewGraphStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleGraph()))

	g, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, []int{1}, g.Neighbors(0))
}

func TestGraphStore_SaveCopies(t *testing.T) {
	store := NewGraphStore()
	ctx := context.Background()
	original := sampleGraph()

	require.NoError(t, store.Save(ctx, original))
	original.Nodes[0].Tags[0] = "mutated"

	g, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"frontend"}, g.Nodes[0].Tags)
}

func TestGraphStore_SaveNil(t *testing.T) {
	store := NewGraphStore()
	assert.ErrorIs(t, store.Save(context.Background(), nil), domain.ErrInvalidInput)
}

func TestGraphStore_CancelledContext(t *testing.T) {
	store := NewGraphStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Save(ctx, sampleGraph()), context.Canceled)
	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTopicStore_SaveLoad(t *testing.T) {
	store := NewTopicStore()
	ctx := context.Background()

	_, err := store.Load(ctx)
	require.ErrorIs(t, err, domain.ErrNotFound)

	topics := domain.TopicTerms{
		{Name: "frontend", Terms: []string{"react", "component"}},
		{Name: "backend", Terms: []string{"api", "database"}},
	}
	require.NoError(t, store.Save(ctx, topics))
	topics[0].Terms[0] = "mutated"

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"frontend", "backend"}, got.Names())
	assert.Equal(t, []string{"react", "component"}, got[0].Terms)
}
