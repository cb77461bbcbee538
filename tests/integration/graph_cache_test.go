package integration

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	relrepo "github.com/cerebro-sinaptico/synapse-backend/internal/relationships/repository"
	"github.com/cerebro-sinaptico/synapse-backend/internal/synapse/graph"
)

func setupCache(t *testing.T) (*relrepo.GraphCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return relrepo.NewGraphCache(client), mr
}

func sampleSnapshot() graph.Snapshot {
	return graph.Snapshot{
		Nodes: []graph.Node{
			{ID: 1, Title: "Mood board", Kind: "tagged"},
			{ID: 2, Title: "Launch plan", Kind: "artifact"},
		},
		Edges: []graph.Edge{
			{From: 1, To: 2, Kind: "synapse", Score: 82},
		},
	}
}

func TestGraphCache_SetGet(t *testing.T) {
	cache, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "synapse-1", sampleSnapshot()))

	got, err := cache.Get(ctx, "synapse-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sampleSnapshot(), *got)
}

func TestGraphCache_MissReturnsNil(t *testing.T) {
	cache, _ := setupCache(t)

	got, err := cache.Get(context.Background(), "never-stored")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGraphCache_Invalidate(t *testing.T) {
	cache, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "synapse-1", sampleSnapshot()))
	require.NoError(t, cache.Invalidate(ctx, "synapse-1"))

	got, err := cache.Get(ctx, "synapse-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGraphCache_SnapshotExpires(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "synapse-1", sampleSnapshot()))

	mr.FastForward(11 * time.Minute)

	got, err := cache.Get(ctx, "synapse-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
