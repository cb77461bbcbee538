package integration

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	artdomain "github.com/cerebro-sinaptico/synapse-backend/internal/artifacts/domain"
	reldomain "github.com/cerebro-sinaptico/synapse-backend/internal/relationships/domain"
	relrepo "github.com/cerebro-sinaptico/synapse-backend/internal/relationships/repository"
	"github.com/cerebro-sinaptico/synapse-backend/internal/relationships/service"
	"github.com/cerebro-sinaptico/synapse-backend/internal/synapse/engine"
)

type fakeArtifacts struct {
	byProject map[string][]artdomain.Artifact
	failFor   string
}

func (f *fakeArtifacts) GetByID(_ context.Context, id int64) (*artdomain.Artifact, error) {
	for _, arts := range f.byProject {
		for _, a := range arts {
			if a.ID == id {
				out := a
				return &out, nil
			}
		}
	}
	return nil, artdomain.ErrNotFound
}

func (f *fakeArtifacts) ListByProject(_ context.Context, projectID string) ([]artdomain.Artifact, error) {
	if projectID == f.failFor {
		return nil, fmt.Errorf("project %s unavailable", projectID)
	}
	return f.byProject[projectID], nil
}

type fakeProjects struct{ ids []string }

func (f *fakeProjects) ListAllIDs(context.Context) ([]string, error) { return f.ids, nil }

type fakeEdges struct {
	store map[string][]reldomain.Relationship
}

func (f *fakeEdges) ReplaceComputed(_ context.Context, projectID string, edges []reldomain.Relationship) (int, error) {
	if f.store == nil {
		f.store = make(map[string][]reldomain.Relationship)
	}
	f.store[projectID] = edges
	return len(edges), nil
}

func (f *fakeEdges) ListForProject(_ context.Context, projectID string) ([]reldomain.Relationship, error) {
	return f.store[projectID], nil
}

// titleEngine scores pairs purely by title similarity so the expected edge
// set is obvious from the fixtures.
func titleEngine() *engine.Engine {
	return engine.NewEngine(engine.Weights{Title: 1}, nil)
}

func setupSyncService(t *testing.T, arts *fakeArtifacts, projs *fakeProjects, edges *fakeEdges) (*service.SyncService, *relrepo.GraphCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := relrepo.NewGraphCache(client)
	svc := service.NewSyncService(arts, projs, edges, titleEngine(), cache, 70, nil)
	return svc, cache, mr
}

func TestSyncService_RecomputeProject(t *testing.T) {
	arts := &fakeArtifacts{byProject: map[string][]artdomain.Artifact{
		"synapse-1": {
			{ID: 1, Title: "alpha release checklist"},
			{ID: 2, Title: "alpha release checklist"},
			{ID: 3, Title: "zzzz"},
		},
	}}
	edges := &fakeEdges{}
	svc, cache, _ := setupSyncService(t, arts, &fakeProjects{}, edges)
	ctx := context.Background()

	// stale cached snapshot must be invalidated by the recompute
	require.NoError(t, cache.Set(ctx, "synapse-1", sampleSnapshot()))

	n, err := svc.RecomputeProject(ctx, "synapse-1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	stored := edges.store["synapse-1"]
	require.Len(t, stored, 1)
	assert.Equal(t, int64(1), stored[0].ArtifactID1)
	assert.Equal(t, int64(2), stored[0].ArtifactID2)
	assert.Equal(t, reldomain.KindSynapse, stored[0].Kind)
	assert.InDelta(t, 100.0, stored[0].Score, 0.001)

	snap, err := cache.Get(ctx, "synapse-1")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSyncService_RecomputeProjectTooFewArtifacts(t *testing.T) {
	arts := &fakeArtifacts{byProject: map[string][]artdomain.Artifact{
		"synapse-1": {{ID: 1, Title: "lonely"}},
	}}
	edges := &fakeEdges{store: map[string][]reldomain.Relationship{
		"synapse-1": {{ArtifactID1: 1, ArtifactID2: 2, Kind: reldomain.KindSynapse}},
	}}
	svc, _, _ := setupSyncService(t, arts, &fakeProjects{}, edges)

	// stale computed edges are cleared even when nothing can be paired
	n, err := svc.RecomputeProject(context.Background(), "synapse-1")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Empty(t, edges.store["synapse-1"])
}

func TestSyncService_RecomputeAllSkipsFailingProject(t *testing.T) {
	arts := &fakeArtifacts{
		byProject: map[string][]artdomain.Artifact{
			"good": {
				{ID: 1, Title: "notes on redis"},
				{ID: 2, Title: "notes on redis"},
			},
		},
		failFor: "bad",
	}
	edges := &fakeEdges{}
	svc, _, _ := setupSyncService(t, arts, &fakeProjects{ids: []string{"good", "bad"}}, edges)

	total, err := svc.RecomputeAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, edges.store["good"], 1)
}

func TestSyncService_DiscoverForArtifact(t *testing.T) {
	arts := &fakeArtifacts{byProject: map[string][]artdomain.Artifact{
		"synapse-1": {
			{ID: 1, ProjectID: "synapse-1", Title: "ideas for the pitch"},
			{ID: 2, ProjectID: "synapse-1", Title: "ideas for the pitch"},
			{ID: 3, ProjectID: "synapse-1", Title: "unrelated"},
		},
	}}
	svc, _, _ := setupSyncService(t, arts, &fakeProjects{}, &fakeEdges{})

	t.Run("finds matches above threshold", func(t *testing.T) {
		matches, diags, err := svc.DiscoverForArtifact(context.Background(), 1, 70)
		require.NoError(t, err)
		assert.Empty(t, diags)
		require.Len(t, matches, 1)
		assert.Equal(t, int64(2), matches[0].Artifact.ID)
	})

	t.Run("unknown artifact errors", func(t *testing.T) {
		_, _, err := svc.DiscoverForArtifact(context.Background(), 999, 70)
		assert.ErrorIs(t, err, artdomain.ErrNotFound)
	})
}

func TestSyncService_ProjectGraphCaching(t *testing.T) {
	arts := &fakeArtifacts{byProject: map[string][]artdomain.Artifact{
		"synapse-1": {
			{ID: 1, Title: "a"},
			{ID: 2, Title: "b"},
		},
	}}
	edges := &fakeEdges{store: map[string][]reldomain.Relationship{
		"synapse-1": {{ArtifactID1: 1, ArtifactID2: 2, Kind: reldomain.KindSynapse, Score: 75}},
	}}
	svc, _, _ := setupSyncService(t, arts, &fakeProjects{}, edges)
	ctx := context.Background()

	first, err := svc.ProjectGraph(ctx, "synapse-1")
	require.NoError(t, err)
	require.Len(t, first.Nodes, 2)
	require.Len(t, first.Edges, 1)

	// mutate the backing store; the cached snapshot must still be served
	edges.store["synapse-1"] = nil

	second, err := svc.ProjectGraph(ctx, "synapse-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// after a recompute the cache is dropped and the graph reflects the store
	_, err = svc.RecomputeProject(ctx, "synapse-1")
	require.NoError(t, err)

	third, err := svc.ProjectGraph(ctx, "synapse-1")
	require.NoError(t, err)
	assert.Empty(t, third.Edges)
}
