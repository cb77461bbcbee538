package service

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/time/rate"

	artdomain "github.com/cerebro-sinaptico/synapse-backend/internal/artifacts/domain"
	reldomain "github.com/cerebro-sinaptico/synapse-backend/internal/relationships/domain"
	"github.com/cerebro-sinaptico/synapse-backend/internal/relationships/repository"
	"github.com/cerebro-sinaptico/synapse-backend/internal/synapse/engine"
	"github.com/cerebro-sinaptico/synapse-backend/internal/synapse/graph"
)

// ArtifactSource is the slice of the artifact repository the service needs.
type ArtifactSource interface {
	GetByID(ctx context.Context, id int64) (*artdomain.Artifact, error)
	ListByProject(ctx context.Context, projectID string) ([]artdomain.Artifact, error)
}

// ProjectSource lists project ids for full recomputes.
type ProjectSource interface {
	ListAllIDs(ctx context.Context) ([]string, error)
}

// EdgeStore is the slice of the relationship repository the service needs.
type EdgeStore interface {
	ReplaceComputed(ctx context.Context, projectID string, edges []reldomain.Relationship) (int, error)
	ListForProject(ctx context.Context, projectID string) ([]reldomain.Relationship, error)
}

// SyncService runs connection discovery over whole projects and keeps the
// persisted synapses and the cached graph snapshots in step with it. The
// recompute model is batch/on-demand: every run replaces the previously
// computed edges of the project.
type SyncService struct {
	artifacts ArtifactSource
	projects  ProjectSource
	edges     EdgeStore
	engine    *engine.Engine
	cache     *repository.GraphCache
	threshold float64
	limiter   *rate.Limiter
	log       engine.Logger
}

func NewSyncService(artifacts ArtifactSource, projects ProjectSource, edges EdgeStore, eng *engine.Engine, cache *repository.GraphCache, threshold float64, logger engine.Logger) *SyncService {
	if threshold <= 0 {
		threshold = engine.DefaultThreshold
	}
	if logger == nil {
		logger = log.Default()
	}
	return &SyncService{
		artifacts: artifacts,
		projects:  projects,
		edges:     edges,
		engine:    eng,
		cache:     cache,
		threshold: threshold,
		// Full recomputes are O(n^2) per project; one project per second
		// keeps a nightly sweep from starving the API.
		limiter: rate.NewLimiter(rate.Limit(1), 1),
		log:     logger,
	}
}

// Threshold returns the configured connection threshold.
func (s *SyncService) Threshold() float64 { return s.threshold }

// DiscoverForArtifact runs read-only discovery for one artifact against the
// rest of its project. Nothing is persisted.
func (s *SyncService) DiscoverForArtifact(ctx context.Context, artifactID int64, threshold float64) ([]engine.Candidate, []engine.Diagnostic, error) {
	target, err := s.artifacts.GetByID(ctx, artifactID)
	if err != nil {
		return nil, nil, err
	}

	candidates, err := s.artifacts.ListByProject(ctx, target.ProjectID)
	if err != nil {
		return nil, nil, fmt.Errorf("list candidates: %w", err)
	}

	matches, diags := s.engine.FindConnections(*target, candidates, threshold)
	return matches, diags, nil
}

// RecomputeProject rediscovers every synapse of one project and persists the
// accepted pairs, replacing the previous computed set. Returns the number of
// stored edges.
func (s *SyncService) RecomputeProject(ctx context.Context, projectID string) (int, error) {
	arts, err := s.artifacts.ListByProject(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("list artifacts: %w", err)
	}
	if len(arts) < 2 {
		// Still clears stale computed edges (e.g. after deletions).
		n, err := s.edges.ReplaceComputed(ctx, projectID, nil)
		if err != nil {
			return 0, err
		}
		s.invalidate(ctx, projectID)
		return n, nil
	}

	var edges []reldomain.Relationship
	for i, target := range arts {
		// Scanning only the tail keeps each unordered pair scored once;
		// the comparators pick the shorter side themselves, so direction
		// does not change the score.
		matches, diags := s.engine.FindConnections(target, arts[i+1:], s.threshold)
		for _, d := range diags {
			s.log.Printf("[warn] operation=recompute_project project=%s target=%d candidate=%d reason=%s",
				projectID, d.TargetID, d.CandidateID, d.Reason)
		}
		for _, m := range matches {
			edges = append(edges, reldomain.Relationship{
				ArtifactID1: target.ID,
				ArtifactID2: m.Artifact.ID,
				Kind:        reldomain.KindSynapse,
				Score:       m.Score,
			})
		}
	}

	n, err := s.edges.ReplaceComputed(ctx, projectID, edges)
	if err != nil {
		return 0, fmt.Errorf("persist synapses: %w", err)
	}

	s.invalidate(ctx, projectID)
	s.log.Printf("[info] operation=recompute_project project=%s artifacts=%d synapses=%d",
		projectID, len(arts), n)
	return n, nil
}

// RecomputeAll sweeps every project, rate-limited. One failing project is
// logged and skipped; the sweep continues.
func (s *SyncService) RecomputeAll(ctx context.Context) (int, error) {
	ids, err := s.projects.ListAllIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list projects: %w", err)
	}

	total := 0
	for _, id := range ids {
		if err := s.limiter.Wait(ctx); err != nil {
			return total, err
		}
		n, err := s.RecomputeProject(ctx, id)
		if err != nil {
			s.log.Printf("[error] operation=recompute_all project=%s error=%v", id, err)
			continue
		}
		total += n
	}
	return total, nil
}

// ProjectGraph builds (or serves from cache) the relationship graph snapshot
// of one project.
func (s *SyncService) ProjectGraph(ctx context.Context, projectID string) (graph.Snapshot, error) {
	if s.cache != nil {
		if snap, err := s.cache.Get(ctx, projectID); err != nil {
			s.log.Printf("[warn] operation=project_graph project=%s cache_get_error=%v", projectID, err)
		} else if snap != nil {
			return *snap, nil
		}
	}

	arts, err := s.artifacts.ListByProject(ctx, projectID)
	if err != nil {
		return graph.Snapshot{}, fmt.Errorf("list artifacts: %w", err)
	}
	rels, err := s.edges.ListForProject(ctx, projectID)
	if err != nil {
		return graph.Snapshot{}, fmt.Errorf("list relationships: %w", err)
	}

	g, diags := graph.Build(arts, rels)
	for _, d := range diags {
		s.log.Printf("[warn] operation=project_graph project=%s dropped_edge=(%d,%d) reason=%s",
			projectID, d.ArtifactID1, d.ArtifactID2, d.Reason)
	}

	snap := g.Snapshot(diags)
	if s.cache != nil {
		if err := s.cache.Set(ctx, projectID, snap); err != nil {
			s.log.Printf("[warn] operation=project_graph project=%s cache_set_error=%v", projectID, err)
		}
	}
	return snap, nil
}

func (s *SyncService) invalidate(ctx context.Context, projectID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, projectID); err != nil {
		s.log.Printf("[warn] operation=invalidate_graph project=%s error=%v", projectID, err)
	}
}
