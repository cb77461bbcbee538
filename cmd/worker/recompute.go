package main

import (
	"context"
	"log"
	"time"

	"github.com/cerebro-sinaptico/synapse-backend/config"
	artrepo "github.com/cerebro-sinaptico/synapse-backend/internal/artifacts/repository"
	"github.com/cerebro-sinaptico/synapse-backend/internal/bootstrap"
	"github.com/cerebro-sinaptico/synapse-backend/internal/projects"
	relrepo "github.com/cerebro-sinaptico/synapse-backend/internal/relationships/repository"
	"github.com/cerebro-sinaptico/synapse-backend/internal/relationships/service"
	"github.com/cerebro-sinaptico/synapse-backend/internal/storage/postgres"
	"github.com/cerebro-sinaptico/synapse-backend/internal/synapse/engine"
)

// RunRecompute performs a one-shot synapse recompute, either for a single
// project id or across every project. Same pipeline as the nightly cron job,
// runnable by hand after bulk imports.
func RunRecompute(args []string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
	defer cancel()

	pool, err := bootstrap.OpenDB(ctx, cfg.Database, bootstrap.DBOptions{})
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	sqlDB, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		log.Fatalf("sql: %v", err)
	}
	defer sqlDB.Close()

	redisClient, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Printf("redis unavailable, running uncached: %v", err)
		redisClient = nil
	}

	eng := engine.NewEngine(engine.Weights{
		Title:       cfg.Engine.TitleWeight,
		Description: cfg.Engine.DescriptionWeight,
		Content:     cfg.Engine.ContentWeight,
		Tags:        cfg.Engine.TagWeight,
	}, nil)

	var cache *relrepo.GraphCache
	if redisClient != nil {
		cache = relrepo.NewGraphCache(redisClient)
	}

	svc := service.NewSyncService(
		artrepo.NewArtifactRepository(pool),
		projects.NewRepo(pool),
		relrepo.NewRelationshipRepository(sqlDB),
		eng, cache, cfg.Engine.Threshold, nil,
	)

	start := time.Now()
	if len(args) > 0 {
		n, err := svc.RecomputeProject(ctx, args[0])
		if err != nil {
			log.Fatalf("recompute %s: %v", args[0], err)
		}
		log.Printf("project %s: %d synapses stored in %s", args[0], n, time.Since(start))
		return
	}

	total, err := svc.RecomputeAll(ctx)
	if err != nil {
		log.Fatalf("recompute all: %v", err)
	}
	log.Printf("all projects: %d synapses stored in %s", total, time.Since(start))
}
