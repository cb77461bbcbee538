package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cerebro-sinaptico/synapse-backend/config"
	artrepo "github.com/cerebro-sinaptico/synapse-backend/internal/artifacts/repository"
	"github.com/cerebro-sinaptico/synapse-backend/internal/auth"
	"github.com/cerebro-sinaptico/synapse-backend/internal/bootstrap"
	"github.com/cerebro-sinaptico/synapse-backend/internal/projects"
	cronjob "github.com/cerebro-sinaptico/synapse-backend/internal/relationships/cron"
	relrepo "github.com/cerebro-sinaptico/synapse-backend/internal/relationships/repository"
	"github.com/cerebro-sinaptico/synapse-backend/internal/relationships/service"
	"github.com/cerebro-sinaptico/synapse-backend/internal/storage/postgres"
	"github.com/cerebro-sinaptico/synapse-backend/internal/synapse/engine"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[error] operation=config_load error=%v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := bootstrap.OpenDB(ctx, cfg.Database, bootstrap.DBOptions{})
	if err != nil {
		log.Fatalf("[error] operation=db_open error=%v", err)
	}
	defer pool.Close()

	sqlDB, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		log.Fatalf("[error] operation=sql_open error=%v", err)
	}
	defer sqlDB.Close()

	redisClient, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Printf("[warn] operation=redis_open error=%v (graph cache disabled)", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	authClient, err := auth.InitializeFirebase(&cfg.Firebase)
	if err != nil {
		log.Fatalf("[error] operation=firebase_init error=%v", err)
	}
	if authClient == nil {
		log.Println("[warn] firebase credentials not configured, running in demo auth mode")
	}

	eng := engine.NewEngine(engine.Weights{
		Title:       cfg.Engine.TitleWeight,
		Description: cfg.Engine.DescriptionWeight,
		Content:     cfg.Engine.ContentWeight,
		Tags:        cfg.Engine.TagWeight,
	}, nil)

	artifactRepo := artrepo.NewArtifactRepository(pool)
	projectRepo := projects.NewRepo(pool)
	edgeRepo := relrepo.NewRelationshipRepository(sqlDB)

	var cache *relrepo.GraphCache
	if redisClient != nil {
		cache = relrepo.NewGraphCache(redisClient)
	}

	syncSvc := service.NewSyncService(artifactRepo, projectRepo, edgeRepo, eng, cache, cfg.Engine.Threshold, nil)

	scheduler := cronjob.NewScheduler(syncSvc)
	scheduler.Start()
	defer scheduler.Stop()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "synapse-backend",
		Version:     cfg.App.Version,
		DB:          pool,
		Cache:       redisClient,
		AuthClient:  authClient,
		Sync:        syncSvc,
		Edges:       edgeRepo,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[info] operation=serve addr=%s env=%s", srv.Addr, cfg.App.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[error] operation=serve error=%v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[info] shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[error] operation=shutdown error=%v", err)
	}
}
