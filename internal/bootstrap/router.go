package bootstrap

import (
	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/cerebro-sinaptico/synapse-backend/internal/api/http"
	"github.com/cerebro-sinaptico/synapse-backend/internal/api/http/middleware"
	arthttp "github.com/cerebro-sinaptico/synapse-backend/internal/artifacts/http"
	artrepo "github.com/cerebro-sinaptico/synapse-backend/internal/artifacts/repository"
	"github.com/cerebro-sinaptico/synapse-backend/internal/auth"
	"github.com/cerebro-sinaptico/synapse-backend/internal/projects"
	relhttp "github.com/cerebro-sinaptico/synapse-backend/internal/relationships/http"
	relrepo "github.com/cerebro-sinaptico/synapse-backend/internal/relationships/repository"
	"github.com/cerebro-sinaptico/synapse-backend/internal/relationships/service"
	"github.com/cerebro-sinaptico/synapse-backend/internal/tags"
	"github.com/cerebro-sinaptico/synapse-backend/internal/users"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *pgxpool.Pool
	Cache       *redis.Client
	AuthClient  *firebaseauth.Client
	Sync        *service.SyncService
	Edges       *relrepo.RelationshipRepository
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Request-Id", "X-User-Id"},
		AllowCredentials: true,
	}))
	r.Use(middleware.RequestID())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Cache)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	userRepo := users.NewRepo(dep.DB)
	projectRepo := projects.NewRepo(dep.DB)
	tagRepo := tags.NewRepo(dep.DB)
	artifactRepo := artrepo.NewArtifactRepository(dep.DB)

	api.Use(auth.WithUser(userRepo, dep.AuthClient))

	projectsGroup := api.Group("/projects")
	projects.Register(projectsGroup, projectRepo)

	artifactHandler := arthttp.New(artifactRepo, tagRepo, projectRepo)
	artifactHandler.RegisterProjectSubroutes(projectsGroup)
	artifactHandler.Register(api)

	relHandler := relhttp.New(dep.Sync, dep.Edges, projectRepo)
	relHandler.RegisterProjectSubroutes(projectsGroup)
	relHandler.Register(api)

	return r
}
