package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/cerebro-sinaptico/synapse-backend/internal/auth"
	"github.com/cerebro-sinaptico/synapse-backend/internal/projects"
	"github.com/cerebro-sinaptico/synapse-backend/internal/relationships/domain"
	"github.com/cerebro-sinaptico/synapse-backend/internal/relationships/repository"
	"github.com/cerebro-sinaptico/synapse-backend/internal/relationships/service"
	"github.com/cerebro-sinaptico/synapse-backend/internal/synapse/graph"
)

type Handler struct {
	svc      *service.SyncService
	repo     *repository.RelationshipRepository
	projects *projects.Repo
	// Recomputes are O(n^2) over a project's artifacts; one at a time with a
	// small burst is plenty for an on-demand trigger.
	recomputeLimiter *rate.Limiter
}

func New(svc *service.SyncService, repo *repository.RelationshipRepository, projectRepo *projects.Repo) *Handler {
	return &Handler{
		svc:              svc,
		repo:             repo,
		projects:         projectRepo,
		recomputeLimiter: rate.NewLimiter(rate.Limit(0.5), 2),
	}
}

// RegisterProjectSubroutes mounts the project-scoped routes on the /projects
// group.
func (h *Handler) RegisterProjectSubroutes(rg *gin.RouterGroup) {
	rg.GET("/:public_id/graph", h.projectGraph)
	rg.POST("/:public_id/synapses/recompute", h.recompute)
}

// Register mounts the artifact- and relationship-scoped routes.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/artifacts/:id/connections", h.connections)
	rg.GET("/artifacts/:id/relationships", h.listForArtifact)
	rg.POST("/relationships", h.create)
	rg.DELETE("/relationships/:id", h.deleteRelationship)
}

func (h *Handler) ownedProject(c *gin.Context) (*projects.Project, bool) {
	p, err := h.projects.Get(c.Request.Context(), auth.UserDBID(c), c.Param("public_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return nil, false
	}
	return p, true
}

// connections runs read-only discovery for one artifact against its project.
func (h *Handler) connections(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid artifact id"})
		return
	}

	threshold := h.svc.Threshold()
	if raw := c.Query("threshold"); raw != "" {
		t, err := strconv.ParseFloat(raw, 64)
		if err != nil || t < 0 || t > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "threshold must be within [0,100]"})
			return
		}
		threshold = t
	}

	matches, diags, err := h.svc.DiscoverForArtifact(c.Request.Context(), id, threshold)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
		return
	}

	conns := make([]connectionResp, 0, len(matches))
	for _, m := range matches {
		conns = append(conns, connectionResp{
			ArtifactID: m.Artifact.ID,
			Title:      m.Artifact.Title,
			Score:      m.Score,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"threshold":   threshold,
		"connections": conns,
		"skipped":     len(diags),
	})
}

func (h *Handler) listForArtifact(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid artifact id"})
		return
	}

	rels, err := h.repo.ListForArtifact(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "relationships": rels})
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ArtifactID1 <= 0 || req.ArtifactID2 <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	rel, err := h.repo.Create(c.Request.Context(), req.ArtifactID1, req.ArtifactID2, strings.TrimSpace(req.Kind), req.Score, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSelfLink):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "cannot relate an artifact to itself"})
		case errors.Is(err, domain.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "relationship already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "relationship": rel})
}

func (h *Handler) deleteRelationship(c *gin.Context) {
	deleted, err := h.repo.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "relationship not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) recompute(c *gin.Context) {
	p, ok := h.ownedProject(c)
	if !ok {
		return
	}

	if !h.recomputeLimiter.Allow() {
		c.JSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": "recompute already in progress, try again shortly"})
		return
	}

	n, err := h.svc.RecomputeProject(c.Request.Context(), p.PublicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p.PublicID, "synapses": n})
}

func (h *Handler) projectGraph(c *gin.Context) {
	p, ok := h.ownedProject(c)
	if !ok {
		return
	}

	snap, err := h.svc.ProjectGraph(c.Request.Context(), p.PublicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	if c.Query("format") == "dot" {
		c.Data(http.StatusOK, "text/vnd.graphviz; charset=utf-8", []byte(graph.ToDOT(snap, p.Title)))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"graph": snap,
		"nodes": len(snap.Nodes),
		"edges": len(snap.Edges),
	})
}
