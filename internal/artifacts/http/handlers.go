package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cerebro-sinaptico/synapse-backend/internal/artifacts/domain"
	"github.com/cerebro-sinaptico/synapse-backend/internal/artifacts/repository"
	"github.com/cerebro-sinaptico/synapse-backend/internal/auth"
	"github.com/cerebro-sinaptico/synapse-backend/internal/projects"
	"github.com/cerebro-sinaptico/synapse-backend/internal/tags"
)

type Handler struct {
	repo     *repository.ArtifactRepository
	tags     *tags.Repo
	projects *projects.Repo
}

func New(repo *repository.ArtifactRepository, tagRepo *tags.Repo, projectRepo *projects.Repo) *Handler {
	return &Handler{repo: repo, tags: tagRepo, projects: projectRepo}
}

// RegisterProjectSubroutes mounts the project-scoped artifact routes on the
// /projects group.
func (h *Handler) RegisterProjectSubroutes(rg *gin.RouterGroup) {
	rg.POST("/:public_id/artifacts", h.create)
	rg.GET("/:public_id/artifacts", h.listByProject)
}

// Register mounts the artifact-scoped routes on the API group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/artifacts/:id", h.get)
	rg.PATCH("/artifacts/:id", h.update)
	rg.DELETE("/artifacts/:id", h.delete)
	rg.POST("/artifacts/:id/tags", h.attachTag)
	rg.DELETE("/artifacts/:id/tags/:name", h.detachTag)
}

type upsertReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags"`
}

type tagReq struct {
	Name string `json:"name"`
}

func artifactID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid artifact id"})
		return 0, false
	}
	return id, true
}

// ownedProject resolves the project for the current user, guarding
// project-scoped routes.
func (h *Handler) ownedProject(c *gin.Context) (*projects.Project, bool) {
	p, err := h.projects.Get(c.Request.Context(), auth.UserDBID(c), c.Param("public_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return nil, false
	}
	return p, true
}

func (h *Handler) create(c *gin.Context) {
	p, ok := h.ownedProject(c)
	if !ok {
		return
	}

	var req upsertReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	a, err := h.repo.Create(c.Request.Context(), p.PublicID, strings.TrimSpace(req.Title), req.Description, req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	for _, name := range req.Tags {
		if err := h.tags.Attach(c.Request.Context(), a.ID, name); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "attach tag: " + err.Error()})
			return
		}
	}
	if len(req.Tags) > 0 {
		if labels, err := h.tags.ListForArtifact(c.Request.Context(), a.ID); err == nil {
			a.Tags = labels
		}
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "artifact": a})
}

func (h *Handler) listByProject(c *gin.Context) {
	p, ok := h.ownedProject(c)
	if !ok {
		return
	}

	items, err := h.repo.ListByProject(c.Request.Context(), p.PublicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "artifacts": items})
}

func (h *Handler) get(c *gin.Context) {
	id, ok := artifactID(c)
	if !ok {
		return
	}

	a, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "artifact not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "artifact": a})
}

func (h *Handler) update(c *gin.Context) {
	id, ok := artifactID(c)
	if !ok {
		return
	}

	var req upsertReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	a, err := h.repo.Update(c.Request.Context(), id, strings.TrimSpace(req.Title), req.Description, req.Content)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "artifact not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "artifact": a})
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := artifactID(c)
	if !ok {
		return
	}

	deleted, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "artifact not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) attachTag(c *gin.Context) {
	id, ok := artifactID(c)
	if !ok {
		return
	}

	var req tagReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	if err := h.tags.Attach(c.Request.Context(), id, req.Name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	labels, err := h.tags.ListForArtifact(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "tags": labels})
}

func (h *Handler) detachTag(c *gin.Context) {
	id, ok := artifactID(c)
	if !ok {
		return
	}

	removed, err := h.tags.Detach(c.Request.Context(), id, c.Param("name"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "tag not attached"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
