package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	seoapp "github.com/morabaat/backend/internal/application/seo"
	"github.com/morabaat/backend/internal/domain/seo"
)

// SEOHandler serves the crawler surfaces, the per-page metadata endpoint
// the frontend renders from, and the admin override CRUD.
type SEOHandler struct {
	BaseHandler
	seo     *seoapp.Service
	baseURL string
}

// NewSEOHandler creates a SEOHandler. baseURL is the public site origin
// used in sitemap and robots output.
func NewSEOHandler(svc *seoapp.Service, baseURL string) *SEOHandler {
	return &SEOHandler{seo: svc, baseURL: baseURL}
}

// RegisterRoutes mounts the public metadata endpoint
func (h *SEOHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/seo/meta", h.ResolveMeta)
}

// RegisterAdminRoutes mounts the override management endpoints
func (h *SEOHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/seo/overrides")
	g.GET("", h.ListOverrides)
	g.PUT("/path", h.UpsertPathOverride)
	g.PUT("/target/:type/:id", h.UpsertTargetOverride)
	g.DELETE("/:id", h.DeleteOverride)
}

// RegisterRootRoutes mounts sitemap.xml and robots.txt on the bare engine,
// outside the API prefix, where crawlers expect them.
func (h *SEOHandler) RegisterRootRoutes(engine *gin.Engine) {
	engine.GET("/sitemap.xml", h.Sitemap)
	engine.GET("/robots.txt", h.Robots)
}

type resolveMetaRequest struct {
	Path        string `form:"path" binding:"required,max=500"`
	TargetType  string `form:"target_type" binding:"omitempty,max=20"`
	TargetID    string `form:"target_id" binding:"omitempty,uuid"`
	Title       string `form:"title" binding:"omitempty,max=200"`
	Description string `form:"description" binding:"omitempty,max=500"`
}

// ResolveMeta returns the final metadata for a page, with any admin
// override already merged over the caller-supplied defaults.
func (h *SEOHandler) ResolveMeta(c *gin.Context) {
	var req resolveMetaRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	targetType := seo.TargetPage
	if req.TargetType != "" {
		targetType = seo.TargetType(req.TargetType)
		if !targetType.IsValid() {
			h.BadRequest(c, "Invalid target_type")
			return
		}
	}
	var targetID *uuid.UUID
	if req.TargetID != "" {
		id, err := uuid.Parse(req.TargetID)
		if err != nil {
			h.BadRequest(c, "Invalid target_id")
			return
		}
		targetID = &id
	}
	meta := h.seo.Resolve(c.Request.Context(), req.Path, targetType, targetID, seoapp.Meta{
		Title:       req.Title,
		Description: req.Description,
	})
	h.Success(c, meta)
}

// ListOverrides pages the configured overrides
func (h *SEOHandler) ListOverrides(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	page, err := h.seo.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, page)
}

type upsertPathOverrideRequest struct {
	Path string `json:"path" binding:"required,max=500"`
	seoapp.OverrideInput
}

// UpsertPathOverride creates or replaces the override for a URL path
func (h *SEOHandler) UpsertPathOverride(c *gin.Context) {
	var req upsertPathOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	view, err := h.seo.UpsertPathOverride(c.Request.Context(), req.Path, req.OverrideInput)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// UpsertTargetOverride creates or replaces the override for an entity
func (h *SEOHandler) UpsertTargetOverride(c *gin.Context) {
	targetType := seo.TargetType(c.Param("type"))
	if !targetType.IsValid() || targetType == seo.TargetPage {
		h.BadRequest(c, "Invalid target type")
		return
	}
	targetID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var input seoapp.OverrideInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	view, err := h.seo.UpsertTargetOverride(c.Request.Context(), targetType, targetID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// DeleteOverride removes an override
func (h *SEOHandler) DeleteOverride(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.seo.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Sitemap renders the XML sitemap over all active public pages
func (h *SEOHandler) Sitemap(c *gin.Context) {
	body, err := h.seo.Sitemap(c.Request.Context(), h.baseURL)
	if err != nil {
		h.InternalError(c, "Failed to build sitemap")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

// Robots renders robots.txt
func (h *SEOHandler) Robots(c *gin.Context) {
	c.Data(http.StatusOK, "text/plain; charset=utf-8", h.seo.Robots(h.baseURL))
}
