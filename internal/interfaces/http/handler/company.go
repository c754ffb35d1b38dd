package handler

import (
	"github.com/gin-gonic/gin"

	directoryapp "github.com/morabaat/backend/internal/application/directory"
	"github.com/morabaat/backend/internal/interfaces/http/middleware"
)

// CompanyHandler serves the public directory, the owner dashboard edits and
// the admin moderation endpoints for companies.
type CompanyHandler struct {
	BaseHandler
	companies *directoryapp.CompanyService
	search    *directoryapp.SearchService
}

// NewCompanyHandler creates a CompanyHandler
func NewCompanyHandler(companies *directoryapp.CompanyService, search *directoryapp.SearchService) *CompanyHandler {
	return &CompanyHandler{companies: companies, search: search}
}

// RegisterRoutes mounts the public directory endpoints. They run behind
// OptionalAuth so owners and admins see their inactive listings.
func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/companies", h.Search)
	rg.GET("/companies/:slug", h.GetBySlug)
	rg.GET("/search", h.Search)
	rg.GET("/featured", h.Featured)
}

// RegisterDashboardRoutes mounts the owner dashboard endpoints
func (h *CompanyHandler) RegisterDashboardRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/companies")
	g.GET("", h.ListMine)
	g.PUT("/:id", h.Update)
	g.PUT("/:id/images", h.SetImages)
}

// RegisterAdminRoutes mounts the back-office company endpoints
func (h *CompanyHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/companies")
	g.POST("", h.Create)
	g.PUT("/:id/moderate", h.Moderate)
	g.DELETE("/:id", h.Delete)
}

// GetBySlug returns one public company profile
func (h *CompanyHandler) GetBySlug(c *gin.Context) {
	var actor *directoryapp.Actor
	if middleware.IsAuthenticated(c) {
		a := directoryActor(c)
		actor = &a
	}
	view, err := h.companies.GetBySlug(c.Request.Context(), c.Param("slug"), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Search runs the filtered directory search
func (h *CompanyHandler) Search(c *gin.Context) {
	var input directoryapp.SearchInput
	if err := c.ShouldBindQuery(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	page, err := h.search.Search(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, page)
}

type featuredRequest struct {
	Limit int `form:"limit" binding:"omitempty,gte=1,lte=50"`
}

// Featured returns the featured companies for the landing page
func (h *CompanyHandler) Featured(c *gin.Context) {
	var req featuredRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	views, err := h.search.Featured(c.Request.Context(), req.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// ListMine returns every company the caller has a membership in
func (h *CompanyHandler) ListMine(c *gin.Context) {
	views, err := h.companies.ListMine(c.Request.Context(), directoryActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// Update edits a company profile
func (h *CompanyHandler) Update(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var input directoryapp.UpdateCompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	view, err := h.companies.Update(c.Request.Context(), directoryActor(c), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

type setImagesRequest struct {
	Logo    *string   `json:"logo" binding:"omitempty,max=500"`
	Cover   *string   `json:"cover" binding:"omitempty,max=500"`
	Gallery *[]string `json:"gallery" binding:"omitempty,max=20,dive,max=500"`
}

// SetImages replaces the company's logo, cover or gallery URLs
func (h *CompanyHandler) SetImages(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req setImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	view, err := h.companies.SetImages(c.Request.Context(), directoryActor(c), id, req.Logo, req.Cover, req.Gallery)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Create adds a company directly, bypassing the request queue
func (h *CompanyHandler) Create(c *gin.Context) {
	var input directoryapp.CreateCompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	view, err := h.companies.Create(c.Request.Context(), directoryActor(c), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// Moderate toggles the verified, featured and active flags
func (h *CompanyHandler) Moderate(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var input directoryapp.ModerateCompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	view, err := h.companies.Moderate(c.Request.Context(), directoryActor(c), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Delete removes a company and everything attached to it
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.companies.Delete(c.Request.Context(), directoryActor(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
