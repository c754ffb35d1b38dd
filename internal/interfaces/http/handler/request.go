package handler

import (
	"github.com/gin-gonic/gin"

	directoryapp "github.com/morabaat/backend/internal/application/directory"
)

// RequestHandler serves company registration applications
type RequestHandler struct {
	BaseHandler
	requests *directoryapp.RequestService
}

// NewRequestHandler creates a RequestHandler
func NewRequestHandler(requests *directoryapp.RequestService) *RequestHandler {
	return &RequestHandler{requests: requests}
}

// RegisterRoutes mounts the authenticated request endpoints
func (h *RequestHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/company-requests")
	g.POST("", h.Submit)
	g.GET("/mine", h.ListMine)
}

// RegisterAdminRoutes mounts the moderation queue endpoints
func (h *RequestHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/company-requests")
	g.GET("", h.ListPending)
	g.POST("/:id/approve", h.Approve)
	g.POST("/:id/reject", h.Reject)
}

// Submit files a new registration application
func (h *RequestHandler) Submit(c *gin.Context) {
	var input directoryapp.SubmitRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	view, err := h.requests.Submit(c.Request.Context(), directoryActor(c), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// ListMine returns the caller's own applications
func (h *RequestHandler) ListMine(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	page, err := h.requests.ListMine(c.Request.Context(), directoryActor(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, page)
}

// ListPending returns the moderation queue
func (h *RequestHandler) ListPending(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	page, err := h.requests.ListPending(c.Request.Context(), directoryActor(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, page)
}

// Approve turns an application into a live company
func (h *RequestHandler) Approve(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var input directoryapp.DecideRequestInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}
	view, err := h.requests.Approve(c.Request.Context(), directoryActor(c), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Reject declines an application
func (h *RequestHandler) Reject(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var input directoryapp.DecideRequestInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}
	view, err := h.requests.Reject(c.Request.Context(), directoryActor(c), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}
