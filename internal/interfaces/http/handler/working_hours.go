package handler

import (
	"github.com/gin-gonic/gin"

	directoryapp "github.com/morabaat/backend/internal/application/directory"
)

// WorkingHoursHandler serves weekly schedules
type WorkingHoursHandler struct {
	BaseHandler
	hours *directoryapp.WorkingHoursService
}

// NewWorkingHoursHandler creates a WorkingHoursHandler
func NewWorkingHoursHandler(hours *directoryapp.WorkingHoursService) *WorkingHoursHandler {
	return &WorkingHoursHandler{hours: hours}
}

// RegisterRoutes mounts the public schedule endpoint
func (h *WorkingHoursHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/companies/:slug/hours", h.GetWeekBySlug)
}

// RegisterDashboardRoutes mounts the schedule edit endpoints
func (h *WorkingHoursHandler) RegisterDashboardRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/companies/:id/hours")
	g.GET("", h.GetWeek)
	g.PUT("", h.ReplaceWeek)
}

// GetWeekBySlug returns a company's public weekly schedule
func (h *WorkingHoursHandler) GetWeekBySlug(c *gin.Context) {
	week, err := h.hours.GetWeekBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, week)
}

// GetWeek returns the schedule for the dashboard editor
func (h *WorkingHoursHandler) GetWeek(c *gin.Context) {
	companyID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	week, err := h.hours.GetWeek(c.Request.Context(), companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, week)
}

// ReplaceWeek swaps the full seven-day schedule
func (h *WorkingHoursHandler) ReplaceWeek(c *gin.Context) {
	companyID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var input directoryapp.WeekInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	week, err := h.hours.ReplaceWeek(c.Request.Context(), directoryActor(c), companyID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, week)
}
