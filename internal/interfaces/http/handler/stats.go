package handler

import (
	"github.com/gin-gonic/gin"

	directoryapp "github.com/morabaat/backend/internal/application/directory"
)

// StatsHandler serves the public home-page counters and the per-company
// dashboard metrics.
type StatsHandler struct {
	BaseHandler
	stats *directoryapp.StatsService
}

// NewStatsHandler creates a StatsHandler
func NewStatsHandler(stats *directoryapp.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// RegisterRoutes mounts the public counters endpoint
func (h *StatsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/directory/stats", h.Home)
}

// RegisterDashboardRoutes mounts the per-company metrics endpoint
func (h *StatsHandler) RegisterDashboardRoutes(rg *gin.RouterGroup) {
	rg.GET("/companies/:id/stats", h.Dashboard)
}

// Home returns the cached directory-wide counters
func (h *StatsHandler) Home(c *gin.Context) {
	stats, err := h.stats.Home(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// Dashboard returns one company's review and rating metrics
func (h *StatsHandler) Dashboard(c *gin.Context) {
	companyID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	stats, err := h.stats.Dashboard(c.Request.Context(), directoryActor(c), companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
