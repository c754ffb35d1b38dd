package handler

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler reports process and database liveness
type HealthHandler struct {
	BaseHandler
	db      *gorm.DB
	version string
}

// NewHealthHandler creates a HealthHandler
func NewHealthHandler(db *gorm.DB, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// RegisterRoutes mounts the health endpoint
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// Health pings the database and reports overall status
func (h *HealthHandler) Health(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"
	if sqlDB, err := h.db.DB(); err != nil {
		status, dbStatus = "degraded", "unreachable"
	} else if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		status, dbStatus = "degraded", "unreachable"
	}
	h.Success(c, gin.H{
		"status":   status,
		"database": dbStatus,
		"version":  h.version,
	})
}
