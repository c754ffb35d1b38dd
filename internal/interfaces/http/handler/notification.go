package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	notificationapp "github.com/morabaat/backend/internal/application/notification"
)

// NotificationHandler serves the personal inbox and the per-company feed
// visible to dashboard members.
type NotificationHandler struct {
	BaseHandler
	notifications *notificationapp.Service
}

// NewNotificationHandler creates a NotificationHandler
func NewNotificationHandler(notifications *notificationapp.Service) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// RegisterProtectedRoutes mounts the inbox endpoints
func (h *NotificationHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/notifications")
	g.GET("", h.ListMine)
	g.GET("/unread-count", h.UnreadCount)
	g.POST("/read-all", h.MarkAllRead)
	g.POST("/:id/read", h.MarkRead)
}

// RegisterAdminRoutes mounts the announcement endpoint
func (h *NotificationHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/notifications/broadcast", h.Broadcast)
}

// RegisterDashboardRoutes mounts the company feed endpoints
func (h *NotificationHandler) RegisterDashboardRoutes(rg *gin.RouterGroup) {
	rg.GET("/companies/:id/notifications", h.ListForCompany)
	rg.POST("/companies/:id/notifications/read-all", h.MarkAllReadForCompany)
}

// ListMine pages the caller's notifications, optionally unread only
func (h *NotificationHandler) ListMine(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	unreadOnly, _ := strconv.ParseBool(c.Query("unread"))
	page, err := h.notifications.ListMine(c.Request.Context(), notificationActor(c), unreadOnly, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, page)
}

// UnreadCount returns the caller's unread badge count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notifications.UnreadCount(c.Request.Context(), notificationActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"unread": count})
}

// MarkRead marks one notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.notifications.MarkRead(c.Request.Context(), notificationActor(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// MarkAllRead clears the caller's unread notifications
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notifications.MarkAllRead(c.Request.Context(), notificationActor(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Broadcast fans a system announcement out to every user
func (h *NotificationHandler) Broadcast(c *gin.Context) {
	var input notificationapp.BroadcastInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	sent, err := h.notifications.Broadcast(c.Request.Context(), notificationActor(c), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"recipients": sent})
}

// ListForCompany pages a company's notification feed
func (h *NotificationHandler) ListForCompany(c *gin.Context) {
	companyID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	unreadOnly, _ := strconv.ParseBool(c.Query("unread"))
	page, err := h.notifications.ListForCompany(c.Request.Context(), notificationActor(c), companyID, unreadOnly, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, page)
}

// MarkAllReadForCompany clears a company's unread feed
func (h *NotificationHandler) MarkAllReadForCompany(c *gin.Context) {
	companyID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.notifications.MarkAllReadForCompany(c.Request.Context(), notificationActor(c), companyID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
