package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/morabaat/backend/internal/application/identity"
	"github.com/morabaat/backend/internal/domain/identity"
	"github.com/morabaat/backend/internal/domain/shared"
	"github.com/morabaat/backend/internal/interfaces/http/middleware"
)

// UserHandler serves profile edits and the super-admin user back office
type UserHandler struct {
	BaseHandler
	users *identityapp.UserService
}

// NewUserHandler creates a UserHandler
func NewUserHandler(users *identityapp.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterRoutes mounts the authenticated profile endpoints
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.PUT("/users/me", h.UpdateProfile)
}

// RegisterAdminRoutes mounts the back-office user endpoints
func (h *UserHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/users")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.AdminUpdate)
}

// UpdateProfile edits the caller's own name and avatar
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var input identityapp.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	info, err := h.users.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

// List pages through all accounts
func (h *UserHandler) List(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	page, err := h.users.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, page)
}

// Get returns one account
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	info, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

// AdminUpdate changes an account's role or activation state
func (h *UserHandler) AdminUpdate(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var input identityapp.AdminUpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	actor := &identity.User{
		BaseEntity: shared.BaseEntity{ID: middleware.CurrentUserID(c)},
		Role:       middleware.CurrentRole(c),
	}
	info, err := h.users.AdminUpdate(c.Request.Context(), actor, id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}
