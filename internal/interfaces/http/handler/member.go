package handler

import (
	"github.com/gin-gonic/gin"

	directoryapp "github.com/morabaat/backend/internal/application/directory"
)

// MemberHandler serves dashboard team management
type MemberHandler struct {
	BaseHandler
	owners *directoryapp.OwnerService
}

// NewMemberHandler creates a MemberHandler
func NewMemberHandler(owners *directoryapp.OwnerService) *MemberHandler {
	return &MemberHandler{owners: owners}
}

// RegisterRoutes mounts the member endpoints under the dashboard group
func (h *MemberHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/companies/:id/members")
	g.GET("", h.List)
	g.POST("", h.Add)
	g.PUT("/:memberId", h.ChangeRole)
	g.DELETE("/:memberId", h.Remove)
}

// List returns a company's dashboard members
func (h *MemberHandler) List(c *gin.Context) {
	companyID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	members, err := h.owners.ListMembers(c.Request.Context(), directoryActor(c), companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, members)
}

// Add grants a user dashboard access to the company
func (h *MemberHandler) Add(c *gin.Context) {
	companyID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var input directoryapp.MemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	member, err := h.owners.AddMember(c.Request.Context(), directoryActor(c), companyID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, member)
}

type changeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=OWNER MANAGER EDITOR"`
}

// ChangeRole switches a member's role, resetting their permissions to the
// role defaults.
func (h *MemberHandler) ChangeRole(c *gin.Context) {
	companyID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	memberID, ok := h.pathUUID(c, "memberId")
	if !ok {
		return
	}
	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	member, err := h.owners.ChangeMemberRole(c.Request.Context(), directoryActor(c), companyID, memberID, req.Role)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, member)
}

// Remove revokes a membership
func (h *MemberHandler) Remove(c *gin.Context) {
	companyID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	memberID, ok := h.pathUUID(c, "memberId")
	if !ok {
		return
	}
	if err := h.owners.RemoveMember(c.Request.Context(), directoryActor(c), companyID, memberID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
