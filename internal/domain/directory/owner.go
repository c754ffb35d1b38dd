package directory

import (
	"github.com/google/uuid"
	"github.com/morabaat/backend/internal/domain/shared"
)

// OwnerRole is the role of a user inside a company dashboard
type OwnerRole string

const (
	OwnerRoleOwner   OwnerRole = "OWNER"
	OwnerRoleManager OwnerRole = "MANAGER"
	OwnerRoleEditor  OwnerRole = "EDITOR"
)

// IsValid checks if the owner role is known
func (r OwnerRole) IsValid() bool {
	switch r {
	case OwnerRoleOwner, OwnerRoleManager, OwnerRoleEditor:
		return true
	}
	return false
}

// Dashboard permissions
const (
	PermEditProfile      = "profile:edit"
	PermManageHours      = "hours:manage"
	PermReplyReviews     = "reviews:reply"
	PermManageImages     = "images:manage"
	PermViewStats        = "stats:view"
	PermManageMembers    = "members:manage"
	PermReadNotification = "notifications:read"
)

// DefaultPermissions returns the permission list granted to a role
func DefaultPermissions(role OwnerRole) []string {
	switch role {
	case OwnerRoleOwner:
		return []string{
			PermEditProfile, PermManageHours, PermReplyReviews,
			PermManageImages, PermViewStats, PermManageMembers,
			PermReadNotification,
		}
	case OwnerRoleManager:
		return []string{
			PermEditProfile, PermManageHours, PermReplyReviews,
			PermManageImages, PermViewStats, PermReadNotification,
		}
	case OwnerRoleEditor:
		return []string{PermEditProfile, PermManageImages, PermReadNotification}
	}
	return nil
}

// CompanyOwner joins a user to a company with a dashboard role and an
// explicit permission list.
type CompanyOwner struct {
	shared.BaseEntity
	CompanyID   uuid.UUID
	UserID      uuid.UUID
	Role        OwnerRole
	Permissions []string
}

// NewCompanyOwner creates a membership with the role's default permissions
func NewCompanyOwner(companyID, userID uuid.UUID, role OwnerRole) (*CompanyOwner, error) {
	if companyID == uuid.Nil || userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEMBERSHIP", "Company and user are required")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown owner role: "+string(role))
	}
	return &CompanyOwner{
		BaseEntity:  shared.NewBaseEntity(),
		CompanyID:   companyID,
		UserID:      userID,
		Role:        role,
		Permissions: DefaultPermissions(role),
	}, nil
}

// HasPermission checks the membership's permission list
func (o *CompanyOwner) HasPermission(perm string) bool {
	for _, p := range o.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// ChangeRole switches the role and resets permissions to the role defaults
func (o *CompanyOwner) ChangeRole(role OwnerRole) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown owner role: "+string(role))
	}
	o.Role = role
	o.Permissions = DefaultPermissions(role)
	o.Touch()
	return nil
}
