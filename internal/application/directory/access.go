package directory

import (
	"context"

	"github.com/google/uuid"

	"github.com/morabaat/backend/internal/domain/directory"
	"github.com/morabaat/backend/internal/domain/identity"
	"github.com/morabaat/backend/internal/domain/shared"
)

// Actor is the authenticated caller as seen by the directory services
type Actor struct {
	UserID uuid.UUID
	Role   identity.Role
}

// IsAdmin reports whether the actor bypasses per-company permission checks
func (a Actor) IsAdmin() bool {
	return a.Role.IsAdmin()
}

// requirePermission resolves the actor's membership in a company and checks
// one dashboard permission. Back-office admins pass unconditionally.
func requirePermission(
	ctx context.Context,
	owners directory.CompanyOwnerRepository,
	actor Actor,
	companyID uuid.UUID,
	perm string,
) (*directory.CompanyOwner, error) {
	if actor.IsAdmin() {
		return nil, nil
	}
	member, err := owners.FindByCompanyAndUser(ctx, companyID, actor.UserID)
	if err != nil {
		return nil, shared.NewDomainError("FORBIDDEN", "You are not a member of this company")
	}
	if !member.HasPermission(perm) {
		return nil, shared.NewDomainError("FORBIDDEN", "You do not have permission for this action")
	}
	return member, nil
}
