package directory

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/morabaat/backend/internal/domain/directory"
	"github.com/morabaat/backend/internal/domain/identity"
	"github.com/morabaat/backend/internal/domain/shared"
)

// OwnerService manages dashboard memberships. Every company keeps at least
// one OWNER; the last one can neither be removed nor demoted.
type OwnerService struct {
	owners    directory.CompanyOwnerRepository
	companies directory.CompanyRepository
	users     identity.UserRepository
	logger    *zap.Logger
}

// NewOwnerService creates the membership service
func NewOwnerService(
	owners directory.CompanyOwnerRepository,
	companies directory.CompanyRepository,
	users identity.UserRepository,
	logger *zap.Logger,
) *OwnerService {
	return &OwnerService{owners: owners, companies: companies, users: users, logger: logger}
}

// ListMembers returns a company's dashboard members
func (s *OwnerService) ListMembers(ctx context.Context, actor Actor, companyID uuid.UUID) ([]MemberView, error) {
	if _, err := requirePermission(ctx, s.owners, actor, companyID, directory.PermManageMembers); err != nil {
		return nil, err
	}
	members, err := s.owners.FindByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("Failed to list members", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list members")
	}
	views := make([]MemberView, 0, len(members))
	for i := range members {
		views = append(views, NewMemberView(&members[i]))
	}
	return views, nil
}

// AddMember grants a user a dashboard role on the company
func (s *OwnerService) AddMember(ctx context.Context, actor Actor, companyID uuid.UUID, input MemberInput) (*MemberView, error) {
	if _, err := requirePermission(ctx, s.owners, actor, companyID, directory.PermManageMembers); err != nil {
		return nil, err
	}
	if _, err := s.companies.FindByID(ctx, companyID); err != nil {
		return nil, shared.ErrNotFound
	}

	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	if existing, err := s.owners.FindByCompanyAndUser(ctx, companyID, input.UserID); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_MEMBER", "User is already a member of this company")
	}

	member, err := directory.NewCompanyOwner(companyID, input.UserID, directory.OwnerRole(input.Role))
	if err != nil {
		return nil, err
	}
	if err := s.owners.Save(ctx, member); err != nil {
		s.logger.Error("Failed to add member", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to add member")
	}

	// Plain users get dashboard access with their first membership.
	if user.Role == identity.RoleUser {
		if err := user.ChangeRole(identity.RoleCompanyOwner); err == nil {
			if err := s.users.Save(ctx, user); err != nil {
				s.logger.Error("Failed to update member role", zap.Error(err))
			}
		}
	}

	s.logger.Info("Member added",
		zap.String("company_id", companyID.String()),
		zap.String("user_id", input.UserID.String()),
		zap.String("role", input.Role))
	view := NewMemberView(member)
	return &view, nil
}

// ChangeMemberRole switches a member's dashboard role
func (s *OwnerService) ChangeMemberRole(ctx context.Context, actor Actor, companyID, memberID uuid.UUID, role string) (*MemberView, error) {
	if _, err := requirePermission(ctx, s.owners, actor, companyID, directory.PermManageMembers); err != nil {
		return nil, err
	}
	member, err := s.findMember(ctx, companyID, memberID)
	if err != nil {
		return nil, err
	}

	newRole := directory.OwnerRole(role)
	if member.Role == directory.OwnerRoleOwner && newRole != directory.OwnerRoleOwner {
		last, err := s.isLastOwner(ctx, companyID, member.ID)
		if err != nil {
			return nil, err
		}
		if last {
			return nil, shared.NewDomainError("LAST_OWNER", "Company must keep at least one owner")
		}
	}
	if err := member.ChangeRole(newRole); err != nil {
		return nil, err
	}
	if err := s.owners.Save(ctx, member); err != nil {
		s.logger.Error("Failed to change member role", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to change member role")
	}
	view := NewMemberView(member)
	return &view, nil
}

// RemoveMember revokes a membership
func (s *OwnerService) RemoveMember(ctx context.Context, actor Actor, companyID, memberID uuid.UUID) error {
	if _, err := requirePermission(ctx, s.owners, actor, companyID, directory.PermManageMembers); err != nil {
		return err
	}
	member, err := s.findMember(ctx, companyID, memberID)
	if err != nil {
		return err
	}
	if member.Role == directory.OwnerRoleOwner {
		last, err := s.isLastOwner(ctx, companyID, member.ID)
		if err != nil {
			return err
		}
		if last {
			return shared.NewDomainError("LAST_OWNER", "Company must keep at least one owner")
		}
	}
	if err := s.owners.Delete(ctx, member.ID); err != nil {
		s.logger.Error("Failed to remove member", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to remove member")
	}
	s.logger.Info("Member removed",
		zap.String("company_id", companyID.String()),
		zap.String("member_id", memberID.String()))
	return nil
}

func (s *OwnerService) findMember(ctx context.Context, companyID, memberID uuid.UUID) (*directory.CompanyOwner, error) {
	member, err := s.owners.FindByID(ctx, memberID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if member.CompanyID != companyID {
		return nil, shared.ErrNotFound
	}
	return member, nil
}

func (s *OwnerService) isLastOwner(ctx context.Context, companyID, memberID uuid.UUID) (bool, error) {
	members, err := s.owners.FindByCompany(ctx, companyID)
	if err != nil {
		return false, shared.NewDomainError("INTERNAL_ERROR", "Failed to inspect members")
	}
	for i := range members {
		if members[i].ID != memberID && members[i].Role == directory.OwnerRoleOwner {
			return false, nil
		}
	}
	return true, nil
}
