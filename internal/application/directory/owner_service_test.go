package directory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/morabaat/backend/internal/domain/directory"
	"github.com/morabaat/backend/internal/domain/identity"
	"github.com/morabaat/backend/internal/domain/shared"
)

func newTestOwnerService() (*OwnerService, *MockOwnerRepository, *MockCompanyRepository, *MockUserRepository) {
	owners := new(MockOwnerRepository)
	companies := new(MockCompanyRepository)
	users := new(MockUserRepository)
	return NewOwnerService(owners, companies, users, zap.NewNop()), owners, companies, users
}

func membership(companyID, userID uuid.UUID, role directory.OwnerRole) *directory.CompanyOwner {
	m, _ := directory.NewCompanyOwner(companyID, userID, role)
	return m
}

func TestOwnerService_AddMember(t *testing.T) {
	svc, owners, companies, users := newTestOwnerService()
	companyID := uuid.New()
	actor := Actor{UserID: uuid.New(), Role: identity.RoleCompanyOwner}
	newUserID := uuid.New()

	owners.On("FindByCompanyAndUser", mock.Anything, companyID, actor.UserID).
		Return(membership(companyID, actor.UserID, directory.OwnerRoleOwner), nil)
	companies.On("FindByID", mock.Anything, companyID).
		Return(&directory.Company{BaseEntity: shared.BaseEntity{ID: companyID}}, nil)
	user := &identity.User{BaseEntity: shared.BaseEntity{ID: newUserID}, Role: identity.RoleUser}
	users.On("FindByID", mock.Anything, newUserID).Return(user, nil)
	owners.On("FindByCompanyAndUser", mock.Anything, companyID, newUserID).Return(nil, shared.ErrNotFound)
	owners.On("Save", mock.Anything, mock.AnythingOfType("*directory.CompanyOwner")).Return(nil)
	users.On("Save", mock.Anything, user).Return(nil)

	view, err := svc.AddMember(context.Background(), actor, companyID, MemberInput{UserID: newUserID, Role: "EDITOR"})

	require.NoError(t, err)
	assert.Equal(t, "EDITOR", view.Role)
	assert.Contains(t, view.Permissions, directory.PermEditProfile)
	assert.NotContains(t, view.Permissions, directory.PermManageMembers)
	assert.Equal(t, identity.RoleCompanyOwner, user.Role)
}

func TestOwnerService_AddMember_AlreadyMember(t *testing.T) {
	svc, owners, companies, users := newTestOwnerService()
	companyID := uuid.New()
	existingID := uuid.New()
	actor := Actor{UserID: uuid.New(), Role: identity.RoleAdmin}

	companies.On("FindByID", mock.Anything, companyID).
		Return(&directory.Company{BaseEntity: shared.BaseEntity{ID: companyID}}, nil)
	users.On("FindByID", mock.Anything, existingID).
		Return(&identity.User{BaseEntity: shared.BaseEntity{ID: existingID}}, nil)
	owners.On("FindByCompanyAndUser", mock.Anything, companyID, existingID).
		Return(membership(companyID, existingID, directory.OwnerRoleEditor), nil)

	_, err := svc.AddMember(context.Background(), actor, companyID, MemberInput{UserID: existingID, Role: "MANAGER"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_MEMBER", domainErr.Code)
	owners.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOwnerService_AddMember_RequiresManagePermission(t *testing.T) {
	svc, owners, _, _ := newTestOwnerService()
	companyID := uuid.New()
	actor := Actor{UserID: uuid.New(), Role: identity.RoleCompanyOwner}

	// Managers lack members:manage
	owners.On("FindByCompanyAndUser", mock.Anything, companyID, actor.UserID).
		Return(membership(companyID, actor.UserID, directory.OwnerRoleManager), nil)

	_, err := svc.AddMember(context.Background(), actor, companyID, MemberInput{UserID: uuid.New(), Role: "EDITOR"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestOwnerService_RemoveMember_LastOwnerProtected(t *testing.T) {
	svc, owners, _, _ := newTestOwnerService()
	companyID := uuid.New()
	owner := membership(companyID, uuid.New(), directory.OwnerRoleOwner)
	editor := membership(companyID, uuid.New(), directory.OwnerRoleEditor)

	owners.On("FindByID", mock.Anything, owner.ID).Return(owner, nil)
	owners.On("FindByCompany", mock.Anything, companyID).
		Return([]directory.CompanyOwner{*owner, *editor}, nil)

	err := svc.RemoveMember(context.Background(), Actor{UserID: uuid.New(), Role: identity.RoleAdmin}, companyID, owner.ID)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "LAST_OWNER", domainErr.Code)
	owners.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestOwnerService_RemoveMember(t *testing.T) {
	svc, owners, _, _ := newTestOwnerService()
	companyID := uuid.New()
	first := membership(companyID, uuid.New(), directory.OwnerRoleOwner)
	second := membership(companyID, uuid.New(), directory.OwnerRoleOwner)

	owners.On("FindByID", mock.Anything, second.ID).Return(second, nil)
	owners.On("FindByCompany", mock.Anything, companyID).
		Return([]directory.CompanyOwner{*first, *second}, nil)
	owners.On("Delete", mock.Anything, second.ID).Return(nil)

	err := svc.RemoveMember(context.Background(), Actor{UserID: uuid.New(), Role: identity.RoleAdmin}, companyID, second.ID)

	require.NoError(t, err)
	owners.AssertExpectations(t)
}

func TestOwnerService_RemoveMember_WrongCompany(t *testing.T) {
	svc, owners, _, _ := newTestOwnerService()
	member := membership(uuid.New(), uuid.New(), directory.OwnerRoleEditor)
	owners.On("FindByID", mock.Anything, member.ID).Return(member, nil)

	err := svc.RemoveMember(context.Background(), Actor{UserID: uuid.New(), Role: identity.RoleAdmin}, uuid.New(), member.ID)

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestOwnerService_ChangeMemberRole_DemoteLastOwnerRejected(t *testing.T) {
	svc, owners, _, _ := newTestOwnerService()
	companyID := uuid.New()
	owner := membership(companyID, uuid.New(), directory.OwnerRoleOwner)

	owners.On("FindByID", mock.Anything, owner.ID).Return(owner, nil)
	owners.On("FindByCompany", mock.Anything, companyID).
		Return([]directory.CompanyOwner{*owner}, nil)

	_, err := svc.ChangeMemberRole(context.Background(), Actor{UserID: uuid.New(), Role: identity.RoleAdmin}, companyID, owner.ID, "EDITOR")

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "LAST_OWNER", domainErr.Code)
	assert.Equal(t, directory.OwnerRoleOwner, owner.Role)
}

func TestOwnerService_ChangeMemberRole_ResetsPermissions(t *testing.T) {
	svc, owners, _, _ := newTestOwnerService()
	companyID := uuid.New()
	first := membership(companyID, uuid.New(), directory.OwnerRoleOwner)
	second := membership(companyID, uuid.New(), directory.OwnerRoleOwner)

	owners.On("FindByID", mock.Anything, second.ID).Return(second, nil)
	owners.On("FindByCompany", mock.Anything, companyID).
		Return([]directory.CompanyOwner{*first, *second}, nil)
	owners.On("Save", mock.Anything, second).Return(nil)

	view, err := svc.ChangeMemberRole(context.Background(), Actor{UserID: uuid.New(), Role: identity.RoleAdmin}, companyID, second.ID, "EDITOR")

	require.NoError(t, err)
	assert.Equal(t, "EDITOR", view.Role)
	assert.ElementsMatch(t, directory.DefaultPermissions(directory.OwnerRoleEditor), view.Permissions)
}
