package notification

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
	"github.com/morabaat/backend/internal/domain/notification"
	"github.com/morabaat/backend/internal/domain/shared"
)

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]notification.Notification, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNotificationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) FindForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, filter shared.Filter) ([]notification.Notification, int64, error) {
	args := m.Called(ctx, userID, unreadOnly, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]notification.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepository) FindForCompany(ctx context.Context, companyID uuid.UUID, unreadOnly bool, filter shared.Filter) ([]notification.Notification, int64, error) {
	args := m.Called(ctx, companyID, unreadOnly, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]notification.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepository) CountUnreadForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) CountUnreadForCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllReadForUser(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockNotificationRepository) MarkAllReadForCompany(ctx context.Context, companyID uuid.UUID) error {
	return m.Called(ctx, companyID).Error(0)
}

type MockOwnerRepository struct{ mock.Mock }

func (m *MockOwnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*directory.CompanyOwner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.CompanyOwner), args.Error(1)
}

func (m *MockOwnerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]directory.CompanyOwner, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]directory.CompanyOwner), args.Error(1)
}

func (m *MockOwnerRepository) Save(ctx context.Context, owner *directory.CompanyOwner) error {
	return m.Called(ctx, owner).Error(0)
}

func (m *MockOwnerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOwnerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOwnerRepository) FindByCompanyAndUser(ctx context.Context, companyID, userID uuid.UUID) (*directory.CompanyOwner, error) {
	args := m.Called(ctx, companyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.CompanyOwner), args.Error(1)
}

func (m *MockOwnerRepository) FindByCompany(ctx context.Context, companyID uuid.UUID) ([]directory.CompanyOwner, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]directory.CompanyOwner), args.Error(1)
}

func (m *MockOwnerRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]directory.CompanyOwner, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]directory.CompanyOwner), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) FindByRole(ctx context.Context, role identity.Role, filter shared.Filter) ([]identity.User, int64, error) {
	args := m.Called(ctx, role, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]identity.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func newTestService() (*Service, *MockNotificationRepository, *MockOwnerRepository) {
	svc, notifications, owners, _ := newTestServiceWithUsers()
	return svc, notifications, owners
}

func newTestServiceWithUsers() (*Service, *MockNotificationRepository, *MockOwnerRepository, *MockUserRepository) {
	notifications := new(MockNotificationRepository)
	owners := new(MockOwnerRepository)
	users := new(MockUserRepository)
	return NewService(notifications, owners, users, zap.NewNop()), notifications, owners, users
}

func userNotification(userID uuid.UUID) *notification.Notification {
	n, _ := notification.New(nil, &userID, notification.KindSystem, "تنبيه", "نص التنبيه")
	return n
}

func TestService_MarkRead(t *testing.T) {
	svc, notifications, _ := newTestService()
	actor := Actor{UserID: uuid.New(), Role: identity.RoleUser}
	n := userNotification(actor.UserID)

	notifications.On("FindByID", mock.Anything, n.ID).Return(n, nil)
	notifications.On("Save", mock.Anything, n).Return(nil)

	require.NoError(t, svc.MarkRead(context.Background(), actor, n.ID))
	assert.True(t, n.IsRead)
}

func TestService_MarkRead_AlreadyReadNoSave(t *testing.T) {
	svc, notifications, _ := newTestService()
	actor := Actor{UserID: uuid.New(), Role: identity.RoleUser}
	n := userNotification(actor.UserID)
	n.MarkRead()

	notifications.On("FindByID", mock.Anything, n.ID).Return(n, nil)

	require.NoError(t, svc.MarkRead(context.Background(), actor, n.ID))
	notifications.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_MarkRead_ForeignNotification(t *testing.T) {
	svc, notifications, _ := newTestService()
	n := userNotification(uuid.New())

	notifications.On("FindByID", mock.Anything, n.ID).Return(n, nil)

	err := svc.MarkRead(context.Background(), Actor{UserID: uuid.New(), Role: identity.RoleUser}, n.ID)

	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestService_ListForCompany_RequiresMembership(t *testing.T) {
	svc, _, owners := newTestService()
	companyID := uuid.New()
	actor := Actor{UserID: uuid.New(), Role: identity.RoleUser}

	owners.On("FindByCompanyAndUser", mock.Anything, companyID, actor.UserID).Return(nil, shared.ErrNotFound)

	_, err := svc.ListForCompany(context.Background(), actor, companyID, false, shared.DefaultFilter())

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestService_ListForCompany_MemberAllowed(t *testing.T) {
	svc, notifications, owners := newTestService()
	companyID := uuid.New()
	actor := Actor{UserID: uuid.New(), Role: identity.RoleCompanyOwner}
	member, _ := directory.NewCompanyOwner(companyID, actor.UserID, directory.OwnerRoleEditor)

	owners.On("FindByCompanyAndUser", mock.Anything, companyID, actor.UserID).Return(member, nil)
	companyNotification, _ := notification.New(&companyID, nil, notification.KindReview, "مراجعة جديدة", "")
	notifications.On("FindForCompany", mock.Anything, companyID, true, mock.Anything).
		Return([]notification.Notification{*companyNotification}, int64(1), nil)

	result, err := svc.ListForCompany(context.Background(), actor, companyID, true, shared.DefaultFilter())

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "REVIEW", result.Items[0].Kind)
}

func TestService_UnreadCount(t *testing.T) {
	svc, notifications, _ := newTestService()
	actor := Actor{UserID: uuid.New(), Role: identity.RoleUser}

	notifications.On("CountUnreadForUser", mock.Anything, actor.UserID).Return(int64(7), nil)

	count, err := svc.UnreadCount(context.Background(), actor)

	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}

func TestService_Broadcast(t *testing.T) {
	svc, notifications, _, users := newTestServiceWithUsers()
	admin := Actor{UserID: uuid.New(), Role: identity.RoleAdmin}

	first, _ := identity.NewUser("sara@example.com", "سارة", "hash")
	second, _ := identity.NewUser("omar@example.com", "عمر", "hash")
	users.On("FindAll", mock.Anything, mock.Anything).Return([]identity.User{*first, *second}, nil)

	var saved []*notification.Notification
	notifications.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = append(saved, args.Get(1).(*notification.Notification))
	}).Return(nil)

	sent, err := svc.Broadcast(context.Background(), admin, BroadcastInput{Title: "صيانة مجدولة", Body: "الخدمة ستتوقف الليلة"})

	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	require.Len(t, saved, 2)
	assert.Equal(t, notification.KindSystem, saved[0].Kind)
	require.NotNil(t, saved[0].UserID)
	assert.Equal(t, first.ID, *saved[0].UserID)
}

func TestService_Broadcast_RequiresAdmin(t *testing.T) {
	svc, _, _, _ := newTestServiceWithUsers()

	_, err := svc.Broadcast(context.Background(), Actor{UserID: uuid.New(), Role: identity.RoleUser}, BroadcastInput{Title: "إعلان"})

	assert.ErrorIs(t, err, shared.ErrForbidden)
}
