package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/morabaat/backend/internal/domain/identity"
	"github.com/morabaat/backend/internal/domain/shared"
	"github.com/morabaat/backend/internal/infrastructure/auth"
	"github.com/morabaat/backend/internal/infrastructure/config"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
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
	return args.Get(0).([]identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]identity.User, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]identity.User), args.Error(1)
}

func newTestAuthService(repo *MockUserRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-used-only-in-unit-tests",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "morabaat-test",
	})
	return NewAuthService(repo, jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())
}

func newTestUser(t *testing.T, password string) *identity.User {
	t.Helper()
	hash, err := identity.HashPassword(password)
	require.NoError(t, err)
	user, err := identity.NewUser("amira@example.com", "Amira", hash)
	require.NoError(t, err)
	return user
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("ExistsByEmail", mock.Anything, "amira@example.com").Return(true, nil)

	svc := newTestAuthService(repo)
	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "amira@example.com",
		Name:     "Amira",
		Password: "password123",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
	repo.AssertExpectations(t)
}

func TestRegisterIssuesTokens(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("ExistsByEmail", mock.Anything, "amira@example.com").Return(false, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

	svc := newTestAuthService(repo)
	result, err := svc.Register(context.Background(), RegisterInput{
		Email:    "Amira@Example.com",
		Name:     "Amira",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, "amira@example.com", result.User.Email)
	assert.Equal(t, string(identity.RoleUser), result.User.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	user := newTestUser(t, "password123")
	repo := new(MockUserRepository)
	repo.On("FindByEmail", mock.Anything, "amira@example.com").Return(user, nil)

	svc := newTestAuthService(repo)
	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "amira@example.com",
		Password: "wrong-password",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	user := newTestUser(t, "password123")
	user.Deactivate()
	repo := new(MockUserRepository)
	repo.On("FindByEmail", mock.Anything, "amira@example.com").Return(user, nil)

	svc := newTestAuthService(repo)
	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "amira@example.com",
		Password: "password123",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
}

func TestLoginRecordsLastLogin(t *testing.T) {
	user := newTestUser(t, "password123")
	repo := new(MockUserRepository)
	repo.On("FindByEmail", mock.Anything, "amira@example.com").Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	svc := newTestAuthService(repo)
	result, err := svc.Login(context.Background(), LoginInput{
		Email:    "amira@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.AccessToken)
	require.NotNil(t, user.LastLoginAt)
	assert.WithinDuration(t, time.Now(), *user.LastLoginAt, time.Minute)
}

func TestRefreshRotatesAndRevokesOldToken(t *testing.T) {
	user := newTestUser(t, "password123")
	repo := new(MockUserRepository)
	repo.On("FindByEmail", mock.Anything, "amira@example.com").Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	svc := newTestAuthService(repo)
	login, err := svc.Login(context.Background(), LoginInput{
		Email:    "amira@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), RefreshTokenInput{
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// The original refresh token was single use
	_, err = svc.Refresh(context.Background(), RefreshTokenInput{
		RefreshToken: login.RefreshToken,
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TOKEN_REVOKED", domainErr.Code)
}

func TestLogoutAllSessionsInvalidatesAccessTokens(t *testing.T) {
	user := newTestUser(t, "password123")
	repo := new(MockUserRepository)
	repo.On("FindByEmail", mock.Anything, "amira@example.com").Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	svc := newTestAuthService(repo)
	login, err := svc.Login(context.Background(), LoginInput{
		Email:    "amira@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.ValidateAccess(context.Background(), login.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), LogoutInput{
		UserID:      user.ID,
		AllSessions: true,
	}))

	_, err = svc.ValidateAccess(context.Background(), login.AccessToken)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TOKEN_REVOKED", domainErr.Code)
}

func TestChangePasswordChecksOldPassword(t *testing.T) {
	user := newTestUser(t, "password123")
	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	svc := newTestAuthService(repo)
	err := svc.ChangePassword(context.Background(), ChangePasswordInput{
		UserID:      user.ID,
		OldPassword: "nope",
		NewPassword: "new-password-456",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}
