package directory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/morabaat/backend/internal/domain/directory"
	"github.com/morabaat/backend/internal/domain/identity"
	"github.com/morabaat/backend/internal/domain/review"
	"github.com/morabaat/backend/internal/domain/shared"
	"github.com/morabaat/backend/internal/domain/taxonomy"
	"github.com/morabaat/backend/internal/infrastructure/cache"
)

type MockReviewRepository struct{ mock.Mock }

func (m *MockReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Review), args.Error(1)
}

func (m *MockReviewRepository) FindAll(ctx context.Context, filter shared.Filter) ([]review.Review, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]review.Review), args.Error(1)
}

func (m *MockReviewRepository) Save(ctx context.Context, r *review.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReviewRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) FindByCompany(ctx context.Context, companyID uuid.UUID, approvedOnly bool, filter shared.Filter) ([]review.Review, int64, error) {
	args := m.Called(ctx, companyID, approvedOnly, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]review.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]review.Review, int64, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]review.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) ExistsByCompanyAndUser(ctx context.Context, companyID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, companyID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) FindPending(ctx context.Context, filter shared.Filter) ([]review.Review, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]review.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) RecomputeCompanyAggregate(ctx context.Context, companyID uuid.UUID) (review.Aggregate, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(review.Aggregate), args.Error(1)
}

type MockCategoryRepository struct{ mock.Mock }

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*taxonomy.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxonomy.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]taxonomy.Category, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]taxonomy.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, c *taxonomy.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*taxonomy.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxonomy.Category), args.Error(1)
}

func (m *MockCategoryRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

type MockCityRepository struct{ mock.Mock }

func (m *MockCityRepository) FindByID(ctx context.Context, id uuid.UUID) (*taxonomy.City, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxonomy.City), args.Error(1)
}

func (m *MockCityRepository) FindAll(ctx context.Context, filter shared.Filter) ([]taxonomy.City, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]taxonomy.City), args.Error(1)
}

func (m *MockCityRepository) Save(ctx context.Context, c *taxonomy.City) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCityRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCityRepository) FindBySlug(ctx context.Context, countryID uuid.UUID, slug string) (*taxonomy.City, error) {
	args := m.Called(ctx, countryID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxonomy.City), args.Error(1)
}

func (m *MockCityRepository) FindByCountry(ctx context.Context, countryID uuid.UUID) ([]taxonomy.City, error) {
	args := m.Called(ctx, countryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]taxonomy.City), args.Error(1)
}

func TestStatsService_Dashboard(t *testing.T) {
	companies := new(MockCompanyRepository)
	owners := new(MockOwnerRepository)
	reviews := new(MockReviewRepository)
	notifications := new(MockNotificationRepository)
	svc := NewStatsService(companies, owners, reviews, notifications, nil, nil, nil, zap.NewNop())

	companyID := uuid.New()
	actor := Actor{UserID: uuid.New(), Role: identity.RoleAdmin}
	company := &directory.Company{
		BaseEntity:   shared.BaseEntity{ID: companyID},
		Rating:       decimal.RequireFromString("4.3"),
		ReviewsCount: 12,
	}

	companies.On("FindByID", mock.Anything, companyID).Return(company, nil)
	reviews.On("FindByCompany", mock.Anything, companyID, false, mock.Anything).
		Return([]review.Review{}, int64(15), nil)
	notifications.On("CountUnreadForCompany", mock.Anything, companyID).Return(int64(4), nil)
	owners.On("FindByCompany", mock.Anything, companyID).
		Return([]directory.CompanyOwner{*membership(companyID, uuid.New(), directory.OwnerRoleOwner)}, nil)

	stats, err := svc.Dashboard(context.Background(), actor, companyID)

	require.NoError(t, err)
	assert.Equal(t, 12, stats.ReviewsCount)
	assert.Equal(t, int64(3), stats.PendingReviews)
	assert.Equal(t, int64(4), stats.UnreadNotifications)
	assert.Equal(t, 1, stats.MembersCount)
	assert.True(t, stats.Rating.Equal(decimal.RequireFromString("4.3")))
}

func TestStatsService_Dashboard_RequiresStatsPermission(t *testing.T) {
	owners := new(MockOwnerRepository)
	svc := NewStatsService(nil, owners, nil, nil, nil, nil, nil, zap.NewNop())

	companyID := uuid.New()
	actor := Actor{UserID: uuid.New(), Role: identity.RoleCompanyOwner}
	owners.On("FindByCompanyAndUser", mock.Anything, companyID, actor.UserID).
		Return(membership(companyID, actor.UserID, directory.OwnerRoleEditor), nil)

	_, err := svc.Dashboard(context.Background(), actor, companyID)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestStatsService_Home_CachesCounters(t *testing.T) {
	companies := new(MockCompanyRepository)
	reviews := new(MockReviewRepository)
	categories := new(MockCategoryRepository)
	cities := new(MockCityRepository)
	statsCache := cache.NewInMemoryStatsCache()
	svc := NewStatsService(companies, nil, reviews, nil, categories, cities, statsCache, zap.NewNop())

	companies.On("Count", mock.Anything, mock.Anything).Return(int64(120), nil).Once()
	reviews.On("Count", mock.Anything, mock.Anything).Return(int64(540), nil).Once()
	categories.On("Count", mock.Anything, mock.Anything).Return(int64(18), nil).Once()
	cities.On("Count", mock.Anything, mock.Anything).Return(int64(25), nil).Once()

	stats, err := svc.Home(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(120), stats.Companies)
	assert.Equal(t, int64(540), stats.Reviews)

	// Second call is served from the cache; the Once expectations above
	// would fail if the repositories were hit again.
	cached, err := svc.Home(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stats, cached)
	companies.AssertExpectations(t)
}
