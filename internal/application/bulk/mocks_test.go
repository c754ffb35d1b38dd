package bulk

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/morabaat/backend/internal/domain/bulk"
	"github.com/morabaat/backend/internal/domain/directory"
	"github.com/morabaat/backend/internal/domain/notification"
	"github.com/morabaat/backend/internal/domain/shared"
	"github.com/morabaat/backend/internal/domain/taxonomy"
)

type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*bulk.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bulk.Record), args.Error(1)
}

func (m *MockRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]bulk.Record, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bulk.Record), args.Error(1)
}

func (m *MockRecordRepository) Save(ctx context.Context, entity *bulk.Record) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecordRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecordRepository) FindBySessionID(ctx context.Context, sessionID string) (*bulk.Record, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bulk.Record), args.Error(1)
}

type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*directory.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]directory.Company, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]directory.Company), args.Error(1)
}

func (m *MockCompanyRepository) Save(ctx context.Context, entity *directory.Company) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCompanyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCompanyRepository) FindBySlug(ctx context.Context, slug string) (*directory.Company, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Company), args.Error(1)
}

func (m *MockCompanyRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockCompanyRepository) Search(ctx context.Context, filter directory.SearchFilter) ([]directory.Company, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]directory.Company), args.Get(1).(int64), args.Error(2)
}

func (m *MockCompanyRepository) CountActiveByTaxonomy(ctx context.Context, kind string, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, kind, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockCountryRepository struct {
	mock.Mock
}

func (m *MockCountryRepository) FindByID(ctx context.Context, id uuid.UUID) (*taxonomy.Country, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxonomy.Country), args.Error(1)
}

func (m *MockCountryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]taxonomy.Country, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]taxonomy.Country), args.Error(1)
}

func (m *MockCountryRepository) Save(ctx context.Context, entity *taxonomy.Country) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockCountryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCountryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCountryRepository) FindByCode(ctx context.Context, code string) (*taxonomy.Country, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxonomy.Country), args.Error(1)
}

func (m *MockCountryRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

type MockCityRepository struct {
	mock.Mock
}

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

func (m *MockCityRepository) Save(ctx context.Context, entity *taxonomy.City) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockCityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
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

type MockSubAreaRepository struct {
	mock.Mock
}

func (m *MockSubAreaRepository) FindByID(ctx context.Context, id uuid.UUID) (*taxonomy.SubArea, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxonomy.SubArea), args.Error(1)
}

func (m *MockSubAreaRepository) FindAll(ctx context.Context, filter shared.Filter) ([]taxonomy.SubArea, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]taxonomy.SubArea), args.Error(1)
}

func (m *MockSubAreaRepository) Save(ctx context.Context, entity *taxonomy.SubArea) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockSubAreaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSubAreaRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSubAreaRepository) FindBySlug(ctx context.Context, cityID uuid.UUID, slug string) (*taxonomy.SubArea, error) {
	args := m.Called(ctx, cityID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxonomy.SubArea), args.Error(1)
}

func (m *MockSubAreaRepository) FindByCity(ctx context.Context, cityID uuid.UUID) ([]taxonomy.SubArea, error) {
	args := m.Called(ctx, cityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]taxonomy.SubArea), args.Error(1)
}

type MockCategoryRepository struct {
	mock.Mock
}

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

func (m *MockCategoryRepository) Save(ctx context.Context, entity *taxonomy.Category) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
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

type MockSubCategoryRepository struct {
	mock.Mock
}

func (m *MockSubCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*taxonomy.SubCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxonomy.SubCategory), args.Error(1)
}

func (m *MockSubCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]taxonomy.SubCategory, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]taxonomy.SubCategory), args.Error(1)
}

func (m *MockSubCategoryRepository) Save(ctx context.Context, entity *taxonomy.SubCategory) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockSubCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSubCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSubCategoryRepository) FindBySlug(ctx context.Context, categoryID uuid.UUID, slug string) (*taxonomy.SubCategory, error) {
	args := m.Called(ctx, categoryID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxonomy.SubCategory), args.Error(1)
}

func (m *MockSubCategoryRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]taxonomy.SubCategory, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]taxonomy.SubCategory), args.Error(1)
}

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
