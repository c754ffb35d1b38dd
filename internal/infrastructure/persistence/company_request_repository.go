package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/morabaat/backend/internal/domain/directory"
	"github.com/morabaat/backend/internal/domain/shared"
	"github.com/morabaat/backend/internal/infrastructure/persistence/models"
)

var requestSortColumns = map[string]bool{
	"created_at": true,
	"name":       true,
}

// GormCompanyRequestRepository implements directory.CompanyRequestRepository using GORM
type GormCompanyRequestRepository struct {
	db *gorm.DB
}

// NewGormCompanyRequestRepository creates a new GormCompanyRequestRepository
func NewGormCompanyRequestRepository(db *gorm.DB) *GormCompanyRequestRepository {
	return &GormCompanyRequestRepository{db: db}
}

// FindByID finds a request by ID
func (r *GormCompanyRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*directory.CompanyRequest, error) {
	var model models.CompanyRequestModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByStatus lists requests in one status, with an independent total count
func (r *GormCompanyRequestRepository) FindByStatus(ctx context.Context, status directory.RequestStatus, filter shared.Filter) ([]directory.CompanyRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CompanyRequestModel{}).
		Where("status = ?", string(status))
	return r.page(query, filter)
}

// FindByRequester lists one user's applications
func (r *GormCompanyRequestRepository) FindByRequester(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]directory.CompanyRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CompanyRequestModel{}).
		Where("requested_by = ?", userID)
	return r.page(query, filter)
}

func (r *GormCompanyRequestRepository) page(query *gorm.DB, filter shared.Filter) ([]directory.CompanyRequest, int64, error) {
	page, total, err := countThen(query, filter, requestSortColumns)
	if err != nil {
		return nil, 0, err
	}
	var rows []models.CompanyRequestModel
	if err := page.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toRequestSlice(rows), total, nil
}

// FindAll finds requests matching the filter
func (r *GormCompanyRequestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]directory.CompanyRequest, error) {
	query := r.db.WithContext(ctx).Model(&models.CompanyRequestModel{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	query = applyPagination(applyOrder(query, filter, requestSortColumns), filter)

	var rows []models.CompanyRequestModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toRequestSlice(rows), nil
}

// Save creates or updates a request
func (r *GormCompanyRequestRepository) Save(ctx context.Context, request *directory.CompanyRequest) error {
	var model models.CompanyRequestModel
	model.FromDomain(request)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a request
func (r *GormCompanyRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.CompanyRequestModel{}, id)
}

// Count counts requests matching the filter
func (r *GormCompanyRequestRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.CompanyRequestModel{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}

func toRequestSlice(rows []models.CompanyRequestModel) []directory.CompanyRequest {
	requests := make([]directory.CompanyRequest, 0, len(rows))
	for i := range rows {
		requests = append(requests, *rows[i].ToDomain())
	}
	return requests
}

var _ directory.CompanyRequestRepository = (*GormCompanyRequestRepository)(nil)
