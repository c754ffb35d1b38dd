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

// GormCompanyOwnerRepository implements directory.CompanyOwnerRepository using GORM
type GormCompanyOwnerRepository struct {
	db *gorm.DB
}

// NewGormCompanyOwnerRepository creates a new GormCompanyOwnerRepository
func NewGormCompanyOwnerRepository(db *gorm.DB) *GormCompanyOwnerRepository {
	return &GormCompanyOwnerRepository{db: db}
}

// FindByID finds a membership by ID
func (r *GormCompanyOwnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*directory.CompanyOwner, error) {
	var model models.CompanyOwnerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCompanyAndUser finds one user's membership in one company
func (r *GormCompanyOwnerRepository) FindByCompanyAndUser(ctx context.Context, companyID, userID uuid.UUID) (*directory.CompanyOwner, error) {
	var model models.CompanyOwnerModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND user_id = ?", companyID, userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCompany lists all memberships of a company
func (r *GormCompanyOwnerRepository) FindByCompany(ctx context.Context, companyID uuid.UUID) ([]directory.CompanyOwner, error) {
	var rows []models.CompanyOwnerModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toOwnerSlice(rows), nil
}

// FindByUser lists all companies a user belongs to
func (r *GormCompanyOwnerRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]directory.CompanyOwner, error) {
	var rows []models.CompanyOwnerModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toOwnerSlice(rows), nil
}

// FindAll finds memberships matching the filter
func (r *GormCompanyOwnerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]directory.CompanyOwner, error) {
	query := r.db.WithContext(ctx).Model(&models.CompanyOwnerModel{})
	query = applyPagination(applyOrder(query, filter, map[string]bool{"created_at": true}), filter)

	var rows []models.CompanyOwnerModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toOwnerSlice(rows), nil
}

// Save creates or updates a membership
func (r *GormCompanyOwnerRepository) Save(ctx context.Context, owner *directory.CompanyOwner) error {
	var model models.CompanyOwnerModel
	model.FromDomain(owner)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a membership
func (r *GormCompanyOwnerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.CompanyOwnerModel{}, id)
}

// Count counts memberships matching the filter
func (r *GormCompanyOwnerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.CompanyOwnerModel{})
	if companyID, ok := filter.Filters["company_id"]; ok {
		query = query.Where("company_id = ?", companyID)
	}
	err := query.Count(&count).Error
	return count, err
}

func toOwnerSlice(rows []models.CompanyOwnerModel) []directory.CompanyOwner {
	owners := make([]directory.CompanyOwner, 0, len(rows))
	for i := range rows {
		owners = append(owners, *rows[i].ToDomain())
	}
	return owners
}

var _ directory.CompanyOwnerRepository = (*GormCompanyOwnerRepository)(nil)
