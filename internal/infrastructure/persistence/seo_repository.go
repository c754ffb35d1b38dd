package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/morabaat/backend/internal/domain/seo"
	"github.com/morabaat/backend/internal/domain/shared"
	"github.com/morabaat/backend/internal/infrastructure/persistence/models"
)

// GormSeoOverrideRepository implements seo.Repository using GORM
type GormSeoOverrideRepository struct {
	db *gorm.DB
}

// NewGormSeoOverrideRepository creates a new GormSeoOverrideRepository
func NewGormSeoOverrideRepository(db *gorm.DB) *GormSeoOverrideRepository {
	return &GormSeoOverrideRepository{db: db}
}

// FindByID finds an override by ID
func (r *GormSeoOverrideRepository) FindByID(ctx context.Context, id uuid.UUID) (*seo.Override, error) {
	var model models.SeoOverrideModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPath finds an override keyed by a literal path
func (r *GormSeoOverrideRepository) FindByPath(ctx context.Context, path string) (*seo.Override, error) {
	var model models.SeoOverrideModel
	if err := r.db.WithContext(ctx).First(&model, "path = ?", path).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTarget finds an override keyed by a target entity
func (r *GormSeoOverrideRepository) FindByTarget(ctx context.Context, targetType seo.TargetType, targetID uuid.UUID) (*seo.Override, error) {
	var model models.SeoOverrideModel
	if err := r.db.WithContext(ctx).
		Where("target_type = ? AND target_id = ?", string(targetType), targetID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds overrides matching the filter
func (r *GormSeoOverrideRepository) FindAll(ctx context.Context, filter shared.Filter) ([]seo.Override, error) {
	query := r.db.WithContext(ctx).Model(&models.SeoOverrideModel{})
	if targetType, ok := filter.Filters["target_type"]; ok {
		query = query.Where("target_type = ?", targetType)
	}
	query = applyPagination(applyOrder(query, filter, map[string]bool{"created_at": true, "path": true}), filter)

	var rows []models.SeoOverrideModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]seo.Override, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, nil
}

// Save creates or updates an override
func (r *GormSeoOverrideRepository) Save(ctx context.Context, override *seo.Override) error {
	var model models.SeoOverrideModel
	model.FromDomain(override)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes an override
func (r *GormSeoOverrideRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.SeoOverrideModel{}, id)
}

// Count counts overrides matching the filter
func (r *GormSeoOverrideRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.SeoOverrideModel{})
	if targetType, ok := filter.Filters["target_type"]; ok {
		query = query.Where("target_type = ?", targetType)
	}
	err := query.Count(&count).Error
	return count, err
}

var _ seo.Repository = (*GormSeoOverrideRepository)(nil)
