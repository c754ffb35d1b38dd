package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/morabaat/backend/internal/domain/directory"
	"github.com/morabaat/backend/internal/infrastructure/persistence/models"
)

// GormWorkingHoursRepository implements directory.WorkingHoursRepository using GORM
type GormWorkingHoursRepository struct {
	db *gorm.DB
}

// NewGormWorkingHoursRepository creates a new GormWorkingHoursRepository
func NewGormWorkingHoursRepository(db *gorm.DB) *GormWorkingHoursRepository {
	return &GormWorkingHoursRepository{db: db}
}

// FindByCompany returns the company's week ordered by day
func (r *GormWorkingHoursRepository) FindByCompany(ctx context.Context, companyID uuid.UUID) ([]directory.WorkingHours, error) {
	var rows []models.WorkingHoursModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("day_of_week ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	week := make([]directory.WorkingHours, 0, len(rows))
	for i := range rows {
		week = append(week, *rows[i].ToDomain())
	}
	return week, nil
}

// ReplaceWeek swaps all rows for a company in one transaction so readers
// never observe a partial week.
func (r *GormWorkingHoursRepository) ReplaceWeek(ctx context.Context, companyID uuid.UUID, week []directory.WorkingHours) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.WorkingHoursModel{}, "company_id = ?", companyID).Error; err != nil {
			return err
		}
		for i := range week {
			var model models.WorkingHoursModel
			model.FromDomain(&week[i])
			if err := tx.Create(&model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// HasAny reports whether the company has any schedule rows
func (r *GormWorkingHoursRepository) HasAny(ctx context.Context, companyID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.WorkingHoursModel{}).
		Where("company_id = ?", companyID).
		Count(&count).Error
	return count > 0, err
}

var _ directory.WorkingHoursRepository = (*GormWorkingHoursRepository)(nil)
