package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/morabaat/backend/internal/domain/bulk"
	"github.com/morabaat/backend/internal/domain/shared"
	"github.com/morabaat/backend/internal/infrastructure/persistence/models"
)

// GormImportRecordRepository implements bulk.RecordRepository using GORM
type GormImportRecordRepository struct {
	db *gorm.DB
}

// NewGormImportRecordRepository creates a new GormImportRecordRepository
func NewGormImportRecordRepository(db *gorm.DB) *GormImportRecordRepository {
	return &GormImportRecordRepository{db: db}
}

// FindByID finds an import record by ID
func (r *GormImportRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*bulk.Record, error) {
	var model models.ImportRecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySessionID finds the record tied to a live or past session
func (r *GormImportRecordRepository) FindBySessionID(ctx context.Context, sessionID string) (*bulk.Record, error) {
	var model models.ImportRecordModel
	if err := r.db.WithContext(ctx).First(&model, "session_id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds records matching the filter, newest first by default
func (r *GormImportRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]bulk.Record, error) {
	query := r.db.WithContext(ctx).Model(&models.ImportRecordModel{})
	if importedBy, ok := filter.Filters["imported_by"]; ok {
		query = query.Where("imported_by = ?", importedBy)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	query = applyPagination(applyOrder(query, filter, map[string]bool{"created_at": true, "started_at": true}), filter)

	var rows []models.ImportRecordModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	records := make([]bulk.Record, 0, len(rows))
	for i := range rows {
		records = append(records, *rows[i].ToDomain())
	}
	return records, nil
}

// Save creates or updates a record
func (r *GormImportRecordRepository) Save(ctx context.Context, record *bulk.Record) error {
	var model models.ImportRecordModel
	model.FromDomain(record)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a record
func (r *GormImportRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.ImportRecordModel{}, id)
}

// Count counts records matching the filter
func (r *GormImportRecordRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ImportRecordModel{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}

var _ bulk.RecordRepository = (*GormImportRecordRepository)(nil)
