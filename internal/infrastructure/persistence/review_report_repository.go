package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/morabaat/backend/internal/domain/review"
	"github.com/morabaat/backend/internal/domain/shared"
	"github.com/morabaat/backend/internal/infrastructure/persistence/models"
)

// GormReviewReportRepository implements review.ReportRepository using GORM
type GormReviewReportRepository struct {
	db *gorm.DB
}

// NewGormReviewReportRepository creates a new GormReviewReportRepository
func NewGormReviewReportRepository(db *gorm.DB) *GormReviewReportRepository {
	return &GormReviewReportRepository{db: db}
}

// FindByID finds a report by ID
func (r *GormReviewReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*review.ReviewReport, error) {
	var model models.ReviewReportModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByStatus lists reports in one status, with an independent total count
func (r *GormReviewReportRepository) FindByStatus(ctx context.Context, status review.ReportStatus, filter shared.Filter) ([]review.ReviewReport, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ReviewReportModel{}).
		Where("status = ?", string(status))
	page, total, err := countThen(query, filter, map[string]bool{"created_at": true})
	if err != nil {
		return nil, 0, err
	}
	var rows []models.ReviewReportModel
	if err := page.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toReportSlice(rows), total, nil
}

// ExistsByReviewAndUser checks the one-report-per-user constraint
func (r *GormReviewReportRepository) ExistsByReviewAndUser(ctx context.Context, reviewID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ReviewReportModel{}).
		Where("review_id = ? AND reported_by = ?", reviewID, userID).
		Count(&count).Error
	return count > 0, err
}

// FindAll finds reports matching the filter
func (r *GormReviewReportRepository) FindAll(ctx context.Context, filter shared.Filter) ([]review.ReviewReport, error) {
	query := r.db.WithContext(ctx).Model(&models.ReviewReportModel{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	query = applyPagination(applyOrder(query, filter, map[string]bool{"created_at": true}), filter)

	var rows []models.ReviewReportModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toReportSlice(rows), nil
}

// Save creates or updates a report
func (r *GormReviewReportRepository) Save(ctx context.Context, report *review.ReviewReport) error {
	var model models.ReviewReportModel
	model.FromDomain(report)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a report
func (r *GormReviewReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.ReviewReportModel{}, id)
}

// Count counts reports matching the filter
func (r *GormReviewReportRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ReviewReportModel{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}

func toReportSlice(rows []models.ReviewReportModel) []review.ReviewReport {
	reports := make([]review.ReviewReport, 0, len(rows))
	for i := range rows {
		reports = append(reports, *rows[i].ToDomain())
	}
	return reports
}

var _ review.ReportRepository = (*GormReviewReportRepository)(nil)
