package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/morabaat/backend/internal/domain/review"
	"github.com/morabaat/backend/internal/domain/shared"
	"github.com/morabaat/backend/internal/infrastructure/persistence/models"
)

var reviewSortColumns = map[string]bool{
	"created_at":    true,
	"rating":        true,
	"helpful_count": true,
}

// GormReviewRepository implements review.Repository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// FindByID finds a review by ID
func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	var model models.ReviewModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCompany lists a company's reviews. Public callers pass approvedOnly;
// moderation views see everything.
func (r *GormReviewRepository) FindByCompany(ctx context.Context, companyID uuid.UUID, approvedOnly bool, filter shared.Filter) ([]review.Review, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ReviewModel{}).
		Where("company_id = ?", companyID)
	if approvedOnly {
		query = query.Where("is_approved = ?", true)
	}
	return r.pageReviews(query, filter)
}

// FindByUser lists one user's reviews
func (r *GormReviewRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]review.Review, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ReviewModel{}).
		Where("user_id = ?", userID)
	return r.pageReviews(query, filter)
}

// FindPending lists the moderation queue oldest-first behaviour via filter order
func (r *GormReviewRepository) FindPending(ctx context.Context, filter shared.Filter) ([]review.Review, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ReviewModel{}).
		Where("is_approved = ?", false)
	return r.pageReviews(query, filter)
}

func (r *GormReviewRepository) pageReviews(query *gorm.DB, filter shared.Filter) ([]review.Review, int64, error) {
	page, total, err := countThen(query, filter, reviewSortColumns)
	if err != nil {
		return nil, 0, err
	}
	var rows []models.ReviewModel
	if err := page.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toReviewSlice(rows), total, nil
}

// ExistsByCompanyAndUser checks the one-review-per-user constraint
func (r *GormReviewRepository) ExistsByCompanyAndUser(ctx context.Context, companyID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ReviewModel{}).
		Where("company_id = ? AND user_id = ?", companyID, userID).
		Count(&count).Error
	return count > 0, err
}

// RecomputeCompanyAggregate rederives a company's rating and review count
// from the current approved set. Read and write share one transaction so
// two concurrent moderation decisions cannot persist a stale aggregate.
func (r *GormReviewRepository) RecomputeCompanyAggregate(ctx context.Context, companyID uuid.UUID) (review.Aggregate, error) {
	var agg review.Aggregate
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ratings []int
		if err := tx.Model(&models.ReviewModel{}).
			Where("company_id = ? AND is_approved = ?", companyID, true).
			Pluck("rating", &ratings).Error; err != nil {
			return err
		}
		agg = review.ComputeAggregate(ratings)
		result := tx.Model(&models.CompanyModel{}).
			Where("id = ?", companyID).
			Updates(map[string]interface{}{
				"rating":        agg.Rating,
				"reviews_count": agg.Count,
				"updated_at":    time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
	return agg, err
}

// FindAll finds reviews matching the filter
func (r *GormReviewRepository) FindAll(ctx context.Context, filter shared.Filter) ([]review.Review, error) {
	query := r.db.WithContext(ctx).Model(&models.ReviewModel{})
	if approved, ok := filter.Filters["is_approved"]; ok {
		query = query.Where("is_approved = ?", approved)
	}
	query = applyPagination(applyOrder(query, filter, reviewSortColumns), filter)

	var rows []models.ReviewModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toReviewSlice(rows), nil
}

// Save creates or updates a review
func (r *GormReviewRepository) Save(ctx context.Context, rev *review.Review) error {
	var model models.ReviewModel
	model.FromDomain(rev)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a review
func (r *GormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.ReviewModel{}, id)
}

// Count counts reviews matching the filter
func (r *GormReviewRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ReviewModel{})
	if approved, ok := filter.Filters["is_approved"]; ok {
		query = query.Where("is_approved = ?", approved)
	}
	err := query.Count(&count).Error
	return count, err
}

func toReviewSlice(rows []models.ReviewModel) []review.Review {
	reviews := make([]review.Review, 0, len(rows))
	for i := range rows {
		reviews = append(reviews, *rows[i].ToDomain())
	}
	return reviews
}

var _ review.Repository = (*GormReviewRepository)(nil)
