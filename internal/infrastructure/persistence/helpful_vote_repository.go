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

// GormHelpfulVoteRepository implements review.VoteRepository using GORM
type GormHelpfulVoteRepository struct {
	db *gorm.DB
}

// NewGormHelpfulVoteRepository creates a new GormHelpfulVoteRepository
func NewGormHelpfulVoteRepository(db *gorm.DB) *GormHelpfulVoteRepository {
	return &GormHelpfulVoteRepository{db: db}
}

// FindByReviewAndUser finds one user's vote on one review
func (r *GormHelpfulVoteRepository) FindByReviewAndUser(ctx context.Context, reviewID, userID uuid.UUID) (*review.HelpfulVote, error) {
	var model models.HelpfulVoteModel
	if err := r.db.WithContext(ctx).
		Where("review_id = ? AND user_id = ?", reviewID, userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a vote
func (r *GormHelpfulVoteRepository) Save(ctx context.Context, vote *review.HelpfulVote) error {
	var model models.HelpfulVoteModel
	model.FromDomain(vote)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a vote
func (r *GormHelpfulVoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.HelpfulVoteModel{}, id)
}

// CountByReview derives the helpful / not-helpful counters from vote rows
func (r *GormHelpfulVoteRepository) CountByReview(ctx context.Context, reviewID uuid.UUID) (helpful, notHelpful int64, err error) {
	if err = r.db.WithContext(ctx).Model(&models.HelpfulVoteModel{}).
		Where("review_id = ? AND kind = ?", reviewID, string(review.VoteHelpful)).
		Count(&helpful).Error; err != nil {
		return 0, 0, err
	}
	if err = r.db.WithContext(ctx).Model(&models.HelpfulVoteModel{}).
		Where("review_id = ? AND kind = ?", reviewID, string(review.VoteNotHelpful)).
		Count(&notHelpful).Error; err != nil {
		return 0, 0, err
	}
	return helpful, notHelpful, nil
}

var _ review.VoteRepository = (*GormHelpfulVoteRepository)(nil)
