package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morabaat/backend/internal/domain/review"
	"github.com/morabaat/backend/internal/domain/shared"
)

func addReview(t *testing.T, repo *GormReviewRepository, companyID, userID uuid.UUID, rating int, approved bool) *review.Review {
	t.Helper()
	rev, err := review.NewReview(companyID, userID, rating, "", "decent place")
	require.NoError(t, err)
	if approved {
		rev.Approve()
	}
	require.NoError(t, repo.Save(context.Background(), rev))
	return rev
}

func TestRecomputeCompanyAggregate(t *testing.T) {
	f := newSearchFixture(t)
	repo := NewGormReviewRepository(f.db)
	ctx := context.Background()

	company := f.addCompany(t, "Aggregate Cafe", "0", nil)

	addReview(t, repo, company.ID, uuid.New(), 5, true)
	addReview(t, repo, company.ID, uuid.New(), 4, true)
	addReview(t, repo, company.ID, uuid.New(), 1, false)
	addReview(t, repo, uuid.New(), uuid.New(), 2, true) // other company

	agg, err := repo.RecomputeCompanyAggregate(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, agg.Count)
	assert.True(t, agg.Rating.Equal(decimal.RequireFromString("4.5")))

	// The company row carries the fresh aggregate
	stored, err := f.repo.FindByID(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.ReviewsCount)
	assert.True(t, stored.Rating.Equal(decimal.RequireFromString("4.5")))

	// Recompute is idempotent on an unchanged approved set
	again, err := repo.RecomputeCompanyAggregate(ctx, company.ID)
	require.NoError(t, err)
	assert.True(t, again.Rating.Equal(agg.Rating))
	assert.Equal(t, agg.Count, again.Count)
}

func TestRecomputeCompanyAggregate_UnknownCompany(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReviewRepository(db)

	_, err := repo.RecomputeCompanyAggregate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestFindByCompanyApprovedOnly(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReviewRepository(db)
	ctx := context.Background()
	companyID := uuid.New()

	addReview(t, repo, companyID, uuid.New(), 5, true)
	addReview(t, repo, companyID, uuid.New(), 3, false)

	public, total, err := repo.FindByCompany(ctx, companyID, true, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, public, 1)
	assert.True(t, public[0].IsApproved)

	moderation, total, err := repo.FindByCompany(ctx, companyID, false, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, moderation, 2)
}

func TestExistsByCompanyAndUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReviewRepository(db)
	ctx := context.Background()
	companyID := uuid.New()
	userID := uuid.New()

	exists, err := repo.ExistsByCompanyAndUser(ctx, companyID, userID)
	require.NoError(t, err)
	assert.False(t, exists)

	addReview(t, repo, companyID, userID, 4, false)

	exists, err = repo.ExistsByCompanyAndUser(ctx, companyID, userID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFindPendingQueue(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReviewRepository(db)
	ctx := context.Background()

	addReview(t, repo, uuid.New(), uuid.New(), 5, true)
	pending := addReview(t, repo, uuid.New(), uuid.New(), 2, false)

	queue, total, err := repo.FindPending(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, queue, 1)
	assert.Equal(t, pending.ID, queue[0].ID)
}

func TestHelpfulVoteCountByReview(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormHelpfulVoteRepository(db)
	ctx := context.Background()
	reviewID := uuid.New()

	for i := 0; i < 3; i++ {
		vote, err := review.NewHelpfulVote(reviewID, uuid.New(), review.VoteHelpful)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, vote))
	}
	vote, err := review.NewHelpfulVote(reviewID, uuid.New(), review.VoteNotHelpful)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, vote))

	helpful, notHelpful, err := repo.CountByReview(ctx, reviewID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), helpful)
	assert.Equal(t, int64(1), notHelpful)
}

func TestHelpfulVoteSwitchReplaces(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormHelpfulVoteRepository(db)
	ctx := context.Background()
	reviewID := uuid.New()
	userID := uuid.New()

	vote, err := review.NewHelpfulVote(reviewID, userID, review.VoteHelpful)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, vote))

	vote.Kind = review.VoteNotHelpful
	require.NoError(t, repo.Save(ctx, vote))

	stored, err := repo.FindByReviewAndUser(ctx, reviewID, userID)
	require.NoError(t, err)
	assert.Equal(t, review.VoteNotHelpful, stored.Kind)

	helpful, notHelpful, err := repo.CountByReview(ctx, reviewID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), helpful)
	assert.Equal(t, int64(1), notHelpful)
}
