package review

import (
	"context"

	"github.com/google/uuid"
	"github.com/morabaat/backend/internal/domain/shared"
)

// Repository provides access to review storage. RecomputeCompanyAggregate
// rederives the owning company's rating from the current approved set and
// must perform the read and the write atomically.
type Repository interface {
	shared.Repository[Review]
	FindByCompany(ctx context.Context, companyID uuid.UUID, approvedOnly bool, filter shared.Filter) ([]Review, int64, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Review, int64, error)
	ExistsByCompanyAndUser(ctx context.Context, companyID, userID uuid.UUID) (bool, error)
	FindPending(ctx context.Context, filter shared.Filter) ([]Review, int64, error)
	RecomputeCompanyAggregate(ctx context.Context, companyID uuid.UUID) (Aggregate, error)
}

// ReportRepository provides access to review reports
type ReportRepository interface {
	shared.Repository[ReviewReport]
	FindByStatus(ctx context.Context, status ReportStatus, filter shared.Filter) ([]ReviewReport, int64, error)
	ExistsByReviewAndUser(ctx context.Context, reviewID, userID uuid.UUID) (bool, error)
}

// VoteRepository provides access to helpful votes. Counts are derived from
// the vote rows rather than trusted counters.
type VoteRepository interface {
	FindByReviewAndUser(ctx context.Context, reviewID, userID uuid.UUID) (*HelpfulVote, error)
	Save(ctx context.Context, vote *HelpfulVote) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByReview(ctx context.Context, reviewID uuid.UUID) (helpful, notHelpful int64, err error)
}
