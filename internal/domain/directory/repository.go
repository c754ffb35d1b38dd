package directory

import (
	"context"

	"github.com/google/uuid"
	"github.com/morabaat/backend/internal/domain/shared"
)

// CompanyRepository provides access to company storage. Search is the
// taxonomy-filtered query/aggregation entry point; its total is computed by
// an independent count under the same predicate set.
type CompanyRepository interface {
	shared.Repository[Company]
	FindBySlug(ctx context.Context, slug string) (*Company, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Search(ctx context.Context, filter SearchFilter) ([]Company, int64, error)
	CountActiveByTaxonomy(ctx context.Context, kind string, id uuid.UUID) (int64, error)
}

// CompanyOwnerRepository provides access to dashboard memberships
type CompanyOwnerRepository interface {
	shared.Repository[CompanyOwner]
	FindByCompanyAndUser(ctx context.Context, companyID, userID uuid.UUID) (*CompanyOwner, error)
	FindByCompany(ctx context.Context, companyID uuid.UUID) ([]CompanyOwner, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]CompanyOwner, error)
}

// WorkingHoursRepository provides access to weekly schedules. ReplaceWeek
// swaps all seven rows atomically for one company.
type WorkingHoursRepository interface {
	FindByCompany(ctx context.Context, companyID uuid.UUID) ([]WorkingHours, error)
	ReplaceWeek(ctx context.Context, companyID uuid.UUID, week []WorkingHours) error
	HasAny(ctx context.Context, companyID uuid.UUID) (bool, error)
}

// CompanyRequestRepository provides access to registration applications
type CompanyRequestRepository interface {
	shared.Repository[CompanyRequest]
	FindByStatus(ctx context.Context, status RequestStatus, filter shared.Filter) ([]CompanyRequest, int64, error)
	FindByRequester(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]CompanyRequest, int64, error)
}
