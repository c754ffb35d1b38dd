package directory

import (
	"context"

	"go.uber.org/zap"

	"github.com/morabaat/backend/internal/domain/directory"
	"github.com/morabaat/backend/internal/domain/shared"
)

// SearchService runs the public company search
type SearchService struct {
	companies directory.CompanyRepository
	logger    *zap.Logger
}

// NewSearchService creates the search service
func NewSearchService(companies directory.CompanyRepository, logger *zap.Logger) *SearchService {
	return &SearchService{companies: companies, logger: logger}
}

// Search executes a filtered, paginated company query. Only active listings
// are returned; the total is computed under the same predicates.
func (s *SearchService) Search(ctx context.Context, input SearchInput) (*shared.Paginated[CompanyView], error) {
	filter := input.ToFilter()

	companies, total, err := s.companies.Search(ctx, filter)
	if err != nil {
		s.logger.Error("Company search failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Search failed")
	}

	views := make([]CompanyView, 0, len(companies))
	for i := range companies {
		views = append(views, NewCompanyView(&companies[i]))
	}
	page := shared.NewPaginated(views, total, filter.Page, filter.Limit)
	return &page, nil
}

// Featured returns the first page of featured companies sorted by rating
func (s *SearchService) Featured(ctx context.Context, limit int) ([]CompanyView, error) {
	featured := true
	filter := directory.SearchFilter{
		Featured: &featured,
		SortBy:   directory.SortByRating,
		Page:     1,
		Limit:    limit,
	}
	filter.Normalize()

	companies, _, err := s.companies.Search(ctx, filter)
	if err != nil {
		s.logger.Error("Featured query failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load featured companies")
	}

	views := make([]CompanyView, 0, len(companies))
	for i := range companies {
		views = append(views, NewCompanyView(&companies[i]))
	}
	return views, nil
}
