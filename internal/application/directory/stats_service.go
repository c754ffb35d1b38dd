package directory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/morabaat/backend/internal/domain/directory"
	"github.com/morabaat/backend/internal/domain/notification"
	"github.com/morabaat/backend/internal/domain/review"
	"github.com/morabaat/backend/internal/domain/shared"
	"github.com/morabaat/backend/internal/domain/taxonomy"
	"github.com/morabaat/backend/internal/infrastructure/cache"
)

const (
	homeStatsCacheKey = "home"
	homeStatsTTL      = 5 * time.Minute
)

// StatsService aggregates counters for the owner dashboard and the public
// landing page. Home counters are cached; dashboard counters are live.
type StatsService struct {
	companies     directory.CompanyRepository
	owners        directory.CompanyOwnerRepository
	reviews       review.Repository
	notifications notification.Repository
	categories    taxonomy.CategoryRepository
	cities        taxonomy.CityRepository
	statsCache    cache.StatsCache
	logger        *zap.Logger
}

// NewStatsService creates the stats service
func NewStatsService(
	companies directory.CompanyRepository,
	owners directory.CompanyOwnerRepository,
	reviews review.Repository,
	notifications notification.Repository,
	categories taxonomy.CategoryRepository,
	cities taxonomy.CityRepository,
	statsCache cache.StatsCache,
	logger *zap.Logger,
) *StatsService {
	return &StatsService{
		companies:     companies,
		owners:        owners,
		reviews:       reviews,
		notifications: notifications,
		categories:    categories,
		cities:        cities,
		statsCache:    statsCache,
		logger:        logger,
	}
}

// Dashboard returns live counters for one company's owner dashboard
func (s *StatsService) Dashboard(ctx context.Context, actor Actor, companyID uuid.UUID) (*DashboardStats, error) {
	if _, err := requirePermission(ctx, s.owners, actor, companyID, directory.PermViewStats); err != nil {
		return nil, err
	}
	company, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	stats := DashboardStats{
		Rating:       company.Rating,
		ReviewsCount: company.ReviewsCount,
	}
	countFilter := shared.Filter{Page: 1, PageSize: 1}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, total, err := s.reviews.FindByCompany(gctx, companyID, false, countFilter)
		if err != nil {
			return err
		}
		stats.PendingReviews = total - int64(company.ReviewsCount)
		if stats.PendingReviews < 0 {
			stats.PendingReviews = 0
		}
		return nil
	})
	g.Go(func() error {
		unread, err := s.notifications.CountUnreadForCompany(gctx, companyID)
		if err != nil {
			return err
		}
		stats.UnreadNotifications = unread
		return nil
	})
	g.Go(func() error {
		members, err := s.owners.FindByCompany(gctx, companyID)
		if err != nil {
			return err
		}
		stats.MembersCount = len(members)
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to aggregate dashboard stats", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load stats")
	}
	return &stats, nil
}

// Home returns the site-wide counters, served from cache when fresh
func (s *StatsService) Home(ctx context.Context) (*HomeStats, error) {
	var stats HomeStats
	if s.statsCache != nil {
		err := s.statsCache.Get(ctx, homeStatsCacheKey, &stats)
		if err == nil {
			return &stats, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Home stats cache read failed", zap.Error(err))
		}
	}

	countFilter := shared.Filter{Page: 1, PageSize: 1}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.companies.Count(gctx, countFilter)
		stats.Companies = n
		return err
	})
	g.Go(func() error {
		n, err := s.reviews.Count(gctx, countFilter)
		stats.Reviews = n
		return err
	})
	g.Go(func() error {
		n, err := s.categories.Count(gctx, countFilter)
		stats.Categories = n
		return err
	})
	g.Go(func() error {
		n, err := s.cities.Count(gctx, countFilter)
		stats.Cities = n
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to aggregate home stats", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load stats")
	}

	if s.statsCache != nil {
		if err := s.statsCache.Set(ctx, homeStatsCacheKey, stats, homeStatsTTL); err != nil {
			s.logger.Warn("Home stats cache write failed", zap.Error(err))
		}
	}
	return &stats, nil
}
