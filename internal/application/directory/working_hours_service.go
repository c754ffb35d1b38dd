package directory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/morabaat/backend/internal/domain/directory"
	"github.com/morabaat/backend/internal/domain/shared"
)

// WorkingHoursService manages a company's weekly schedule
type WorkingHoursService struct {
	hours     directory.WorkingHoursRepository
	companies directory.CompanyRepository
	owners    directory.CompanyOwnerRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewWorkingHoursService creates the schedule service
func NewWorkingHoursService(
	hours directory.WorkingHoursRepository,
	companies directory.CompanyRepository,
	owners directory.CompanyOwnerRepository,
	logger *zap.Logger,
) *WorkingHoursService {
	return &WorkingHoursService{
		hours:     hours,
		companies: companies,
		owners:    owners,
		logger:    logger,
		now:       time.Now,
	}
}

// GetWeek returns the company's schedule, days ordered Sunday first
func (s *WorkingHoursService) GetWeek(ctx context.Context, companyID uuid.UUID) (*WeekView, error) {
	if _, err := s.companies.FindByID(ctx, companyID); err != nil {
		return nil, shared.ErrNotFound
	}
	week, err := s.hours.FindByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("Failed to load working hours", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load working hours")
	}
	// Companies created outside request approval (admin, CSV import) have
	// no rows yet; seed the default week so the schedule is always 7 days.
	if len(week) == 0 {
		week = directory.DefaultWeek(companyID)
		if err := s.hours.ReplaceWeek(ctx, companyID, week); err != nil {
			s.logger.Error("Failed to seed default working hours", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load working hours")
		}
	}
	sort.Slice(week, func(i, j int) bool { return week[i].DayOfWeek < week[j].DayOfWeek })

	now := s.now()
	view := WeekView{Days: make([]DayView, 0, len(week))}
	for i := range week {
		d := &week[i]
		view.Days = append(view.Days, DayView{
			DayOfWeek: d.DayOfWeek,
			OpenTime:  d.OpenTime,
			CloseTime: d.CloseTime,
			IsClosed:  d.IsClosed,
		})
		if d.IsOpenAt(now) {
			view.IsOpenNow = true
		}
	}
	return &view, nil
}

// GetWeekBySlug returns the schedule for a public profile. Inactive
// companies are hidden.
func (s *WorkingHoursService) GetWeekBySlug(ctx context.Context, companySlug string) (*WeekView, error) {
	company, err := s.companies.FindBySlug(ctx, companySlug)
	if err != nil || !company.IsActive {
		return nil, shared.ErrNotFound
	}
	return s.GetWeek(ctx, company.ID)
}

// ReplaceWeek swaps the full 7-day schedule. Every weekday must appear
// exactly once.
func (s *WorkingHoursService) ReplaceWeek(ctx context.Context, actor Actor, companyID uuid.UUID, input WeekInput) (*WeekView, error) {
	if _, err := requirePermission(ctx, s.owners, actor, companyID, directory.PermManageHours); err != nil {
		return nil, err
	}
	if _, err := s.companies.FindByID(ctx, companyID); err != nil {
		return nil, shared.ErrNotFound
	}

	seen := make(map[int]bool, 7)
	week := make([]directory.WorkingHours, 0, 7)
	for _, day := range input.Days {
		if seen[day.DayOfWeek] {
			return nil, shared.NewDomainError("DUPLICATE_DAY", "Each weekday must appear exactly once")
		}
		seen[day.DayOfWeek] = true
		wh, err := directory.NewWorkingHours(companyID, day.DayOfWeek, day.OpenTime, day.CloseTime, day.IsClosed)
		if err != nil {
			return nil, err
		}
		week = append(week, *wh)
	}

	if err := s.hours.ReplaceWeek(ctx, companyID, week); err != nil {
		s.logger.Error("Failed to replace working hours", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save working hours")
	}
	s.logger.Info("Working hours replaced", zap.String("company_id", companyID.String()))
	return s.GetWeek(ctx, companyID)
}
