package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/morabaat/backend/internal/domain/directory"
	"github.com/morabaat/backend/internal/domain/notification"
	"github.com/morabaat/backend/internal/domain/review"
	"github.com/morabaat/backend/internal/domain/shared"
)

// Service manages the review lifecycle. Reviews are born unapproved;
// moderation either approves them or deletes them, and both paths end in the
// same aggregate recompute on the company.
type Service struct {
	reviews       review.Repository
	reports       review.ReportRepository
	votes         review.VoteRepository
	companies     directory.CompanyRepository
	owners        directory.CompanyOwnerRepository
	notifications notification.Repository
	logger        *zap.Logger
}

// NewService creates the review service
func NewService(
	reviews review.Repository,
	reports review.ReportRepository,
	votes review.VoteRepository,
	companies directory.CompanyRepository,
	owners directory.CompanyOwnerRepository,
	notifications notification.Repository,
	logger *zap.Logger,
) *Service {
	return &Service{
		reviews:       reviews,
		reports:       reports,
		votes:         votes,
		companies:     companies,
		owners:        owners,
		notifications: notifications,
		logger:        logger,
	}
}

// Submit creates an unapproved review. One review per user per company.
func (s *Service) Submit(ctx context.Context, actor Actor, companyID uuid.UUID, input SubmitInput) (*View, error) {
	company, err := s.companies.FindByID(ctx, companyID)
	if err != nil || !company.IsActive {
		return nil, shared.ErrNotFound
	}
	if member, err := s.owners.FindByCompanyAndUser(ctx, companyID, actor.UserID); err == nil && member != nil {
		return nil, shared.NewDomainError("OWN_COMPANY", "You cannot review your own company")
	}
	exists, err := s.reviews.ExistsByCompanyAndUser(ctx, companyID, actor.UserID)
	if err != nil {
		s.logger.Error("Failed to check existing review", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to submit review")
	}
	if exists {
		return nil, shared.ErrAlreadyReviewed
	}

	r, err := review.NewReview(companyID, actor.UserID, input.Rating, input.Title, input.Comment)
	if err != nil {
		return nil, err
	}
	r.Images = input.Images
	if err := s.reviews.Save(ctx, r); err != nil {
		s.logger.Error("Failed to save review", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to submit review")
	}

	s.notify(ctx, &companyID, nil, notification.KindReview,
		"مراجعة جديدة بانتظار النشر",
		fmt.Sprintf("وصلت مراجعة جديدة بتقييم %d نجوم", r.Rating),
		"")

	s.logger.Info("Review submitted",
		zap.String("review_id", r.ID.String()),
		zap.String("company_id", companyID.String()))
	view := NewView(r)
	return &view, nil
}

// ListForCompany returns a company's reviews. Unapproved reviews are visible
// only to admins and the company's members.
func (s *Service) ListForCompany(ctx context.Context, actor *Actor, companyID uuid.UUID, filter shared.Filter) (*shared.Paginated[View], error) {
	approvedOnly := true
	if actor != nil {
		if actor.IsAdmin() {
			approvedOnly = false
		} else if _, err := s.owners.FindByCompanyAndUser(ctx, companyID, actor.UserID); err == nil {
			approvedOnly = false
		}
	}
	filter.Normalize()
	reviews, total, err := s.reviews.FindByCompany(ctx, companyID, approvedOnly, filter)
	if err != nil {
		s.logger.Error("Failed to list company reviews", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list reviews")
	}
	return page(reviews, total, filter), nil
}

// ListForCompanySlug resolves a public company slug and pages its reviews.
func (s *Service) ListForCompanySlug(ctx context.Context, actor *Actor, slug string, filter shared.Filter) (*shared.Paginated[View], error) {
	company, err := s.companies.FindBySlug(ctx, slug)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	return s.ListForCompany(ctx, actor, company.ID, filter)
}

// SubmitForSlug resolves a public company slug and files a review against it.
func (s *Service) SubmitForSlug(ctx context.Context, actor Actor, slug string, input SubmitInput) (*View, error) {
	company, err := s.companies.FindBySlug(ctx, slug)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	return s.Submit(ctx, actor, company.ID, input)
}

// ListMine returns the actor's reviews
func (s *Service) ListMine(ctx context.Context, actor Actor, filter shared.Filter) (*shared.Paginated[View], error) {
	filter.Normalize()
	reviews, total, err := s.reviews.FindByUser(ctx, actor.UserID, filter)
	if err != nil {
		s.logger.Error("Failed to list own reviews", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list reviews")
	}
	return page(reviews, total, filter), nil
}

// ListPending returns the moderation queue
func (s *Service) ListPending(ctx context.Context, actor Actor, filter shared.Filter) (*shared.Paginated[View], error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}
	filter.Normalize()
	reviews, total, err := s.reviews.FindPending(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list pending reviews", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list reviews")
	}
	return page(reviews, total, filter), nil
}

// Approve publishes a review and recomputes the company aggregate
func (s *Service) Approve(ctx context.Context, actor Actor, reviewID uuid.UUID) (*View, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}
	r, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	r.Approve()
	if err := s.reviews.Save(ctx, r); err != nil {
		s.logger.Error("Failed to approve review", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to approve review")
	}
	if err := s.recomputeAggregate(ctx, r.CompanyID); err != nil {
		return nil, err
	}

	s.notify(ctx, nil, &r.UserID, notification.KindReview,
		"تم نشر مراجعتك",
		"أصبحت مراجعتك ظاهرة للجميع، شكراً لمساهمتك",
		"")

	view := NewView(r)
	return &view, nil
}

// Reject deletes an unwanted review and recomputes the company aggregate.
// There is no rejected state kept around.
func (s *Service) Reject(ctx context.Context, actor Actor, reviewID uuid.UUID) error {
	if !actor.IsAdmin() {
		return shared.ErrForbidden
	}
	r, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return shared.ErrNotFound
	}
	if err := s.reviews.Delete(ctx, r.ID); err != nil {
		s.logger.Error("Failed to delete review", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to reject review")
	}
	return s.recomputeAggregate(ctx, r.CompanyID)
}

// Reply attaches the owner reply to an approved review
func (s *Service) Reply(ctx context.Context, actor Actor, reviewID uuid.UUID, input ReplyInput) (*View, error) {
	r, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if err := s.requireReplyPermission(ctx, actor, r.CompanyID); err != nil {
		return nil, err
	}
	if !r.IsApproved {
		return nil, shared.NewDomainError("INVALID_STATE", "Only approved reviews can be replied to")
	}
	if err := r.Reply(input.Text); err != nil {
		return nil, err
	}
	if err := s.reviews.Save(ctx, r); err != nil {
		s.logger.Error("Failed to save reply", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save reply")
	}

	s.notify(ctx, nil, &r.UserID, notification.KindMessage,
		"رد جديد على مراجعتك",
		"قامت الشركة بالرد على مراجعتك",
		"")

	view := NewView(r)
	return &view, nil
}

// Report flags a review for moderation. One report per user per review.
func (s *Service) Report(ctx context.Context, actor Actor, reviewID uuid.UUID, input ReportInput) (*ReportView, error) {
	if _, err := s.reviews.FindByID(ctx, reviewID); err != nil {
		return nil, shared.ErrNotFound
	}
	exists, err := s.reports.ExistsByReviewAndUser(ctx, reviewID, actor.UserID)
	if err != nil {
		s.logger.Error("Failed to check existing report", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to submit report")
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_REPORTED", "You already reported this review")
	}

	report, err := review.NewReviewReport(reviewID, actor.UserID, input.Reason, input.Details)
	if err != nil {
		return nil, err
	}
	if err := s.reports.Save(ctx, report); err != nil {
		s.logger.Error("Failed to save report", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to submit report")
	}
	view := NewReportView(report)
	return &view, nil
}

// ListReports returns pending reports for the back office
func (s *Service) ListReports(ctx context.Context, actor Actor, filter shared.Filter) (*shared.Paginated[ReportView], error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}
	filter.Normalize()
	reports, total, err := s.reports.FindByStatus(ctx, review.ReportStatusPending, filter)
	if err != nil {
		s.logger.Error("Failed to list reports", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list reports")
	}
	views := make([]ReportView, 0, len(reports))
	for i := range reports {
		views = append(views, NewReportView(&reports[i]))
	}
	result := shared.NewPaginated(views, total, filter.Page, filter.PageSize)
	return &result, nil
}

// DecideReport upholds or dismisses a report. Upholding deletes the reported
// review through the same path as a direct rejection.
func (s *Service) DecideReport(ctx context.Context, actor Actor, reportID uuid.UUID, uphold bool) (*ReportView, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}
	report, err := s.reports.FindByID(ctx, reportID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if uphold {
		if err := report.Approve(actor.UserID); err != nil {
			return nil, err
		}
	} else {
		if err := report.Reject(actor.UserID); err != nil {
			return nil, err
		}
	}
	if err := s.reports.Save(ctx, report); err != nil {
		s.logger.Error("Failed to save report decision", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to decide report")
	}

	if uphold {
		// The reported review may already be gone from an earlier report.
		if r, err := s.reviews.FindByID(ctx, report.ReviewID); err == nil {
			if err := s.reviews.Delete(ctx, r.ID); err != nil {
				s.logger.Error("Failed to delete reported review", zap.Error(err))
				return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to decide report")
			}
			if err := s.recomputeAggregate(ctx, r.CompanyID); err != nil {
				return nil, err
			}
		}
	}

	view := NewReportView(report)
	return &view, nil
}

// Vote casts, switches or retracts a helpful vote. Voting the same way twice
// retracts; voting the other way switches. Counters are rederived from the
// vote rows.
func (s *Service) Vote(ctx context.Context, actor Actor, reviewID uuid.UUID, input VoteInput) (*VoteResult, error) {
	r, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if r.UserID == actor.UserID {
		return nil, shared.NewDomainError("OWN_REVIEW", "You cannot vote on your own review")
	}

	kind := review.VoteKind(input.Kind)
	yourVote := string(kind)
	existing, err := s.votes.FindByReviewAndUser(ctx, reviewID, actor.UserID)
	switch {
	case err != nil || existing == nil:
		vote, err := review.NewHelpfulVote(reviewID, actor.UserID, kind)
		if err != nil {
			return nil, err
		}
		if err := s.votes.Save(ctx, vote); err != nil {
			s.logger.Error("Failed to save vote", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save vote")
		}
	case existing.Kind == kind:
		if err := s.votes.Delete(ctx, existing.ID); err != nil {
			s.logger.Error("Failed to retract vote", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save vote")
		}
		yourVote = ""
	default:
		existing.Kind = kind
		existing.Touch()
		if err := s.votes.Save(ctx, existing); err != nil {
			s.logger.Error("Failed to switch vote", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save vote")
		}
	}

	helpful, notHelpful, err := s.votes.CountByReview(ctx, reviewID)
	if err != nil {
		s.logger.Error("Failed to count votes", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save vote")
	}
	r.HelpfulCount = int(helpful)
	r.NotHelpfulCount = int(notHelpful)
	r.Touch()
	if err := s.reviews.Save(ctx, r); err != nil {
		s.logger.Error("Failed to update vote counters", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save vote")
	}

	return &VoteResult{
		ReviewID:        reviewID,
		HelpfulCount:    r.HelpfulCount,
		NotHelpfulCount: r.NotHelpfulCount,
		YourVote:        yourVote,
	}, nil
}

// recomputeAggregate rederives the company rating from the approved set.
// The repository performs read and write in one transaction.
func (s *Service) recomputeAggregate(ctx context.Context, companyID uuid.UUID) error {
	agg, err := s.reviews.RecomputeCompanyAggregate(ctx, companyID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrNotFound
		}
		s.logger.Error("Failed to recompute rating", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to recompute rating")
	}
	s.logger.Debug("Company aggregate recomputed",
		zap.String("company_id", companyID.String()),
		zap.Int("reviews", agg.Count))
	return nil
}

func (s *Service) requireReplyPermission(ctx context.Context, actor Actor, companyID uuid.UUID) error {
	if actor.IsAdmin() {
		return nil
	}
	member, err := s.owners.FindByCompanyAndUser(ctx, companyID, actor.UserID)
	if err != nil {
		return shared.NewDomainError("FORBIDDEN", "You are not a member of this company")
	}
	if !member.HasPermission(directory.PermReplyReviews) {
		return shared.NewDomainError("FORBIDDEN", "You do not have permission for this action")
	}
	return nil
}

func (s *Service) notify(ctx context.Context, companyID, userID *uuid.UUID, kind notification.Kind, title, body, link string) {
	n, err := notification.New(companyID, userID, kind, title, body)
	if err != nil {
		return
	}
	n.Link = link
	if err := s.notifications.Save(ctx, n); err != nil {
		s.logger.Error("Failed to save review notification", zap.Error(err))
	}
}

func page(reviews []review.Review, total int64, filter shared.Filter) *shared.Paginated[View] {
	views := make([]View, 0, len(reviews))
	for i := range reviews {
		views = append(views, NewView(&reviews[i]))
	}
	result := shared.NewPaginated(views, total, filter.Page, filter.PageSize)
	return &result
}
