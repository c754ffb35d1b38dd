package directory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/morabaat/backend/internal/domain/directory"
	"github.com/morabaat/backend/internal/domain/identity"
	"github.com/morabaat/backend/internal/domain/notification"
	"github.com/morabaat/backend/internal/domain/shared"
	"github.com/morabaat/backend/internal/infrastructure/mailer"
)

// RequestService handles the company registration queue. Approval creates
// the listing, its default schedule and an OWNER membership for the
// requester.
type RequestService struct {
	requests      directory.CompanyRequestRepository
	companies     directory.CompanyRepository
	owners        directory.CompanyOwnerRepository
	hours         directory.WorkingHoursRepository
	users         identity.UserRepository
	notifications notification.Repository
	mail          mailer.Mailer
	logger        *zap.Logger
}

// NewRequestService creates the request service
func NewRequestService(
	requests directory.CompanyRequestRepository,
	companies directory.CompanyRepository,
	owners directory.CompanyOwnerRepository,
	hours directory.WorkingHoursRepository,
	users identity.UserRepository,
	notifications notification.Repository,
	mail mailer.Mailer,
	logger *zap.Logger,
) *RequestService {
	if mail == nil {
		mail = mailer.NewLogMailer(logger)
	}
	return &RequestService{
		requests:      requests,
		companies:     companies,
		owners:        owners,
		hours:         hours,
		users:         users,
		notifications: notifications,
		mail:          mail,
		logger:        logger,
	}
}

// Submit files a new registration application
func (s *RequestService) Submit(ctx context.Context, actor Actor, input SubmitRequestInput) (*RequestView, error) {
	req, err := directory.NewCompanyRequest(actor.UserID, directory.NewCompanyInput{
		Name:       input.Name,
		CategoryID: input.CategoryID,
		CountryID:  input.CountryID,
		CityID:     input.CityID,
	})
	if err != nil {
		return nil, err
	}
	req.Description = input.Description
	req.SubCategoryID = input.SubCategoryID
	req.SubAreaID = input.SubAreaID
	req.Phone = input.Phone
	req.Email = input.Email
	req.Website = input.Website
	req.Address = input.Address

	if err := s.requests.Save(ctx, req); err != nil {
		s.logger.Error("Failed to save company request", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to submit request")
	}

	s.logger.Info("Company request submitted",
		zap.String("request_id", req.ID.String()),
		zap.String("user_id", actor.UserID.String()))
	view := NewRequestView(req)
	return &view, nil
}

// ListMine returns the actor's own applications
func (s *RequestService) ListMine(ctx context.Context, actor Actor, filter shared.Filter) (*shared.Paginated[RequestView], error) {
	filter.Normalize()
	requests, total, err := s.requests.FindByRequester(ctx, actor.UserID, filter)
	if err != nil {
		s.logger.Error("Failed to list own requests", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list requests")
	}
	return requestPage(requests, total, filter), nil
}

// ListPending returns the admin moderation queue
func (s *RequestService) ListPending(ctx context.Context, actor Actor, filter shared.Filter) (*shared.Paginated[RequestView], error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}
	filter.Normalize()
	requests, total, err := s.requests.FindByStatus(ctx, directory.RequestStatusPending, filter)
	if err != nil {
		s.logger.Error("Failed to list pending requests", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list requests")
	}
	return requestPage(requests, total, filter), nil
}

// Approve turns a pending application into a live listing
func (s *RequestService) Approve(ctx context.Context, actor Actor, requestID uuid.UUID, input DecideRequestInput) (*CompanyView, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if err := req.Approve(actor.UserID, input.Notes); err != nil {
		return nil, err
	}

	company, err := directory.NewCompany(directory.NewCompanyInput{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		CountryID:  req.CountryID,
		CityID:     req.CityID,
	})
	if err != nil {
		return nil, err
	}
	company.Description = req.Description
	company.SubCategoryID = req.SubCategoryID
	company.SubAreaID = req.SubAreaID
	company.Phone = req.Phone
	company.Email = req.Email
	company.Website = req.Website
	company.Address = req.Address

	uniqueSlug, err := s.ensureUniqueSlug(ctx, company.Slug)
	if err != nil {
		return nil, err
	}
	company.Slug = uniqueSlug

	if err := s.companies.Save(ctx, company); err != nil {
		s.logger.Error("Failed to create company from request", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to approve request")
	}

	if err := s.hours.ReplaceWeek(ctx, company.ID, directory.DefaultWeek(company.ID)); err != nil {
		s.logger.Error("Failed to seed default working hours", zap.Error(err))
	}

	member, err := directory.NewCompanyOwner(company.ID, req.RequestedBy, directory.OwnerRoleOwner)
	if err != nil {
		return nil, err
	}
	if err := s.owners.Save(ctx, member); err != nil {
		s.logger.Error("Failed to create owner membership", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to approve request")
	}

	s.promoteRequester(ctx, req.RequestedBy)

	if err := s.requests.Save(ctx, req); err != nil {
		s.logger.Error("Failed to persist request decision", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to approve request")
	}

	s.notifyRequester(ctx, req, company,
		"تمت الموافقة على شركتك",
		fmt.Sprintf("تمت الموافقة على \"%s\" وأصبحت ظاهرة في الدليل", company.Name))

	s.logger.Info("Company request approved",
		zap.String("request_id", req.ID.String()),
		zap.String("company_id", company.ID.String()),
		zap.String("admin_id", actor.UserID.String()))
	view := NewCompanyView(company)
	return &view, nil
}

// Reject declines a pending application
func (s *RequestService) Reject(ctx context.Context, actor Actor, requestID uuid.UUID, input DecideRequestInput) (*RequestView, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if err := req.Reject(actor.UserID, input.Notes); err != nil {
		return nil, err
	}
	if err := s.requests.Save(ctx, req); err != nil {
		s.logger.Error("Failed to persist request decision", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to reject request")
	}

	s.notifyRequester(ctx, req, nil,
		"تم رفض طلب التسجيل",
		fmt.Sprintf("تم رفض طلب تسجيل \"%s\". %s", req.Name, input.Notes))

	s.logger.Info("Company request rejected",
		zap.String("request_id", req.ID.String()),
		zap.String("admin_id", actor.UserID.String()))
	view := NewRequestView(req)
	return &view, nil
}

// promoteRequester upgrades a plain USER to COMPANY_OWNER after their first
// approval. Admin roles are left untouched.
func (s *RequestService) promoteRequester(ctx context.Context, userID uuid.UUID) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("Requester not found during promotion", zap.String("user_id", userID.String()))
		return
	}
	if user.Role != identity.RoleUser {
		return
	}
	if err := user.ChangeRole(identity.RoleCompanyOwner); err != nil {
		return
	}
	if err := s.users.Save(ctx, user); err != nil {
		s.logger.Error("Failed to promote requester", zap.Error(err))
	}
}

func (s *RequestService) notifyRequester(ctx context.Context, req *directory.CompanyRequest, company *directory.Company, title, body string) {
	n, err := notification.New(nil, &req.RequestedBy, notification.KindSystem, title, body)
	if err != nil {
		return
	}
	if company != nil {
		n.Link = "/companies/" + company.Slug
	}
	if err := s.notifications.Save(ctx, n); err != nil {
		s.logger.Error("Failed to save request notification", zap.Error(err))
	}
	s.mailRequester(ctx, req.RequestedBy, title, body)
}

// mailRequester emails the decision to the applicant. Delivery failures are
// logged, the decision itself already stands.
func (s *RequestService) mailRequester(ctx context.Context, userID uuid.UUID, subject, body string) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil || user.Email == "" {
		return
	}
	html := fmt.Sprintf("<html dir=\"rtl\"><body><h2>%s</h2><p>%s</p></body></html>", subject, body)
	if err := s.mail.Send(ctx, []string{user.Email}, subject, html); err != nil {
		s.logger.Warn("Failed to email request decision",
			zap.String("user_id", userID.String()), zap.Error(err))
	}
}

func (s *RequestService) ensureUniqueSlug(ctx context.Context, base string) (string, error) {
	base = slug.Make(base)
	candidate := base
	for i := 2; ; i++ {
		exists, err := s.companies.ExistsBySlug(ctx, candidate)
		if err != nil {
			return "", shared.NewDomainError("INTERNAL_ERROR", "Failed to check slug")
		}
		if !exists {
			return candidate, nil
		}
		if i > 50 {
			return "", shared.NewDomainError("SLUG_EXHAUSTED", "Could not derive a unique slug")
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func requestPage(requests []directory.CompanyRequest, total int64, filter shared.Filter) *shared.Paginated[RequestView] {
	views := make([]RequestView, 0, len(requests))
	for i := range requests {
		views = append(views, NewRequestView(&requests[i]))
	}
	page := shared.NewPaginated(views, total, filter.Page, filter.PageSize)
	return &page
}
