package review

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/morabaat/backend/internal/domain/directory"
	"github.com/morabaat/backend/internal/domain/identity"
	"github.com/morabaat/backend/internal/domain/notification"
	"github.com/morabaat/backend/internal/domain/review"
	"github.com/morabaat/backend/internal/domain/shared"
)

type MockReviewRepository struct{ mock.Mock }

func (m *MockReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Review), args.Error(1)
}

func (m *MockReviewRepository) FindAll(ctx context.Context, filter shared.Filter) ([]review.Review, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]review.Review), args.Error(1)
}

func (m *MockReviewRepository) Save(ctx context.Context, r *review.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReviewRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) FindByCompany(ctx context.Context, companyID uuid.UUID, approvedOnly bool, filter shared.Filter) ([]review.Review, int64, error) {
	args := m.Called(ctx, companyID, approvedOnly, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]review.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]review.Review, int64, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]review.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) ExistsByCompanyAndUser(ctx context.Context, companyID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, companyID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) FindPending(ctx context.Context, filter shared.Filter) ([]review.Review, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]review.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) RecomputeCompanyAggregate(ctx context.Context, companyID uuid.UUID) (review.Aggregate, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(review.Aggregate), args.Error(1)
}

type MockReportRepository struct{ mock.Mock }

func (m *MockReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*review.ReviewReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.ReviewReport), args.Error(1)
}

func (m *MockReportRepository) FindAll(ctx context.Context, filter shared.Filter) ([]review.ReviewReport, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]review.ReviewReport), args.Error(1)
}

func (m *MockReportRepository) Save(ctx context.Context, r *review.ReviewReport) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReportRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportRepository) FindByStatus(ctx context.Context, status review.ReportStatus, filter shared.Filter) ([]review.ReviewReport, int64, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]review.ReviewReport), args.Get(1).(int64), args.Error(2)
}

func (m *MockReportRepository) ExistsByReviewAndUser(ctx context.Context, reviewID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, reviewID, userID)
	return args.Bool(0), args.Error(1)
}

type MockVoteRepository struct{ mock.Mock }

func (m *MockVoteRepository) FindByReviewAndUser(ctx context.Context, reviewID, userID uuid.UUID) (*review.HelpfulVote, error) {
	args := m.Called(ctx, reviewID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.HelpfulVote), args.Error(1)
}

func (m *MockVoteRepository) Save(ctx context.Context, vote *review.HelpfulVote) error {
	return m.Called(ctx, vote).Error(0)
}

func (m *MockVoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockVoteRepository) CountByReview(ctx context.Context, reviewID uuid.UUID) (int64, int64, error) {
	args := m.Called(ctx, reviewID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

type MockCompanyRepository struct{ mock.Mock }

func (m *MockCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*directory.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]directory.Company, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]directory.Company), args.Error(1)
}

func (m *MockCompanyRepository) Save(ctx context.Context, company *directory.Company) error {
	return m.Called(ctx, company).Error(0)
}

func (m *MockCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCompanyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCompanyRepository) FindBySlug(ctx context.Context, slug string) (*directory.Company, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Company), args.Error(1)
}

func (m *MockCompanyRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockCompanyRepository) Search(ctx context.Context, filter directory.SearchFilter) ([]directory.Company, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]directory.Company), args.Get(1).(int64), args.Error(2)
}

func (m *MockCompanyRepository) CountActiveByTaxonomy(ctx context.Context, kind string, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, kind, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockOwnerRepository struct{ mock.Mock }

func (m *MockOwnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*directory.CompanyOwner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.CompanyOwner), args.Error(1)
}

func (m *MockOwnerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]directory.CompanyOwner, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]directory.CompanyOwner), args.Error(1)
}

func (m *MockOwnerRepository) Save(ctx context.Context, owner *directory.CompanyOwner) error {
	return m.Called(ctx, owner).Error(0)
}

func (m *MockOwnerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOwnerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOwnerRepository) FindByCompanyAndUser(ctx context.Context, companyID, userID uuid.UUID) (*directory.CompanyOwner, error) {
	args := m.Called(ctx, companyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.CompanyOwner), args.Error(1)
}

func (m *MockOwnerRepository) FindByCompany(ctx context.Context, companyID uuid.UUID) ([]directory.CompanyOwner, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]directory.CompanyOwner), args.Error(1)
}

func (m *MockOwnerRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]directory.CompanyOwner, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]directory.CompanyOwner), args.Error(1)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]notification.Notification, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNotificationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) FindForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, filter shared.Filter) ([]notification.Notification, int64, error) {
	args := m.Called(ctx, userID, unreadOnly, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]notification.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepository) FindForCompany(ctx context.Context, companyID uuid.UUID, unreadOnly bool, filter shared.Filter) ([]notification.Notification, int64, error) {
	args := m.Called(ctx, companyID, unreadOnly, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]notification.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepository) CountUnreadForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) CountUnreadForCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllReadForUser(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockNotificationRepository) MarkAllReadForCompany(ctx context.Context, companyID uuid.UUID) error {
	return m.Called(ctx, companyID).Error(0)
}

type serviceMocks struct {
	reviews       *MockReviewRepository
	reports       *MockReportRepository
	votes         *MockVoteRepository
	companies     *MockCompanyRepository
	owners        *MockOwnerRepository
	notifications *MockNotificationRepository
}

func newTestService() (*Service, *serviceMocks) {
	m := &serviceMocks{
		reviews:       new(MockReviewRepository),
		reports:       new(MockReportRepository),
		votes:         new(MockVoteRepository),
		companies:     new(MockCompanyRepository),
		owners:        new(MockOwnerRepository),
		notifications: new(MockNotificationRepository),
	}
	svc := NewService(m.reviews, m.reports, m.votes, m.companies, m.owners, m.notifications, zap.NewNop())
	return svc, m
}

func activeCompany() *directory.Company {
	c, _ := directory.NewCompany(directory.NewCompanyInput{
		Name:       "مقهى النخيل",
		CategoryID: uuid.New(),
		CountryID:  uuid.New(),
		CityID:     uuid.New(),
	})
	return c
}

func approvedReview(companyID uuid.UUID) *review.Review {
	r, _ := review.NewReview(companyID, uuid.New(), 4, "جيد", "خدمة ممتازة وسرعة في التحضير")
	r.Approve()
	return r
}

func TestService_Submit(t *testing.T) {
	svc, m := newTestService()
	company := activeCompany()
	actor := Actor{UserID: uuid.New(), Role: identity.RoleUser}

	m.companies.On("FindByID", mock.Anything, company.ID).Return(company, nil)
	m.owners.On("FindByCompanyAndUser", mock.Anything, company.ID, actor.UserID).Return(nil, shared.ErrNotFound)
	m.reviews.On("ExistsByCompanyAndUser", mock.Anything, company.ID, actor.UserID).Return(false, nil)
	m.reviews.On("Save", mock.Anything, mock.AnythingOfType("*review.Review")).Return(nil)
	m.notifications.On("Save", mock.Anything, mock.AnythingOfType("*notification.Notification")).Run(func(args mock.Arguments) {
		n := args.Get(1).(*notification.Notification)
		require.NotNil(t, n.CompanyID)
		assert.Equal(t, company.ID, *n.CompanyID)
		assert.Equal(t, notification.KindReview, n.Kind)
	}).Return(nil)

	view, err := svc.Submit(context.Background(), actor, company.ID, SubmitInput{
		Rating:  5,
		Comment: "تجربة رائعة أنصح بها",
	})

	require.NoError(t, err)
	assert.False(t, view.IsApproved)
	assert.Equal(t, 5, view.Rating)
	m.notifications.AssertExpectations(t)
}

func TestService_SubmitForSlug(t *testing.T) {
	svc, m := newTestService()
	company := activeCompany()
	actor := Actor{UserID: uuid.New(), Role: identity.RoleUser}

	m.companies.On("FindBySlug", mock.Anything, company.Slug).Return(company, nil)
	m.companies.On("FindByID", mock.Anything, company.ID).Return(company, nil)
	m.owners.On("FindByCompanyAndUser", mock.Anything, company.ID, actor.UserID).Return(nil, shared.ErrNotFound)
	m.reviews.On("ExistsByCompanyAndUser", mock.Anything, company.ID, actor.UserID).Return(false, nil)
	m.reviews.On("Save", mock.Anything, mock.AnythingOfType("*review.Review")).Return(nil)
	m.notifications.On("Save", mock.Anything, mock.Anything).Return(nil)

	view, err := svc.SubmitForSlug(context.Background(), actor, company.Slug, SubmitInput{
		Rating:  4,
		Comment: "خدمة ممتازة وسرعة في التنفيذ",
	})

	require.NoError(t, err)
	assert.Equal(t, 4, view.Rating)
}

func TestService_Submit_Duplicate(t *testing.T) {
	svc, m := newTestService()
	company := activeCompany()
	actor := Actor{UserID: uuid.New(), Role: identity.RoleUser}

	m.companies.On("FindByID", mock.Anything, company.ID).Return(company, nil)
	m.owners.On("FindByCompanyAndUser", mock.Anything, company.ID, actor.UserID).Return(nil, shared.ErrNotFound)
	m.reviews.On("ExistsByCompanyAndUser", mock.Anything, company.ID, actor.UserID).Return(true, nil)

	_, err := svc.Submit(context.Background(), actor, company.ID, SubmitInput{Rating: 3, Comment: "مكرر للأسف"})

	assert.ErrorIs(t, err, shared.ErrAlreadyReviewed)
	m.reviews.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_Submit_OwnCompanyBlocked(t *testing.T) {
	svc, m := newTestService()
	company := activeCompany()
	actor := Actor{UserID: uuid.New(), Role: identity.RoleCompanyOwner}
	member, _ := directory.NewCompanyOwner(company.ID, actor.UserID, directory.OwnerRoleOwner)

	m.companies.On("FindByID", mock.Anything, company.ID).Return(company, nil)
	m.owners.On("FindByCompanyAndUser", mock.Anything, company.ID, actor.UserID).Return(member, nil)

	_, err := svc.Submit(context.Background(), actor, company.ID, SubmitInput{Rating: 5, Comment: "أفضل مكان"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "OWN_COMPANY", domainErr.Code)
}

func TestService_Approve_RecomputesAggregate(t *testing.T) {
	svc, m := newTestService()
	company := activeCompany()
	r, _ := review.NewReview(company.ID, uuid.New(), 5, "", "تستحق الزيارة بلا تردد")
	admin := Actor{UserID: uuid.New(), Role: identity.RoleAdmin}

	m.reviews.On("FindByID", mock.Anything, r.ID).Return(r, nil)
	m.reviews.On("Save", mock.Anything, r).Return(nil)
	m.reviews.On("RecomputeCompanyAggregate", mock.Anything, company.ID).
		Return(review.Aggregate{Rating: decimal.RequireFromString("4.5"), Count: 2}, nil)
	m.notifications.On("Save", mock.Anything, mock.Anything).Return(nil)

	view, err := svc.Approve(context.Background(), admin, r.ID)

	require.NoError(t, err)
	assert.True(t, view.IsApproved)
	m.reviews.AssertCalled(t, "RecomputeCompanyAggregate", mock.Anything, company.ID)
}

func TestService_Reject_DeletesAndRecomputes(t *testing.T) {
	svc, m := newTestService()
	company := activeCompany()
	r := approvedReview(company.ID)
	admin := Actor{UserID: uuid.New(), Role: identity.RoleSuperAdmin}

	m.reviews.On("FindByID", mock.Anything, r.ID).Return(r, nil)
	m.reviews.On("Delete", mock.Anything, r.ID).Return(nil)
	m.reviews.On("RecomputeCompanyAggregate", mock.Anything, company.ID).
		Return(review.Aggregate{Rating: decimal.Zero, Count: 0}, nil)

	err := svc.Reject(context.Background(), admin, r.ID)

	require.NoError(t, err)
	m.reviews.AssertCalled(t, "RecomputeCompanyAggregate", mock.Anything, company.ID)
}

func TestService_ListForCompanySlug_AnonymousSeesApprovedOnly(t *testing.T) {
	svc, m := newTestService()
	company := activeCompany()
	r := approvedReview(company.ID)

	m.companies.On("FindBySlug", mock.Anything, company.Slug).Return(company, nil)
	m.reviews.On("FindByCompany", mock.Anything, company.ID, true, mock.AnythingOfType("shared.Filter")).
		Return([]review.Review{*r}, int64(1), nil)

	page, err := svc.ListForCompanySlug(context.Background(), nil, company.Slug, shared.Filter{})

	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Items, 1)
	assert.True(t, page.Items[0].IsApproved)
}

func TestService_ListForCompanySlug_UnknownSlug(t *testing.T) {
	svc, m := newTestService()

	m.companies.On("FindBySlug", mock.Anything, "no-such-company").Return(nil, shared.ErrNotFound)

	_, err := svc.ListForCompanySlug(context.Background(), nil, "no-such-company", shared.Filter{})

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestService_Moderation_RequiresAdmin(t *testing.T) {
	svc, _ := newTestService()
	actor := Actor{UserID: uuid.New(), Role: identity.RoleUser}

	_, err := svc.Approve(context.Background(), actor, uuid.New())
	assert.ErrorIs(t, err, shared.ErrForbidden)

	err = svc.Reject(context.Background(), actor, uuid.New())
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestService_Reply(t *testing.T) {
	svc, m := newTestService()
	company := activeCompany()
	r := approvedReview(company.ID)
	actor := Actor{UserID: uuid.New(), Role: identity.RoleCompanyOwner}
	member, _ := directory.NewCompanyOwner(company.ID, actor.UserID, directory.OwnerRoleManager)

	m.reviews.On("FindByID", mock.Anything, r.ID).Return(r, nil)
	m.owners.On("FindByCompanyAndUser", mock.Anything, company.ID, actor.UserID).Return(member, nil)
	m.reviews.On("Save", mock.Anything, r).Return(nil)
	m.notifications.On("Save", mock.Anything, mock.Anything).Return(nil)

	view, err := svc.Reply(context.Background(), actor, r.ID, ReplyInput{Text: "شكراً لزيارتكم"})

	require.NoError(t, err)
	assert.Equal(t, "شكراً لزيارتكم", view.ReplyText)
	assert.NotNil(t, view.RepliedAt)
}

func TestService_Reply_EditorForbidden(t *testing.T) {
	svc, m := newTestService()
	company := activeCompany()
	r := approvedReview(company.ID)
	actor := Actor{UserID: uuid.New(), Role: identity.RoleCompanyOwner}
	member, _ := directory.NewCompanyOwner(company.ID, actor.UserID, directory.OwnerRoleEditor)

	m.reviews.On("FindByID", mock.Anything, r.ID).Return(r, nil)
	m.owners.On("FindByCompanyAndUser", mock.Anything, company.ID, actor.UserID).Return(member, nil)

	_, err := svc.Reply(context.Background(), actor, r.ID, ReplyInput{Text: "رد"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestService_Reply_UnapprovedRejected(t *testing.T) {
	svc, m := newTestService()
	company := activeCompany()
	r, _ := review.NewReview(company.ID, uuid.New(), 2, "", "لم تعجبني الخدمة")
	admin := Actor{UserID: uuid.New(), Role: identity.RoleAdmin}

	m.reviews.On("FindByID", mock.Anything, r.ID).Return(r, nil)

	_, err := svc.Reply(context.Background(), admin, r.ID, ReplyInput{Text: "نعتذر"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestService_Vote_CastSwitchRetract(t *testing.T) {
	svc, m := newTestService()
	company := activeCompany()
	r := approvedReview(company.ID)
	actor := Actor{UserID: uuid.New(), Role: identity.RoleUser}

	m.reviews.On("FindByID", mock.Anything, r.ID).Return(r, nil)
	m.reviews.On("Save", mock.Anything, r).Return(nil)

	// First vote: cast
	m.votes.On("FindByReviewAndUser", mock.Anything, r.ID, actor.UserID).Return(nil, shared.ErrNotFound).Once()
	m.votes.On("Save", mock.Anything, mock.AnythingOfType("*review.HelpfulVote")).Return(nil).Once()
	m.votes.On("CountByReview", mock.Anything, r.ID).Return(int64(1), int64(0), nil).Once()

	result, err := svc.Vote(context.Background(), actor, r.ID, VoteInput{Kind: "HELPFUL"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.HelpfulCount)
	assert.Equal(t, "HELPFUL", result.YourVote)

	// Opposite vote: switch
	vote, _ := review.NewHelpfulVote(r.ID, actor.UserID, review.VoteHelpful)
	m.votes.On("FindByReviewAndUser", mock.Anything, r.ID, actor.UserID).Return(vote, nil).Once()
	m.votes.On("Save", mock.Anything, vote).Return(nil).Once()
	m.votes.On("CountByReview", mock.Anything, r.ID).Return(int64(0), int64(1), nil).Once()

	result, err = svc.Vote(context.Background(), actor, r.ID, VoteInput{Kind: "NOT_HELPFUL"})
	require.NoError(t, err)
	assert.Equal(t, review.VoteNotHelpful, vote.Kind)
	assert.Equal(t, "NOT_HELPFUL", result.YourVote)

	// Same vote again: retract
	m.votes.On("FindByReviewAndUser", mock.Anything, r.ID, actor.UserID).Return(vote, nil).Once()
	m.votes.On("Delete", mock.Anything, vote.ID).Return(nil).Once()
	m.votes.On("CountByReview", mock.Anything, r.ID).Return(int64(0), int64(0), nil).Once()

	result, err = svc.Vote(context.Background(), actor, r.ID, VoteInput{Kind: "NOT_HELPFUL"})
	require.NoError(t, err)
	assert.Empty(t, result.YourVote)
	assert.Equal(t, 0, result.NotHelpfulCount)
}

func TestService_Vote_OwnReviewBlocked(t *testing.T) {
	svc, m := newTestService()
	company := activeCompany()
	r := approvedReview(company.ID)

	m.reviews.On("FindByID", mock.Anything, r.ID).Return(r, nil)

	_, err := svc.Vote(context.Background(), Actor{UserID: r.UserID, Role: identity.RoleUser}, r.ID, VoteInput{Kind: "HELPFUL"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "OWN_REVIEW", domainErr.Code)
}

func TestService_DecideReport_UpholdDeletesReview(t *testing.T) {
	svc, m := newTestService()
	company := activeCompany()
	r := approvedReview(company.ID)
	report, _ := review.NewReviewReport(r.ID, uuid.New(), "محتوى مسيء", "")
	admin := Actor{UserID: uuid.New(), Role: identity.RoleAdmin}

	m.reports.On("FindByID", mock.Anything, report.ID).Return(report, nil)
	m.reports.On("Save", mock.Anything, report).Return(nil)
	m.reviews.On("FindByID", mock.Anything, r.ID).Return(r, nil)
	m.reviews.On("Delete", mock.Anything, r.ID).Return(nil)
	m.reviews.On("RecomputeCompanyAggregate", mock.Anything, company.ID).
		Return(review.Aggregate{Rating: decimal.Zero, Count: 0}, nil)

	view, err := svc.DecideReport(context.Background(), admin, report.ID, true)

	require.NoError(t, err)
	assert.Equal(t, "APPROVED", view.Status)
	m.reviews.AssertCalled(t, "Delete", mock.Anything, r.ID)
}

func TestService_DecideReport_DismissKeepsReview(t *testing.T) {
	svc, m := newTestService()
	report, _ := review.NewReviewReport(uuid.New(), uuid.New(), "غير دقيق", "")
	admin := Actor{UserID: uuid.New(), Role: identity.RoleAdmin}

	m.reports.On("FindByID", mock.Anything, report.ID).Return(report, nil)
	m.reports.On("Save", mock.Anything, report).Return(nil)

	view, err := svc.DecideReport(context.Background(), admin, report.ID, false)

	require.NoError(t, err)
	assert.Equal(t, "REJECTED", view.Status)
	m.reviews.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
