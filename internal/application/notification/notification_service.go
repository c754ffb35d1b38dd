package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/morabaat/backend/internal/domain/directory"
	"github.com/morabaat/backend/internal/domain/identity"
	"github.com/morabaat/backend/internal/domain/notification"
	"github.com/morabaat/backend/internal/domain/shared"
)

// Actor is the authenticated caller as seen by the notification service
type Actor struct {
	UserID uuid.UUID
	Role   identity.Role
}

// IsAdmin reports whether the actor bypasses membership checks
func (a Actor) IsAdmin() bool {
	return a.Role.IsAdmin()
}

// View is the API shape of a notification
type View struct {
	ID        uuid.UUID  `json:"id"`
	CompanyID *uuid.UUID `json:"company_id,omitempty"`
	Kind      string     `json:"kind"`
	Title     string     `json:"title"`
	Body      string     `json:"body,omitempty"`
	Link      string     `json:"link,omitempty"`
	IsRead    bool       `json:"is_read"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewView maps a notification to its API shape
func NewView(n *notification.Notification) View {
	return View{
		ID:        n.ID,
		CompanyID: n.CompanyID,
		Kind:      string(n.Kind),
		Title:     n.Title,
		Body:      n.Body,
		Link:      n.Link,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

// Service serves the personal and per-company notification feeds
type Service struct {
	notifications notification.Repository
	owners        directory.CompanyOwnerRepository
	users         identity.UserRepository
	logger        *zap.Logger
}

// NewService creates the notification service
func NewService(
	notifications notification.Repository,
	owners directory.CompanyOwnerRepository,
	users identity.UserRepository,
	logger *zap.Logger,
) *Service {
	return &Service{notifications: notifications, owners: owners, users: users, logger: logger}
}

// BroadcastInput carries an admin announcement
type BroadcastInput struct {
	Title string `json:"title" binding:"required,min=2,max=200"`
	Body  string `json:"body" binding:"omitempty,max=2000"`
	Link  string `json:"link" binding:"omitempty,max=500"`
}

// Broadcast fans a system announcement out to every user. Returns the
// number of notifications created; per-user failures are logged and do not
// stop the fan-out.
func (s *Service) Broadcast(ctx context.Context, actor Actor, input BroadcastInput) (int, error) {
	if !actor.IsAdmin() {
		return 0, shared.ErrForbidden
	}
	filter := shared.Filter{Page: 1, PageSize: shared.MaxPageSize, OrderBy: "created_at", OrderDir: "asc"}
	sent := 0
	for {
		users, err := s.users.FindAll(ctx, filter)
		if err != nil {
			s.logger.Error("Failed to page users for broadcast", zap.Error(err))
			return sent, shared.NewDomainError("INTERNAL_ERROR", "Failed to broadcast notification")
		}
		for i := range users {
			userID := users[i].ID
			n, err := notification.New(nil, &userID, notification.KindSystem, input.Title, input.Body)
			if err != nil {
				return sent, err
			}
			n.Link = input.Link
			if err := s.notifications.Save(ctx, n); err != nil {
				s.logger.Warn("Failed to deliver broadcast notification",
					zap.String("user_id", userID.String()), zap.Error(err))
				continue
			}
			sent++
		}
		if len(users) < filter.PageSize {
			break
		}
		filter.Page++
	}
	s.logger.Info("Broadcast sent", zap.Int("recipients", sent))
	return sent, nil
}

// ListMine returns the actor's personal feed
func (s *Service) ListMine(ctx context.Context, actor Actor, unreadOnly bool, filter shared.Filter) (*shared.Paginated[View], error) {
	filter.Normalize()
	items, total, err := s.notifications.FindForUser(ctx, actor.UserID, unreadOnly, filter)
	if err != nil {
		s.logger.Error("Failed to list notifications", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list notifications")
	}
	return page(items, total, filter), nil
}

// ListForCompany returns a company's feed for its dashboard members
func (s *Service) ListForCompany(ctx context.Context, actor Actor, companyID uuid.UUID, unreadOnly bool, filter shared.Filter) (*shared.Paginated[View], error) {
	if err := s.requireRead(ctx, actor, companyID); err != nil {
		return nil, err
	}
	filter.Normalize()
	items, total, err := s.notifications.FindForCompany(ctx, companyID, unreadOnly, filter)
	if err != nil {
		s.logger.Error("Failed to list company notifications", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list notifications")
	}
	return page(items, total, filter), nil
}

// UnreadCount returns the badge counter for the actor
func (s *Service) UnreadCount(ctx context.Context, actor Actor) (int64, error) {
	count, err := s.notifications.CountUnreadForUser(ctx, actor.UserID)
	if err != nil {
		s.logger.Error("Failed to count unread notifications", zap.Error(err))
		return 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to count notifications")
	}
	return count, nil
}

// MarkRead marks one of the actor's notifications read
func (s *Service) MarkRead(ctx context.Context, actor Actor, id uuid.UUID) error {
	n, err := s.notifications.FindByID(ctx, id)
	if err != nil {
		return shared.ErrNotFound
	}
	if err := s.canTouch(ctx, actor, n); err != nil {
		return err
	}
	if n.IsRead {
		return nil
	}
	n.MarkRead()
	if err := s.notifications.Save(ctx, n); err != nil {
		s.logger.Error("Failed to mark notification read", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update notification")
	}
	return nil
}

// MarkAllRead clears the actor's personal feed
func (s *Service) MarkAllRead(ctx context.Context, actor Actor) error {
	if err := s.notifications.MarkAllReadForUser(ctx, actor.UserID); err != nil {
		s.logger.Error("Failed to mark notifications read", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update notifications")
	}
	return nil
}

// MarkAllReadForCompany clears a company's feed
func (s *Service) MarkAllReadForCompany(ctx context.Context, actor Actor, companyID uuid.UUID) error {
	if err := s.requireRead(ctx, actor, companyID); err != nil {
		return err
	}
	if err := s.notifications.MarkAllReadForCompany(ctx, companyID); err != nil {
		s.logger.Error("Failed to mark company notifications read", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update notifications")
	}
	return nil
}

// canTouch checks that the notification is addressed to the actor, directly
// or through a company membership.
func (s *Service) canTouch(ctx context.Context, actor Actor, n *notification.Notification) error {
	if n.UserID != nil && *n.UserID == actor.UserID {
		return nil
	}
	if n.CompanyID != nil {
		return s.requireRead(ctx, actor, *n.CompanyID)
	}
	return shared.ErrForbidden
}

func (s *Service) requireRead(ctx context.Context, actor Actor, companyID uuid.UUID) error {
	if actor.IsAdmin() {
		return nil
	}
	member, err := s.owners.FindByCompanyAndUser(ctx, companyID, actor.UserID)
	if err != nil {
		return shared.NewDomainError("FORBIDDEN", "You are not a member of this company")
	}
	if !member.HasPermission(directory.PermReadNotification) {
		return shared.NewDomainError("FORBIDDEN", "You do not have permission for this action")
	}
	return nil
}

func page(items []notification.Notification, total int64, filter shared.Filter) *shared.Paginated[View] {
	views := make([]View, 0, len(items))
	for i := range items {
		views = append(views, NewView(&items[i]))
	}
	result := shared.NewPaginated(views, total, filter.Page, filter.PageSize)
	return &result
}
