package notification

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/morabaat/backend/internal/domain/shared"
)

// Kind is the notification type
type Kind string

const (
	KindReview  Kind = "REVIEW"
	KindMessage Kind = "MESSAGE"
	KindSystem  Kind = "SYSTEM"
	KindAward   Kind = "AWARD"
)

// IsValid checks if the kind is known
func (k Kind) IsValid() bool {
	switch k {
	case KindReview, KindMessage, KindSystem, KindAward:
		return true
	}
	return false
}

// Notification is addressed to a company, a user, or both. At least one
// addressee is required.
type Notification struct {
	shared.BaseEntity
	CompanyID *uuid.UUID
	UserID    *uuid.UUID
	Kind      Kind
	Title     string
	Body      string
	Link      string
	IsRead    bool
}

// New creates an unread notification
func New(companyID, userID *uuid.UUID, kind Kind, title, body string) (*Notification, error) {
	if companyID == nil && userID == nil {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Notification requires a company or user recipient")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Unknown notification kind: "+string(kind))
	}
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Notification title cannot be empty")
	}
	return &Notification{
		BaseEntity: shared.NewBaseEntity(),
		CompanyID:  companyID,
		UserID:     userID,
		Kind:       kind,
		Title:      strings.TrimSpace(title),
		Body:       strings.TrimSpace(body),
	}, nil
}

// MarkRead flips the read flag
func (n *Notification) MarkRead() {
	if n.IsRead {
		return
	}
	n.IsRead = true
	n.Touch()
}

// Repository provides access to notification storage
type Repository interface {
	shared.Repository[Notification]
	FindForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, filter shared.Filter) ([]Notification, int64, error)
	FindForCompany(ctx context.Context, companyID uuid.UUID, unreadOnly bool, filter shared.Filter) ([]Notification, int64, error)
	CountUnreadForUser(ctx context.Context, userID uuid.UUID) (int64, error)
	CountUnreadForCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
	MarkAllReadForUser(ctx context.Context, userID uuid.UUID) error
	MarkAllReadForCompany(ctx context.Context, companyID uuid.UUID) error
}
