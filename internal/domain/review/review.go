package review

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/morabaat/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Review is a customer review of a company. A review is created unapproved
// and either becomes approved or is deleted on rejection; there is no
// rejected tombstone.
type Review struct {
	shared.BaseEntity
	CompanyID       uuid.UUID
	UserID          uuid.UUID
	Rating          int
	Title           string
	Comment         string
	IsApproved      bool
	HelpfulCount    int
	NotHelpfulCount int
	Images          []string
	ReplyText       string
	RepliedAt       *time.Time
}

// NewReview creates an unapproved review
func NewReview(companyID, userID uuid.UUID, rating int, title, comment string) (*Review, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Review requires a company")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Review requires a user")
	}
	if rating < 1 || rating > 5 {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	if strings.TrimSpace(comment) == "" {
		return nil, shared.NewDomainError("INVALID_COMMENT", "Comment cannot be empty")
	}
	return &Review{
		BaseEntity: shared.NewBaseEntity(),
		CompanyID:  companyID,
		UserID:     userID,
		Rating:     rating,
		Title:      strings.TrimSpace(title),
		Comment:    strings.TrimSpace(comment),
	}, nil
}

// Approve marks the review approved. Approving an already-approved review is
// a no-op so the aggregate recompute stays idempotent.
func (r *Review) Approve() {
	if r.IsApproved {
		return
	}
	r.IsApproved = true
	r.Touch()
}

// Reply attaches or replaces the owner reply
func (r *Review) Reply(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return shared.NewDomainError("INVALID_REPLY", "Reply cannot be empty")
	}
	now := time.Now()
	r.ReplyText = text
	r.RepliedAt = &now
	r.Touch()
	return nil
}

// Aggregate is the review aggregate for one company: mean rating over
// approved reviews (one decimal place) and their exact count.
type Aggregate struct {
	Rating decimal.Decimal
	Count  int
}

// ComputeAggregate derives the aggregate from a set of approved ratings.
// An empty set yields a zero aggregate.
func ComputeAggregate(ratings []int) Aggregate {
	if len(ratings) == 0 {
		return Aggregate{Rating: decimal.Zero}
	}
	sum := decimal.Zero
	for _, r := range ratings {
		sum = sum.Add(decimal.NewFromInt(int64(r)))
	}
	avg := sum.Div(decimal.NewFromInt(int64(len(ratings)))).Round(1)
	return Aggregate{Rating: avg, Count: len(ratings)}
}
