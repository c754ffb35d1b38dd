package review

import (
	"time"

	"github.com/google/uuid"

	"github.com/morabaat/backend/internal/domain/identity"
	"github.com/morabaat/backend/internal/domain/review"
)

// Actor is the authenticated caller as seen by the review services
type Actor struct {
	UserID uuid.UUID
	Role   identity.Role
}

// IsAdmin reports whether the actor moderates reviews
func (a Actor) IsAdmin() bool {
	return a.Role.IsAdmin()
}

// SubmitInput creates a review
type SubmitInput struct {
	Rating  int      `json:"rating" binding:"required,gte=1,lte=5"`
	Title   string   `json:"title" binding:"omitempty,max=200"`
	Comment string   `json:"comment" binding:"required,min=3,max=3000"`
	Images  []string `json:"images" binding:"omitempty,max=5"`
}

// ReplyInput attaches an owner reply
type ReplyInput struct {
	Text string `json:"text" binding:"required,min=1,max=2000"`
}

// ReportInput flags a review for moderation
type ReportInput struct {
	Reason  string `json:"reason" binding:"required,min=3,max=200"`
	Details string `json:"details" binding:"omitempty,max=2000"`
}

// VoteInput casts a helpful / not-helpful vote
type VoteInput struct {
	Kind string `json:"kind" binding:"required,oneof=HELPFUL NOT_HELPFUL"`
}

// View is the API shape of a review
type View struct {
	ID              uuid.UUID  `json:"id"`
	CompanyID       uuid.UUID  `json:"company_id"`
	UserID          uuid.UUID  `json:"user_id"`
	Rating          int        `json:"rating"`
	Title           string     `json:"title,omitempty"`
	Comment         string     `json:"comment"`
	IsApproved      bool       `json:"is_approved"`
	HelpfulCount    int        `json:"helpful_count"`
	NotHelpfulCount int        `json:"not_helpful_count"`
	Images          []string   `json:"images,omitempty"`
	ReplyText       string     `json:"reply_text,omitempty"`
	RepliedAt       *time.Time `json:"replied_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// NewView maps a domain review to its API shape
func NewView(r *review.Review) View {
	return View{
		ID:              r.ID,
		CompanyID:       r.CompanyID,
		UserID:          r.UserID,
		Rating:          r.Rating,
		Title:           r.Title,
		Comment:         r.Comment,
		IsApproved:      r.IsApproved,
		HelpfulCount:    r.HelpfulCount,
		NotHelpfulCount: r.NotHelpfulCount,
		Images:          r.Images,
		ReplyText:       r.ReplyText,
		RepliedAt:       r.RepliedAt,
		CreatedAt:       r.CreatedAt,
	}
}

// ReportView is the API shape of a review report
type ReportView struct {
	ID         uuid.UUID  `json:"id"`
	ReviewID   uuid.UUID  `json:"review_id"`
	ReportedBy uuid.UUID  `json:"reported_by"`
	Reason     string     `json:"reason"`
	Details    string     `json:"details,omitempty"`
	Status     string     `json:"status"`
	DecidedAt  *time.Time `json:"decided_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewReportView maps a report to its API shape
func NewReportView(r *review.ReviewReport) ReportView {
	return ReportView{
		ID:         r.ID,
		ReviewID:   r.ReviewID,
		ReportedBy: r.ReportedBy,
		Reason:     r.Reason,
		Details:    r.Details,
		Status:     string(r.Status),
		DecidedAt:  r.DecidedAt,
		CreatedAt:  r.CreatedAt,
	}
}

// VoteResult is returned after casting or retracting a vote
type VoteResult struct {
	ReviewID        uuid.UUID `json:"review_id"`
	HelpfulCount    int       `json:"helpful_count"`
	NotHelpfulCount int       `json:"not_helpful_count"`
	YourVote        string    `json:"your_vote,omitempty"`
}
