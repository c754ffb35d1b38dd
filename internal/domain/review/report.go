package review

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/morabaat/backend/internal/domain/shared"
)

// ReportStatus is the moderation state of a review report
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "PENDING"
	ReportStatusApproved ReportStatus = "APPROVED"
	ReportStatusRejected ReportStatus = "REJECTED"
)

// ReviewReport flags a review for moderation. Approving a report deletes the
// reported review; it is a second path into the same terminal "review
// deleted" state and must share the aggregate recompute with the direct
// reject path.
type ReviewReport struct {
	shared.BaseEntity
	ReviewID   uuid.UUID
	ReportedBy uuid.UUID
	Reason     string
	Details    string
	Status     ReportStatus
	DecidedBy  *uuid.UUID
	DecidedAt  *time.Time
}

// NewReviewReport creates a pending report
func NewReviewReport(reviewID, reportedBy uuid.UUID, reason, details string) (*ReviewReport, error) {
	if reviewID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REVIEW", "Report requires a review")
	}
	if reportedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Report requires a reporter")
	}
	if strings.TrimSpace(reason) == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "Report reason cannot be empty")
	}
	return &ReviewReport{
		BaseEntity: shared.NewBaseEntity(),
		ReviewID:   reviewID,
		ReportedBy: reportedBy,
		Reason:     strings.TrimSpace(reason),
		Details:    strings.TrimSpace(details),
		Status:     ReportStatusPending,
	}, nil
}

// Approve upholds the report. Only pending reports can be decided.
func (r *ReviewReport) Approve(adminID uuid.UUID) error {
	return r.decide(ReportStatusApproved, adminID)
}

// Reject dismisses the report
func (r *ReviewReport) Reject(adminID uuid.UUID) error {
	return r.decide(ReportStatusRejected, adminID)
}

func (r *ReviewReport) decide(status ReportStatus, adminID uuid.UUID) error {
	if r.Status != ReportStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Report already decided: "+string(r.Status))
	}
	now := time.Now()
	r.Status = status
	r.DecidedBy = &adminID
	r.DecidedAt = &now
	r.Touch()
	return nil
}
