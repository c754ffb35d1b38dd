package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/morabaat/backend/internal/domain/review"
)

// ReviewModel is the persistence model for the Review domain entity
type ReviewModel struct {
	BaseModel
	CompanyID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_company_user;index"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_company_user;index"`
	Rating          int        `gorm:"not null"`
	Title           string     `gorm:"type:varchar(255)"`
	Comment         string     `gorm:"type:text;not null"`
	IsApproved      bool       `gorm:"not null;default:false;index"`
	HelpfulCount    int        `gorm:"not null;default:0"`
	NotHelpfulCount int        `gorm:"not null;default:0"`
	Images          string     `gorm:"type:text;default:'[]'"`
	ReplyText       string     `gorm:"type:text"`
	RepliedAt       *time.Time `gorm:"type:timestamptz"`
}

func (ReviewModel) TableName() string { return "reviews" }

// ToDomain converts the persistence model to a domain Review
func (m *ReviewModel) ToDomain() *review.Review {
	return &review.Review{
		BaseEntity:      m.BaseModel.ToDomain(),
		CompanyID:       m.CompanyID,
		UserID:          m.UserID,
		Rating:          m.Rating,
		Title:           m.Title,
		Comment:         m.Comment,
		IsApproved:      m.IsApproved,
		HelpfulCount:    m.HelpfulCount,
		NotHelpfulCount: m.NotHelpfulCount,
		Images:          unmarshalStrings(m.Images),
		ReplyText:       m.ReplyText,
		RepliedAt:       m.RepliedAt,
	}
}

// FromDomain populates the persistence model from a domain Review
func (m *ReviewModel) FromDomain(r *review.Review) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.CompanyID = r.CompanyID
	m.UserID = r.UserID
	m.Rating = r.Rating
	m.Title = r.Title
	m.Comment = r.Comment
	m.IsApproved = r.IsApproved
	m.HelpfulCount = r.HelpfulCount
	m.NotHelpfulCount = r.NotHelpfulCount
	m.Images = marshalStrings(r.Images)
	m.ReplyText = r.ReplyText
	m.RepliedAt = r.RepliedAt
}

// ReviewReportModel is the persistence model for review reports
type ReviewReportModel struct {
	BaseModel
	ReviewID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_review_reports_review_user;index"`
	ReportedBy uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_review_reports_review_user"`
	Reason     string     `gorm:"type:varchar(255);not null"`
	Details    string     `gorm:"type:text"`
	Status     string     `gorm:"type:varchar(16);not null;default:'PENDING';index"`
	DecidedBy  *uuid.UUID `gorm:"type:uuid"`
	DecidedAt  *time.Time `gorm:"type:timestamptz"`
}

func (ReviewReportModel) TableName() string { return "review_reports" }

// ToDomain converts the persistence model to a domain ReviewReport
func (m *ReviewReportModel) ToDomain() *review.ReviewReport {
	return &review.ReviewReport{
		BaseEntity: m.BaseModel.ToDomain(),
		ReviewID:   m.ReviewID,
		ReportedBy: m.ReportedBy,
		Reason:     m.Reason,
		Details:    m.Details,
		Status:     review.ReportStatus(m.Status),
		DecidedBy:  m.DecidedBy,
		DecidedAt:  m.DecidedAt,
	}
}

// FromDomain populates the persistence model from a domain ReviewReport
func (m *ReviewReportModel) FromDomain(r *review.ReviewReport) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.ReviewID = r.ReviewID
	m.ReportedBy = r.ReportedBy
	m.Reason = r.Reason
	m.Details = r.Details
	m.Status = string(r.Status)
	m.DecidedBy = r.DecidedBy
	m.DecidedAt = r.DecidedAt
}

// HelpfulVoteModel is the persistence model for review helpful votes
type HelpfulVoteModel struct {
	BaseModel
	ReviewID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_helpful_votes_review_user;index"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_helpful_votes_review_user"`
	Kind     string    `gorm:"type:varchar(16);not null"`
}

func (HelpfulVoteModel) TableName() string { return "helpful_votes" }

// ToDomain converts the persistence model to a domain HelpfulVote
func (m *HelpfulVoteModel) ToDomain() *review.HelpfulVote {
	return &review.HelpfulVote{
		BaseEntity: m.BaseModel.ToDomain(),
		ReviewID:   m.ReviewID,
		UserID:     m.UserID,
		Kind:       review.VoteKind(m.Kind),
	}
}

// FromDomain populates the persistence model from a domain HelpfulVote
func (m *HelpfulVoteModel) FromDomain(v *review.HelpfulVote) {
	m.FromDomainBaseEntity(v.BaseEntity)
	m.ReviewID = v.ReviewID
	m.UserID = v.UserID
	m.Kind = string(v.Kind)
}
