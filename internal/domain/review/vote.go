package review

import (
	"github.com/google/uuid"
	"github.com/morabaat/backend/internal/domain/shared"
)

// VoteKind is a helpful / not-helpful vote value
type VoteKind string

const (
	VoteHelpful    VoteKind = "HELPFUL"
	VoteNotHelpful VoteKind = "NOT_HELPFUL"
)

// IsValid checks the vote value
func (v VoteKind) IsValid() bool {
	return v == VoteHelpful || v == VoteNotHelpful
}

// HelpfulVote records one user's vote on one review. A user has at most one
// vote per review; switching replaces it.
type HelpfulVote struct {
	shared.BaseEntity
	ReviewID uuid.UUID
	UserID   uuid.UUID
	Kind     VoteKind
}

// NewHelpfulVote creates a vote
func NewHelpfulVote(reviewID, userID uuid.UUID, kind VoteKind) (*HelpfulVote, error) {
	if reviewID == uuid.Nil || userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VOTE", "Vote requires a review and user")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_VOTE", "Unknown vote kind: "+string(kind))
	}
	return &HelpfulVote{
		BaseEntity: shared.NewBaseEntity(),
		ReviewID:   reviewID,
		UserID:     userID,
		Kind:       kind,
	}, nil
}
