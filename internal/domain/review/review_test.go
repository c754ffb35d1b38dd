package review

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReview(t *testing.T) {
	companyID := uuid.New()
	userID := uuid.New()

	tests := []struct {
		name      string
		companyID uuid.UUID
		userID    uuid.UUID
		rating    int
		comment   string
		wantErr   bool
	}{
		{"valid", companyID, userID, 5, "ممتاز جداً وخدمة رائعة", false},
		{"rating too low", companyID, userID, 0, "bad", true},
		{"rating too high", companyID, userID, 6, "great", true},
		{"empty comment", companyID, userID, 3, "   ", true},
		{"missing company", uuid.Nil, userID, 4, "good", true},
		{"missing user", companyID, uuid.Nil, 4, "good", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReview(tt.companyID, tt.userID, tt.rating, "", tt.comment)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.False(t, r.IsApproved, "new reviews must start unapproved")
			assert.Equal(t, tt.rating, r.Rating)
		})
	}
}

func TestReviewApproveIdempotent(t *testing.T) {
	r, err := NewReview(uuid.New(), uuid.New(), 4, "", "good service")
	require.NoError(t, err)

	r.Approve()
	assert.True(t, r.IsApproved)
	firstUpdate := r.UpdatedAt

	r.Approve()
	assert.True(t, r.IsApproved)
	assert.Equal(t, firstUpdate, r.UpdatedAt, "second approve must be a no-op")
}

func TestComputeAggregate(t *testing.T) {
	tests := []struct {
		name      string
		ratings   []int
		wantAvg   string
		wantCount int
	}{
		{"empty", nil, "0", 0},
		{"single five star", []int{5}, "5", 1},
		{"mixed", []int{5, 4, 4}, "4.3", 3},
		{"rounding up", []int{5, 4}, "4.5", 2},
		{"all ones", []int{1, 1, 1, 1}, "1", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := ComputeAggregate(tt.ratings)
			assert.Equal(t, tt.wantAvg, agg.Rating.String())
			assert.Equal(t, tt.wantCount, agg.Count)
		})
	}
}

func TestComputeAggregateIdempotent(t *testing.T) {
	ratings := []int{5, 3, 4, 2}
	first := ComputeAggregate(ratings)
	second := ComputeAggregate(ratings)
	assert.True(t, first.Rating.Equal(second.Rating))
	assert.Equal(t, first.Count, second.Count)
}

func TestReviewReply(t *testing.T) {
	r, err := NewReview(uuid.New(), uuid.New(), 5, "", "fine")
	require.NoError(t, err)

	assert.Error(t, r.Reply("  "))
	assert.Nil(t, r.RepliedAt)

	require.NoError(t, r.Reply("شكراً لتقييمك"))
	assert.Equal(t, "شكراً لتقييمك", r.ReplyText)
	assert.NotNil(t, r.RepliedAt)
}

func TestReviewReportDecide(t *testing.T) {
	rep, err := NewReviewReport(uuid.New(), uuid.New(), "spam", "")
	require.NoError(t, err)
	assert.Equal(t, ReportStatusPending, rep.Status)

	admin := uuid.New()
	require.NoError(t, rep.Approve(admin))
	assert.Equal(t, ReportStatusApproved, rep.Status)
	assert.NotNil(t, rep.DecidedAt)

	// Terminal states cannot be re-decided
	assert.Error(t, rep.Reject(admin))
	assert.Equal(t, ReportStatusApproved, rep.Status)
}
