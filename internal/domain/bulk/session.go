package bulk

import (
	"time"

	"github.com/google/uuid"
	"github.com/morabaat/backend/internal/domain/shared"
)

// SessionStatus is the live state of an in-flight CSV import
type SessionStatus string

const (
	SessionRunning   SessionStatus = "running"
	SessionPaused    SessionStatus = "paused"
	SessionCompleted SessionStatus = "completed"
	SessionFailed    SessionStatus = "failed"
	SessionCancelled SessionStatus = "cancelled"
)

// IsTerminal returns true once the session can no longer change state
func (s SessionStatus) IsTerminal() bool {
	return s == SessionCompleted || s == SessionFailed || s == SessionCancelled
}

// RowError records a failed or skipped row
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Session tracks one CSV import job. Sessions live only in process memory:
// they are not visible across instances or restarts, which is an accepted
// limitation of the single-node deployment.
type Session struct {
	ID          string        `json:"id"`
	FileName    string        `json:"file_name"`
	Status      SessionStatus `json:"status"`
	TotalRows   int           `json:"total_rows"`
	Processed   int           `json:"processed"`
	Succeeded   int           `json:"succeeded"`
	Failed      int           `json:"failed"`
	Skipped     int           `json:"skipped"`
	Errors      []RowError    `json:"errors,omitempty"`
	Skips       []RowError    `json:"skips,omitempty"`
	StartedBy   uuid.UUID     `json:"started_by"`
	StartedAt   time.Time     `json:"started_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

// NewSession creates a running session
func NewSession(fileName string, startedBy uuid.UUID) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New().String(),
		FileName:  fileName,
		Status:    SessionRunning,
		StartedBy: startedBy,
		StartedAt: now,
		UpdatedAt: now,
	}
}

// Allowed transitions: running→paused, paused→running,
// running|paused→cancelled, running→completed|failed. Anything else is an
// invalid-state error and leaves the session unchanged.
func (s *Session) transition(to SessionStatus) error {
	ok := false
	switch to {
	case SessionPaused:
		ok = s.Status == SessionRunning
	case SessionRunning:
		ok = s.Status == SessionPaused
	case SessionCancelled:
		ok = s.Status == SessionRunning || s.Status == SessionPaused
	case SessionCompleted, SessionFailed:
		ok = s.Status == SessionRunning
	}
	if !ok {
		return shared.NewDomainError("INVALID_TRANSITION",
			"Cannot move import from "+string(s.Status)+" to "+string(to))
	}
	s.Status = to
	s.UpdatedAt = time.Now()
	if to.IsTerminal() {
		now := time.Now()
		s.CompletedAt = &now
	}
	return nil
}

// Pause suspends a running import
func (s *Session) Pause() error { return s.transition(SessionPaused) }

// Resume restarts a paused import
func (s *Session) Resume() error { return s.transition(SessionRunning) }

// Cancel aborts a running or paused import
func (s *Session) Cancel() error { return s.transition(SessionCancelled) }

// Complete marks a running import finished
func (s *Session) Complete() error { return s.transition(SessionCompleted) }

// Fail marks a running import failed
func (s *Session) Fail() error { return s.transition(SessionFailed) }

// RecordSuccess counts one imported row
func (s *Session) RecordSuccess() {
	s.Processed++
	s.Succeeded++
	s.UpdatedAt = time.Now()
}

// RecordError counts one failed row
func (s *Session) RecordError(e RowError) {
	s.Processed++
	s.Failed++
	s.Errors = append(s.Errors, e)
	s.UpdatedAt = time.Now()
}

// RecordSkip counts one skipped row
func (s *Session) RecordSkip(e RowError) {
	s.Processed++
	s.Skipped++
	s.Skips = append(s.Skips, e)
	s.UpdatedAt = time.Now()
}
