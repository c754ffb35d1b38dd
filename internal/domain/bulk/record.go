package bulk

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/morabaat/backend/internal/domain/shared"
)

// ConflictMode defines how import rows that collide with existing companies
// are handled.
type ConflictMode string

const (
	ConflictModeSkip   ConflictMode = "skip"
	ConflictModeUpdate ConflictMode = "update"
	ConflictModeFail   ConflictMode = "fail"
)

// IsValid checks if the conflict mode is valid
func (c ConflictMode) IsValid() bool {
	switch c {
	case ConflictModeSkip, ConflictModeUpdate, ConflictModeFail:
		return true
	}
	return false
}

// Record is the persistent audit row for a finished or in-flight company
// import. The live Session holds the transient state; the Record is what
// survives restarts.
type Record struct {
	shared.BaseEntity
	SessionID    string
	FileName     string
	FileSize     int64
	ConflictMode ConflictMode
	Status       SessionStatus
	TotalRows    int
	SuccessRows  int
	ErrorRows    int
	SkippedRows  int
	ErrorDetails []RowError
	ImportedBy   uuid.UUID
	StartedAt    time.Time
	CompletedAt  *time.Time
}

// NewRecord creates an audit row tied to a live session
func NewRecord(session *Session, fileSize int64, mode ConflictMode) (*Record, error) {
	if session == nil {
		return nil, shared.NewDomainError("INVALID_SESSION", "Record requires a session")
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_CONFLICT_MODE", fmt.Sprintf("Invalid conflict mode: %s", mode))
	}
	if fileSize < 0 {
		return nil, shared.NewDomainError("INVALID_FILE_SIZE", "File size cannot be negative")
	}
	return &Record{
		BaseEntity:   shared.NewBaseEntity(),
		SessionID:    session.ID,
		FileName:     session.FileName,
		FileSize:     fileSize,
		ConflictMode: mode,
		Status:       session.Status,
		ImportedBy:   session.StartedBy,
		StartedAt:    session.StartedAt,
	}, nil
}

// SyncFromSession copies the session's current progress into the record
func (r *Record) SyncFromSession(s *Session) {
	r.Status = s.Status
	r.TotalRows = s.TotalRows
	r.SuccessRows = s.Succeeded
	r.ErrorRows = s.Failed
	r.SkippedRows = s.Skipped
	r.ErrorDetails = s.Errors
	r.CompletedAt = s.CompletedAt
	r.Touch()
}

// ErrorDetailsJSON serializes the error list for storage
func (r *Record) ErrorDetailsJSON() (string, error) {
	if len(r.ErrorDetails) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(r.ErrorDetails)
	if err != nil {
		return "", fmt.Errorf("failed to marshal error details: %w", err)
	}
	return string(data), nil
}

// SetErrorDetailsFromJSON parses a stored error list
func (r *Record) SetErrorDetailsFromJSON(jsonStr string) error {
	if jsonStr == "" || jsonStr == "[]" {
		r.ErrorDetails = nil
		return nil
	}
	var details []RowError
	if err := json.Unmarshal([]byte(jsonStr), &details); err != nil {
		return fmt.Errorf("failed to unmarshal error details: %w", err)
	}
	r.ErrorDetails = details
	return nil
}

// RecordRepository provides access to import audit rows
type RecordRepository interface {
	shared.Repository[Record]
	FindBySessionID(ctx context.Context, sessionID string) (*Record, error)
}
